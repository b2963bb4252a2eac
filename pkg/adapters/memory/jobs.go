package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/ports"
	"github.com/google/uuid"
)

// JobService implements ports.JobService over a Dataset.
type JobService struct {
	ds  *Dataset
	now func() time.Time
}

var _ ports.JobService = (*JobService)(nil)

// NewJobService creates the simulated job board facade.
func NewJobService(ds *Dataset) *JobService {
	return &JobService{ds: ds, now: time.Now}
}

// List returns all postings, newest first.
func (s *JobService) List(ctx context.Context) domain.Envelope[[]domain.JobPosting] {
	s.ds.mu.RLock()
	defer s.ds.mu.RUnlock()

	jobs := make([]domain.JobPosting, 0, len(s.ds.jobs))
	for _, job := range s.ds.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].PostedAt.After(jobs[j].PostedAt)
	})
	return domain.OK(jobs)
}

// GetByID returns a single posting.
func (s *JobService) GetByID(ctx context.Context, id string) domain.Envelope[domain.JobPosting] {
	s.ds.mu.RLock()
	defer s.ds.mu.RUnlock()

	job, ok := s.ds.jobs[id]
	if !ok {
		return domain.Fail[domain.JobPosting]("Job posting not found.")
	}
	return domain.OK(*job)
}

// Search returns postings matching a free-text query.
func (s *JobService) Search(ctx context.Context, query string) domain.Envelope[[]domain.JobPosting] {
	if strings.TrimSpace(query) == "" {
		return domain.OK([]domain.JobPosting{})
	}

	s.ds.mu.RLock()
	defer s.ds.mu.RUnlock()

	matches := make([]domain.JobPosting, 0)
	for _, job := range s.ds.jobs {
		if job.Matches(query) {
			matches = append(matches, *job)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].PostedAt.After(matches[j].PostedAt)
	})
	return domain.OK(matches)
}

// Create publishes a new posting.
func (s *JobService) Create(ctx context.Context, draft domain.JobPosting) domain.Envelope[domain.JobPosting] {
	if strings.TrimSpace(draft.Title) == "" {
		return domain.Fail[domain.JobPosting]("A job posting needs a title.")
	}
	if strings.TrimSpace(draft.Company) == "" {
		return domain.Fail[domain.JobPosting]("A job posting needs a company.")
	}

	job := draft
	job.ID = uuid.NewString()
	job.Status = domain.JobOpen
	job.PostedAt = s.now().UTC()

	s.ds.mu.Lock()
	defer s.ds.mu.Unlock()
	s.ds.jobs[job.ID] = &job
	return domain.OK(job)
}

// Update replaces the mutable fields of an existing posting. Status and
// posting metadata are preserved; use Close to stop applications.
func (s *JobService) Update(ctx context.Context, in domain.JobPosting) domain.Envelope[domain.JobPosting] {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Fail[domain.JobPosting]("A job posting needs a title.")
	}

	s.ds.mu.Lock()
	defer s.ds.mu.Unlock()

	job, ok := s.ds.jobs[in.ID]
	if !ok {
		return domain.Fail[domain.JobPosting]("Job posting not found.")
	}
	job.Title = in.Title
	job.Company = in.Company
	job.Location = in.Location
	job.Description = in.Description
	return domain.OK(*job)
}

// Close stops a posting from accepting further applications.
func (s *JobService) Close(ctx context.Context, id string) domain.Envelope[domain.JobPosting] {
	s.ds.mu.Lock()
	defer s.ds.mu.Unlock()

	job, ok := s.ds.jobs[id]
	if !ok {
		return domain.Fail[domain.JobPosting]("Job posting not found.")
	}
	job.Status = domain.JobClosed
	return domain.OK(*job)
}

// Apply submits an application for the given actor.
func (s *JobService) Apply(ctx context.Context, jobID, actorID, note string) domain.Envelope[domain.Application] {
	if actorID == "" {
		return domain.Fail[domain.Application]("Sign in to apply.")
	}

	s.ds.mu.Lock()
	defer s.ds.mu.Unlock()

	job, ok := s.ds.jobs[jobID]
	if !ok {
		return domain.Fail[domain.Application]("Job posting not found.")
	}
	if !job.Open() {
		return domain.Fail[domain.Application]("This posting is no longer accepting applications.")
	}

	key := applicationKey(jobID, actorID)
	if _, dup := s.ds.applications[key]; dup {
		return domain.Fail[domain.Application]("You have already applied to this posting.")
	}

	app := domain.Application{
		JobID:       jobID,
		ActorID:     actorID,
		Note:        note,
		SubmittedAt: s.now().UTC(),
	}
	s.ds.applications[key] = &app
	return domain.OK(app)
}

// HasApplied reports whether the actor already applied to the job.
func (s *JobService) HasApplied(ctx context.Context, jobID, actorID string) domain.Envelope[bool] {
	s.ds.mu.RLock()
	defer s.ds.mu.RUnlock()

	_, ok := s.ds.applications[applicationKey(jobID, actorID)]
	return domain.OK(ok)
}
