package ports

import (
	"context"

	"github.com/atriumhq/atrium/pkg/domain"
)

// JobService is the service facade for the job board domain.
//
// Every method returns a domain.Envelope in both backend modes; business
// rejections (duplicate application, closed posting, unknown ID) and
// transport failures alike surface as Success=false with a message. No
// method returns a Go error and no implementation may panic on bad input.
type JobService interface {
	// List returns all postings, newest first.
	List(ctx context.Context) domain.Envelope[[]domain.JobPosting]

	// GetByID returns a single posting, or a failure for an unknown ID.
	GetByID(ctx context.Context, id string) domain.Envelope[domain.JobPosting]

	// Search returns postings matching a free-text query. A blank query
	// matches nothing and succeeds with an empty result.
	Search(ctx context.Context, query string) domain.Envelope[[]domain.JobPosting]

	// Create publishes a new posting. The ID and PostedAt fields of the
	// draft are assigned by the backend.
	Create(ctx context.Context, draft domain.JobPosting) domain.Envelope[domain.JobPosting]

	// Update replaces the mutable fields of an existing posting.
	Update(ctx context.Context, job domain.JobPosting) domain.Envelope[domain.JobPosting]

	// Close stops a posting from accepting further applications.
	Close(ctx context.Context, id string) domain.Envelope[domain.JobPosting]

	// Apply submits an application for the given actor. At most one
	// application per (job, actor); a second attempt is rejected.
	Apply(ctx context.Context, jobID, actorID, note string) domain.Envelope[domain.Application]

	// HasApplied reports whether the actor already applied to the job.
	// This is the derived query consumers are expected to cache.
	HasApplied(ctx context.Context, jobID, actorID string) domain.Envelope[bool]
}
