package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/ports"
)

// JobService implements ports.JobService over the remote REST API.
type JobService struct {
	c *Client
}

var _ ports.JobService = (*JobService)(nil)

func (s *JobService) List(ctx context.Context) domain.Envelope[[]domain.JobPosting] {
	return call[[]domain.JobPosting](ctx, s.c, http.MethodGet, apiPath("jobs"), nil, nil)
}

func (s *JobService) GetByID(ctx context.Context, id string) domain.Envelope[domain.JobPosting] {
	return call[domain.JobPosting](ctx, s.c, http.MethodGet, apiPath("jobs", id), nil, nil)
}

func (s *JobService) Search(ctx context.Context, query string) domain.Envelope[[]domain.JobPosting] {
	return call[[]domain.JobPosting](ctx, s.c, http.MethodGet, apiPath("jobs", "search"),
		url.Values{"q": {query}}, nil)
}

func (s *JobService) Create(ctx context.Context, draft domain.JobPosting) domain.Envelope[domain.JobPosting] {
	return call[domain.JobPosting](ctx, s.c, http.MethodPost, apiPath("jobs"), nil, draft)
}

func (s *JobService) Update(ctx context.Context, job domain.JobPosting) domain.Envelope[domain.JobPosting] {
	return call[domain.JobPosting](ctx, s.c, http.MethodPut, apiPath("jobs", job.ID), nil, job)
}

func (s *JobService) Close(ctx context.Context, id string) domain.Envelope[domain.JobPosting] {
	return call[domain.JobPosting](ctx, s.c, http.MethodPost, apiPath("jobs", id, "close"), nil, nil)
}

// applyRequest mirrors the devserver's application body.
type applyRequest struct {
	ActorID string `json:"actor_id"`
	Note    string `json:"note"`
}

func (s *JobService) Apply(ctx context.Context, jobID, actorID, note string) domain.Envelope[domain.Application] {
	return call[domain.Application](ctx, s.c, http.MethodPost, apiPath("jobs", jobID, "applications"),
		nil, applyRequest{ActorID: actorID, Note: note})
}

func (s *JobService) HasApplied(ctx context.Context, jobID, actorID string) domain.Envelope[bool] {
	return call[bool](ctx, s.c, http.MethodGet, apiPath("jobs", jobID, "applications", actorID), nil, nil)
}
