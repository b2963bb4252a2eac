package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/ports"
)

// DirectoryService implements ports.DirectoryService over the remote REST API.
type DirectoryService struct {
	c *Client
}

var _ ports.DirectoryService = (*DirectoryService)(nil)

func (s *DirectoryService) List(ctx context.Context) domain.Envelope[[]domain.Profile] {
	return call[[]domain.Profile](ctx, s.c, http.MethodGet, apiPath("directory"), nil, nil)
}

func (s *DirectoryService) GetByID(ctx context.Context, id string) domain.Envelope[domain.Profile] {
	return call[domain.Profile](ctx, s.c, http.MethodGet, apiPath("directory", id), nil, nil)
}

func (s *DirectoryService) Search(ctx context.Context, query string) domain.Envelope[[]domain.Profile] {
	return call[[]domain.Profile](ctx, s.c, http.MethodGet, apiPath("directory", "search"),
		url.Values{"q": {query}}, nil)
}

func (s *DirectoryService) Suggest(ctx context.Context, prefix string) domain.Envelope[[]string] {
	return call[[]string](ctx, s.c, http.MethodGet, apiPath("directory", "suggest"),
		url.Values{"q": {prefix}}, nil)
}
