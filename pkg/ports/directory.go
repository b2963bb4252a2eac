package ports

import (
	"context"

	"github.com/atriumhq/atrium/pkg/domain"
)

// SuggestLimit caps how many names a Suggest call may return.
const SuggestLimit = 8

// DirectoryService is the service facade for the alumni directory domain.
// The envelope rules of JobService apply here as well.
type DirectoryService interface {
	// List returns all directory profiles, sorted by name.
	List(ctx context.Context) domain.Envelope[[]domain.Profile]

	// GetByID returns a single profile, or a failure for an unknown ID.
	GetByID(ctx context.Context, id string) domain.Envelope[domain.Profile]

	// Search returns profiles matching a free-text query. A blank query
	// matches nothing and succeeds with an empty result.
	Search(ctx context.Context, query string) domain.Envelope[[]domain.Profile]

	// Suggest returns up to SuggestLimit profile names starting with the
	// given prefix (case-insensitive), sorted ascending. It backs the
	// search-as-you-type dropdown.
	Suggest(ctx context.Context, prefix string) domain.Envelope[[]string]
}
