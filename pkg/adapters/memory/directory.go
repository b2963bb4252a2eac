package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/ports"
)

// DirectoryService implements ports.DirectoryService over a Dataset.
type DirectoryService struct {
	ds *Dataset
}

var _ ports.DirectoryService = (*DirectoryService)(nil)

// NewDirectoryService creates the simulated directory facade.
func NewDirectoryService(ds *Dataset) *DirectoryService {
	return &DirectoryService{ds: ds}
}

// List returns all profiles sorted by name.
func (s *DirectoryService) List(ctx context.Context) domain.Envelope[[]domain.Profile] {
	s.ds.mu.RLock()
	defer s.ds.mu.RUnlock()

	profiles := make([]domain.Profile, 0, len(s.ds.profiles))
	for _, p := range s.ds.profiles {
		profiles = append(profiles, *p)
	}
	sortByName(profiles)
	return domain.OK(profiles)
}

// GetByID returns a single profile.
func (s *DirectoryService) GetByID(ctx context.Context, id string) domain.Envelope[domain.Profile] {
	s.ds.mu.RLock()
	defer s.ds.mu.RUnlock()

	p, ok := s.ds.profiles[id]
	if !ok {
		return domain.Fail[domain.Profile]("Profile not found.")
	}
	return domain.OK(*p)
}

// Search returns profiles matching a free-text query.
func (s *DirectoryService) Search(ctx context.Context, query string) domain.Envelope[[]domain.Profile] {
	if strings.TrimSpace(query) == "" {
		return domain.OK([]domain.Profile{})
	}

	s.ds.mu.RLock()
	defer s.ds.mu.RUnlock()

	matches := make([]domain.Profile, 0)
	for _, p := range s.ds.profiles {
		if p.Matches(query) {
			matches = append(matches, *p)
		}
	}
	sortByName(matches)
	return domain.OK(matches)
}

// Suggest returns up to ports.SuggestLimit names sharing the prefix.
func (s *DirectoryService) Suggest(ctx context.Context, prefix string) domain.Envelope[[]string] {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return domain.OK([]string{})
	}

	s.ds.mu.RLock()
	defer s.ds.mu.RUnlock()

	names := make([]string, 0)
	for _, p := range s.ds.profiles {
		if strings.HasPrefix(strings.ToLower(p.Name), prefix) {
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	if len(names) > ports.SuggestLimit {
		names = names[:ports.SuggestLimit]
	}
	return domain.OK(names)
}

func sortByName(profiles []domain.Profile) {
	sort.Slice(profiles, func(i, j int) bool {
		return strings.ToLower(profiles[i].Name) < strings.ToLower(profiles[j].Name)
	})
}
