// Package memory implements the simulated backend: the service facades and
// the session store backed by an in-process dataset seeded from a static
// fixture. Nothing persists across restarts.
package memory

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/atriumhq/atrium/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed fixture/seed.yaml
var seedYAML []byte

// seed mirrors the fixture file layout.
type seed struct {
	Jobs         []domain.JobPosting  `yaml:"jobs"`
	Profiles     []domain.Profile     `yaml:"profiles"`
	Applications []domain.Application `yaml:"applications"`
}

// Dataset is the mutable in-process state behind the simulated backend.
// Safe for concurrent use. All access goes through the facade types; tests
// may construct one directly from custom YAML.
type Dataset struct {
	mu           sync.RWMutex
	jobs         map[string]*domain.JobPosting
	profiles     map[string]*domain.Profile
	applications map[string]*domain.Application
}

func applicationKey(jobID, actorID string) string {
	return jobID + "\x00" + actorID
}

// NewDataset seeds a dataset from the embedded fixture.
func NewDataset() (*Dataset, error) {
	return NewDatasetFromYAML(seedYAML)
}

// NewDatasetFromYAML seeds a dataset from caller-supplied fixture bytes.
func NewDatasetFromYAML(raw []byte) (*Dataset, error) {
	var s seed
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	ds := &Dataset{
		jobs:         make(map[string]*domain.JobPosting, len(s.Jobs)),
		profiles:     make(map[string]*domain.Profile, len(s.Profiles)),
		applications: make(map[string]*domain.Application, len(s.Applications)),
	}
	for i := range s.Jobs {
		job := s.Jobs[i]
		if job.ID == "" {
			return nil, fmt.Errorf("fixture job %d has no id", i)
		}
		ds.jobs[job.ID] = &job
	}
	for i := range s.Profiles {
		profile := s.Profiles[i]
		if profile.ID == "" {
			return nil, fmt.Errorf("fixture profile %d has no id", i)
		}
		ds.profiles[profile.ID] = &profile
	}
	for i := range s.Applications {
		app := s.Applications[i]
		ds.applications[applicationKey(app.JobID, app.ActorID)] = &app
	}
	return ds, nil
}

// MustDataset is NewDataset for wiring code where the embedded fixture is
// known to be valid.
func MustDataset() *Dataset {
	ds, err := NewDataset()
	if err != nil {
		panic(err)
	}
	return ds
}
