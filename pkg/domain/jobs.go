package domain

import (
	"strings"
	"time"
)

// JobStatus describes whether a posting still accepts applications.
type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)

// JobPosting is a position shared on the alumni job board.
// Description is markdown.
type JobPosting struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Company     string    `json:"company" yaml:"company"`
	Location    string    `json:"location" yaml:"location"`
	Description string    `json:"description" yaml:"description"`
	PostedBy    string    `json:"posted_by" yaml:"posted_by"`
	Status      JobStatus `json:"status" yaml:"status"`
	PostedAt    time.Time `json:"posted_at" yaml:"posted_at"`
}

// Open reports whether the posting still accepts applications.
func (j JobPosting) Open() bool {
	return j.Status == JobOpen
}

// Matches reports whether the posting matches a free-text query.
func (j JobPosting) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	for _, field := range []string{j.Title, j.Company, j.Location} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Application records that an actor applied to a posting. One application
// per (job, actor) pair; duplicates are a business rejection.
type Application struct {
	JobID       string    `json:"job_id" yaml:"job_id"`
	ActorID     string    `json:"actor_id" yaml:"actor_id"`
	Note        string    `json:"note,omitempty" yaml:"note,omitempty"`
	SubmittedAt time.Time `json:"submitted_at" yaml:"submitted_at"`
}
