package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-ten", truncate("exactly-ten", 11))

	cut := truncate("a long enough string to cut", 10)
	assert.True(t, strings.HasSuffix(cut, "…"))
	assert.LessOrEqual(t, utf8.RuneCountInString(cut), 10)
}

func TestTruncateKeepsMultibyteNamesValid(t *testing.T) {
	cut := truncate("Renée-Éléonore Beauchêne", 6)
	assert.True(t, utf8.ValidString(cut), "truncation must not split a rune")
	assert.Equal(t, "Renée…", cut)
}

func TestJobLineContainsStatus(t *testing.T) {
	line := JobLine(domain.JobPosting{
		ID:      "job-0001",
		Title:   "Backend Engineer",
		Company: "Maple Systems",
		Status:  domain.JobOpen,
	})
	assert.Contains(t, line, "job-0001")
	assert.Contains(t, line, "open")
}
