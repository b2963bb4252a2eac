// Package tui renders facade results for the terminal. It is deliberately
// dumb: everything it prints comes out of envelopes, never from backend-
// specific knowledge.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// NewMarkdownRenderer returns a function that renders markdown (job
// descriptions) using glamour, word-wrapped to the terminal width.
func NewMarkdownRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(terminalWidth()),
	)
	if err != nil {
		// Degrade to pass-through rendering rather than failing the command.
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || width > 100 {
		return 80
	}
	return width
}

// StatusBadge renders a posting status with color when the terminal
// supports it.
func StatusBadge(status domain.JobStatus) string {
	p := termenv.ColorProfile()
	switch status {
	case domain.JobOpen:
		return termenv.String("open").Foreground(p.Color("#34d399")).String()
	case domain.JobClosed:
		return termenv.String("closed").Foreground(p.Color("#f87171")).String()
	default:
		return string(status)
	}
}

// JobLine formats one posting for list output.
func JobLine(job domain.JobPosting) string {
	return fmt.Sprintf("%-10s  %-28s  %-20s  %s", job.ID, truncate(job.Title, 28),
		truncate(job.Company, 20), StatusBadge(job.Status))
}

// ProfileLine formats one directory entry for list output.
func ProfileLine(p domain.Profile) string {
	mentor := " "
	if p.Mentoring {
		mentor = "M"
	}
	return fmt.Sprintf("%-10s  %-22s  %4d  %-20s  %s", p.ID, truncate(p.Name, 22),
		p.ClassYear, truncate(p.Company, 20), mentor)
}

// Failure formats a failed envelope message for stderr.
func Failure(message string) string {
	p := termenv.ColorProfile()
	return termenv.String("✗ " + message).Foreground(p.Color("#f87171")).String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
