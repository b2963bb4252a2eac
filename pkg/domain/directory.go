package domain

import "strings"

// Profile is a directory entry for one alumnus.
type Profile struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	ClassYear int    `json:"class_year" yaml:"class_year"`
	Degree    string `json:"degree" yaml:"degree"`
	Company   string `json:"company" yaml:"company"`
	Role      string `json:"role" yaml:"role"`
	Location  string `json:"location" yaml:"location"`
	Mentoring bool   `json:"mentoring" yaml:"mentoring"`
}

// Matches reports whether the profile matches a free-text query.
func (p Profile) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	for _, field := range []string{p.Name, p.Company, p.Role, p.Location, p.Degree} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
