// Package filter computes the visible subset of the applications listing
// from a status selector and a free-text query.
package filter

import (
	"strings"

	"internship_admin/internal/models"
)

// StatusAll is the selector value that disables the status predicate.
const StatusAll = "all"

// Record is the canonical shape both views project into before matching.
// Missing values are empty strings.
type Record struct {
	StudentName     string
	InternshipTitle string
	Title           string
	CompanyName     string
	StudentEmail    string
	Status          string
}

// Criteria is the selector state. An empty Status is a real filter value:
// it matches only rows whose status is missing.
type Criteria struct {
	Status string `form:"status" json:"status" validate:"is-filter-status"`
	Query  string `form:"q" json:"q" validate:"omitempty,max=256"`
}

// DefaultCriteria is the selector state of a freshly opened listing.
func DefaultCriteria() Criteria {
	return Criteria{Status: StatusAll}
}

// Match reports whether r passes both the status and the text predicate.
func Match(r Record, status, query string) bool {
	if !matchStatus(r.Status, status) {
		return false
	}
	return matchText(r, query)
}

func matchStatus(recordStatus, status string) bool {
	if status == StatusAll {
		return true
	}
	return strings.ToLower(recordStatus) == strings.ToLower(status)
}

func matchText(r Record, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	title := r.InternshipTitle
	if title == "" {
		title = r.Title
	}
	for _, f := range [...]string{r.StudentName, title, r.CompanyName, r.StudentEmail, r.Status} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// FromApplication projects a structured application.
func FromApplication(a models.Application) Record {
	return Record{
		StudentName:     string(a.StudentName),
		InternshipTitle: string(a.InternshipTitle),
		Title:           string(a.Title),
		CompanyName:     string(a.CompanyName),
		StudentEmail:    string(a.StudentEmail),
		Status:          a.Status,
	}
}

// Applications returns the applications matching c, in input order.
func Applications(apps []models.Application, c Criteria) []models.Application {
	out := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if Match(FromApplication(a), c.Status, c.Query) {
			out = append(out, a)
		}
	}
	return out
}

// Summary is the "Showing N of M applications" line.
type Summary struct {
	Shown int `json:"shown"`
	Total int `json:"total"`
}

func (s Summary) String() string {
	return "Showing " + itoa(s.Shown) + " of " + itoa(s.Total) + " applications"
}
