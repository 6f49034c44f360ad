package filter

import (
	"strconv"

	"internship_admin/internal/models"
)

// Column classes of a rendered applications row.
const (
	ColStudent    = "col-student"
	ColEmail      = "col-email"
	ColInternship = "col-internship"
	ColCompany    = "col-company"
	ColApplied    = "col-applied"
	ColStatus     = "status-badge"
)

// Row is a rendered applications table row. Cells hold the raw cell text keyed
// by column class; Display holds what is shown, with placeholders for empty cells.
type Row struct {
	ID      int64             `json:"id"`
	Cells   map[string]string `json:"cells"`
	Display map[string]string `json:"display"`
	Class   string            `json:"status_class"`
	Visible bool              `json:"visible"`
}

// Render builds the table row the console shows for an application.
func Render(a models.Application) Row {
	cells := map[string]string{
		ColStudent:    string(a.StudentName),
		ColEmail:      string(a.StudentEmail),
		ColInternship: a.Position(),
		ColCompany:    string(a.CompanyName),
		ColApplied:    a.AppliedAt.Display(),
		ColStatus:     a.Status,
	}
	display := make(map[string]string, len(cells))
	for col, v := range cells {
		display[col] = orDash(v)
	}
	if a.Status == "" {
		display[ColStatus] = "Unknown"
	}
	display[ColEmail] = string(a.StudentEmail)
	return Row{
		ID:      a.GetID(),
		Cells:   cells,
		Display: display,
		Class:   a.Category().Class(),
		Visible: true,
	}
}

// RecordOf reads a rendered row back into the canonical record.
func RecordOf(r Row) Record {
	return Record{
		StudentName:     r.Cells[ColStudent],
		InternshipTitle: r.Cells[ColInternship],
		CompanyName:     r.Cells[ColCompany],
		StudentEmail:    r.Cells[ColEmail],
		Status:          r.Cells[ColStatus],
	}
}

// Rows marks each rendered row visible or hidden and returns the counts.
// Rows are modified in place.
func Rows(rows []Row, c Criteria) Summary {
	shown := 0
	for i := range rows {
		rows[i].Visible = Match(RecordOf(rows[i]), c.Status, c.Query)
		if rows[i].Visible {
			shown++
		}
	}
	return Summary{Shown: shown, Total: len(rows)}
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func itoa(n int) string { return strconv.Itoa(n) }

// RenderAll renders the listing in order.
func RenderAll(apps []models.Application) []Row {
	rows := make([]Row, len(apps))
	for i, a := range apps {
		rows[i] = Render(a)
	}
	return rows
}
