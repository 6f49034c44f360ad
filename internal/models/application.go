package models

// Application is one row of the applications listing. The display fields
// (student name, internship title...) are joined by the upstream listing or
// resolved locally when the row is created by the console.
type Application struct {
	ID           ID        `json:"id"`
	StudentID    ID        `json:"student_id"`
	InternshipID ID        `json:"internship_id"`
	Status       string    `json:"status"`
	AppliedAt    Timestamp `json:"applied_at"`

	StudentName     Text `json:"student_name,omitempty"`
	StudentEmail    Text `json:"student_email,omitempty"`
	InternshipTitle Text `json:"internship_title,omitempty"`
	Title           Text `json:"title,omitempty"`
	CompanyName     Text `json:"company_name,omitempty"`
}

func (a Application) GetID() int64 { return int64(a.ID) }

// Position returns the internship title, falling back to the generic title.
func (a Application) Position() string {
	if a.InternshipTitle != "" {
		return string(a.InternshipTitle)
	}
	return string(a.Title)
}

// Category returns the display category of the application's status.
func (a Application) Category() StatusCategory {
	return CategoryOf(a.Status)
}
