package models

type Internship struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	CompanyID   ID     `json:"company_id"`
	CompanyName Text   `json:"company_name"`
	StartDate   Text   `json:"start_date"`
	EndDate     Text   `json:"end_date"`
	Stipend     Text   `json:"stipend"`
	Seats       Text   `json:"seats"`
	Description Text   `json:"description,omitempty"`
}

func (i Internship) GetID() int64 { return int64(i.ID) }

// Dates renders the period the way the listing shows it: "start - end".
func (i Internship) Dates() string {
	return string(i.StartDate) + " - " + string(i.EndDate)
}
