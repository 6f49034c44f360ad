package models

type Company struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	ContactPerson Text   `json:"contact_person"`
	Email         Text   `json:"email"`
	Phone         Text   `json:"phone"`
}

func (c Company) GetID() int64 { return int64(c.ID) }
