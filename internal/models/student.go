package models

type Student struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Email  Text   `json:"email"`
	Phone  Text   `json:"phone"`
	Branch Text   `json:"branch"`
}

func (s Student) GetID() int64 { return int64(s.ID) }
