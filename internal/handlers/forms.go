package handlers

import "internship_admin/internal/models"

// Формы консоли. Поля - строки, как их отправляет HTML-форма.

type StudentForm struct {
	Name   string `json:"name" validate:"required,not-blank,max=255"`
	Email  string `json:"email" validate:"omitempty,email"`
	Phone  string `json:"phone" validate:"omitempty,max=50"`
	Branch string `json:"branch" validate:"omitempty,max=255"`
}

type CompanyForm struct {
	Name          string `json:"name" validate:"required,not-blank,max=255"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=255"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
}

type InternshipForm struct {
	Title       string `json:"title" validate:"required,not-blank,max=255"`
	CompanyID   string `json:"company_id" validate:"omitempty,is-entity-id"`
	StartDate   string `json:"start_date" validate:"omitempty,max=32"`
	EndDate     string `json:"end_date" validate:"omitempty,max=32"`
	Stipend     string `json:"stipend" validate:"omitempty,max=64"`
	Seats       string `json:"seats" validate:"omitempty,numeric"`
	Description string `json:"description"`
}

type ApplicationForm struct {
	StudentID    string `json:"student_id" validate:"required,is-entity-id"`
	InternshipID string `json:"internship_id" validate:"required,is-entity-id"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,not-blank,max=64"`
}

// formShape returns an empty typed form for validating kind.
func formShape(kind models.EntityKind) any {
	switch kind {
	case models.KindStudent:
		return &StudentForm{}
	case models.KindCompany:
		return &CompanyForm{}
	case models.KindInternship:
		return &InternshipForm{}
	case models.KindApplication:
		return &ApplicationForm{}
	default:
		return nil
	}
}
