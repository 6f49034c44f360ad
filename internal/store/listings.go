package store

import "internship_admin/internal/models"

// Listings groups the four listings and the detail panel of one console.
type Listings struct {
	Students     *Store[models.Student]
	Companies    *Store[models.Company]
	Internships  *Store[models.Internship]
	Applications *Store[models.Application]
	Detail       *DetailView
}

func NewListings() *Listings {
	return &Listings{
		Students:     New[models.Student](),
		Companies:    New[models.Company](),
		Internships:  New[models.Internship](),
		Applications: New[models.Application](),
		Detail:       NewDetailView(),
	}
}

// Counts returns the number of rows per listing.
func (l *Listings) Counts() map[models.EntityKind]int {
	return map[models.EntityKind]int{
		models.KindStudent:     l.Students.Len(),
		models.KindCompany:     l.Companies.Len(),
		models.KindInternship:  l.Internships.Len(),
		models.KindApplication: l.Applications.Len(),
	}
}
