package controller

import "internship_admin/internal/models"

// Form is a flat create/edit form: field name to submitted value.
type Form map[string]string

type ActionKind string

const (
	ActionCreate       ActionKind = "create"
	ActionUpdate       ActionKind = "update"
	ActionDelete       ActionKind = "delete"
	ActionStatusUpdate ActionKind = "status_update"
)

// Action is one user intent. The set is closed: CreateAction, UpdateAction,
// DeleteAction and StatusUpdateAction.
type Action interface {
	Kind() ActionKind
	Target() models.EntityKind
}

type CreateAction struct {
	Entity models.EntityKind
	Form   Form
}

type UpdateAction struct {
	Entity models.EntityKind
	ID     int64
	Form   Form
}

type DeleteAction struct {
	Entity models.EntityKind
	ID     int64
}

// StatusUpdateAction changes only the status of an application.
type StatusUpdateAction struct {
	ID     int64
	Status string
}

func (CreateAction) Kind() ActionKind       { return ActionCreate }
func (UpdateAction) Kind() ActionKind       { return ActionUpdate }
func (DeleteAction) Kind() ActionKind       { return ActionDelete }
func (StatusUpdateAction) Kind() ActionKind { return ActionStatusUpdate }

func (a CreateAction) Target() models.EntityKind     { return a.Entity }
func (a UpdateAction) Target() models.EntityKind     { return a.Entity }
func (a DeleteAction) Target() models.EntityKind     { return a.Entity }
func (StatusUpdateAction) Target() models.EntityKind { return models.KindApplication }
