package controller

import "internship_admin/internal/models"

// Messages are the notification texts of one entity.
type Messages struct {
	Created       string
	Updated       string
	Deleted       string
	CreateFailed  string
	UpdateFailed  string
	DeleteFailed  string
	ConfirmDelete string
}

const (
	MsgStatusUpdated      = "Application status updated"
	MsgStatusUpdateFailed = "Failed to update status"
)

var messages = map[models.EntityKind]Messages{
	models.KindStudent: {
		Created:       "Student added",
		Updated:       "Student updated",
		Deleted:       "Student deleted",
		CreateFailed:  "Failed to add student",
		UpdateFailed:  "Update failed",
		DeleteFailed:  "Delete failed",
		ConfirmDelete: "Delete this student?",
	},
	models.KindCompany: {
		Created:       "Company added",
		Updated:       "Company updated",
		Deleted:       "Company deleted",
		CreateFailed:  "Failed to add company",
		UpdateFailed:  "Update failed",
		DeleteFailed:  "Delete failed",
		ConfirmDelete: "Delete this company?",
	},
	models.KindInternship: {
		Created:       "Internship added",
		Updated:       "Internship updated",
		Deleted:       "Internship deleted",
		CreateFailed:  "Failed to add internship",
		UpdateFailed:  "Update failed",
		DeleteFailed:  "Delete failed",
		ConfirmDelete: "Delete this internship?",
	},
	models.KindApplication: {
		Created:       "Application submitted",
		Updated:       "Application updated",
		Deleted:       "Application deleted",
		CreateFailed:  "Failed to submit application",
		UpdateFailed:  "Update failed",
		DeleteFailed:  "Failed to delete application",
		ConfirmDelete: "Delete this application?",
	},
}

// MessagesFor returns the texts for kind.
func MessagesFor(kind models.EntityKind) (Messages, bool) {
	m, ok := messages[kind]
	return m, ok
}
