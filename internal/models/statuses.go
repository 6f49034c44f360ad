package models

import "strings"

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusPending     ApplicationStatus = "Pending"
	StatusUnderReview ApplicationStatus = "Under Review"
	StatusSelected    ApplicationStatus = "Selected"
	StatusAccepted    ApplicationStatus = "Accepted"
	StatusRejected    ApplicationStatus = "Rejected"
)

// KnownStatuses in the order the status selector lists them.
var KnownStatuses = []ApplicationStatus{
	StatusApplied,
	StatusPending,
	StatusUnderReview,
	StatusSelected,
	StatusAccepted,
	StatusRejected,
}

// StatusCategory - визуальная группа статуса для цветовой маркировки.
type StatusCategory string

const (
	CategorySuccess StatusCategory = "success"
	CategoryWarning StatusCategory = "warning"
	CategoryDanger  StatusCategory = "danger"
	CategoryInfo    StatusCategory = "info"
	CategoryNeutral StatusCategory = "neutral"
)

var categoryClasses = map[StatusCategory]string{
	CategorySuccess: "bg-green-100 text-green-800",
	CategoryWarning: "bg-yellow-100 text-yellow-800",
	CategoryDanger:  "bg-red-100 text-red-800",
	CategoryInfo:    "bg-blue-100 text-blue-800",
	CategoryNeutral: "bg-gray-100 text-gray-800",
}

// CategoryOf maps a status (any case) to its category. Unknown statuses are neutral.
func CategoryOf(status string) StatusCategory {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "applied", "pending":
		return CategoryWarning
	case "selected", "accepted":
		return CategorySuccess
	case "rejected":
		return CategoryDanger
	case "under review":
		return CategoryInfo
	default:
		return CategoryNeutral
	}
}

// Class returns the badge classes for the category.
func (c StatusCategory) Class() string {
	if cls, ok := categoryClasses[c]; ok {
		return cls
	}
	return categoryClasses[CategoryNeutral]
}

// IsKnownStatus reports whether s is one of KnownStatuses, ignoring case.
func IsKnownStatus(s string) bool {
	for _, st := range KnownStatuses {
		if strings.EqualFold(string(st), s) {
			return true
		}
	}
	return false
}
