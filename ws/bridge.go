package ws

import (
	"internship_admin/internal/filter"
	"internship_admin/internal/models"
	"internship_admin/internal/notify"
	"internship_admin/internal/store"
)

// Типы кадров
const (
	TypeSnapshot     = "snapshot"
	TypeRow          = "row"
	TypeNotification = "notification"
)

type applicationFrame struct {
	store.Event[models.Application]
	Rendered *filter.Row `json:"rendered,omitempty"`
}

// Bridge forwards every listing change and notification to the manager.
// The returned func stops forwarding.
func Bridge(manager *WebSocketManager, listings *store.Listings, center *notify.Center) (stop func()) {
	stops := []func(){
		forward(manager, models.KindStudent, listings.Students),
		forward(manager, models.KindCompany, listings.Companies),
		forward(manager, models.KindInternship, listings.Internships),
		listings.Applications.Subscribe(func(ev store.Event[models.Application]) {
			frame := applicationFrame{Event: ev}
			if ev.Type == store.EventInserted || ev.Type == store.EventUpdated {
				row := filter.Render(ev.Row)
				frame.Rendered = &row
			}
			manager.Broadcast(Message{Type: TypeRow, Entity: string(models.KindApplication), Data: frame})
		}),
		center.Subscribe(func(ev notify.Event) {
			manager.Broadcast(Message{Type: TypeNotification, Data: ev})
		}),
	}
	return func() {
		for _, s := range stops {
			s()
		}
	}
}

func forward[T models.Entity](manager *WebSocketManager, kind models.EntityKind, s *store.Store[T]) func() {
	return s.Subscribe(func(ev store.Event[T]) {
		manager.Broadcast(Message{Type: TypeRow, Entity: string(kind), Data: ev})
	})
}

// Snapshot returns the frame a new client starts from.
func Snapshot(listings *store.Listings, center *notify.Center) func() any {
	return func() any {
		return Message{
			Type: TypeSnapshot,
			Data: map[string]any{
				"students":      listings.Students.List(),
				"companies":     listings.Companies.List(),
				"internships":   listings.Internships.List(),
				"applications":  listings.Applications.List(),
				"detail":        listings.Detail.State(),
				"notifications": center.Active(),
			},
		}
	}
}
