package store

import (
	"sync"

	"internship_admin/internal/models"
)

// DetailView is the open application detail panel. At most one is open.
type DetailView struct {
	mu   sync.RWMutex
	open bool
	app  models.Application
}

// DetailState is what the panel shows.
type DetailState struct {
	Open        bool                  `json:"open"`
	Application models.Application    `json:"application"`
	Category    models.StatusCategory `json:"category"`
	Class       string                `json:"status_class"`
}

func NewDetailView() *DetailView {
	return &DetailView{}
}

func (d *DetailView) Open(app models.Application) DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.app = app
	return d.stateLocked()
}

func (d *DetailView) Close() {
	d.mu.Lock()
	d.open = false
	d.app = models.Application{}
	d.mu.Unlock()
}

func (d *DetailView) State() DetailState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stateLocked()
}

// IsShowing reports whether the panel is open on the application id.
func (d *DetailView) IsShowing(id int64) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.open && d.app.GetID() == id
}

// SetStatus updates the status shown if the panel is open on id.
func (d *DetailView) SetStatus(id int64, status string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open || d.app.GetID() != id {
		return false
	}
	d.app.Status = status
	return true
}

// CloseIf closes the panel if it shows id (the row was deleted).
func (d *DetailView) CloseIf(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open || d.app.GetID() != id {
		return false
	}
	d.open = false
	d.app = models.Application{}
	return true
}

func (d *DetailView) stateLocked() DetailState {
	if !d.open {
		return DetailState{}
	}
	cat := d.app.Category()
	return DetailState{Open: true, Application: d.app, Category: cat, Class: cat.Class()}
}
