package filter

import (
	"sync"

	"internship_admin/internal/models"
)

// Memo caches the last filtered result keyed by source version and criteria.
type Memo struct {
	mu      sync.Mutex
	valid   bool
	version uint64
	crit    Criteria
	result  []models.Application
}

// Get returns the filtered applications, recomputing only when the source
// version, status or query changed since the last call.
func (m *Memo) Get(version uint64, apps []models.Application, c Criteria) []models.Application {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && m.version == version && m.crit == c {
		return m.result
	}
	m.result = Applications(apps, c)
	m.version = version
	m.crit = c
	m.valid = true
	return m.result
}

// Invalidate drops the cached result.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	m.valid = false
	m.result = nil
	m.mu.Unlock()
}
