// Package notify keeps the transient notifications (toasts) shown to console users.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 4 * time.Second

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type EventType string

const (
	EventShown     EventType = "shown"
	EventDismissed EventType = "dismissed"
)

type Event struct {
	Type         EventType    `json:"type"`
	Notification Notification `json:"notification"`
}

// Center is safe for concurrent use. Subscribers run outside the lock.
type Center struct {
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	active map[string]Notification

	nextSub int
	subs    map[int]func(Event)
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:    ttl,
		now:    time.Now,
		active: make(map[string]Notification),
		subs:   make(map[int]func(Event)),
	}
}

// SetClock заменяет источник времени (для тестов).
func (c *Center) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *Center) TTL() time.Duration { return c.ttl }

// Notify shows a new notification and returns it.
func (c *Center) Notify(level Level, message string) Notification {
	c.mu.Lock()
	now := c.now()
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.active[n.ID] = n
	subs := c.snapshotSubs()
	c.mu.Unlock()

	publish(subs, Event{Type: EventShown, Notification: n})
	return n
}

func (c *Center) Success(message string) Notification { return c.Notify(LevelSuccess, message) }

func (c *Center) Error(message string) Notification { return c.Notify(LevelError, message) }

// Active returns the notifications not yet expired, oldest first.
func (c *Center) Active() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.now()
	out := make([]Notification, 0, len(c.active))
	for _, n := range c.active {
		if now.Before(n.ExpiresAt) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Dismiss removes a notification early. It reports whether it was active.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	n, ok := c.active[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.active, id)
	subs := c.snapshotSubs()
	c.mu.Unlock()

	publish(subs, Event{Type: EventDismissed, Notification: n})
	return true
}

// Prune drops expired notifications and returns how many were dropped.
func (c *Center) Prune() int {
	c.mu.Lock()
	now := c.now()
	var expired []Notification
	for id, n := range c.active {
		if !now.Before(n.ExpiresAt) {
			expired = append(expired, n)
			delete(c.active, id)
		}
	}
	subs := c.snapshotSubs()
	c.mu.Unlock()

	for _, n := range expired {
		publish(subs, Event{Type: EventDismissed, Notification: n})
	}
	return len(expired)
}

func (c *Center) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Center) snapshotSubs() []func(Event) {
	out := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

func publish(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
