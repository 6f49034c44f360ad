package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCenter(ttl time.Duration) (*Center, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	c := NewCenter(ttl)
	c.SetClock(clock.Now)
	return c, clock
}

func TestNewCenter_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewCenter(0).TTL())
	assert.Equal(t, 4*time.Second, DefaultTTL)
}

func TestNotify_ExpiresAfterTTL(t *testing.T) {
	c, clock := newTestCenter(0)

	n := c.Success("Student added")
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, LevelSuccess, n.Level)
	require.Len(t, c.Active(), 1)

	clock.Advance(3999 * time.Millisecond)
	assert.Len(t, c.Active(), 1)

	clock.Advance(time.Millisecond)
	assert.Empty(t, c.Active())
	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 0, c.Prune())
}

func TestActive_OldestFirst(t *testing.T) {
	c, clock := newTestCenter(time.Minute)
	c.Error("Delete failed")
	clock.Advance(time.Second)
	c.Success("Company added")

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "Delete failed", active[0].Message)
	assert.Equal(t, "Company added", active[1].Message)
}

func TestDismiss(t *testing.T) {
	c, _ := newTestCenter(0)
	var events []Event
	unsubscribe := c.Subscribe(func(ev Event) { events = append(events, ev) })

	n := c.Notify(LevelInfo, "hello")
	assert.True(t, c.Dismiss(n.ID))
	assert.False(t, c.Dismiss(n.ID))
	assert.Empty(t, c.Active())

	require.Len(t, events, 2)
	assert.Equal(t, EventShown, events[0].Type)
	assert.Equal(t, EventDismissed, events[1].Type)
	assert.Equal(t, n.ID, events[1].Notification.ID)

	unsubscribe()
	c.Success("after")
	assert.Len(t, events, 2)
}

func TestPrune_PublishesDismissed(t *testing.T) {
	c, clock := newTestCenter(time.Second)
	var dismissed int
	c.Subscribe(func(ev Event) {
		if ev.Type == EventDismissed {
			dismissed++
		}
	})
	c.Success("a")
	c.Success("b")
	clock.Advance(2 * time.Second)
	assert.Equal(t, 2, c.Prune())
	assert.Equal(t, 2, dismissed)
}
