package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"internship_admin/internal/logger"
	"internship_admin/internal/notify"
)

func init() {
	logger.Init("test")
}

type countingPruner struct{ calls atomic.Int32 }

func (p *countingPruner) Prune() int {
	p.calls.Add(1)
	return 0
}

func TestNotificationWorker_PrunesPeriodically(t *testing.T) {
	p := &countingPruner{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewNotificationWorker(p, 5*time.Millisecond).Start(ctx)
	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestNotificationWorker_DismissesExpired(t *testing.T) {
	center := notify.NewCenter(10 * time.Millisecond)
	center.Success("Student added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	NewNotificationWorker(center, 5*time.Millisecond).Start(ctx)

	assert.Eventually(t, func() bool { return len(center.Active()) == 0 && center.Prune() == 0 }, time.Second, 5*time.Millisecond)
}
