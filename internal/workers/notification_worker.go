package workers

import (
	"context"
	"time"

	"internship_admin/internal/logger"
)

// Pruner drops expired notifications.
type Pruner interface {
	Prune() int
}

type NotificationWorker struct {
	center   Pruner
	interval time.Duration
}

func NewNotificationWorker(center Pruner, interval time.Duration) *NotificationWorker {
	if interval <= 0 {
		interval = time.Second
	}
	return &NotificationWorker{center: center, interval: interval}
}

// Start запускает фоновую очистку уведомлений
func (w *NotificationWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *NotificationWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("notifications", "stopped", nil)
			return
		case <-ticker.C:
			if n := w.center.Prune(); n > 0 {
				logger.Debug("Expired notifications dismissed", "count", n)
			}
		}
	}
}
