package tracking

import (
	"fmt"
	"go.uber.org/zap"
	"sync/atomic"
	"time"
)

// Worker runs periodic check cycles and prints triggered notifications to
// stdout for the external messaging relay to pick up.
type Worker struct {
	logger *zap.Logger
	engine *Engine
	busy   atomic.Bool
}

func NewWorker(logger *zap.Logger, engine *Engine) *Worker {
	return &Worker{
		logger: logger,
		engine: engine,
	}
}

func (w *Worker) Schedule() string {
	return "*/30 * * * *"
}

func (w *Worker) Ready(time.Time) bool {
	return !w.busy.Load()
}

func (w *Worker) Execute() {
	if !w.busy.CompareAndSwap(false, true) {
		return
	}
	defer w.busy.Store(false)

	w.logger.Info("Starting package check cycle.")

	updates, err := w.engine.CheckUpdates(0)
	if err != nil {
		w.logger.Error("Check cycle failed", zap.Error(err))
		return
	}

	if len(updates) == 0 {
		w.logger.Info("No package updates found. Check cycle completed 😴")
		return
	}

	for _, update := range updates {
		w.logger.Info("Package update",
			zap.String("tracking_number", update.TrackingNumber),
			zap.String("old_status", update.OldStatus),
			zap.String("new_status", update.NewStatus),
			zap.Int("new_events", update.NewEventsCount),
		)
		fmt.Println(FormatNotification(update))
	}

	w.logger.Info(fmt.Sprintf("Check cycle completed with %d update(s) 😴", len(updates)))
}
