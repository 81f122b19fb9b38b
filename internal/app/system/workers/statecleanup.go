// internal/app/system/workers/statecleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	oauthstatestore "github.com/vedamschool/dsahub/internal/app/store/oauthstate"
)

// StateCleanup is a background worker that removes expired OAuth state
// tokens. MongoDB's TTL monitor only runs every minute and can lag under
// load, so this keeps abandoned flows from accumulating.
type StateCleanup struct {
	states   *oauthstatestore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewStateCleanup creates the worker. interval controls how often the
// sweep runs; an hour is plenty.
func NewStateCleanup(states *oauthstatestore.Store, logger *zap.Logger, interval time.Duration) *StateCleanup {
	return &StateCleanup{
		states:   states,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *StateCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("oauth state cleanup worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *StateCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("oauth state cleanup worker stopped")
}

func (w *StateCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *StateCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.states.CleanupExpired(ctx)
	if err != nil {
		w.log.Error("failed to clean up oauth states", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("removed expired oauth states", zap.Int64("count", count))
	}
}
