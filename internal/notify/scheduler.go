package notify

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs the due-date check on a fixed interval.
type Scheduler struct {
	mu         sync.RWMutex
	dispatcher *Dispatcher
	interval   time.Duration
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewScheduler creates a due-check scheduler. interval is normally 24h.
func NewScheduler(dispatcher *Dispatcher, interval time.Duration) *Scheduler {
	return &Scheduler{
		dispatcher: dispatcher,
		interval:   interval,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.dispatcher.CheckDue()
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
