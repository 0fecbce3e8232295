package harvest

import (
	"context"
	"sync"
	"time"
)

// DefaultScrollWindow coalesces bursts of scroll events into one scan.
const DefaultScrollWindow = 500 * time.Millisecond

// Scheduler is a debounced task queue that runs one task at a time.
//
// Requests made while a run is pending collapse into that run. Scroll
// requests are ignored for an unchanged position and otherwise fire once the
// position has been stable for the window.
type Scheduler struct {
	window  time.Duration
	task    func(ctx context.Context)
	pending chan struct{}

	mu         sync.Mutex
	timer      *time.Timer
	lastScroll int
	scrolled   bool
	stopped    bool
}

// NewScheduler creates a Scheduler running task.
func NewScheduler(window time.Duration, task func(ctx context.Context)) *Scheduler {
	return &Scheduler{
		window:  window,
		task:    task,
		pending: make(chan struct{}, 1),
	}
}

// Request queues a run unless one is already queued.
func (s *Scheduler) Request() {
	select {
	case s.pending <- struct{}{}:
	default:
	}
}

// RequestScroll queues a run for scroll position y after the window elapses
// without another scroll. It reports false when y equals the previous
// position and nothing was scheduled.
func (s *Scheduler) RequestScroll(y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || (s.scrolled && y == s.lastScroll) {
		return false
	}
	s.lastScroll, s.scrolled = y, true

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, s.Request)
	return true
}

// Run executes queued runs until ctx is done. Runs never overlap and a run
// in progress is not interrupted.
func (s *Scheduler) Run(ctx context.Context) {
	defer s.stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.pending:
			s.task(ctx)
		}
	}
}

func (s *Scheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
}
