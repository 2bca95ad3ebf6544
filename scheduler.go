package tex2html

import (
	"sync"
	"time"
)

// DefaultQuietInterval is the edit-settle delay before a scheduled compile
// runs.
const DefaultQuietInterval = 300 * time.Millisecond

// Scheduler debounces compile requests from a continuously-editing caller.
//
// Contract: a pending compile is scheduled after a fixed quiet interval with
// no further edits; an edit arriving inside the interval restarts it. At
// most one compile is ever in flight, and a started compile always runs to
// completion before any new run begins. An edit arriving while a compile is
// in flight queues exactly one follow-up run.
type Scheduler struct {
	quiet time.Duration
	run   func()

	mu       sync.Mutex
	timer    *time.Timer
	inflight bool
	pending  bool
	closed   bool
	wg       sync.WaitGroup
}

// NewScheduler creates a Scheduler invoking run after each quiet interval.
// A non-positive quiet interval falls back to DefaultQuietInterval; a nil
// run panics (programming error, same as a nil http.HandlerFunc).
func NewScheduler(quiet time.Duration, run func()) *Scheduler {
	if run == nil {
		panic(ErrNilCompileCallback)
	}
	if quiet <= 0 {
		quiet = DefaultQuietInterval
	}
	return &Scheduler{quiet: quiet, run: run}
}

// Notify records an edit: it cancels any pending run and restarts the quiet
// interval. Safe for concurrent use.
func (s *Scheduler) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, s.fire)
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.inflight {
		// A pass is running; remember that another is wanted. The running
		// pass reschedules on completion, so no result is ever published
		// half-finished or interleaved.
		s.pending = true
		s.mu.Unlock()
		return
	}
	s.inflight = true
	s.wg.Add(1)
	s.mu.Unlock()

	s.run()

	s.mu.Lock()
	s.inflight = false
	rerun := s.pending && !s.closed
	s.pending = false
	s.mu.Unlock()
	s.wg.Done()

	if rerun {
		s.Notify()
	}
}

// Flush blocks until any in-flight compile has completed. It does not wait
// for a pending (not yet started) run.
func (s *Scheduler) Flush() {
	s.wg.Wait()
}

// Close cancels any pending run and prevents new ones. An in-flight compile
// still runs to completion.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}
