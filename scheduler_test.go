package tex2html

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func waitForCount(t *testing.T, count *int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(count) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("run count = %d, want %d", atomic.LoadInt32(count), want)
}

func TestSchedulerCoalescesBurst(t *testing.T) {
	t.Parallel()

	var count int32
	s := NewScheduler(50*time.Millisecond, func() { atomic.AddInt32(&count, 1) })
	defer s.Close()

	// A burst of edits inside one quiet interval triggers a single compile.
	s.Notify()
	s.Notify()
	s.Notify()

	waitForCount(t, &count, 1)

	// And nothing further once the burst has settled.
	time.Sleep(150 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 1 {
		t.Errorf("run count after settle = %d, want 1", got)
	}
}

func TestSchedulerEditRestartsQuietInterval(t *testing.T) {
	t.Parallel()

	var count int32
	s := NewScheduler(200*time.Millisecond, func() { atomic.AddInt32(&count, 1) })
	defer s.Close()

	// Keep editing faster than the quiet interval: no run may start.
	for i := 0; i < 3; i++ {
		s.Notify()
		time.Sleep(60 * time.Millisecond)
	}
	if got := atomic.LoadInt32(&count); got != 0 {
		t.Fatalf("compile ran while edits were still arriving (count = %d)", got)
	}

	waitForCount(t, &count, 1)
}

func TestSchedulerQueuesOneRunWhileInFlight(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var count int32
	s := NewScheduler(20*time.Millisecond, func() {
		if atomic.AddInt32(&count, 1) == 1 {
			started <- struct{}{}
			<-release
		}
	})

	s.Notify()
	<-started // first compile is in flight and blocked

	// Several edits during the in-flight compile queue exactly one follow-up.
	s.Notify()
	s.Notify()
	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 1 {
		t.Fatalf("second compile overlapped the first (count = %d)", got)
	}

	close(release)
	waitForCount(t, &count, 2)

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 2 {
		t.Errorf("queued edits should coalesce to one rerun (count = %d)", got)
	}
	s.Close()
}

func TestSchedulerCloseCancelsPending(t *testing.T) {
	t.Parallel()

	var count int32
	s := NewScheduler(100*time.Millisecond, func() { atomic.AddInt32(&count, 1) })

	s.Notify()
	s.Close()

	time.Sleep(250 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 0 {
		t.Errorf("pending run should be cancelled by Close (count = %d)", got)
	}

	// Notify after Close is a no-op.
	s.Notify()
	time.Sleep(150 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 0 {
		t.Errorf("Notify after Close scheduled a run (count = %d)", got)
	}
}

func TestSchedulerNilRunPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("NewScheduler(nil run) should panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNilCompileCallback) {
			t.Errorf("panic value = %v, want ErrNilCompileCallback", r)
		}
	}()
	NewScheduler(time.Second, nil)
}

func TestSchedulerDefaultQuietInterval(t *testing.T) {
	t.Parallel()

	var count int32
	s := NewScheduler(0, func() { atomic.AddInt32(&count, 1) })
	defer s.Close()

	s.Notify()
	waitForCount(t, &count, 1)
}
