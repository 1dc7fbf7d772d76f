package engine

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// testFPS keeps the frame interval short enough that lifecycle tests can
// observe several frames within a few dozen milliseconds.
const testFPS = 200

type hookCounts struct {
	inits  atomic.Int32
	frames atomic.Int32
	clears atomic.Int32
}

func (h *hookCounts) hooks() Hooks {
	return Hooks{
		Init:  func() { h.inits.Add(1) },
		Frame: func(float64) { h.frames.Add(1) },
		Clear: func() { h.clears.Add(1) },
	}
}

func settle() { time.Sleep(60 * time.Millisecond) }

func TestObserveStartsWhenFavorable(t *testing.T) {
	var h hookCounts
	c := NewController(NewFrameScheduler(testFPS), StaticSignal(true), StaticSignal(false), h.hooks())
	defer c.Dispose()

	c.Observe()
	if got := c.State(); got != StateAnimating {
		t.Fatalf("state after Observe = %v, want animating", got)
	}
	if h.inits.Load() != 1 {
		t.Errorf("inits = %d, want 1", h.inits.Load())
	}

	settle()
	if h.frames.Load() == 0 {
		t.Error("no frames ran while animating")
	}
}

func TestReducedMotionAtMountSchedulesNothing(t *testing.T) {
	var h hookCounts
	c := NewController(NewFrameScheduler(testFPS), StaticSignal(true), StaticSignal(true), h.hooks())
	defer c.Dispose()

	c.Observe()
	if got := c.State(); got != StateObserving {
		t.Fatalf("state = %v, want observing", got)
	}

	settle()
	if h.frames.Load() != 0 {
		t.Errorf("%d frames ran with reduced motion set at mount, want 0", h.frames.Load())
	}
	if h.inits.Load() != 0 {
		t.Errorf("inits = %d, want 0", h.inits.Load())
	}
}

func TestHiddenAtMountWaitsForVisibility(t *testing.T) {
	var h hookCounts
	vis := NewWatchSignal(false)
	c := NewController(NewFrameScheduler(testFPS), vis, StaticSignal(false), h.hooks())
	defer c.Dispose()

	c.Observe()
	if got := c.State(); got != StateObserving {
		t.Fatalf("state = %v, want observing", got)
	}

	vis.Set(true)
	if got := c.State(); got != StateAnimating {
		t.Fatalf("state after becoming visible = %v, want animating", got)
	}
}

func TestSuspendAndResume(t *testing.T) {
	var h hookCounts
	vis := NewWatchSignal(true)
	c := NewController(NewFrameScheduler(testFPS), vis, StaticSignal(false), h.hooks())
	defer c.Dispose()

	c.Observe()
	settle()

	vis.Set(false)
	if got := c.State(); got != StateSuspended {
		t.Fatalf("state after hiding = %v, want suspended", got)
	}
	if h.clears.Load() != 1 {
		t.Errorf("clears = %d after suspend, want 1", h.clears.Load())
	}

	suspended := h.frames.Load()
	settle()
	if h.frames.Load() != suspended {
		t.Error("frames kept running while suspended")
	}

	vis.Set(true)
	if got := c.State(); got != StateAnimating {
		t.Fatalf("state after resume = %v, want animating", got)
	}
	if h.inits.Load() != 2 {
		t.Errorf("inits = %d after resume, want 2 (entities re-seed)", h.inits.Load())
	}

	settle()
	if h.frames.Load() == suspended {
		t.Error("no frames ran after resume")
	}
}

func TestRapidToggleKeepsSingleRequest(t *testing.T) {
	var h hookCounts
	vis := NewWatchSignal(true)
	c := NewController(NewFrameScheduler(testFPS), vis, StaticSignal(false), h.hooks())
	defer c.Dispose()

	c.Observe()
	for i := 0; i < 20; i++ {
		vis.Set(false)
		vis.Set(true)
	}

	// With one pending request the frame count is bounded by elapsed
	// time over the interval; double-scheduling would run well past it.
	start := h.frames.Load()
	wait := 100 * time.Millisecond
	time.Sleep(wait)
	ran := h.frames.Load() - start

	limit := int32(wait/NewFrameScheduler(testFPS).Interval()) + 2
	if ran > limit {
		t.Errorf("%d frames in %v, suggests stacked requests (limit %d)", ran, wait, limit)
	}
}

func TestStaleCallbackAfterBargedResumeBowsOut(t *testing.T) {
	var h hookCounts
	c := NewController(NewFrameScheduler(testFPS), StaticSignal(true), StaticSignal(false), h.hooks())
	defer c.Dispose()

	c.Observe()

	// Hold the lock past the frame interval so the fired timer callback
	// blocks on it, then suspend and resume before releasing. The stale
	// callback acquires the lock last; it must recognize its request as
	// superseded instead of starting a second frame chain.
	c.mu.Lock()
	time.Sleep(2 * c.sched.Interval())
	c.suspendLocked()
	c.state = StateAnimating
	c.lastFrame = time.Now()
	c.scheduleLocked()
	c.mu.Unlock()

	start := h.frames.Load()
	wait := 200 * time.Millisecond
	time.Sleep(wait)
	ran := h.frames.Load() - start

	// A second chain would roughly double the cadence.
	limit := int32(wait/c.sched.Interval()) + int32(wait/c.sched.Interval())/2
	if ran > limit {
		t.Errorf("%d frames in %v after barged resume, suggests two frame chains (limit %d)", ran, wait, limit)
	}
}

func TestDisposeIdempotent(t *testing.T) {
	var h hookCounts
	c := NewController(NewFrameScheduler(testFPS), StaticSignal(true), StaticSignal(false), h.hooks())

	c.Observe()
	c.Dispose()
	c.Dispose()
	c.Dispose()

	if got := c.State(); got != StateDisposed {
		t.Fatalf("state = %v, want disposed", got)
	}
	if h.clears.Load() != 1 {
		t.Errorf("clears = %d, want 1", h.clears.Load())
	}

	frames := h.frames.Load()
	settle()
	if h.frames.Load() != frames {
		t.Error("frames ran after disposal")
	}
}

func TestDisposeBeforeObserve(t *testing.T) {
	var h hookCounts
	c := NewController(NewFrameScheduler(testFPS), StaticSignal(true), StaticSignal(false), h.hooks())
	c.Dispose()
	if got := c.State(); got != StateDisposed {
		t.Fatalf("state = %v, want disposed", got)
	}
}

func TestObserveDisposeOverlap(t *testing.T) {
	// Exercised under the race detector: subscription handles must be
	// published under the controller lock so an overlapping Dispose
	// either unregisters them or Observe unwinds them itself.
	for i := 0; i < 50; i++ {
		var h hookCounts
		c := NewController(NewFrameScheduler(testFPS), StaticSignal(true), StaticSignal(false), h.hooks())

		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); c.Observe() }()
		go func() { defer wg.Done(); c.Dispose() }()
		wg.Wait()

		c.Dispose()
		if got := c.State(); got != StateDisposed {
			t.Fatalf("state = %v, want disposed", got)
		}
	}
}

func TestObserveAfterDisposeIsNoOp(t *testing.T) {
	var h hookCounts
	c := NewController(NewFrameScheduler(testFPS), StaticSignal(true), StaticSignal(false), h.hooks())
	c.Dispose()
	c.Observe()
	if got := c.State(); got != StateDisposed {
		t.Errorf("state = %v after Observe on disposed controller, want disposed", got)
	}
}

func TestFrameRequestCancelIdempotent(t *testing.T) {
	fired := atomic.Bool{}
	s := NewFrameScheduler(testFPS)
	r := s.Schedule(func(*FrameRequest, time.Time) { fired.Store(true) })

	r.Cancel()
	r.Cancel()
	if !r.Cancelled() {
		t.Error("request not marked cancelled")
	}

	time.Sleep(3 * s.Interval())
	if fired.Load() {
		t.Error("cancelled request still fired")
	}

	// Nil requests are safe to cancel (suspend before first schedule).
	var nilReq *FrameRequest
	nilReq.Cancel()
}

func TestSchedulerDefaultFPS(t *testing.T) {
	tests := []struct {
		name string
		fps  int
		want time.Duration
	}{
		{"explicit", 50, 20 * time.Millisecond},
		{"zero falls back", 0, time.Second / DefaultFPS},
		{"negative falls back", -3, time.Second / DefaultFPS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewFrameScheduler(tt.fps).Interval(); got != tt.want {
				t.Errorf("Interval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatchSignalNotifiesOnChangeOnly(t *testing.T) {
	s := NewWatchSignal(false)
	var count atomic.Int32
	unsub := s.Subscribe(func(bool) { count.Add(1) })

	s.Set(false) // No change
	s.Set(true)
	s.Set(true) // No change
	s.Set(false)
	if count.Load() != 2 {
		t.Errorf("notifications = %d, want 2", count.Load())
	}

	unsub()
	unsub() // Safe to call again
	s.Set(true)
	if count.Load() != 2 {
		t.Errorf("notified after unsubscribe, count = %d", count.Load())
	}
}

func TestWatchSignalToggle(t *testing.T) {
	s := NewWatchSignal(false)
	if !s.Toggle() || !s.Current() {
		t.Error("first toggle did not turn the signal on")
	}
	if s.Toggle() || s.Current() {
		t.Error("second toggle did not turn the signal off")
	}
}
