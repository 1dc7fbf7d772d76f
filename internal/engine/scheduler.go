package engine

import (
	"sync/atomic"
	"time"
)

// DefaultFPS is the target frame cadence when none is configured.
const DefaultFPS = 30

// FrameScheduler issues "run again after this frame" requests. Each
// request fires once; the controller re-requests at the end of every frame
// rather than running a fixed-rate ticker, so a slow frame delays the next
// instead of stacking callbacks.
type FrameScheduler struct {
	interval time.Duration
}

// NewFrameScheduler creates a scheduler targeting the given frame rate.
func NewFrameScheduler(fps int) *FrameScheduler {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &FrameScheduler{interval: time.Second / time.Duration(fps)}
}

// Interval returns the frame interval.
func (s *FrameScheduler) Interval() time.Duration { return s.interval }

// Schedule requests one callback after the frame interval and returns its
// cancellation handle. The callback receives its own request so it can
// recognize itself as stale: a fired timer may lose the lock race to a
// cancel+reschedule pair, and the pre-check here alone cannot catch that.
func (s *FrameScheduler) Schedule(fn func(req *FrameRequest, now time.Time)) *FrameRequest {
	r := &FrameRequest{}
	r.timer = time.AfterFunc(s.interval, func() {
		if r.cancelled.Load() {
			return
		}
		fn(r, time.Now())
	})
	return r
}

// FrameRequest is a pending frame callback. Cancel is synchronous and
// idempotent: both resize and unmount paths may cancel the same request.
type FrameRequest struct {
	timer     *time.Timer
	cancelled atomic.Bool
}

// Cancel stops the pending callback. Safe to call multiple times and on a
// nil request.
func (r *FrameRequest) Cancel() {
	if r == nil {
		return
	}
	if r.cancelled.CompareAndSwap(false, true) {
		r.timer.Stop()
	}
}

// Cancelled reports whether the request was cancelled.
func (r *FrameRequest) Cancelled() bool {
	return r != nil && r.cancelled.Load()
}
