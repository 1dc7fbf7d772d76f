// Package engine owns the per-frame loop of one animation instance: the
// lifecycle state machine that gates it on visibility and the
// reduced-motion preference, the frame scheduler, and the runner that
// drives update, projection and drawing each frame.
package engine

import (
	"sync"
	"time"
)

// State is the lifecycle phase of one animation instance.
type State int

const (
	StateUninitialized State = iota
	StateObserving           // Watching signals, loop not yet started
	StateAnimating           // Frame loop running
	StateSuspended           // Invisible or motion-reduced; loop cancelled
	StateDisposed            // Unmounted; everything released
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateObserving:
		return "observing"
	case StateAnimating:
		return "animating"
	case StateSuspended:
		return "suspended"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Hooks are the controller's callbacks into the owning runner. All three
// run serialized under the controller lock, so together with the frame
// callback they form a single logical writer.
type Hooks struct {
	// Init builds geometry and seeds populations. Runs on every
	// transition into Animating, since Clear runs on every transition
	// out of it.
	Init func()
	// Frame advances and draws one frame. dt is wall-clock milliseconds
	// since the previous frame.
	Frame func(dt float64)
	// Clear releases entity arrays so they are reclaimable while
	// suspended or disposed.
	Clear func()
}

// maxFrameDelta caps dt across stalls (suspension, SIGSTOP, slow remote)
// so one late frame doesn't teleport everything.
const maxFrameDelta = 250.0 // ms

// Controller is the visibility and lifecycle state machine. It holds at
// most one pending frame request at any time; suspend/resume cycles never
// double-schedule, and disposal cancels at most once.
type Controller struct {
	mu    sync.Mutex
	state State

	sched   *FrameScheduler
	pending *FrameRequest

	visibility Signal
	motion     Signal // true = reduce motion
	unsubVis   func()
	unsubMot   func()

	hooks     Hooks
	lastFrame time.Time
}

// NewController creates a controller in StateUninitialized.
func NewController(sched *FrameScheduler, visibility, reducedMotion Signal, hooks Hooks) *Controller {
	return &Controller{
		state:      StateUninitialized,
		sched:      sched,
		visibility: visibility,
		motion:     reducedMotion,
		hooks:      hooks,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Observe transitions Uninitialized → Observing: registers both signal
// watchers, then starts animating immediately if conditions are already
// favorable. With the reduced-motion preference active at mount, no frame
// is ever scheduled.
func (c *Controller) Observe() {
	c.mu.Lock()
	if c.state != StateUninitialized {
		c.mu.Unlock()
		return
	}
	c.state = StateObserving
	c.mu.Unlock()

	// Subscriptions are registered exactly once and removed exactly once
	// in Dispose. Stored under the lock so a concurrent Dispose either
	// sees both handles or unwinds them here.
	unsubVis := c.visibility.Subscribe(func(bool) { c.evaluate() })
	unsubMot := c.motion.Subscribe(func(bool) { c.evaluate() })

	c.mu.Lock()
	if c.state == StateDisposed {
		c.mu.Unlock()
		unsubVis()
		unsubMot()
		return
	}
	c.unsubVis, c.unsubMot = unsubVis, unsubMot
	c.mu.Unlock()

	c.evaluate()
}

// evaluate applies the current signal values to the state machine.
func (c *Controller) evaluate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	favorable := c.visibility.Current() && !c.motion.Current()

	switch c.state {
	case StateObserving, StateSuspended:
		if favorable {
			c.state = StateAnimating
			if c.hooks.Init != nil {
				c.hooks.Init()
			}
			c.lastFrame = time.Now()
			c.scheduleLocked()
		}
	case StateAnimating:
		if !favorable {
			c.suspendLocked()
		}
	}
}

// scheduleLocked requests the next frame. Caller holds c.mu.
// The single-pending-request invariant lives here.
func (c *Controller) scheduleLocked() {
	if c.pending != nil {
		return
	}
	c.pending = c.sched.Schedule(c.frame)
}

// suspendLocked cancels the pending frame and clears entities. The signal
// watchers stay registered so a favorable change resumes the loop.
func (c *Controller) suspendLocked() {
	c.state = StateSuspended
	c.pending.Cancel()
	c.pending = nil
	if c.hooks.Clear != nil {
		c.hooks.Clear()
	}
}

// frame is the per-frame callback. State mutation happens synchronously
// here: update precedes projection precedes draw, all inside one hook.
func (c *Controller) frame(req *FrameRequest, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A suspend+resume pair can barge the mutex between the timer firing
	// and this lock. The stale callback's request is then cancelled or no
	// longer the pending one; honoring it would start a second frame
	// chain. Cancel only runs under c.mu, so these reads are stable here.
	if req.Cancelled() || req != c.pending {
		return
	}
	if c.state != StateAnimating {
		return
	}
	c.pending = nil

	dt := float64(now.Sub(c.lastFrame).Microseconds()) / 1000.0
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	c.lastFrame = now

	if c.hooks.Frame != nil {
		c.hooks.Frame(dt)
	}

	if c.state == StateAnimating {
		c.scheduleLocked()
	}
}

// Dispose transitions to Disposed: cancels any pending frame exactly once,
// unregisters both signal watchers, and clears entity arrays. Idempotent;
// resize-triggered cleanup followed by unmount must not error.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.state == StateDisposed {
		c.mu.Unlock()
		return
	}
	c.state = StateDisposed
	c.pending.Cancel()
	c.pending = nil
	if c.hooks.Clear != nil {
		c.hooks.Clear()
	}
	unsubVis, unsubMot := c.unsubVis, c.unsubMot
	c.unsubVis, c.unsubMot = nil, nil
	c.mu.Unlock()

	if unsubVis != nil {
		unsubVis()
	}
	if unsubMot != nil {
		unsubMot()
	}
}
