package engine

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/orrery/internal/config"
	"github.com/tomz197/orrery/internal/input"
)

// SessionOptions configures an interactive session.
type SessionOptions struct {
	TermSizeFunc  func() (int, int, error)
	Presets       config.Presets
	FPS           int
	Seed          int64
	Variant       int  // Initial variant index, 0-based
	ReducedMotion bool // Initial reduced-motion preference
}

// Session binds terminal input to a runner: variant switching, visibility
// pausing, the reduced-motion toggle, and quit.
type Session struct {
	runner     *Runner
	stream     *input.Stream
	visibility *WatchSignal
	motion     *WatchSignal
	presets    config.Presets
	seed       int64
	variant    int
}

// NewSession wires a runner to the reader's input stream. The visibility
// and reduced-motion signals are both interactive: space pauses, m toggles
// the motion preference.
func NewSession(r *bufio.Reader, w io.Writer, opts SessionOptions) *Session {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	s := &Session{
		stream:     input.StartStream(r),
		visibility: NewWatchSignal(true),
		motion:     NewWatchSignal(opts.ReducedMotion),
		presets:    opts.Presets,
		seed:       opts.Seed,
		variant:    opts.Variant,
	}

	s.runner = NewRunner(NewVariant(s.variant, s.presets, s.seed), Options{
		Writer:        w,
		TermSizeFunc:  opts.TermSizeFunc,
		Visibility:    s.visibility,
		ReducedMotion: s.motion,
		FPS:           opts.FPS,
		Seed:          opts.Seed,
	})
	return s
}

// Run starts the lifecycle and blocks, polling input, until the user quits
// or the stream closes. The runner is disposed before returning.
func (s *Session) Run() error {
	s.runner.Observe()
	defer s.runner.Dispose()

	// Input polls at a fixed cadence independent of the frame loop, so a
	// suspended animation still reacts to resume and quit keys.
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		for _, ev := range s.stream.Poll() {
			switch ev.Key {
			case input.KeyQuit:
				return nil
			case input.KeyPause:
				s.visibility.Toggle()
			case input.KeyMotion:
				s.motion.Toggle()
			case input.KeyNext:
				s.selectVariant(s.variant + 1)
			case input.KeyVariant:
				if ev.Variant <= len(VariantNames) {
					s.selectVariant(ev.Variant - 1)
				}
			}
		}
	}
	return nil
}

// selectVariant swaps to the variant at idx (wrapping).
func (s *Session) selectVariant(idx int) {
	idx = ((idx % len(VariantNames)) + len(VariantNames)) % len(VariantNames)
	if idx == s.variant {
		return
	}
	s.variant = idx
	s.runner.SwapAnimation(NewVariant(idx, s.presets, s.seed))
}

// Runner exposes the underlying runner, mainly for shutdown paths.
func (s *Session) Runner() *Runner { return s.runner }
