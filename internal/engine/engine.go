package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/tomz197/orrery/internal/animation"
	"github.com/tomz197/orrery/internal/config"
	"github.com/tomz197/orrery/internal/draw"
	"github.com/tomz197/orrery/internal/scene"
)

// Maximum render area. Larger terminals get a centered, bordered canvas
// instead of stretching the scene across the whole screen.
const (
	maxRenderWidth  = 240
	maxRenderHeight = 64
)

// captionMillis is how long the variant name stays overlaid after the
// loop starts or the variant switches.
const captionMillis = 2500.0

// Options configures a Runner.
type Options struct {
	// Writer receives rendered frames. A nil writer makes the runner a
	// no-op: the lifecycle still transitions, nothing is drawn.
	Writer io.Writer

	// TermSizeFunc reports the host terminal size each frame. Defaults to
	// draw.DefaultTermSizeFunc.
	TermSizeFunc draw.TermSizeFunc

	// Visibility gates the frame loop. Defaults to always-visible.
	Visibility Signal

	// ReducedMotion suspends the loop while true. Defaults to off.
	ReducedMotion Signal

	FPS  int
	Seed int64
}

// Runner drives one animation variant: it owns the canvas and output
// writer, tracks terminal size through the viewport, keeps the background
// star field, and hands the per-frame hooks to a lifecycle controller.
type Runner struct {
	anim animation.Animation
	ctrl *Controller

	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	writer   io.Writer
	termSize draw.TermSizeFunc

	viewport *scene.Viewport
	stars    []scene.Star
	starRng  *rand.Rand
	seed     int64
	elapsed  float64
	bordered bool

	captionLeft float64 // Remaining caption display time in ms
}

// NewRunner creates a runner for the given animation. Call Observe to
// start watching the gating signals, Frame-driven work begins as soon as
// they are favorable.
func NewRunner(anim animation.Animation, opts Options) *Runner {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Visibility == nil {
		opts.Visibility = StaticSignal(true)
	}
	if opts.ReducedMotion == nil {
		opts.ReducedMotion = StaticSignal(false)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	r := &Runner{
		anim:     anim,
		writer:   opts.Writer,
		termSize: opts.TermSizeFunc,
		seed:     opts.Seed,
		starRng:  rand.New(rand.NewSource(opts.Seed ^ 0x5747)),
	}
	r.viewport = scene.NewViewport(r.reseed)

	if r.writer != nil {
		r.canvas = draw.NewCanvas(1, 1)
		r.cw = draw.NewChunkWriter(r.writer, 0, 0)
	}

	r.ctrl = NewController(NewFrameScheduler(opts.FPS), opts.Visibility, opts.ReducedMotion, Hooks{
		Init:  r.init,
		Frame: r.frame,
		Clear: r.clear,
	})
	return r
}

// Observe starts lifecycle observation. With favorable signals the frame
// loop begins immediately; with the reduced-motion preference set at this
// point, no frame ever runs.
func (r *Runner) Observe() {
	if r.writer != nil {
		draw.HideCursor(r.writer)
		draw.ClearScreen(r.writer)
	}
	r.ctrl.Observe()
}

// Dispose tears the runner down. Idempotent.
func (r *Runner) Dispose() {
	r.ctrl.Dispose()
	if r.writer != nil {
		draw.ClearScreen(r.writer)
		draw.ShowCursor(r.writer)
	}
}

// State exposes the lifecycle state.
func (r *Runner) State() State { return r.ctrl.State() }

// Animation returns the current variant.
func (r *Runner) Animation() animation.Animation {
	r.ctrl.mu.Lock()
	defer r.ctrl.mu.Unlock()
	return r.anim
}

// SwapAnimation replaces the running variant. The old variant's entities
// are released; the new one initializes against the current geometry.
// Runs under the controller lock so it never races a frame.
func (r *Runner) SwapAnimation(next animation.Animation) {
	r.ctrl.mu.Lock()
	defer r.ctrl.mu.Unlock()

	r.anim.Clear()
	r.anim = next
	r.elapsed = 0
	r.captionLeft = captionMillis
	if geom, ok := r.viewport.Geometry(); ok && r.ctrl.state == StateAnimating {
		r.anim.Init(geom)
	}
	if r.canvas != nil {
		r.canvas.ForceRedraw()
	}
}

// init derives geometry from the current terminal size and seeds
// populations. Runs on every transition into Animating.
func (r *Runner) init() {
	r.elapsed = 0
	r.captionLeft = captionMillis
	r.stars = nil
	r.syncSize()

	// A size change re-seeds via the viewport callback. An unchanged
	// size means the callback never fired, so seed against the retained
	// geometry here.
	if geom, ok := r.viewport.Geometry(); ok && r.stars == nil {
		r.reseed(geom)
	}
	if r.canvas != nil {
		r.canvas.ForceRedraw()
	}
}

// reseed is the viewport callback: fresh stars, fresh animation entities.
func (r *Runner) reseed(geom scene.Geometry) {
	r.stars = scene.SeedStars(r.starRng, geom)
	r.anim.Init(geom)
}

// frame advances and draws one frame. dt is milliseconds.
func (r *Runner) frame(dt float64) {
	r.syncSize()
	geom, ok := r.viewport.Geometry()
	if !ok {
		return
	}

	r.elapsed += dt
	r.anim.Update(dt)

	if r.canvas == nil {
		return
	}

	r.canvas.Clear()
	scene.DrawStars(r.canvas, r.stars, r.elapsed)
	r.anim.Draw(animation.Frame{Canvas: r.canvas, Geom: geom, Elapsed: r.elapsed})

	if r.bordered {
		r.canvas.RenderBorder(r.cw)
	}
	r.canvas.Render(r.cw)
	if r.captionLeft > 0 {
		r.captionLeft -= dt
		r.drawCaption()
	}
	r.cw.Flush()
}

// drawCaption overlays the variant name in the top-left corner. The
// covered cells are invalidated in the differential cache so the canvas
// repaints them once the caption expires.
func (r *Runner) drawCaption() {
	label := r.anim.Name()
	r.cw.WriteAt(2, 1, draw.ColorDim+label+draw.ColorReset)
	r.canvas.MarkTextDirty(2+r.canvas.OffsetCol(), 1+r.canvas.OffsetRow(), len(label))
}

// clear releases per-run state on suspend and dispose.
func (r *Runner) clear() {
	r.anim.Clear()
	r.stars = nil
}

// syncSize polls the terminal size and applies it to the canvas and
// viewport. A failed probe, or a zero-area terminal, keeps the previous
// geometry.
func (r *Runner) syncSize() {
	termW, termH, err := r.termSize()
	if err != nil || termW <= 0 || termH <= 0 {
		return
	}

	renderW, renderH := termW, termH
	r.bordered = false
	if renderW > maxRenderWidth {
		renderW = maxRenderWidth
		r.bordered = true
	}
	if renderH > maxRenderHeight {
		renderH = maxRenderHeight
		r.bordered = true
	}

	if r.canvas != nil {
		r.canvas.Resize(renderW, renderH)
		offCol := (termW - renderW) / 2
		offRow := (termH - renderH) / 2
		r.canvas.SetOffset(offCol, offRow)
		r.cw.SetOffset(offCol, offRow)
	}

	if r.viewport.Resize(renderW, renderH) && r.writer != nil {
		draw.ClearScreen(r.writer)
	}
}

// VariantNames lists the animation variants in selection order.
var VariantNames = []string{
	"ringed planet",
	"solar system",
	"asteroid belt",
	"comet",
	"black hole",
}

// NewVariant builds the animation variant at the given index (0-based,
// wrapping) from the preset set.
func NewVariant(idx int, presets config.Presets, seed int64) animation.Animation {
	switch ((idx % len(VariantNames)) + len(VariantNames)) % len(VariantNames) {
	case 0:
		return animation.NewRingedPlanet(presets.RingedPlanet, seed)
	case 1:
		return animation.NewSolarSystem(presets.SolarSystem, seed)
	case 2:
		return animation.NewAsteroidBelt(presets.AsteroidBelt, seed)
	case 3:
		return animation.NewComet(presets.Comet, seed)
	default:
		return animation.NewBlackHole(presets.BlackHole, seed)
	}
}
