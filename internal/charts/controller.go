// Package charts renders a historical series followed by its forecast, with
// a progressive reveal animation and pointer hover inspection.
package charts

import (
	"errors"
	"fmt"

	"forecastchart/internal/format"
	"forecastchart/internal/frames"
	"forecastchart/internal/logger"
	"forecastchart/internal/metrics"
	"forecastchart/internal/models"
	"forecastchart/internal/surface"
)

// ErrNoState is returned when drawing before any chart state was set
var ErrNoState = errors.New("no chart state to draw")

// FrameInfo describes a frame that has just been drawn
type FrameInfo struct {
	Canvas    Canvas
	Animated  bool
	Progress  float64
	Highlight int
}

// Options configures a Controller
type Options struct {
	Canvas        Canvas
	AnimationStep float64
	TooltipOffset float64
	Theme         *Theme
	Format        func(float64) string
	Logger        *logger.Logger
	Metrics       *metrics.Metrics
	// AfterFrame, when set, is called after every frame is drawn
	AfterFrame func(FrameInfo)
}

// Controller owns the current chart state and coordinates rendering,
// animation and interaction on a single host thread.
type Controller struct {
	canvas      Canvas
	state       *models.ChartState
	pipeline    *Pipeline
	scheduler   *Scheduler
	interaction *Interaction
	afterFrame  func(FrameInfo)
	log         *logger.Logger
}

// NewController wires a controller to the host's surface, refresh callbacks
// and tooltip overlay.
func NewController(s surface.Surface, req frames.Requester, tooltips TooltipSink, opts Options) *Controller {
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	if opts.Format == nil {
		opts.Format = format.Currency
	}
	if opts.TooltipOffset == 0 {
		opts.TooltipOffset = DefaultTooltipOffset
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	c := &Controller{
		canvas:     opts.Canvas,
		pipeline:   NewPipeline(s, theme, opts.Format, opts.Metrics),
		afterFrame: opts.AfterFrame,
		log:        opts.Logger.WithComponent("chart"),
	}
	c.scheduler = NewScheduler(req, opts.AnimationStep, c.drawAnimated, c.drawFinal,
		opts.Logger.WithComponent("animation"), opts.Metrics)
	c.interaction = newInteraction(c, tooltips, opts.TooltipOffset, opts.Format, opts.Metrics)
	return c
}

// SetState validates and replaces the chart state. The old state is
// discarded, never patched, along with any highlight and tooltip on it.
func (c *Controller) SetState(state *models.ChartState) error {
	if err := state.Validate(); err != nil {
		c.log.Error("rejected chart state", err)
		return fmt.Errorf("failed to set chart state: %w", err)
	}
	replaced := c.state != nil
	c.state = state
	if replaced {
		c.interaction.reset()
	}
	c.log.Info("chart state replaced", logger.Fields{
		"label":      state.Label,
		"model":      state.ModelName,
		"historical": len(state.Historical),
		"forecast":   len(state.Forecast),
	})
	return nil
}

// State returns the current chart state
func (c *Controller) State() *models.ChartState {
	return c.state
}

// Canvas returns the current canvas metrics
func (c *Controller) Canvas() Canvas {
	return c.canvas
}

// Mapper returns the coordinate mapper for the current state and canvas
func (c *Controller) Mapper() Mapper {
	return MapperFor(c.canvas, c.state)
}

// Animating reports whether the reveal animation is running
func (c *Controller) Animating() bool {
	return c.scheduler.Running()
}

// Scheduler exposes the animation scheduler
func (c *Controller) Scheduler() *Scheduler {
	return c.scheduler
}

// Interaction exposes the pointer interaction layer
func (c *Controller) Interaction() *Interaction {
	return c.interaction
}

// Draw renders the chart. With animate the reveal animation starts and
// highlight is ignored; otherwise a running animation is cancelled and a
// static frame is drawn immediately.
func (c *Controller) Draw(animate bool, highlight int) error {
	if c.state == nil {
		return ErrNoState
	}
	if animate {
		c.interaction.reset()
		c.scheduler.Start()
		return nil
	}
	c.scheduler.Cancel()
	c.redraw(highlight)
	return nil
}

// Resize updates the canvas size. A running animation is cancelled and
// replaced by a static frame at the new size.
func (c *Controller) Resize(width, height float64) {
	c.canvas.Width = width
	c.canvas.Height = height
	c.log.Debug("canvas resized", logger.Fields{"width": width, "height": height})

	if c.scheduler.Cancel() {
		c.redraw(NoHighlight)
	}
}

// PointerMove handles a pointer move in surface coordinates
func (c *Controller) PointerMove(x, y float64) {
	c.interaction.Move(x)
}

// PointerLeave handles the pointer leaving the surface
func (c *Controller) PointerLeave() {
	c.interaction.Leave()
}

func (c *Controller) redraw(highlight int) {
	if c.pipeline.Render(StaticFrame(c.canvas, c.state, highlight)) {
		c.notify(FrameInfo{Canvas: c.canvas, Progress: 1, Highlight: highlight})
	}
}

func (c *Controller) drawAnimated(r Reveal) {
	if c.pipeline.Render(AnimatedFrame(c.canvas, c.state, r)) {
		c.notify(FrameInfo{Canvas: c.canvas, Animated: true, Progress: c.scheduler.Progress(), Highlight: NoHighlight})
	}
}

func (c *Controller) drawFinal() {
	c.redraw(NoHighlight)
}

func (c *Controller) notify(info FrameInfo) {
	if c.afterFrame != nil {
		c.afterFrame(info)
	}
}
