package charts

import (
	"forecastchart/internal/frames"
	"forecastchart/internal/logger"
	"forecastchart/internal/metrics"
)

// DefaultAnimationStep is the progress added per refresh callback
const DefaultAnimationStep = 0.03

// AnimationState is the scheduler's lifecycle state
type AnimationState int

const (
	Idle AnimationState = iota
	Running
)

func (s AnimationState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Reveal holds the fraction of each series shown in an animated frame
type Reveal struct {
	Historical float64
	Forecast   float64
}

// PhaseReveal maps overall progress to per-series reveal fractions: the
// historical series fills during the first half, the forecast during the second.
func PhaseReveal(progress float64) Reveal {
	switch {
	case progress <= 0:
		return Reveal{}
	case progress <= 0.5:
		return Reveal{Historical: progress * 2}
	case progress < 1:
		return Reveal{Historical: 1, Forecast: (progress - 0.5) * 2}
	default:
		return Reveal{Historical: 1, Forecast: 1}
	}
}

// Scheduler drives the two-phase reveal animation, one step per refresh
// callback. Progress is frame counted, so duration follows the refresh rate.
//
// Start while Running aborts the in-flight loop and restarts from zero, so
// at most one loop is ever active and every run terminates.
type Scheduler struct {
	frames  frames.Requester
	step    float64
	animate func(Reveal)
	finish  func()
	log     *logger.Logger
	metrics *metrics.Metrics

	state   AnimationState
	steps   int
	pending frames.ID
	run     uint64
}

// NewScheduler creates a scheduler. animate draws one animated frame and
// finish draws the final static frame. Steps outside (0, 1] fall back to
// DefaultAnimationStep.
func NewScheduler(req frames.Requester, step float64, animate func(Reveal), finish func(), log *logger.Logger, m *metrics.Metrics) *Scheduler {
	if !(step > 0 && step <= 1) {
		step = DefaultAnimationStep
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Scheduler{
		frames:  req,
		step:    step,
		animate: animate,
		finish:  finish,
		log:     log,
		metrics: m,
	}
}

// State returns the current lifecycle state
func (s *Scheduler) State() AnimationState {
	return s.state
}

// Running reports whether an animation is in flight
func (s *Scheduler) Running() bool {
	return s.state == Running
}

// Progress returns the accumulated progress of the current or last run
func (s *Scheduler) Progress() float64 {
	return float64(s.steps) * s.step
}

// Steps returns the refresh callbacks consumed by the current or last run
func (s *Scheduler) Steps() int {
	return s.steps
}

// Start begins a run at progress zero, aborting any run in flight
func (s *Scheduler) Start() {
	if s.state == Running {
		s.frames.CancelFrame(s.pending)
		s.metrics.AnimationEvent(metrics.RunRestarted)
		s.log.Debug("restarting reveal animation", logger.Fields{"aborted_at": s.Progress()})
	} else {
		s.metrics.AnimationEvent(metrics.RunStarted)
		s.log.Debug("starting reveal animation", logger.Fields{"step": s.step})
	}

	s.run++
	s.steps = 0
	s.state = Running
	s.schedule()
}

// Cancel stops a run in flight without drawing a final frame. It reports
// whether a run was cancelled.
func (s *Scheduler) Cancel() bool {
	if s.state != Running {
		return false
	}
	s.frames.CancelFrame(s.pending)
	s.run++
	s.state = Idle
	s.metrics.AnimationEvent(metrics.RunCancelled)
	s.log.Debug("cancelled reveal animation", logger.Fields{"progress": s.Progress()})
	return true
}

func (s *Scheduler) schedule() {
	run := s.run
	s.pending = s.frames.RequestFrame(func() {
		// hosts that cannot cancel may still deliver callbacks of an aborted run
		if run != s.run || s.state != Running {
			return
		}
		s.tick()
	})
}

func (s *Scheduler) tick() {
	s.steps++
	progress := s.Progress()

	if progress >= 1 {
		s.state = Idle
		s.finish()
		s.metrics.AnimationFinished(s.steps)
		s.log.Debug("reveal animation finished", logger.Fields{"steps": s.steps})
		return
	}

	s.animate(PhaseReveal(progress))
	s.schedule()
}
