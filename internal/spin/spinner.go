package spin

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// DefaultMessage prefixes every spinner line unless the caller overrides it.
const DefaultMessage = "Running: "

// Spinner is one animated progress line bound to one in-flight task.
//
// Usage:
//
//	s := spin.New("wiki_search")
//	s.Start()
//	// ... work ...
//	s.Stop(true)
type Spinner struct {
	mu      sync.Mutex
	label   string
	msg     string
	elapsed func() time.Duration
	display *Display
	ctrl    *Controller
	started bool
	stopped bool
	idx     int
	startAt time.Time
	handle  int
}

// Option customizes a Spinner.
type Option func(*Spinner)

// WithMessage sets the prefix shown before the label.
func WithMessage(msg string) Option {
	return func(s *Spinner) { s.msg = msg }
}

// WithElapsedFunc supplies an external elapsed-time source, used when the
// caller measures from its own earlier start instant rather than from
// spinner registration.
func WithElapsedFunc(fn func() time.Duration) Option {
	return func(s *Spinner) { s.elapsed = fn }
}

// WithDisplay routes the spinner's output through d instead of the default
// stdout display.
func WithDisplay(d *Display) Option {
	return func(s *Spinner) { s.display = d }
}

// WithController ticks the spinner from c instead of the default controller.
func WithController(c *Controller) Option {
	return func(s *Spinner) { s.ctrl = c }
}

// New creates a Spinner for the given label. The initial frame index is
// randomized so concurrent spinners don't pulse in lock-step.
func New(label string, opts ...Option) *Spinner {
	s := &Spinner{
		label: label,
		msg:   DefaultMessage,
		idx:   rand.Intn(len(frames)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.display == nil {
		s.display = Default()
	}
	if s.ctrl == nil {
		s.ctrl = DefaultController()
	}
	return s
}

// Start registers the spinner's line with the display and begins animating.
// Callers must not start a spinner twice.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.elapsed == nil {
		s.startAt = time.Now()
	}
	line := s.runningLine(frames[s.idx%len(frames)], formatElapsed(s.elapsedLocked()))
	s.idx++
	s.handle = s.display.Register(line)
	s.started = true
	s.mu.Unlock()
	s.ctrl.Add(s)
}

// tick advances one animation frame and pushes the refreshed line. Only the
// Controller calls this; it is a no-op once stopped or before Start.
func (s *Spinner) tick() {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	frame := frames[s.idx%len(frames)]
	s.idx++
	line := s.runningLine(frame, formatElapsed(s.elapsedLocked()))
	handle := s.handle
	s.mu.Unlock()
	s.display.Update(handle, line)
}

// Stop freezes the spinner with a success or failure icon and the elapsed
// time from its own clock. Only the first stop has any effect.
func (s *Spinner) Stop(success bool) {
	s.stop(success, 0, false)
}

// StopWithElapsed is Stop with a caller-measured duration, which takes
// precedence over the spinner's internal clock.
func (s *Spinner) StopWithElapsed(success bool, elapsed time.Duration) {
	s.stop(success, elapsed, true)
}

func (s *Spinner) stop(success bool, elapsed time.Duration, haveElapsed bool) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	if !haveElapsed {
		elapsed = s.elapsedLocked()
	}
	started := s.started
	handle := s.handle
	s.mu.Unlock()

	s.ctrl.Remove(s)
	if !started {
		return
	}

	icon := successStyle.Render(successIcon)
	if !success {
		icon = failureStyle.Render(failureIcon)
	}
	s.display.Update(handle, s.finalLine(icon, formatElapsed(elapsed)))
	s.display.Release(handle)
}

// elapsedLocked reads the current elapsed time. Callers must hold s.mu.
func (s *Spinner) elapsedLocked() time.Duration {
	if s.elapsed != nil {
		d := s.elapsed()
		if d < 0 {
			return 0
		}
		return d
	}
	if s.startAt.IsZero() {
		return 0
	}
	return time.Since(s.startAt)
}

func (s *Spinner) runningLine(frame, elapsed string) string {
	return prefixStyle.Render(s.msg) + labelStyle.Render(s.label) + " " +
		dimStyle.Render(frame+" ["+elapsed+"]")
}

func (s *Spinner) finalLine(icon, elapsed string) string {
	return prefixStyle.Render(s.msg) + labelStyle.Render(s.label) + " " +
		icon + " " + dimStyle.Render("["+elapsed+"]")
}

// formatElapsed renders a duration as MM:SS, or HH:MM:SS once an hour has
// passed. Negative durations clamp to zero.
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
