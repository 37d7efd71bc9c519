package spin

import (
	"sync"
	"time"

	"github.com/thruflo/whirl/internal/logging"
)

// DefaultInterval is the delay between animation frames.
const DefaultInterval = 80 * time.Millisecond

// Controller drives every active spinner from a single background
// goroutine. The goroutine starts lazily on the first Add, parks on a wake
// channel whenever the active set drains, and is never joined.
type Controller struct {
	mu       sync.Mutex
	interval time.Duration
	spinners map[*Spinner]struct{}
	wake     chan struct{}
	running  bool
}

// NewController creates a Controller ticking at the given interval, or
// DefaultInterval when zero.
func NewController(interval time.Duration) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Controller{
		interval: interval,
		spinners: make(map[*Spinner]struct{}),
		wake:     make(chan struct{}, 1),
	}
}

var (
	defaultCtrl     *Controller
	defaultCtrlOnce sync.Once
)

// DefaultController returns the process-wide Controller.
func DefaultController() *Controller {
	defaultCtrlOnce.Do(func() {
		defaultCtrl = NewController(0)
	})
	return defaultCtrl
}

// Add registers a spinner for ticking, lazily starting the render goroutine
// and waking it if parked.
func (c *Controller) Add(s *Spinner) {
	c.mu.Lock()
	c.spinners[s] = struct{}{}
	if !c.running {
		c.running = true
		go c.run()
	}
	c.mu.Unlock()
	c.signal()
}

// Remove drops a spinner from the active set. When the set drains, the
// render goroutine is woken so it parks instead of busy-looping.
func (c *Controller) Remove(s *Spinner) {
	c.mu.Lock()
	delete(c.spinners, s)
	empty := len(c.spinners) == 0
	c.mu.Unlock()
	if empty {
		c.signal()
	}
}

// signal wakes the render goroutine without ever blocking the caller.
func (c *Controller) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// run is the render loop. Ticking happens on a snapshot outside the set
// lock so a slow redraw cannot starve Add/Remove callers.
func (c *Controller) run() {
	for {
		c.mu.Lock()
		snapshot := make([]*Spinner, 0, len(c.spinners))
		for s := range c.spinners {
			snapshot = append(snapshot, s)
		}
		c.mu.Unlock()

		if len(snapshot) == 0 {
			<-c.wake
			continue
		}
		for _, s := range snapshot {
			c.tickOne(s)
		}
		time.Sleep(c.interval)
	}
}

// tickOne advances one spinner, containing any panic so a single bad frame
// cannot kill animation for everyone else. Jobs are unaffected either way.
func (c *Controller) tickOne(s *Spinner) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("spinner tick panicked", "panic", r)
		}
	}()
	s.tick()
}
