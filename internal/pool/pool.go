// Package pool runs labeled jobs on worker goroutines, binding a terminal
// spinner to each so progress and outcomes stay visible while a batch runs.
package pool

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/thruflo/whirl/internal/logging"
	"github.com/thruflo/whirl/internal/spin"
)

// Option configures a Pool.
type Option func(*Pool)

// WithMaxWorkers bounds how many jobs run at once. Zero or less means
// unbounded.
func WithMaxWorkers(n int) Option {
	return func(p *Pool) { p.maxWorkers = n }
}

// WithMessage sets the prefix shown before every job's spinner label.
func WithMessage(msg string) Option {
	return func(p *Pool) { p.msg = msg }
}

// WithDisplay routes all spinner output through d.
func WithDisplay(d *spin.Display) Option {
	return func(p *Pool) { p.display = d }
}

// WithController ticks all spinners from c.
func WithController(c *spin.Controller) Option {
	return func(p *Pool) { p.ctrl = c }
}

// Pool executes submitted jobs concurrently, one spinner per job. A Pool is
// a scoped resource: create it, submit, then Shutdown.
type Pool struct {
	mu         sync.Mutex
	jobs       map[string]*job
	closed     bool
	wg         sync.WaitGroup
	sem        chan struct{}
	maxWorkers int
	msg        string
	display    *spin.Display
	ctrl       *spin.Controller
	log        *logging.Logger
}

// job carries one submission's pending result. The done channel closes
// after result is written, which orders the write before any read.
type job struct {
	done   chan struct{}
	result JobResult
}

// New creates a Pool. Callers must call Shutdown when done submitting.
func New(opts ...Option) *Pool {
	p := &Pool{
		jobs: make(map[string]*job),
		msg:  spin.DefaultMessage,
		log:  logging.With("component", "pool"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.maxWorkers > 0 {
		p.sem = make(chan struct{}, p.maxWorkers)
	}
	return p
}

// Submit schedules fn under label and immediately starts its spinner, whose
// elapsed time is measured from this call so it reflects true job duration.
// It fails with ErrDuplicateLabel for a reused label and ErrPoolClosed after
// Shutdown.
func (p *Pool) Submit(label string, fn JobFunc) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	if _, exists := p.jobs[label]; exists {
		p.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
	}
	j := &job{done: make(chan struct{})}
	p.jobs[label] = j
	p.wg.Add(1)
	p.mu.Unlock()

	start := time.Now()
	opts := []spin.Option{
		spin.WithMessage(p.msg),
		spin.WithElapsedFunc(func() time.Duration { return time.Since(start) }),
	}
	if p.display != nil {
		opts = append(opts, spin.WithDisplay(p.display))
	}
	if p.ctrl != nil {
		opts = append(opts, spin.WithController(p.ctrl))
	}
	s := spin.New(label, opts...)
	s.Start()

	go p.runJob(label, j, fn, s, start)
	return nil
}

func (p *Pool) runJob(label string, j *job, fn JobFunc, s *spin.Spinner, start time.Time) {
	defer p.wg.Done()
	if p.sem != nil {
		p.sem <- struct{}{}
		defer func() { <-p.sem }()
	}

	j.result = runSafe(fn)
	s.StopWithElapsed(j.result.OK, time.Since(start))
	if j.result.OK {
		p.log.Debug("job finished", "label", label)
	} else {
		p.log.Debug("job failed", "label", label, "kind", j.result.Error.Kind)
	}
	close(j.done)
}

// runSafe executes fn, converting a returned error or a panic into the
// result's error field so no failure crosses the worker boundary.
func runSafe(fn JobFunc) (res JobResult) {
	defer func() {
		if r := recover(); r != nil {
			res = JobResult{Error: &JobError{Kind: "panic", Message: fmt.Sprint(r)}}
		}
	}()
	value, err := fn()
	if err != nil {
		return JobResult{Error: &JobError{Kind: errorKind(err), Message: err.Error()}}
	}
	return JobResult{OK: true, Result: value}
}

// errorKind names an error's dynamic type.
func errorKind(err error) string {
	t := reflect.TypeOf(err)
	if t == nil {
		return "error"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// WaitAll blocks until every submitted job has finished and returns the
// accumulated label -> result mapping. Call it only after all intended
// submissions are made.
func (p *Pool) WaitAll() map[string]JobResult {
	p.mu.Lock()
	jobs := make(map[string]*job, len(p.jobs))
	for label, j := range p.jobs {
		jobs[label] = j
	}
	p.mu.Unlock()

	results := make(map[string]JobResult, len(jobs))
	for label, j := range jobs {
		<-j.done
		results[label] = j.result
	}
	return results
}

// ResultFor blocks until the labeled job finishes and returns its result.
// It fails with ErrNotFound when the label was never submitted.
func (p *Pool) ResultFor(label string) (JobResult, error) {
	p.mu.Lock()
	j, ok := p.jobs[label]
	p.mu.Unlock()
	if !ok {
		return JobResult{}, fmt.Errorf("%w: %q", ErrNotFound, label)
	}
	<-j.done
	return j.result, nil
}

// Shutdown stops accepting submissions. With wait it blocks until every
// in-flight job completes. Safe to call more than once.
func (p *Pool) Shutdown(wait bool) {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	if wait {
		p.wg.Wait()
	}
}
