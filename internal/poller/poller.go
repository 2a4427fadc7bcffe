// Package poller implements the "poll while active, stop when done" loop
// shared by every view that watches crawl progress. One controller serves one
// open view; closing the view closes the controller.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vietjobs/jobradar-cli/internal/logger"
)

// State is the controller's lifecycle position.
type State string

const (
	// StateIdle: created but not started.
	StateIdle State = "idle"
	// StateFetching: a request is in flight.
	StateFetching State = "fetching"
	// StateScheduled: waiting for the next tick.
	StateScheduled State = "scheduled"
	// StateStopped: no further automatic polling. Reached on close, on a
	// terminal snapshot, or on any fetch failure. Refresh re-arms it.
	StateStopped State = "stopped"
)

// FetchFunc loads one snapshot. It must honor ctx cancellation.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Config assembles a Controller.
type Config[T any] struct {
	// Fetch loads a snapshot.
	Fetch FetchFunc[T]
	// Active reports whether the snapshot indicates ongoing work; polling
	// continues only while it returns true.
	Active func(T) bool
	// Interval between the end of one fetch and the start of the next.
	Interval time.Duration
	// OnResult receives each successfully fetched snapshot.
	OnResult func(T)
	// OnError receives the failure that stopped polling. The controller
	// never auto-retries; a manual Refresh does.
	OnError func(error)
	Logger  logger.Logger
}

// Controller is the polling state machine. Invariant: at most one in-flight
// fetch and at most one pending timer exist at any time.
type Controller[T any] struct {
	fetch    FetchFunc[T]
	active   func(T) bool
	interval time.Duration
	onResult func(T)
	onError  func(error)
	log      logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	state    State
	timer    *time.Timer
	inFlight bool
	closed   bool
}

// ErrMisconfigured is returned by New when required fields are missing.
var ErrMisconfigured = errors.New("poller: Fetch, Active and a positive Interval are required")

// New creates a Controller in the Idle state.
func New[T any](cfg Config[T]) (*Controller[T], error) {
	if cfg.Fetch == nil || cfg.Active == nil || cfg.Interval <= 0 {
		return nil, ErrMisconfigured
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		fetch:    cfg.Fetch,
		active:   cfg.Active,
		interval: cfg.Interval,
		onResult: cfg.OnResult,
		onError:  cfg.OnError,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		state:    StateIdle,
	}, nil
}

// Start begins polling. Calling Start on anything but an Idle controller is a
// no-op; reopening a view means creating a new controller.
func (c *Controller[T]) Start() {
	c.mu.Lock()
	if c.closed || c.state != StateIdle {
		c.mu.Unlock()
		return
	}
	c.beginFetchLocked()
	c.mu.Unlock()
}

// Refresh forces an immediate fetch. It re-arms a Stopped controller and
// pulls a Scheduled one forward; while a fetch is already in flight it does
// nothing, preserving the single-in-flight invariant.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	if c.closed || c.inFlight {
		c.mu.Unlock()
		return
	}
	c.stopTimerLocked()
	c.beginFetchLocked()
	c.mu.Unlock()
}

// Close cancels the pending timer, aborts any in-flight request and moves the
// controller to Stopped, from any state. It waits for the fetch goroutine to
// drain, so no callback fires after Close returns.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.state = StateStopped
	c.stopTimerLocked()
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

// State returns the controller's current state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// beginFetchLocked transitions to Fetching and launches the cycle goroutine.
// Caller holds c.mu.
func (c *Controller[T]) beginFetchLocked() {
	c.state = StateFetching
	c.inFlight = true
	c.wg.Add(1)
	go c.runCycle()
}

func (c *Controller[T]) runCycle() {
	defer c.wg.Done()

	result, err := c.fetch(c.ctx)

	c.mu.Lock()
	c.inFlight = false
	if c.closed {
		// The view closed while the request was in flight; the stale
		// response must not reach the callbacks.
		c.mu.Unlock()
		return
	}

	if err != nil {
		c.state = StateStopped
		c.mu.Unlock()
		c.log.Debug("poll failed, stopping", logger.Error(err))
		if c.onError != nil {
			c.onError(err)
		}
		return
	}

	if c.active(result) {
		c.state = StateScheduled
		c.timer = time.AfterFunc(c.interval, c.tick)
	} else {
		c.state = StateStopped
	}
	c.mu.Unlock()

	if c.onResult != nil {
		c.onResult(result)
	}
}

// tick fires from the timer goroutine when a scheduled wait elapses.
func (c *Controller[T]) tick() {
	c.mu.Lock()
	if c.closed || c.state != StateScheduled {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.beginFetchLocked()
	c.mu.Unlock()
}

func (c *Controller[T]) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
