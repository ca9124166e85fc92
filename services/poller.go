package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

type PollState int

const (
	PollIdle PollState = iota
	PollPolling
	PollStopped
)

func (s PollState) String() string {
	switch s {
	case PollIdle:
		return "idle"
	case PollPolling:
		return "polling"
	case PollStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

var ErrPollerStarted = errors.New("poller already started")

// Ticker is the subset of time.Ticker the poller needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

type PollerOptions[T any] struct {
	Name     string
	Interval time.Duration
	// Timeout bounds each fetch. Zero means no per-request timeout.
	Timeout time.Duration
	Fetch   func(ctx context.Context) (T, error)
	Apply   func(T)
	OnError func(error)
	// NewTicker defaults to a time.Ticker.
	NewTicker func(time.Duration) Ticker
}

// Poller refetches remote state on a fixed interval. Fetches are not gated
// on each other; every fetch carries a sequence number and only a response
// newer than the last applied one wins. Apply and OnError run under the
// poller's lock and must not call back into the poller.
type Poller[T any] struct {
	opts PollerOptions[T]

	mu      sync.Mutex
	state   PollState
	issued  uint64
	applied uint64
	ctx     context.Context
	cancel  context.CancelFunc

	loopDone chan struct{}
	inflight sync.WaitGroup
}

func NewPoller[T any](opts PollerOptions[T]) *Poller[T] {
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	if opts.Name == "" {
		opts.Name = "Poller"
	}
	return &Poller[T]{opts: opts}
}

func (p *Poller[T]) State() PollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start fetches once immediately and then on every tick until Stop or until
// ctx is done.
func (p *Poller[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.state != PollIdle {
		p.mu.Unlock()
		return ErrPollerStarted
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.state = PollPolling
	p.loopDone = make(chan struct{})
	ticker := p.opts.NewTicker(p.opts.Interval)
	p.mu.Unlock()

	p.issue()
	go p.loop(ticker)
	return nil
}

// Refresh fetches out of band. It reports false when the poller is not running.
func (p *Poller[T]) Refresh() bool {
	return p.issue()
}

// Stop cancels the timer and any in-flight fetch. Responses that land after
// Stop are discarded. Safe to call more than once.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	p.state = PollStopped
	if p.cancel != nil {
		p.cancel()
	}
	done := p.loopDone
	p.mu.Unlock()

	if done != nil {
		<-done
	}
	p.inflight.Wait()
}

func (p *Poller[T]) loop(ticker Ticker) {
	defer close(p.loopDone)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			p.mu.Lock()
			p.state = PollStopped
			p.mu.Unlock()
			return
		case <-ticker.C():
			p.issue()
		}
	}
}

func (p *Poller[T]) issue() bool {
	p.mu.Lock()
	if p.state != PollPolling {
		p.mu.Unlock()
		return false
	}
	p.issued++
	seq := p.issued
	ctx := p.ctx
	p.inflight.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.inflight.Done()

		reqCtx := ctx
		if p.opts.Timeout > 0 {
			var cancel context.CancelFunc
			reqCtx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
			defer cancel()
		}

		value, err := p.opts.Fetch(reqCtx)
		p.deliver(seq, value, err)
	}()
	return true
}

func (p *Poller[T]) deliver(seq uint64, value T, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != PollPolling || seq <= p.applied {
		return
	}

	if err != nil {
		log.Printf("[%s] fetch #%d failed: %v", p.opts.Name, seq, err)
		if p.opts.OnError != nil {
			p.opts.OnError(err)
		}
		return
	}

	p.applied = seq
	if p.opts.Apply != nil {
		p.opts.Apply(value)
	}
}
