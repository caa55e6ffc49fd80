// Package ui provides the single logical UI thread that every state
// transition in the shell is funnelled through.
//
// Work is posted from any goroutine and executed strictly in FIFO order by
// whichever goroutine owns the loop, either a dedicated goroutine calling
// Run or a frame-driven frontend calling Drain once per frame.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"go.uber.org/atomic"
)

// Loop is a FIFO queue of functions executed one at a time.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool

	processed atomic.Int64
	recovered atomic.Int64

	logger *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used to report recovered panics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoop creates an empty loop.
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post enqueues fn. It never blocks and is safe for concurrent use.
// Returns false if the loop has been closed.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Drain runs queued work until the queue is empty, including work posted
// by the functions it runs. Returns the number of functions executed.
func (l *Loop) Drain() int {
	n := 0
	for {
		fn, ok := l.next()
		if !ok {
			return n
		}
		l.exec(fn)
		n++
	}
}

// Run processes work until ctx is cancelled or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()

		l.mu.Lock()
		closed := l.closed
		l.mu.Unlock()
		if closed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close stops accepting work. Work already queued is still executed by the
// next Drain or by a running Run before it returns.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued functions.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Processed returns the number of functions executed so far.
func (l *Loop) Processed() int64 {
	return l.processed.Load()
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.recovered.Inc()
			l.logger.Error("ui loop task panicked", "error", fmt.Sprint(r))
		}
	}()

	fn()
	l.processed.Inc()
}
