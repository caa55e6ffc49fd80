package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

const defaultWorkers = 4

// Fetcher retrieves and decodes one resource.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Image, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (*Image, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (*Image, error) {
	return f(ctx, url)
}

// Poster hands work to the UI thread. ui.Loop implements it.
type Poster interface {
	Post(fn func()) bool
}

type inlinePoster struct{}

func (inlinePoster) Post(fn func()) bool {
	fn()
	return true
}

// Hooks receive loader events, typically to feed metrics.
type Hooks struct {
	OnRequest  func(url string, cached bool)
	OnFetch    func(url string)
	OnComplete func(url string, err error, elapsed time.Duration)
	OnCancel   func(url string)
}

// Options configures a Loader.
type Options struct {
	Fetcher    Fetcher      // Required
	Poster     Poster       // Where observers run; nil runs them inline on the worker
	MaxEntries int          // Idle cached successes kept; 0 = unbounded
	Workers    int          // Concurrent fetches; 0 = 4
	Logger     *slog.Logger // Defaults to a discard logger
	Hooks      Hooks
}

// Stats is a snapshot of loader counters.
type Stats struct {
	Requests int64
	Hits     int64
	Fetches  int64
	Failures int64
	Cancels  int64
	Entries  int
	Idle     int
}

// Loader de-duplicates, caches and delivers resource fetches.
type Loader struct {
	mu      sync.Mutex
	entries map[string]*entry
	idle    *idleCache
	closed  bool
	gen     uint64

	fetcher Fetcher
	poster  Poster
	flight  singleflight.Group
	sem     chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *slog.Logger
	hooks   Hooks

	requests atomic.Int64
	hits     atomic.Int64
	fetches  atomic.Int64
	failures atomic.Int64
	cancels  atomic.Int64
}

type entry struct {
	url     string
	state   State
	refs    int
	handles map[*Handle]struct{}
	cancel  context.CancelFunc
	gen     uint64
	started time.Time
}

// New creates a Loader. It panics if opts.Fetcher is nil.
func New(opts Options) *Loader {
	if opts.Fetcher == nil {
		panic("loader: nil Fetcher")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	poster := opts.Poster
	if poster == nil {
		poster = inlinePoster{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Loader{
		entries: make(map[string]*entry),
		idle:    newIdleCache(opts.MaxEntries),
		fetcher: opts.Fetcher,
		poster:  poster,
		sem:     make(chan struct{}, workers),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
		hooks:   opts.Hooks,
	}
}

// Request returns a handle for url. Requests for a URL that is already
// loading join the existing fetch; requests for a cached URL are in
// StatusSuccess immediately. Empty or malformed URLs yield a handle in
// StatusError. The caller must Release the handle.
func (l *Loader) Request(rawURL string) *Handle {
	l.requests.Inc()

	l.mu.Lock()

	if l.closed {
		l.mu.Unlock()
		e := &entry{
			url:     rawURL,
			state:   State{Status: StatusError, Err: NewResourceLoadError(rawURL, "fetch", ErrClosed)},
			handles: make(map[*Handle]struct{}),
		}
		return newHandle(nil, e)
	}

	if e, ok := l.entries[rawURL]; ok {
		l.idle.remove(rawURL)
		e.refs++
		h := newHandle(l, e)
		e.handles[h] = struct{}{}
		cached := e.state.Status == StatusSuccess
		l.mu.Unlock()

		if cached {
			l.hits.Inc()
		}
		if l.hooks.OnRequest != nil {
			l.hooks.OnRequest(rawURL, cached)
		}
		return h
	}

	e := &entry{
		url:     rawURL,
		refs:    1,
		handles: make(map[*Handle]struct{}),
	}
	h := newHandle(l, e)
	e.handles[h] = struct{}{}
	l.entries[rawURL] = e

	if err := validateURL(rawURL); err != nil {
		e.state = State{Status: StatusError, Err: NewResourceLoadError(rawURL, "parse", err)}
		l.failures.Inc()
		l.mu.Unlock()

		l.logger.Debug("rejected resource url", "url", rawURL, "error", err)
		if l.hooks.OnRequest != nil {
			l.hooks.OnRequest(rawURL, false)
		}
		return h
	}

	e.state = State{Status: StatusLoading}
	l.startFetch(e)
	l.mu.Unlock()

	if l.hooks.OnRequest != nil {
		l.hooks.OnRequest(rawURL, false)
	}
	return h
}

// Invalidate drops the cached result for url. Referenced entries are
// fetched again and their observers see Loading followed by the new result.
func (l *Loader) Invalidate(rawURL string) {
	l.mu.Lock()
	e, ok := l.entries[rawURL]
	if !ok {
		l.mu.Unlock()
		return
	}

	if e.refs == 0 {
		l.dropLocked(e)
		l.mu.Unlock()
		return
	}

	if e.state.Status == StatusLoading {
		l.mu.Unlock()
		return
	}

	if validateURL(rawURL) != nil {
		l.mu.Unlock()
		return
	}

	l.reloadLocked(e)
}

// Purge drops every cached entry no handle references.
func (l *Loader) Purge() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.refs == 0 {
			l.dropLocked(e)
		}
	}
	l.idle.clear()
}

// Close cancels all in-flight fetches and empties the cache. Handles
// requested afterwards are in StatusError with ErrClosed.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	for _, e := range l.entries {
		if e.cancel != nil {
			e.cancel()
			e.cancel = nil
		}
		delete(l.entries, e.url)
	}
	l.idle.clear()
	l.mu.Unlock()

	l.cancel()
}

// Stats returns a snapshot of the loader counters.
func (l *Loader) Stats() Stats {
	l.mu.Lock()
	entries := len(l.entries)
	idle := l.idle.len()
	l.mu.Unlock()

	return Stats{
		Requests: l.requests.Load(),
		Hits:     l.hits.Load(),
		Fetches:  l.fetches.Load(),
		Failures: l.failures.Load(),
		Cancels:  l.cancels.Load(),
		Entries:  entries,
		Idle:     idle,
	}
}

// Cached reports whether url currently holds a successful result.
func (l *Loader) Cached(rawURL string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[rawURL]
	return ok && e.state.Status == StatusSuccess
}

// startFetch launches the fetch for e. Caller holds l.mu.
func (l *Loader) startFetch(e *entry) {
	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(l.ctx)
	e.gen = gen
	e.cancel = cancel
	e.started = time.Now()

	go l.run(ctx, e, gen)
}

func (l *Loader) run(ctx context.Context, e *entry, gen uint64) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return
	}
	defer func() { <-l.sem }()

	ch := l.flight.DoChan(e.url, func() (any, error) {
		l.fetches.Inc()
		if l.hooks.OnFetch != nil {
			l.hooks.OnFetch(e.url)
		}
		return l.fetcher.Fetch(ctx, e.url)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return
	}

	if !l.poster.Post(func() { l.complete(e, gen, res) }) {
		l.logger.Debug("dropped resource completion", "url", e.url)
	}
}

// complete applies a fetch result. It runs on the poster.
func (l *Loader) complete(e *entry, gen uint64, res singleflight.Result) {
	l.mu.Lock()
	if cur, ok := l.entries[e.url]; !ok || cur != e || e.gen != gen || e.state.Status != StatusLoading {
		l.mu.Unlock()
		return
	}

	var state State
	switch {
	case res.Err != nil:
		state = State{Status: StatusError, Err: asLoadError(e.url, "fetch", res.Err)}
	default:
		img, ok := res.Val.(*Image)
		if !ok || img == nil {
			state = State{Status: StatusError, Err: NewResourceLoadError(e.url, "decode", errors.New("fetcher returned no image"))}
		} else {
			state = State{Status: StatusSuccess, Image: img}
		}
	}

	e.state = state
	e.cancel = nil
	elapsed := time.Since(e.started)
	observers := e.observersLocked()
	l.mu.Unlock()

	if state.Status == StatusError {
		l.failures.Inc()
		l.logger.Warn("resource load failed", "url", e.url, "error", state.Err)
	} else {
		l.logger.Debug("resource loaded", "url", e.url, "elapsed", elapsed)
	}
	if l.hooks.OnComplete != nil {
		l.hooks.OnComplete(e.url, state.Err, elapsed)
	}

	for _, fn := range observers {
		fn(state)
	}
}

func (l *Loader) release(h *Handle) {
	l.mu.Lock()
	e := h.e
	delete(e.handles, h)
	e.refs--
	if e.refs > 0 {
		l.mu.Unlock()
		return
	}

	if cur, ok := l.entries[e.url]; !ok || cur != e {
		l.mu.Unlock()
		return
	}

	switch e.state.Status {
	case StatusLoading:
		l.dropLocked(e)
		l.mu.Unlock()

		l.cancels.Inc()
		l.logger.Debug("cancelled unreferenced resource load", "url", e.url)
		if l.hooks.OnCancel != nil {
			l.hooks.OnCancel(e.url)
		}
		return
	case StatusError:
		l.dropLocked(e)
	case StatusSuccess:
		for _, evicted := range l.idle.add(e.url) {
			if old, ok := l.entries[evicted]; ok && old.refs == 0 {
				delete(l.entries, evicted)
			}
		}
	}
	l.mu.Unlock()
}

// Retry fetches url again if it is referenced and in StatusError. Every
// handle for url observes the new attempt.
func (l *Loader) Retry(rawURL string) bool {
	l.mu.Lock()
	e, ok := l.entries[rawURL]
	if !ok || e.refs == 0 {
		l.mu.Unlock()
		return false
	}
	return l.retryLocked(e)
}

func (l *Loader) retry(h *Handle) bool {
	l.mu.Lock()
	return l.retryLocked(h.e)
}

// retryLocked restarts a failed entry. Caller holds l.mu; it is released
// on return.
func (l *Loader) retryLocked(e *entry) bool {
	if cur, ok := l.entries[e.url]; !ok || cur != e || e.state.Status != StatusError || l.closed {
		l.mu.Unlock()
		return false
	}
	if validateURL(e.url) != nil {
		l.mu.Unlock()
		return false
	}

	l.reloadLocked(e)
	return true
}

// reloadLocked moves e back to StatusLoading and fetches it again. The
// Loading notification is queued before the fetch starts so observers never
// see it after the result. Caller holds l.mu; it is released on return.
func (l *Loader) reloadLocked(e *entry) {
	e.state = State{Status: StatusLoading}
	observers := e.observersLocked()
	l.mu.Unlock()

	l.notify(observers, State{Status: StatusLoading})

	l.mu.Lock()
	defer l.mu.Unlock()
	if cur, ok := l.entries[e.url]; ok && cur == e && e.state.Status == StatusLoading && e.cancel == nil && !l.closed {
		l.startFetch(e)
	}
}

// dropLocked removes e from the cache, cancelling its fetch. Caller holds l.mu.
func (l *Loader) dropLocked(e *entry) {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
		l.flight.Forget(e.url)
	}
	delete(l.entries, e.url)
	l.idle.remove(e.url)
}

func (l *Loader) notify(observers []func(State), state State) {
	if len(observers) == 0 {
		return
	}
	l.poster.Post(func() {
		for _, fn := range observers {
			fn(state)
		}
	})
}

// observersLocked snapshots the observers of every live handle. Caller holds l.mu.
func (e *entry) observersLocked() []func(State) {
	var out []func(State)
	for _, h := range sortedHandles(e.handles) {
		out = append(out, h.observersLocked()...)
	}
	return out
}

func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
