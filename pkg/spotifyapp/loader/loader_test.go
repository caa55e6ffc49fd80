package loader

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/ui"
)

const (
	coverURL  = "https://i.scdn.co/image/cover-a"
	otherURL  = "https://i.scdn.co/image/cover-b"
	brokenURL = "https://i.scdn.co/image/broken"
	waitFor   = time.Second
	pollEvery = 2 * time.Millisecond
)

// fakeFetcher blocks every fetch until its gate is opened and fails the
// URLs listed in failing.
type fakeFetcher struct {
	gate      chan struct{}
	mu        sync.Mutex
	calls     map[string]int
	cancelled map[string]int
	failing   map[string]error
}

func newFakeFetcher(open bool) *fakeFetcher {
	f := &fakeFetcher{
		gate:      make(chan struct{}),
		calls:     make(map[string]int),
		cancelled: make(map[string]int),
		failing:   make(map[string]error),
	}
	if open {
		close(f.gate)
	}
	return f
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*Image, error) {
	f.mu.Lock()
	f.calls[url]++
	f.mu.Unlock()

	select {
	case <-f.gate:
	case <-ctx.Done():
		f.mu.Lock()
		f.cancelled[url]++
		f.mu.Unlock()
		return nil, ctx.Err()
	}

	f.mu.Lock()
	err := f.failing[url]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	return &Image{URL: url, Width: 2, Height: 2, Decoded: img}, nil
}

func (f *fakeFetcher) open() { close(f.gate) }

func (f *fakeFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *fakeFetcher) cancelCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled[url]
}

func (f *fakeFetcher) fail(url string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[url] = err
}

func newTestLoader(t *testing.T, f Fetcher, maxEntries int) (*Loader, *ui.Loop) {
	t.Helper()
	loop := ui.NewLoop()
	l := New(Options{Fetcher: f, Poster: loop, MaxEntries: maxEntries})
	t.Cleanup(l.Close)
	return l, loop
}

// settle drains the loop until h leaves StatusLoading.
func settle(t *testing.T, loop *ui.Loop, h *Handle) State {
	t.Helper()
	require.Eventually(t, func() bool {
		loop.Drain()
		return h.State().Status != StatusLoading
	}, waitFor, pollEvery)
	return h.State()
}

func TestConcurrentRequestsShareOneFetch(t *testing.T) {
	f := newFakeFetcher(false)
	l, loop := newTestLoader(t, f, 0)

	first := l.Request(coverURL)
	second := l.Request(coverURL)
	assert.Equal(t, StatusLoading, first.State().Status)
	assert.Equal(t, StatusLoading, second.State().Status)

	var seen []string
	first.Subscribe(func(s State) { seen = append(seen, "first:"+s.Status.String()) })
	second.Subscribe(func(s State) { seen = append(seen, "second:"+s.Status.String()) })

	require.Eventually(t, func() bool { return f.callCount(coverURL) == 1 }, waitFor, pollEvery)
	f.open()

	state := settle(t, loop, first)
	assert.Equal(t, StatusSuccess, state.Status)
	require.NotNil(t, state.Image)
	assert.Equal(t, 2, state.Image.Width)

	assert.Equal(t, state, second.State())
	assert.Equal(t, []string{"first:Success", "second:Success"}, seen)
	assert.Equal(t, 1, f.callCount(coverURL))
	assert.Equal(t, int64(1), l.Stats().Fetches)
}

func TestCachedRequestIsImmediate(t *testing.T) {
	f := newFakeFetcher(true)
	l, loop := newTestLoader(t, f, 0)

	h := l.Request(coverURL)
	settle(t, loop, h)
	h.Release()
	assert.True(t, l.Cached(coverURL))

	again := l.Request(coverURL)
	defer again.Release()

	assert.Equal(t, StatusSuccess, again.State().Status)
	assert.Equal(t, 1, f.callCount(coverURL))

	stats := l.Stats()
	assert.Equal(t, int64(2), stats.Requests)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, 0, stats.Idle)
}

func TestMalformedURLFailsWithoutFetching(t *testing.T) {
	f := newFakeFetcher(true)
	l, _ := newTestLoader(t, f, 0)

	for _, raw := range []string{"", "   ", "not a url", "ftp://host/cover.png", "https://"} {
		h := l.Request(raw)
		state := h.State()
		assert.Equal(t, StatusError, state.Status, raw)

		var loadErr *ResourceLoadError
		require.True(t, errors.As(state.Err, &loadErr), raw)
		assert.Equal(t, "parse", loadErr.Op)
		assert.False(t, h.Retry())
		h.Release()
	}

	assert.Equal(t, int64(0), l.Stats().Fetches)
	assert.Equal(t, 0, l.Stats().Entries)
}

func TestReleaseCancelsUnreferencedFetch(t *testing.T) {
	f := newFakeFetcher(false)
	var cancelled []string
	loop := ui.NewLoop()
	l := New(Options{
		Fetcher: f,
		Poster:  loop,
		Hooks:   Hooks{OnCancel: func(url string) { cancelled = append(cancelled, url) }},
	})
	defer l.Close()

	a := l.Request(coverURL)
	b := l.Request(coverURL)
	delivered := 0
	a.Subscribe(func(State) { delivered++ })

	require.Eventually(t, func() bool { return f.callCount(coverURL) == 1 }, waitFor, pollEvery)

	a.Release()
	assert.Equal(t, 1, l.Stats().Entries, "still referenced by b")
	b.Release()
	b.Release()

	require.Eventually(t, func() bool { return f.cancelCount(coverURL) == 1 }, waitFor, pollEvery)
	loop.Drain()

	assert.Equal(t, []string{coverURL}, cancelled)
	assert.Equal(t, 0, delivered)
	assert.Equal(t, 0, l.Stats().Entries)
	assert.Equal(t, int64(1), l.Stats().Cancels)
	assert.True(t, a.Released())
}

func TestErrorIsNotRetriedAutomatically(t *testing.T) {
	f := newFakeFetcher(true)
	f.fail(brokenURL, errors.New("connection reset"))
	l, loop := newTestLoader(t, f, 0)

	h := l.Request(brokenURL)
	state := settle(t, loop, h)
	require.Equal(t, StatusError, state.Status)
	assert.True(t, IsResourceLoadError(state.Err))
	assert.ErrorIs(t, state.Err, ErrResourceLoad)

	joined := l.Request(brokenURL)
	assert.Equal(t, StatusError, joined.State().Status)
	assert.Equal(t, 1, f.callCount(brokenURL))

	joined.Release()
	h.Release()
	assert.Equal(t, 0, l.Stats().Entries, "errors are not cached once unreferenced")

	fresh := l.Request(brokenURL)
	defer fresh.Release()
	settle(t, loop, fresh)
	assert.Equal(t, 2, f.callCount(brokenURL))
}

func TestRetry(t *testing.T) {
	f := newFakeFetcher(true)
	f.fail(brokenURL, errors.New("timeout"))
	l, loop := newTestLoader(t, f, 0)

	h := l.Request(brokenURL)
	defer h.Release()
	require.Equal(t, StatusError, settle(t, loop, h).Status)

	var statuses []Status
	h.Subscribe(func(s State) { statuses = append(statuses, s.Status) })

	f.fail(brokenURL, nil)
	require.True(t, h.Retry())
	assert.Equal(t, StatusSuccess, settle(t, loop, h).Status)
	assert.Equal(t, []Status{StatusLoading, StatusSuccess}, statuses)
	assert.False(t, h.Retry(), "only errors can be retried")
}

func TestInvalidate(t *testing.T) {
	f := newFakeFetcher(true)
	l, loop := newTestLoader(t, f, 0)

	h := l.Request(coverURL)
	settle(t, loop, h)

	var statuses []Status
	h.Subscribe(func(s State) { statuses = append(statuses, s.Status) })

	l.Invalidate(coverURL)
	loop.Drain()
	settle(t, loop, h)
	assert.Equal(t, []Status{StatusLoading, StatusSuccess}, statuses)
	assert.Equal(t, 2, f.callCount(coverURL))

	h.Release()
	l.Invalidate(coverURL)
	assert.False(t, l.Cached(coverURL))
}

func TestIdleEntriesAreEvicted(t *testing.T) {
	f := newFakeFetcher(true)
	l, loop := newTestLoader(t, f, 1)

	a := l.Request(coverURL)
	settle(t, loop, a)
	a.Release()

	b := l.Request(otherURL)
	settle(t, loop, b)
	assert.True(t, l.Cached(coverURL), "one idle entry fits")

	b.Release()
	assert.False(t, l.Cached(coverURL))
	assert.True(t, l.Cached(otherURL))
	assert.Equal(t, 1, l.Stats().Idle)

	l.Purge()
	assert.False(t, l.Cached(otherURL))
}

func TestRequestAfterClose(t *testing.T) {
	f := newFakeFetcher(true)
	l, _ := newTestLoader(t, f, 0)
	l.Close()

	h := l.Request(coverURL)
	state := h.State()
	assert.Equal(t, StatusError, state.Status)
	assert.ErrorIs(t, state.Err, ErrClosed)
	assert.False(t, h.Retry())
	h.Release()
}

func TestUnsubscribeDropsQueuedDelivery(t *testing.T) {
	f := newFakeFetcher(true)
	l, loop := newTestLoader(t, f, 0)

	h := l.Request(coverURL)
	defer h.Release()
	delivered := 0
	stop := h.Subscribe(func(State) { delivered++ })

	require.Eventually(t, func() bool { return loop.Pending() > 0 }, waitFor, pollEvery)
	stop()
	loop.Drain()

	assert.Equal(t, StatusSuccess, h.State().Status)
	assert.Equal(t, 0, delivered)
}

func TestNewPanicsWithoutFetcher(t *testing.T) {
	assert.Panics(t, func() { New(Options{}) })
}

func TestRetryByURL(t *testing.T) {
	f := newFakeFetcher(true)
	f.fail(brokenURL, errors.New("timeout"))
	l, loop := newTestLoader(t, f, 0)

	assert.False(t, l.Retry(brokenURL), "unknown url")

	a := l.Request(brokenURL)
	b := l.Request(brokenURL)
	defer b.Release()
	require.Equal(t, StatusError, settle(t, loop, a).Status)

	f.fail(brokenURL, nil)
	require.True(t, l.Retry(brokenURL))
	assert.Equal(t, StatusSuccess, settle(t, loop, b).Status)
	assert.Equal(t, StatusSuccess, a.State().Status)

	a.Release()
	assert.False(t, l.Retry(brokenURL), "successes are not retried")
}
