// Package loader fetches remote images and exposes their load state to the
// view layer.
//
// A Loader hands out Handles keyed by URL. Every handle for the same URL
// shares one entry: one in-flight fetch, one terminal State, and the same
// sequence of notifications. Successful results stay cached until they are
// invalidated, purged, or evicted after the last handle is released.
//
// Fetches run on worker goroutines. Their results are handed to a Poster
// (normally the UI loop) and observers are only ever called from there, so
// view code never needs locks and never blocks on the network.
//
//	l := loader.New(loader.Options{Fetcher: loader.NewHTTPFetcher(10*time.Second, 0), Poster: loop})
//	h := l.Request("https://example.com/cover.jpg")
//	defer h.Release()
//	stop := h.Subscribe(func(s loader.State) { ... })
//	defer stop()
package loader
