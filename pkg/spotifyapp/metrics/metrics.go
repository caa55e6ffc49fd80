// Package metrics exposes navigation, loader and action counters in the
// Prometheus format. Collectors are fed through the hooks of the router,
// the loader and the shell.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/app"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/loader"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

const namespace = "spotifyapp"

// Metrics holds the shell's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	transitions  *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	stackDepth   prometheus.Gauge
	requests     *prometheus.CounterVec
	fetches      prometheus.Counter
	loadSeconds  *prometheus.HistogramVec
	cancels      prometheus.Counter
	actions      *prometheus.CounterVec
	actionErrors *prometheus.CounterVec
}

// New creates the collectors in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigation_transitions_total",
			Help:      "Route changes by kind and destination.",
		}, []string{"kind", "to"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigation_rejected_total",
			Help:      "Navigation requests to unregistered routes.",
		}, []string{"route"}),
		stackDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "navigation_stack_depth",
			Help:      "Entries on the back-stack after the last transition.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loader_requests_total",
			Help:      "Resource requests by cache outcome.",
		}, []string{"cache"}),
		fetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loader_fetches_total",
			Help:      "Network fetches started.",
		}),
		loadSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "loader_load_duration_seconds",
			Help:      "Time from request to terminal state.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"result"}),
		cancels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loader_cancels_total",
			Help:      "Fetches cancelled because no view referenced them any more.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Actions dispatched to the shell by type.",
		}, []string{"type"}),
		actionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_errors_total",
			Help:      "Actions the shell rejected by type.",
		}, []string{"type"}),
	}

	m.registry.MustRegister(
		m.transitions, m.rejected, m.stackDepth,
		m.requests, m.fetches, m.loadSeconds, m.cancels,
		m.actions, m.actionErrors,
		collectors.NewGoCollector(),
	)

	return m
}

// RegisterLoader adds gauges read from l's stats on every scrape.
func (m *Metrics) RegisterLoader(l *loader.Loader) {
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loader_entries",
			Help:      "Resource entries held by the loader.",
		}, func() float64 { return float64(l.Stats().Entries) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loader_idle_entries",
			Help:      "Cached entries no view references.",
		}, func() float64 { return float64(l.Stats().Idle) }),
	)
}

// Registry returns the registry the collectors are registered in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// NavigatorHooks returns router hooks that record transitions.
func (m *Metrics) NavigatorHooks() router.Hooks {
	return router.Hooks{
		OnTransition: func(t router.Transition) {
			m.transitions.WithLabelValues(string(t.Kind), string(t.To)).Inc()
			m.stackDepth.Set(float64(t.Depth))
		},
		OnRejected: func(route router.Route, _ error) {
			m.rejected.WithLabelValues(string(route)).Inc()
		},
	}
}

// LoaderHooks returns loader hooks that record requests and load times.
func (m *Metrics) LoaderHooks() loader.Hooks {
	return loader.Hooks{
		OnRequest: func(_ string, cached bool) {
			outcome := "miss"
			if cached {
				outcome = "hit"
			}
			m.requests.WithLabelValues(outcome).Inc()
		},
		OnFetch: func(string) {
			m.fetches.Inc()
		},
		OnComplete: func(_ string, err error, elapsed time.Duration) {
			result := "success"
			if err != nil {
				result = "error"
			}
			m.loadSeconds.WithLabelValues(result).Observe(elapsed.Seconds())
		},
		OnCancel: func(string) {
			m.cancels.Inc()
		},
	}
}

// ShellHooks returns shell hooks that count actions and failures.
func (m *Metrics) ShellHooks() app.Hooks {
	return app.Hooks{
		OnAction: func(a view.Action) {
			m.actions.WithLabelValues(actionType(a)).Inc()
		},
		OnError: func(a view.Action, _ error) {
			m.actionErrors.WithLabelValues(actionType(a)).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func actionType(a view.Action) string {
	switch v := a.(type) {
	case nil:
		return "none"
	case router.Navigate:
		return "navigate"
	case router.Back:
		return "back"
	case router.Replace:
		return "replace"
	default:
		return typeName(v)
	}
}
