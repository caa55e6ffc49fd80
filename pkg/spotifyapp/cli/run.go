package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/input"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/internal"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/internal/sdlview"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
)

func newRunCmd(e *env) *cobra.Command {
	var route string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the app window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if route != "" {
				e.cfg.StartRoute = route
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return e.run(ctx)
		},
	}

	cmd.Flags().StringVar(&route, "route", "", "Route to open first (overrides the config)")
	return cmd
}

func (e *env) run(ctx context.Context) error {
	var fe *sdlview.Frontend
	resume := func(r router.Route) any {
		if fe == nil {
			return nil
		}
		return fe.Resume(r)
	}

	rt, err := e.build(router.Route(e.cfg.StartRoute), resume)
	if err != nil {
		return err
	}
	defer rt.close()

	fe = sdlview.New(sdlview.Options{
		Window: sdlview.WindowOptionsFrom(e.cfg.Window),
		Theme:  rt.theme,
		Loop:   rt.loop,
		Logger: internal.GetInternalLogger(),
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if addr := e.cfg.MetricsAddr; addr != "" {
		go func() {
			if err := rt.metrics.Serve(ctx, addr); err != nil {
				e.logger.Error("Metrics endpoint stopped", "addr", addr, "error", err)
			}
		}()
	}

	if path := e.cfg.Input.BackDevice; path != "" {
		reader, err := input.OpenDevice(path, e.logger)
		if err != nil {
			e.logger.Warn("Hardware buttons unavailable", "device", path, "error", err)
		} else {
			defer reader.Close()
			go func() {
				err := reader.Run(ctx, func(ev input.ButtonEvent) {
					rt.loop.Post(func() { fe.Button(ev) })
				})
				if err != nil && ctx.Err() == nil {
					e.logger.Error("Hardware button reader stopped", "device", path, "error", err)
				}
			}()
		}
	}

	e.logger.Info("Starting", "route", rt.shell.Current())
	err = fe.Run(ctx, rt.shell)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
