package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/textview"
)

func newRenderCmd(e *env) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "render [route]",
		Short: "Print a screen as text",
		Long: `Render builds the screen for route (the configured start route when omitted)
and prints its view tree to stdout. Use --wait to let cover art finish loading
before the screen is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route := router.Route(e.cfg.StartRoute)
			if len(args) == 1 {
				route = router.Route(args[0])
			}

			rt, err := e.build(route, nil)
			if err != nil {
				return err
			}
			defer rt.close()

			if !slices.Contains(rt.shell.Routes(), route) {
				return fmt.Errorf("unknown route %q", route)
			}

			deadline := time.Now().Add(wait)
			for {
				rt.loop.Drain()
				if !time.Now().Before(deadline) {
					break
				}
				time.Sleep(10 * time.Millisecond)
			}
			rt.shell.Flush()

			out := cmd.OutOrStdout()
			_, err = fmt.Fprintln(out, textview.New(out, rt.theme).Render(rt.shell.View()))
			return err
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 0, "How long to wait for images before printing")
	return cmd
}
