// Package cli implements the spotifyapp command.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/config"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/internal"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/loader"
)

// env is the state shared by the commands of one invocation.
type env struct {
	cfg    config.Config
	logger *slog.Logger

	// fetcher replaces the HTTP fetcher when set.
	fetcher loader.Fetcher
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&env{})
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "spotifyapp",
		Short: "A music streaming UI shell",
		Long: `spotifyapp renders the login, home, search and library screens of a
music streaming app with a navigation back-stack and remote cover art.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			internal.CloseLogger()
		},
	}

	// Persistent flags (available to all commands)
	flags := root.PersistentFlags()
	flags.String("config", config.Path(), "Path to the TOML configuration file")
	flags.String("log-level", "", "Log level: debug, info, warn or error (overrides the config)")
	flags.String("lang", "", "UI language, e.g. en or es (overrides the config)")

	root.AddCommand(newRunCmd(e), newRenderCmd(e), newRoutesCmd(e))
	return root
}

func (e *env) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		if _, err := internal.ParseLevel(cfg.LogLevel); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("lang") {
		cfg.Language, _ = cmd.Flags().GetString("lang")
	}

	internal.SetLogOutput(cmd.ErrOrStderr())
	if cfg.LogPath != "" {
		internal.SetLogPath(cfg.LogPath)
	}
	internal.SetRawLogLevel(cfg.LogLevel)

	e.cfg = cfg
	e.logger = internal.GetLogger()
	return nil
}
