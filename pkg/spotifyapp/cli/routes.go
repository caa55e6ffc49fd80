package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoutesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the registered routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := e.build("", nil)
			if err != nil {
				return err
			}
			defer rt.close()

			start := rt.shell.Current()
			for _, r := range rt.shell.Routes() {
				marker := " "
				if r == start {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, r)
			}
			return nil
		},
	}
}
