package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/qaza-tracker/internal/app"
)

func newVersionCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"version":   app.Version,
					"commit":    app.Commit,
					"buildTime": app.BuildTime,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "qaza %s\n", app.BuildVersion())
			return nil
		},
	}
}
