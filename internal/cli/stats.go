package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

func newStatsCmd(envFn func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the ledger's summary counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			owner, err := e.profile()
			if err != nil {
				return err
			}

			snap := e.stats.ComputeStats(cmd.Context(), owner.Identifier)
			if e.jsonOut {
				return printJSON(cmd.OutOrStdout(), snap)
			}
			printStats(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}

type dashboardView struct {
	Profile domain.Profile       `json:"profile"`
	Stats   domain.StatsSnapshot `json:"stats"`
	Recent  []entryView          `json:"recent"`
}

func newDashboardCmd(envFn func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show profile, summary counts and recent entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			owner, err := e.profile()
			if err != nil {
				return err
			}

			d := e.stats.Dashboard(cmd.Context(), *owner)
			out := cmd.OutOrStdout()
			if e.jsonOut {
				return printJSON(out, dashboardView{
					Profile: d.Profile,
					Stats:   d.Stats,
					Recent:  viewEntries(d.Recent),
				})
			}

			fmt.Fprintf(out, "Assalamu Alaikum, %s\n\n", d.Profile.DisplayName)
			printStats(out, d.Stats)
			if d.Profile.LifetimeQazaCount != nil {
				fmt.Fprintf(out, "Lifetime Qaza (estimate): %d\n", *d.Profile.LifetimeQazaCount)
			}
			fmt.Fprintln(out, "\nRecent entries:")
			return printEntries(out, d.Recent)
		},
	}
}
