package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
	"github.com/heartmarshall/qaza-tracker/internal/service/qaza"
)

func newCalcCmd(envFn func() *env) *cobra.Command {
	var (
		start  int
		age    int
		gender string
		avg    int
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Estimate the lifetime count of missed prayers",
		Long: `Estimate prayers owed since the age obligation began: five a day for
every year, less period days for female profiles.

Age and gender default to the signed-in profile. --save stores the total on
the profile, replacing any earlier estimate.

Examples:
  qaza calc --start 13 --age 25 --gender male
  qaza calc --start 15 --avg-period-days 6 --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			owner, _ := e.session.Active()

			input := qaza.EstimateInput{
				AgeAtObligationStart: start,
				CurrentAge:           age,
				Gender:               domain.Gender(strings.ToLower(gender)),
			}
			if owner != nil {
				if !cmd.Flags().Changed("age") {
					input.CurrentAge = owner.Age
				}
				if !cmd.Flags().Changed("gender") {
					input.Gender = owner.Gender
				}
			}
			if cmd.Flags().Changed("avg-period-days") {
				input.AvgPeriodDaysPerMonth = &avg
			}

			est, err := e.qaza.Estimate(input)
			if err != nil {
				return err
			}

			saved := false
			if save {
				if owner == nil {
					return fmt.Errorf("--save: %w", domain.ErrNoSession)
				}
				ok, err := e.qaza.SaveEstimate(cmd.Context(), owner.Identifier, est.ComputedTotal)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("estimate not saved: %w", domain.ErrRemoteUnavailable)
				}
				updated := *owner
				total := est.ComputedTotal
				updated.LifetimeQazaCount = &total
				if err := e.session.Commit(cmd.Context(), updated); err != nil {
					e.log.WarnContext(cmd.Context(), "session not updated", "error", err.Error())
				}
				saved = true
			}

			out := cmd.OutOrStdout()
			if e.jsonOut {
				return printJSON(out, map[string]any{
					"ageAtObligationStart":  est.AgeAtObligationStart,
					"currentAge":            est.CurrentAge,
					"gender":                est.Gender,
					"avgPeriodDaysPerMonth": est.AvgPeriodDaysPerMonth,
					"total":                 est.ComputedTotal,
					"saved":                 saved,
				})
			}

			fmt.Fprintf(out, "Estimated Qaza: %d prayers\n", est.ComputedTotal)
			fmt.Fprintf(out, "(%d years of obligation", est.CurrentAge-est.AgeAtObligationStart)
			if est.Gender == domain.GenderFemale {
				fmt.Fprintf(out, ", %d period days a month excluded", est.AvgPeriodDaysPerMonth)
			}
			fmt.Fprintln(out, ")")
			if saved {
				fmt.Fprintln(out, "Saved to your profile")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&start, "start", 0, "age when prayer became obligatory")
	f.IntVar(&age, "age", 0, "current age (default: profile age)")
	f.StringVar(&gender, "gender", "", "male or female (default: profile gender)")
	f.IntVar(&avg, "avg-period-days", domain.DefaultAvgPeriodDaysMonth, "average period days per month (female only)")
	f.BoolVar(&save, "save", false, "store the total on the signed-in profile")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}
