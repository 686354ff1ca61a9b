package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
	"github.com/heartmarshall/qaza-tracker/internal/service/ledger"
)

// dedupNamespace scopes derived dedup keys.
var dedupNamespace = uuid.MustParse("6f1d4c57-2b0e-4a8e-9f3a-5d1c7a0e42b1")

func newLogCmd(envFn func() *env) *cobra.Command {
	var (
		date       string
		prayer     string
		status     string
		reason     string
		periodDay  bool
		dedupKey   string
		idempotent bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a missed or made-up prayer",
		Long: `Record one ledger entry for the signed-in profile.

A period day covers all five prayers of the date and needs no --prayer.
--idempotent derives a dedup key from the entry so repeating the command
does not create a second row on ledgers that honour dedup keys.

Examples:
  qaza log --prayer fajr --reason overslept
  qaza log --date 2024-01-01 --prayer isha --status completed
  qaza log --period-day`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			owner, err := e.profile()
			if err != nil {
				return err
			}

			input, err := buildAppendInput(*owner, date, prayer, status, reason, periodDay)
			if err != nil {
				return err
			}
			switch {
			case dedupKey != "":
				input.DedupKey = &dedupKey
			case idempotent:
				key := deriveDedupKey(input)
				input.DedupKey = &key
			}

			ok, err := e.ledger.Append(cmd.Context(), input)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("entry not recorded: %w", domain.ErrRemoteUnavailable)
			}

			out := cmd.OutOrStdout()
			if e.jsonOut {
				return printJSON(out, map[string]any{"success": true})
			}
			if input.IsPeriodDay {
				fmt.Fprintf(out, "Period day %s logged\n", input.Date.Format(domain.DateLayout))
				return nil
			}
			fmt.Fprintf(out, "%s (%s) logged for %s\n", input.Prayer, input.Status, input.Date.Format(domain.DateLayout))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&date, "date", "", "calendar date YYYY-MM-DD (default today)")
	f.StringVarP(&prayer, "prayer", "p", "", "Fajr, Dhuhr, Asr, Maghrib or Isha")
	f.StringVarP(&status, "status", "s", string(domain.LogStatusMissed), "missed or completed")
	f.StringVarP(&reason, "reason", "r", "", "optional free-text reason")
	f.BoolVar(&periodDay, "period-day", false, "mark the whole date as a period day")
	f.StringVar(&dedupKey, "dedup-key", "", "explicit idempotency key")
	f.BoolVar(&idempotent, "idempotent", false, "derive the idempotency key from the entry")
	cmd.MarkFlagsMutuallyExclusive("dedup-key", "idempotent")
	return cmd
}

func buildAppendInput(owner domain.Profile, date, prayer, status, reason string, periodDay bool) (ledger.AppendInput, error) {
	input := ledger.AppendInput{
		Owner:       owner,
		Status:      domain.LogStatus(strings.ToLower(strings.TrimSpace(status))),
		IsPeriodDay: periodDay,
	}

	if date == "" {
		input.Date = time.Now()
	} else {
		d, err := time.ParseInLocation(domain.DateLayout, date, time.Local)
		if err != nil {
			return ledger.AppendInput{}, usageError("--date must be YYYY-MM-DD (got %q)", date)
		}
		input.Date = d
	}

	if prayer != "" {
		name, ok := domain.ParsePrayerName(prayer)
		if !ok {
			return ledger.AppendInput{}, usageError("unknown prayer %q", prayer)
		}
		input.Prayer = name
	} else if !periodDay {
		return ledger.AppendInput{}, usageError("select a prayer with --prayer or mark --period-day")
	}

	if r := strings.TrimSpace(reason); r != "" {
		input.Reason = &r
	}
	return input, nil
}

// deriveDedupKey is stable for the same owner, date, prayer and status.
func deriveDedupKey(in ledger.AppendInput) string {
	prayer := in.Prayer
	status := in.Status
	if in.IsPeriodDay {
		prayer, status = domain.PrayerAllFive, domain.LogStatusMissed
	}
	name := strings.Join([]string{
		domain.NormalizeIdentifier(in.Owner.Identifier),
		in.Date.Format(domain.DateLayout),
		prayer.String(),
		status.String(),
	}, "|")
	return uuid.NewSHA1(dedupNamespace, []byte(name)).String()
}

func newHistoryCmd(envFn func() *env) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List ledger entries in the order the ledger stored them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			owner, err := e.profile()
			if err != nil {
				return err
			}
			if limit < 0 {
				return usageError("--limit must not be negative")
			}

			var entries []domain.PrayerLogEntry
			if limit > 0 {
				entries = e.ledger.Recent(cmd.Context(), owner.Identifier, limit)
			} else {
				entries = e.ledger.List(cmd.Context(), owner.Identifier)
			}

			if e.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"entries": viewEntries(entries),
					"count":   len(entries),
				})
			}
			return printEntries(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the first n entries (0 = all)")
	return cmd
}

