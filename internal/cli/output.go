package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

// entryView is the JSON shape of a ledger entry in command output.
type entryView struct {
	Date       string `json:"date"`
	Prayer     string `json:"prayer"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	PeriodDay  bool   `json:"periodDay"`
	RecordedAt string `json:"recordedAt,omitempty"`
}

func viewEntries(entries []domain.PrayerLogEntry) []entryView {
	out := make([]entryView, 0, len(entries))
	for _, e := range entries {
		v := entryView{
			Date:      e.DateString(),
			Prayer:    e.Prayer.String(),
			Status:    e.Status.String(),
			PeriodDay: e.IsPeriodDay,
		}
		if e.Reason != nil {
			v.Reason = *e.Reason
		}
		if !e.RecordedAt.IsZero() {
			v.RecordedAt = e.RecordedAt.Format(time.RFC3339)
		}
		out = append(out, v)
	}
	return out
}

func printEntries(w io.Writer, entries []domain.PrayerLogEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries yet")
		return nil
	}
	tw := newTable(w, "DATE", "PRAYER", "STATUS", "PERIOD", "REASON")
	for _, v := range viewEntries(entries) {
		period := ""
		if v.PeriodDay {
			period = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.Date, v.Prayer, v.Status, period, truncate(v.Reason, 40))
	}
	return tw.Flush()
}

func printProfile(w io.Writer, p domain.Profile) {
	fmt.Fprintf(w, "%s <%s>\n", p.DisplayName, p.Identifier)
	fmt.Fprintf(w, "Age:    %d\n", p.Age)
	fmt.Fprintf(w, "Gender: %s\n", p.Gender)
	if p.LifetimeQazaCount != nil {
		fmt.Fprintf(w, "Lifetime Qaza: %d\n", *p.LifetimeQazaCount)
	}
}

func printStats(w io.Writer, s domain.StatsSnapshot) {
	fmt.Fprintf(w, "Total Qaza:  %d\n", s.TotalMissed)
	fmt.Fprintf(w, "Completed:   %d\n", s.Completed)
	fmt.Fprintf(w, "Period days: %d\n", s.PeriodDays)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
