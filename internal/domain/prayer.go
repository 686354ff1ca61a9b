package domain

import "time"

// PrayerName is one of the five daily prayers, or the whole-day sentinel.
type PrayerName string

const (
	PrayerFajr    PrayerName = "Fajr"
	PrayerDhuhr   PrayerName = "Dhuhr"
	PrayerAsr     PrayerName = "Asr"
	PrayerMaghrib PrayerName = "Maghrib"
	PrayerIsha    PrayerName = "Isha"

	// PrayerAllFive marks an entry that covers a whole day (period days).
	PrayerAllFive PrayerName = "All 5 Prayers"
)

// DailyPrayers lists the canonical prayers in their order during the day.
var DailyPrayers = []PrayerName{PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}

// PrayersPerDay is the number of obligatory daily prayers.
const PrayersPerDay = 5

func (p PrayerName) String() string { return string(p) }

func (p PrayerName) IsValid() bool {
	switch p {
	case PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha, PrayerAllFive:
		return true
	}
	return false
}

// ParsePrayerName matches a prayer name case-insensitively.
func ParsePrayerName(s string) (PrayerName, bool) {
	n := NormalizeText(s)
	for _, p := range DailyPrayers {
		if NormalizeText(string(p)) == n {
			return p, true
		}
	}
	if n == NormalizeText(string(PrayerAllFive)) {
		return PrayerAllFive, true
	}
	return "", false
}

// LogStatus records whether a prayer was missed or made up.
type LogStatus string

const (
	LogStatusMissed    LogStatus = "missed"
	LogStatusCompleted LogStatus = "completed"
)

func (s LogStatus) String() string { return string(s) }

func (s LogStatus) IsValid() bool {
	switch s {
	case LogStatusMissed, LogStatusCompleted:
		return true
	}
	return false
}

// DateLayout is the calendar date format used on the wire and in the CLI.
const DateLayout = "2006-01-02"

// PrayerLogEntry is one immutable row of a user's ledger.
type PrayerLogEntry struct {
	Owner       string
	Date        time.Time
	Prayer      PrayerName
	Status      LogStatus
	Reason      *string
	IsPeriodDay bool
	RecordedAt  time.Time

	// DedupKey is an optional idempotency key. Gateways that do not
	// support it create a new row on every append.
	DedupKey *string
}

// IsExempt reports whether the entry's day is excluded from Qaza owed.
// A period day is exempt regardless of Status.
func (e PrayerLogEntry) IsExempt() bool {
	return e.IsPeriodDay
}

// DateString returns the entry date in DateLayout.
func (e PrayerLogEntry) DateString() string {
	return e.Date.Format(DateLayout)
}
