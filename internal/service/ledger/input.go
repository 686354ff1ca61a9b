package ledger

import (
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// MaxReasonLength bounds the free-text reason in characters.
const MaxReasonLength = 500

// AppendInput describes one ledger entry to record for Owner.
type AppendInput struct {
	Owner       domain.Profile
	Date        time.Time
	Prayer      domain.PrayerName
	Status      domain.LogStatus
	Reason      *string
	IsPeriodDay bool
	DedupKey    *string
}

// Validate checks the input against today's calendar date.
func (i AppendInput) Validate(today time.Time) error {
	var errs []domain.FieldError

	if i.Owner.Identifier == "" {
		errs = append(errs, domain.FieldError{Field: "owner", Message: "required"})
	}

	if i.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	} else if calendarDate(i.Date).After(calendarDate(today)) {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must not be in the future"})
	}

	if i.IsPeriodDay {
		if i.Owner.Gender != domain.GenderFemale {
			errs = append(errs, domain.FieldError{Field: "period_day", Message: "only allowed for female profiles"})
		}
	} else {
		if !i.Prayer.IsValid() || i.Prayer == domain.PrayerAllFive {
			errs = append(errs, domain.FieldError{Field: "prayer", Message: "must be one of Fajr, Dhuhr, Asr, Maghrib, Isha"})
		}
		if !i.Status.IsValid() {
			errs = append(errs, domain.FieldError{Field: "status", Message: "must be missed or completed"})
		}
	}

	if i.Reason != nil && utf8.RuneCountInString(*i.Reason) > MaxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long"})
	}

	if i.DedupKey != nil && *i.DedupKey == "" {
		errs = append(errs, domain.FieldError{Field: "dedup_key", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// entry builds the ledger row. A period day covers the whole day and is
// always recorded as missed, whatever prayer and status were given.
func (i AppendInput) entry(recordedAt time.Time) domain.PrayerLogEntry {
	e := domain.PrayerLogEntry{
		Owner:       domain.NormalizeIdentifier(i.Owner.Identifier),
		Date:        calendarDate(i.Date),
		Prayer:      i.Prayer,
		Status:      i.Status,
		IsPeriodDay: i.IsPeriodDay,
		RecordedAt:  recordedAt.UTC(),
		DedupKey:    i.DedupKey,
	}
	if i.IsPeriodDay {
		e.Prayer = domain.PrayerAllFive
		e.Status = domain.LogStatusMissed
	}
	if i.Reason != nil && *i.Reason != "" {
		reason := *i.Reason
		e.Reason = &reason
	}
	return e
}

// calendarDate drops the clock part, keeping the date as seen in t's location.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
