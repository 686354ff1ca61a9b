package rest

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
	"github.com/heartmarshall/qaza-tracker/internal/gateway"
)

const (
	maxNameLength   = 100
	maxReasonLength = 500
	maxDedupKeyLen  = 128
)

func validateProfile(p domain.Profile) error {
	var errs []domain.FieldError

	if err := domain.ValidateIdentifier(p.Identifier, ""); err != nil {
		errs = append(errs, domain.FieldError{Field: "gmail", Message: "must be an email address"})
	}
	name := strings.TrimSpace(p.DisplayName)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if p.Age < domain.MinAge || p.Age > domain.MaxAge {
		errs = append(errs, domain.FieldError{Field: "age", Message: "out of range"})
	}
	if !p.Gender.IsValid() {
		errs = append(errs, domain.FieldError{Field: "gender", Message: "must be male or female"})
	}
	if p.LifetimeQazaCount != nil && *p.LifetimeQazaCount < 0 {
		errs = append(errs, domain.FieldError{Field: "qazaCount", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// entryFromRequest decodes and checks a logPrayer body. A missing timestamp
// is stamped with now.
func entryFromRequest(req gateway.LogPrayerRequest, now time.Time) (domain.PrayerLogEntry, error) {
	e, err := gateway.LogFromWire(req.WireLog)
	if err != nil {
		return domain.PrayerLogEntry{}, domain.NewValidationError("date", err.Error())
	}
	if prayer, ok := domain.ParsePrayerName(req.Prayer); ok {
		e.Prayer = prayer
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = now.UTC()
	}

	var errs []domain.FieldError
	if err := domain.ValidateIdentifier(e.Owner, ""); err != nil {
		errs = append(errs, domain.FieldError{Field: "gmail", Message: "must be an email address"})
	}
	if !e.Prayer.IsValid() {
		errs = append(errs, domain.FieldError{Field: "prayer", Message: "unknown prayer"})
	}
	if !e.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be missed or completed"})
	}
	if e.Reason != nil && utf8.RuneCountInString(*e.Reason) > maxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long"})
	}
	if e.DedupKey != nil && (*e.DedupKey == "" || len(*e.DedupKey) > maxDedupKeyLen) {
		errs = append(errs, domain.FieldError{Field: "dedupKey", Message: "invalid"})
	}

	if len(errs) > 0 {
		return domain.PrayerLogEntry{}, domain.NewValidationErrors(errs)
	}
	return e, nil
}

func validateQazaUpdate(req gateway.UpdateQazaRequest) (string, error) {
	id := domain.NormalizeIdentifier(req.Gmail)

	var errs []domain.FieldError
	if err := domain.ValidateIdentifier(id, ""); err != nil {
		errs = append(errs, domain.FieldError{Field: "gmail", Message: "must be an email address"})
	}
	if req.Count < 0 {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return "", domain.NewValidationErrors(errs)
	}
	return id, nil
}
