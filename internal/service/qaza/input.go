package qaza

import (
	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// EstimateInput holds the calculator form.
type EstimateInput struct {
	AgeAtObligationStart int
	CurrentAge           int
	Gender               domain.Gender

	// AvgPeriodDaysPerMonth is used only for female; nil selects the default.
	AvgPeriodDaysPerMonth *int
}

// Validate checks ranges before calculation.
func (i EstimateInput) Validate() error {
	var errs []domain.FieldError

	if i.AgeAtObligationStart < 0 || i.AgeAtObligationStart > domain.MaxAge {
		errs = append(errs, domain.FieldError{Field: "age_at_obligation_start", Message: "must be between 0 and 120"})
	}
	if i.CurrentAge < domain.MinAge || i.CurrentAge > domain.MaxAge {
		errs = append(errs, domain.FieldError{Field: "current_age", Message: "must be between 1 and 120"})
	}
	if !i.Gender.IsValid() {
		errs = append(errs, domain.FieldError{Field: "gender", Message: "must be male or female"})
	}
	if i.AvgPeriodDaysPerMonth != nil {
		if v := *i.AvgPeriodDaysPerMonth; v < 0 || v > domain.MaxAvgPeriodDaysPerMonth {
			errs = append(errs, domain.FieldError{Field: "avg_period_days", Message: "must be between 0 and 31"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i EstimateInput) avgPeriodDays() int {
	if i.Gender != domain.GenderFemale {
		return 0
	}
	if i.AvgPeriodDaysPerMonth == nil {
		return domain.DefaultAvgPeriodDaysMonth
	}
	return *i.AvgPeriodDaysPerMonth
}
