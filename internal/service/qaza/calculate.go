package qaza

import (
	"fmt"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// yearCoveringAvg is the smallest monthly average whose yearly total
// reaches DaysPerYear.
const yearCoveringAvg = (domain.DaysPerYear + domain.MonthsPerYear - 1) / domain.MonthsPerYear

// Calculate estimates how many obligatory prayers were missed between the
// age obligation started and the current age.
//
// Every year counts 365 days. For women, avgPeriodDaysPerMonth days per
// month are exempt. The result is never negative; a negative average is
// treated as zero and an average covering the whole year yields zero.
func Calculate(ageAtObligationStart, currentAge int, gender domain.Gender, avgPeriodDaysPerMonth int) (int, error) {
	var errs []domain.FieldError
	if ageAtObligationStart < 0 {
		errs = append(errs, domain.FieldError{Field: "age_at_obligation_start", Message: "must not be negative"})
	}
	if ageAtObligationStart > domain.MaxAge {
		errs = append(errs, domain.FieldError{Field: "age_at_obligation_start", Message: fmt.Sprintf("must be at most %d", domain.MaxAge)})
	}
	if currentAge < 0 {
		errs = append(errs, domain.FieldError{Field: "current_age", Message: "must not be negative"})
	}
	if currentAge > domain.MaxAge {
		errs = append(errs, domain.FieldError{Field: "current_age", Message: fmt.Sprintf("must be at most %d", domain.MaxAge)})
	}
	if len(errs) == 0 && currentAge < ageAtObligationStart {
		errs = append(errs, domain.FieldError{Field: "current_age", Message: "must not be less than age at obligation start"})
	}
	if len(errs) > 0 {
		return 0, domain.NewValidationErrors(errs)
	}

	years := currentAge - ageAtObligationStart
	totalDays := years * domain.DaysPerYear

	periodDays := 0
	if gender == domain.GenderFemale && avgPeriodDaysPerMonth > 0 {
		// Compared before multiplying so huge averages cannot overflow.
		if avgPeriodDaysPerMonth >= yearCoveringAvg {
			periodDays = totalDays
		} else {
			periodDays = avgPeriodDaysPerMonth * domain.MonthsPerYear * years
		}
	}

	missedDays := max(0, totalDays-periodDays)
	return missedDays * domain.PrayersPerDay, nil
}
