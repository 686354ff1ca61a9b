package qaza

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

func TestCalculate_Examples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		start  int
		age    int
		gender domain.Gender
		avg    int
		want   int
	}{
		{"male 13 to 25", 13, 25, domain.GenderMale, 0, 21900},
		{"female 15 to 25 avg 5", 15, 25, domain.GenderFemale, 5, 15250},
		{"female avg zero", 15, 25, domain.GenderFemale, 0, 18250},
		{"male ignores avg", 13, 25, domain.GenderMale, 10, 21900},
		{"one year", 12, 13, domain.GenderMale, 0, 1825},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Calculate(tt.start, tt.age, tt.gender, tt.avg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_MaleFormula(t *testing.T) {
	t.Parallel()

	for start := 0; start <= 30; start += 3 {
		for age := start; age <= 120; age += 7 {
			got, err := Calculate(start, age, domain.GenderMale, 5)
			require.NoError(t, err)
			assert.Equal(t, (age-start)*365*5, got, "start=%d age=%d", start, age)
		}
	}
}

func TestCalculate_NeverNegative(t *testing.T) {
	t.Parallel()

	avgs := []int{
		math.MinInt, -100, -1, 0, 1, 5, 30, 31, 32, 1000,
		math.MaxInt/domain.MonthsPerYear - 1, math.MaxInt / domain.MonthsPerYear,
		math.MaxInt/domain.MonthsPerYear + 1, math.MaxInt,
	}
	for _, avg := range avgs {
		for _, g := range []domain.Gender{domain.GenderMale, domain.GenderFemale} {
			got, err := Calculate(10, 60, g, avg)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, 0, "gender=%s avg=%d", g, avg)
		}
	}
}

func TestCalculate_ClampsToZero(t *testing.T) {
	t.Parallel()

	// 31 days a month exceed 365 a year; so does anything larger.
	for _, avg := range []int{31, 32, math.MaxInt / domain.MonthsPerYear, math.MaxInt/domain.MonthsPerYear + 1, math.MaxInt} {
		got, err := Calculate(10, 60, domain.GenderFemale, avg)
		require.NoError(t, err)
		assert.Zero(t, got, "avg=%d", avg)
	}
}

func TestCalculate_YearCoveringAverageBoundary(t *testing.T) {
	t.Parallel()

	// 30*12 = 360 leaves 5 days a year; 31*12 covers the whole year.
	got, err := Calculate(10, 12, domain.GenderFemale, 30)
	require.NoError(t, err)
	assert.Equal(t, 2*5*5, got)

	got, err = Calculate(10, 12, domain.GenderFemale, 31)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestCalculate_MaxAgeBoundsResult(t *testing.T) {
	t.Parallel()

	got, err := Calculate(0, domain.MaxAge, domain.GenderMale, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxAge*365*5, got)
}

func TestCalculate_SameAgeIsZero(t *testing.T) {
	t.Parallel()

	for _, x := range []int{0, 1, 13, 60, 120} {
		for _, g := range []domain.Gender{domain.GenderMale, domain.GenderFemale} {
			got, err := Calculate(x, x, g, 5)
			require.NoError(t, err)
			assert.Zero(t, got)
		}
	}
}

func TestCalculate_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start int
		age   int
	}{
		{"current before start", 20, 15},
		{"negative start", -1, 15},
		{"negative current", 5, -3},
		{"current above max age", 0, domain.MaxAge + 1},
		{"start above max age", domain.MaxAge + 1, domain.MaxAge + 2},
		{"huge current age", 0, math.MaxInt/1825 + 1000},
		{"max int current age", 0, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Calculate(tt.start, tt.age, domain.GenderMale, 0)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, got)
		})
	}
}
