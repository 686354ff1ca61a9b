package domain

// Bounds for Qaza estimation inputs.
const (
	DaysPerYear               = 365
	MonthsPerYear             = 12
	MaxAvgPeriodDaysPerMonth  = 31
	DefaultAvgPeriodDaysMonth = 5
)

// QazaEstimate is a session-local lifetime estimate. It is persisted only
// when the user explicitly saves ComputedTotal into the profile.
type QazaEstimate struct {
	AgeAtObligationStart  int
	CurrentAge            int
	Gender                Gender
	AvgPeriodDaysPerMonth int
	ComputedTotal         int
}
