package domain

// StatsSnapshot holds summary counts computed by the remote ledger.
// It is never derived locally and never cached beyond one read.
type StatsSnapshot struct {
	TotalMissed int `json:"totalMissed"`
	Completed   int `json:"completed"`
	PeriodDays  int `json:"periodDays"`
}

// IsZero reports whether every counter is zero.
func (s StatsSnapshot) IsZero() bool {
	return s == StatsSnapshot{}
}

// DashboardRecentLimit is how many ledger entries a dashboard shows.
const DashboardRecentLimit = 5

// Dashboard is the summary view of one profile. Stats and Recent are
// fetched independently and each may be empty when its request failed.
type Dashboard struct {
	Profile Profile
	Stats   StatsSnapshot
	Recent  []PrayerLogEntry
}
