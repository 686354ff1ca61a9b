package gateway

import (
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// Action selects the operation of a wire request.
type Action string

const (
	ActionGetUser      Action = "getUser"
	ActionCreateUser   Action = "createUser"
	ActionLogPrayer    Action = "logPrayer"
	ActionGetUserLogs  Action = "getUserLogs"
	ActionGetUserStats Action = "getUserStats"
	ActionUpdateQaza   Action = "updateQaza"
)

func (a Action) String() string { return string(a) }

func (a Action) IsValid() bool {
	switch a {
	case ActionGetUser, ActionCreateUser, ActionLogPrayer,
		ActionGetUserLogs, ActionGetUserStats, ActionUpdateQaza:
		return true
	}
	return false
}

// IsRead reports whether the action travels as a GET with query parameters.
func (a Action) IsRead() bool {
	switch a {
	case ActionGetUser, ActionGetUserLogs, ActionGetUserStats:
		return true
	}
	return false
}

// Query parameter names for read actions.
const (
	ParamAction     = "action"
	ParamIdentifier = "gmail"
)

// ErrorCode is an optional machine-readable failure reason.
type ErrorCode string

const (
	CodeDuplicateIdentity ErrorCode = "DUPLICATE_IDENTITY"
	CodeInvalidInput      ErrorCode = "INVALID_INPUT"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeInternal          ErrorCode = "INTERNAL"
)

// Response is the envelope every action answers with.
type Response struct {
	Success bool         `json:"success"`
	User    *WireProfile `json:"user,omitempty"`
	Logs    []WireLog    `json:"logs,omitempty"`
	Stats   *WireStats   `json:"stats,omitempty"`
	Error   string       `json:"error,omitempty"`
	Code    ErrorCode    `json:"code,omitempty"`
}

// IsDuplicate reports whether a failed response means the identity exists.
// Remotes that predate Code signal it only in the message.
func (r Response) IsDuplicate() bool {
	if r.Code == CodeDuplicateIdentity {
		return true
	}
	return strings.Contains(strings.ToLower(r.Error), "already exists")
}

// WireProfile is the user payload.
type WireProfile struct {
	Gmail     string `json:"gmail"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	QazaCount *int   `json:"qazaCount,omitempty"`
}

// CreateUserRequest is the createUser body.
type CreateUserRequest struct {
	Action Action `json:"action"`
	WireProfile
}

// WireLog is one ledger row, both in logPrayer bodies and getUserLogs payloads.
// The profile snapshot fields mirror what the original client sends.
type WireLog struct {
	Gmail     string  `json:"gmail"`
	Name      string  `json:"name,omitempty"`
	Age       int     `json:"age,omitempty"`
	Gender    string  `json:"gender,omitempty"`
	Date      string  `json:"date"`
	Prayer    string  `json:"prayer"`
	Status    string  `json:"status"`
	Reason    string  `json:"reason,omitempty"`
	PeriodDay bool    `json:"periodDay"`
	Timestamp string  `json:"timestamp"`
	DedupKey  *string `json:"dedupKey,omitempty"`
}

// LogPrayerRequest is the logPrayer body.
type LogPrayerRequest struct {
	Action Action `json:"action"`
	WireLog
}

// UpdateQazaRequest is the updateQaza body.
type UpdateQazaRequest struct {
	Action Action `json:"action"`
	Gmail  string `json:"gmail"`
	Count  int    `json:"count"`
}

// WireStats is the stats payload.
type WireStats struct {
	TotalMissed int `json:"totalMissed"`
	Completed   int `json:"completed"`
	PeriodDays  int `json:"periodDays"`
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

// ProfileToWire converts a domain profile.
func ProfileToWire(p domain.Profile) WireProfile {
	return WireProfile{
		Gmail:     p.Identifier,
		Name:      p.DisplayName,
		Age:       p.Age,
		Gender:    p.Gender.String(),
		QazaCount: p.LifetimeQazaCount,
	}
}

// ProfileFromWire converts a user payload. Gender is taken as-is; callers
// validate it where it matters.
func ProfileFromWire(w WireProfile) domain.Profile {
	return domain.Profile{
		Identifier:        domain.NormalizeIdentifier(w.Gmail),
		DisplayName:       w.Name,
		Age:               w.Age,
		Gender:            domain.Gender(strings.ToLower(w.Gender)),
		LifetimeQazaCount: w.QazaCount,
	}
}

// LogToWire converts a ledger entry. The owner snapshot is optional.
func LogToWire(e domain.PrayerLogEntry, owner *domain.Profile) WireLog {
	w := WireLog{
		Gmail:     e.Owner,
		Date:      e.DateString(),
		Prayer:    e.Prayer.String(),
		Status:    e.Status.String(),
		PeriodDay: e.IsPeriodDay,
		Timestamp: e.RecordedAt.UTC().Format(time.RFC3339Nano),
		DedupKey:  e.DedupKey,
	}
	if e.Reason != nil {
		w.Reason = *e.Reason
	}
	if owner != nil {
		w.Name = owner.DisplayName
		w.Age = owner.Age
		w.Gender = owner.Gender.String()
	}
	return w
}

// LogFromWire converts a ledger row. Dates may arrive either as a bare
// calendar date or as a full timestamp (spreadsheet backends reformat them).
func LogFromWire(w WireLog) (domain.PrayerLogEntry, error) {
	return LogFromWireIn(w, time.Local)
}

// LogFromWireIn is LogFromWire with the zone a timestamp-form date is read
// in. Spreadsheet backends send a calendar date as the UTC instant of its
// local midnight, so the day must be taken in the writer's zone.
func LogFromWireIn(w WireLog, loc *time.Location) (domain.PrayerLogEntry, error) {
	date, err := parseDate(w.Date, loc)
	if err != nil {
		return domain.PrayerLogEntry{}, fmt.Errorf("date %q: %w", w.Date, err)
	}

	e := domain.PrayerLogEntry{
		Owner:       domain.NormalizeIdentifier(w.Gmail),
		Date:        date,
		Prayer:      domain.PrayerName(w.Prayer),
		Status:      domain.LogStatus(strings.ToLower(w.Status)),
		IsPeriodDay: w.PeriodDay,
		DedupKey:    w.DedupKey,
	}
	if w.Reason != "" {
		reason := w.Reason
		e.Reason = &reason
	}
	if w.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339Nano, w.Timestamp)
		if err != nil {
			return domain.PrayerLogEntry{}, fmt.Errorf("timestamp %q: %w", w.Timestamp, err)
		}
		e.RecordedAt = ts.UTC()
	}
	return e, nil
}

// StatsFromWire converts a stats payload; nil yields a zero snapshot.
func StatsFromWire(w *WireStats) domain.StatsSnapshot {
	if w == nil {
		return domain.StatsSnapshot{}
	}
	return domain.StatsSnapshot{
		TotalMissed: w.TotalMissed,
		Completed:   w.Completed,
		PeriodDays:  w.PeriodDays,
	}
}

// StatsToWire converts a snapshot.
func StatsToWire(s domain.StatsSnapshot) *WireStats {
	return &WireStats{
		TotalMissed: s.TotalMissed,
		Completed:   s.Completed,
		PeriodDays:  s.PeriodDays,
	}
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(domain.DateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	ts = ts.In(loc)
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}
