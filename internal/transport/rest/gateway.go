package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
	"github.com/heartmarshall/qaza-tracker/internal/gateway"
	"github.com/heartmarshall/qaza-tracker/internal/transport/middleware"
)

// maxBodyBytes bounds write request bodies.
const maxBodyBytes = 64 << 10

type actionObserver interface {
	ObserveAction(action, outcome string)
}

// GatewayHandler serves the action-dispatched /exec endpoint on top of any
// gateway.Gateway implementation.
type GatewayHandler struct {
	log     *slog.Logger
	ledger  gateway.Gateway
	metrics actionObserver
	now     func() time.Time
}

// NewGatewayHandler creates a GatewayHandler. metrics may be nil.
func NewGatewayHandler(logger *slog.Logger, ledger gateway.Gateway, metrics actionObserver) *GatewayHandler {
	return &GatewayHandler{
		log:     logger.With("handler", "gateway"),
		ledger:  ledger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Read serves GET actions selected by the action query parameter.
func (h *GatewayHandler) Read(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	action := gateway.Action(q.Get(gateway.ParamAction))
	if !action.IsValid() || !action.IsRead() {
		h.fail(w, r, action, domain.NewValidationError("action", "unknown read action"))
		return
	}

	id := domain.NormalizeIdentifier(q.Get(gateway.ParamIdentifier))
	if err := domain.ValidateIdentifier(id, ""); err != nil {
		h.fail(w, r, action, domain.NewValidationError("gmail", "must be an email address"))
		return
	}
	middleware.SetIdentifier(r.Context(), id)

	var (
		resp gateway.Response
		err  error
	)
	switch action {
	case gateway.ActionGetUser:
		resp, err = h.getUser(r, id)
	case gateway.ActionGetUserLogs:
		resp, err = h.getUserLogs(r, id)
	case gateway.ActionGetUserStats:
		resp, err = h.getUserStats(r, id)
	}
	if err != nil {
		h.fail(w, r, action, err)
		return
	}
	h.ok(w, action, resp)
}

// Write serves POST actions selected by the action field of the JSON body.
func (h *GatewayHandler) Write(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.fail(w, r, "", domain.NewValidationError("body", "unreadable or too large"))
		return
	}

	var envelope struct {
		Action gateway.Action `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		h.fail(w, r, "", domain.NewValidationError("body", "invalid JSON"))
		return
	}
	action := envelope.Action
	if !action.IsValid() || action.IsRead() {
		h.fail(w, r, action, domain.NewValidationError("action", "unknown write action"))
		return
	}

	switch action {
	case gateway.ActionCreateUser:
		err = h.createUser(r, body)
	case gateway.ActionLogPrayer:
		err = h.logPrayer(r, body)
	case gateway.ActionUpdateQaza:
		err = h.updateQaza(r, body)
	}
	if err != nil {
		h.fail(w, r, action, err)
		return
	}
	h.ok(w, action, gateway.Response{})
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

func (h *GatewayHandler) getUser(r *http.Request, id string) (gateway.Response, error) {
	p, err := h.ledger.GetProfile(r.Context(), id)
	if err != nil {
		return gateway.Response{}, err
	}
	wp := gateway.ProfileToWire(*p)
	return gateway.Response{User: &wp}, nil
}

func (h *GatewayHandler) getUserLogs(r *http.Request, id string) (gateway.Response, error) {
	entries, err := h.ledger.GetLogEntries(r.Context(), id)
	if err != nil {
		return gateway.Response{}, err
	}

	// Rows carry the owner's snapshot. A missing profile only drops it.
	owner, err := h.ledger.GetProfile(r.Context(), id)
	if err != nil {
		owner = nil
	}

	logs := make([]gateway.WireLog, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, gateway.LogToWire(e, owner))
	}
	return gateway.Response{Logs: logs}, nil
}

func (h *GatewayHandler) getUserStats(r *http.Request, id string) (gateway.Response, error) {
	snap, err := h.ledger.GetStats(r.Context(), id)
	if err != nil {
		return gateway.Response{}, err
	}
	return gateway.Response{Stats: gateway.StatsToWire(snap)}, nil
}

func (h *GatewayHandler) createUser(r *http.Request, body []byte) error {
	var req gateway.CreateUserRequest
	if err := decodeBody(body, &req); err != nil {
		return err
	}
	p := gateway.ProfileFromWire(req.WireProfile)
	middleware.SetIdentifier(r.Context(), p.Identifier)
	if err := validateProfile(p); err != nil {
		return err
	}
	return h.ledger.CreateProfile(r.Context(), p)
}

func (h *GatewayHandler) logPrayer(r *http.Request, body []byte) error {
	var req gateway.LogPrayerRequest
	if err := decodeBody(body, &req); err != nil {
		return err
	}
	e, err := entryFromRequest(req, h.now())
	if err != nil {
		return err
	}
	middleware.SetIdentifier(r.Context(), e.Owner)
	return h.ledger.AppendLogEntry(r.Context(), e)
}

func (h *GatewayHandler) updateQaza(r *http.Request, body []byte) error {
	var req gateway.UpdateQazaRequest
	if err := decodeBody(body, &req); err != nil {
		return err
	}
	id, err := validateQazaUpdate(req)
	if err != nil {
		return err
	}
	middleware.SetIdentifier(r.Context(), id)
	return h.ledger.SetLifetimeQazaCount(r.Context(), id, req.Count)
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

func (h *GatewayHandler) ok(w http.ResponseWriter, action gateway.Action, resp gateway.Response) {
	resp.Success = true
	h.observe(action, "ok")
	writeJSON(w, http.StatusOK, resp)
}

func (h *GatewayHandler) fail(w http.ResponseWriter, r *http.Request, action gateway.Action, err error) {
	status, code, msg := mapError(err)
	h.observe(action, string(code))

	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "gateway action failed",
			slog.String("action", action.String()),
			slog.String("error", err.Error()),
		)
	}
	writeJSON(w, status, gateway.Response{Success: false, Error: msg, Code: code})
}

func (h *GatewayHandler) observe(action gateway.Action, outcome string) {
	if h.metrics == nil {
		return
	}
	name := action.String()
	if !action.IsValid() {
		name = "unknown"
	}
	h.metrics.ObserveAction(name, outcome)
}

func mapError(err error) (int, gateway.ErrorCode, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, gateway.CodeInvalidInput, verr.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, gateway.CodeInvalidInput, err.Error()
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusConflict, gateway.CodeDuplicateIdentity, "User already exists"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, gateway.CodeNotFound, "User not found"
	default:
		return http.StatusInternalServerError, gateway.CodeInternal, "internal error"
	}
}

func decodeBody(body []byte, v any) error {
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(v); err != nil {
		return domain.NewValidationError("body", fmt.Sprintf("invalid request: %v", err))
	}
	return nil
}
