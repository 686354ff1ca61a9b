// Package httpgw is the HTTP client of the ledger wire protocol: reads are
// GET requests with query parameters, mutations are JSON POST bodies, and
// every request names its action.
package httpgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
	"github.com/heartmarshall/qaza-tracker/internal/gateway"
)

// DefaultTimeout bounds every exchange when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// maxBodySize caps how much of a response is read.
const maxBodySize = 10 << 20

// Client implements gateway.Gateway over HTTP. It never retries.
type Client struct {
	endpoint   string
	httpClient *http.Client
	loc        *time.Location
	log        *slog.Logger
}

var _ gateway.Gateway = (*Client)(nil)

// New creates a Client for endpoint with its own http.Client.
func New(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewWithHTTPClient(endpoint, &http.Client{Timeout: timeout}, logger)
}

// NewWithHTTPClient creates a Client using hc (for testing).
func NewWithHTTPClient(endpoint string, hc *http.Client, logger *slog.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: hc,
		loc:        time.Local,
		log:        logger.With("adapter", "httpgw"),
	}
}

// WithLocation sets the zone timestamp-form log dates are read in.
func (c *Client) WithLocation(loc *time.Location) *Client {
	if loc != nil {
		c.loc = loc
	}
	return c
}

// GetProfile returns domain.ErrNotFound when the remote has no such user.
func (c *Client) GetProfile(ctx context.Context, identifier string) (*domain.Profile, error) {
	resp, err := c.read(ctx, gateway.ActionGetUser, identifier)
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		if resp.Code == gateway.CodeNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, remoteError(gateway.ActionGetUser, resp)
	}
	if resp.User == nil {
		return nil, domain.ErrNotFound
	}

	p := gateway.ProfileFromWire(*resp.User)
	return &p, nil
}

// CreateProfile returns domain.ErrDuplicateIdentity when the identifier is taken.
func (c *Client) CreateProfile(ctx context.Context, p domain.Profile) error {
	body := gateway.CreateUserRequest{
		Action:      gateway.ActionCreateUser,
		WireProfile: gateway.ProfileToWire(p),
	}
	// Registration never carries a qaza count.
	body.QazaCount = nil

	resp, err := c.write(ctx, gateway.ActionCreateUser, body)
	if err != nil {
		return err
	}
	if !resp.Success {
		if resp.IsDuplicate() {
			return domain.ErrDuplicateIdentity
		}
		return remoteError(gateway.ActionCreateUser, resp)
	}
	return nil
}

// AppendLogEntry submits one ledger row.
func (c *Client) AppendLogEntry(ctx context.Context, e domain.PrayerLogEntry) error {
	body := gateway.LogPrayerRequest{
		Action:  gateway.ActionLogPrayer,
		WireLog: gateway.LogToWire(e, nil),
	}

	resp, err := c.write(ctx, gateway.ActionLogPrayer, body)
	if err != nil {
		return err
	}
	if !resp.Success {
		return remoteError(gateway.ActionLogPrayer, resp)
	}
	return nil
}

// GetLogEntries returns rows in the order the remote sent them.
// Rows that cannot be decoded are skipped.
func (c *Client) GetLogEntries(ctx context.Context, identifier string) ([]domain.PrayerLogEntry, error) {
	resp, err := c.read(ctx, gateway.ActionGetUserLogs, identifier)
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, remoteError(gateway.ActionGetUserLogs, resp)
	}

	entries := make([]domain.PrayerLogEntry, 0, len(resp.Logs))
	for i, w := range resp.Logs {
		e, err := gateway.LogFromWireIn(w, c.loc)
		if err != nil {
			c.log.WarnContext(ctx, "skipping undecodable log row",
				slog.Int("index", i),
				slog.String("error", err.Error()),
			)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// GetStats returns the remote's aggregate; a missing payload is a zero snapshot.
func (c *Client) GetStats(ctx context.Context, identifier string) (domain.StatsSnapshot, error) {
	resp, err := c.read(ctx, gateway.ActionGetUserStats, identifier)
	if err != nil {
		return domain.StatsSnapshot{}, err
	}
	if resp.Error != "" {
		return domain.StatsSnapshot{}, remoteError(gateway.ActionGetUserStats, resp)
	}
	return gateway.StatsFromWire(resp.Stats), nil
}

// SetLifetimeQazaCount overwrites the stored count.
func (c *Client) SetLifetimeQazaCount(ctx context.Context, identifier string, count int) error {
	body := gateway.UpdateQazaRequest{
		Action: gateway.ActionUpdateQaza,
		Gmail:  identifier,
		Count:  count,
	}

	resp, err := c.write(ctx, gateway.ActionUpdateQaza, body)
	if err != nil {
		return err
	}
	if !resp.Success {
		if resp.Code == gateway.CodeNotFound {
			return domain.ErrNotFound
		}
		return remoteError(gateway.ActionUpdateQaza, resp)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

func (c *Client) read(ctx context.Context, action gateway.Action, identifier string) (*gateway.Response, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("httpgw %s: parse endpoint: %w", action, err)
	}
	q := u.Query()
	q.Set(gateway.ParamAction, action.String())
	q.Set(gateway.ParamIdentifier, identifier)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("httpgw %s: create request: %w", action, err)
	}
	return c.do(ctx, action, req)
}

func (c *Client) write(ctx context.Context, action gateway.Action, body any) (*gateway.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("httpgw %s: encode body: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("httpgw %s: create request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, action, req)
}

func (c *Client) do(ctx context.Context, action gateway.Action, req *http.Request) (*gateway.Response, error) {
	start := time.Now()
	c.log.DebugContext(ctx, "gateway request", slog.String("action", action.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpgw %s: %w: %v", action, domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("httpgw %s: %w: read body: %v", action, domain.ErrRemoteUnavailable, err)
	}

	c.log.DebugContext(ctx, "gateway response",
		slog.String("action", action.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	var out gateway.Response
	decodeErr := json.Unmarshal(body, &out)

	if err := mapStatus(resp.StatusCode, out, decodeErr); err != nil {
		return nil, fmt.Errorf("httpgw %s: %w", action, err)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("httpgw %s: %w: decode json: %v", action, domain.ErrRemoteUnavailable, decodeErr)
	}
	return &out, nil
}

// mapStatus turns a non-2xx status into a domain error. A decodable
// envelope on an error status is passed through so the caller can read
// its code.
func mapStatus(status int, resp gateway.Response, decodeErr error) error {
	if status >= 200 && status < 300 {
		return nil
	}
	if decodeErr == nil && (resp.Error != "" || resp.Code != "") {
		return nil
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: endpoint returned 404", domain.ErrRemoteUnavailable)
	}
	return fmt.Errorf("%w: unexpected status %d", domain.ErrRemoteUnavailable, status)
}

func remoteError(action gateway.Action, resp *gateway.Response) error {
	msg := resp.Error
	if msg == "" {
		msg = "request rejected"
	}
	if resp.Code == gateway.CodeInvalidInput {
		return fmt.Errorf("httpgw %s: %w", action, domain.NewValidationError("request", msg))
	}
	return fmt.Errorf("httpgw %s: %w: %s", action, domain.ErrRemoteUnavailable, msg)
}
