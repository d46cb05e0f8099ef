package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jwalitptl/reception-gateway/internal/model"
	"github.com/jwalitptl/reception-gateway/pkg/logger"
	"github.com/jwalitptl/reception-gateway/pkg/metrics"
)

type requestIDKey struct{}

// WithRequestID tags a context so every outbound call built from it carries
// the caller's X-Request-ID, tying upstream log lines back to the inbound
// request.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ClinicQuery narrows a clinic listing.
type ClinicQuery struct {
	IsActive   *bool
	CategoryID int
	Search     string
	PerPage    int
}

// ScheduleQuery narrows a schedule listing.
type ScheduleQuery struct {
	FromDate string
	ToDate   string
	ClinicID int
	UserID   int
	TimeSlot model.TimeSlot
	PerPage  int
}

// UserQuery narrows a staff listing.
type UserQuery struct {
	Role     string
	IsActive *bool
	Search   string
	PerPage  int
}

// Client reads from the upstream staff-scheduling API on behalf of a caller
// whose bearer token is passed per call; the client holds no credential of
// its own.
type Client struct {
	http    *http.Client
	baseURL string
	host    string
	timeout time.Duration
	log     *logger.Logger
	metrics *metrics.Metrics
}

type Option func(*Client)

// WithMetrics attaches upstream call metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithHTTPClient overrides the transport, used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(baseURL, host string, timeout time.Duration, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{},
		baseURL: baseURL,
		host:    host,
		timeout: timeout,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListClinics(ctx context.Context, token string, q ClinicQuery) ([]model.Clinic, error) {
	query := url.Values{}
	if q.IsActive != nil {
		query.Set("is_active", strconv.FormatBool(*q.IsActive))
	}
	if q.CategoryID > 0 {
		query.Set("category_id", strconv.Itoa(q.CategoryID))
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(q.PerPage))
	}

	var clinics []model.Clinic
	if err := c.get(ctx, "clinics", "/clinics", query, token, &clinics); err != nil {
		return nil, err
	}
	return clinics, nil
}

func (c *Client) ListSchedules(ctx context.Context, token string, q ScheduleQuery) ([]model.Schedule, error) {
	query := url.Values{}
	if q.FromDate != "" {
		query.Set("from_date", q.FromDate)
	}
	if q.ToDate != "" {
		query.Set("to_date", q.ToDate)
	}
	if q.ClinicID > 0 {
		query.Set("clinic_id", strconv.Itoa(q.ClinicID))
	}
	if q.UserID > 0 {
		query.Set("user_id", strconv.Itoa(q.UserID))
	}
	if q.TimeSlot != "" {
		query.Set("time_slot", string(q.TimeSlot))
	}
	if q.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(q.PerPage))
	}

	var schedules []model.Schedule
	if err := c.get(ctx, "schedules", "/schedules", query, token, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *Client) ListUsers(ctx context.Context, token string, q UserQuery) ([]model.StaffMember, error) {
	query := url.Values{}
	if q.Role != "" {
		query.Set("role", q.Role)
	}
	if q.IsActive != nil {
		query.Set("is_active", strconv.FormatBool(*q.IsActive))
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(q.PerPage))
	}

	var users []model.StaffMember
	if err := c.get(ctx, "users", "/users", query, token, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) VerifyToken(ctx context.Context, token string) (*model.TokenInfo, error) {
	var info model.TokenInfo
	if err := c.get(ctx, "auth_verify", "/auth/verify", nil, token, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Ping checks that the upstream host answers at all. Any HTTP response,
// including an auth rejection, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/clinics", nil)
	if err != nil {
		return err
	}
	req.Host = c.host

	resp, err := c.http.Do(req)
	if err != nil {
		return ClassifyTransportError(err)
	}
	resp.Body.Close()
	return nil
}

// Probe performs an authorized clinics read and reports the upstream HTTP
// status, for the connection diagnostics endpoint.
func (c *Client) Probe(ctx context.Context, token string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/clinics?per_page=1", nil)
	if err != nil {
		return 0, err
	}
	c.decorate(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, ClassifyTransportError(err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, resource, path string, query url.Values, token string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	c.decorate(req, token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(resource, "error", time.Since(start))
		c.log.Error(err, "upstream fetch failed", "resource", resource)
		return ClassifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.ObserveUpstream(resource, "rejected", time.Since(start))
		c.log.Warn("upstream rejected request", "resource", resource, "status", resp.StatusCode)
		return &StatusError{Resource: resource, Status: resp.StatusCode}
	}

	var envelope model.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.metrics.ObserveUpstream(resource, "error", time.Since(start))
		return fmt.Errorf("decode upstream %s response: %w", resource, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		c.metrics.ObserveUpstream(resource, "error", time.Since(start))
		return fmt.Errorf("decode upstream %s data: %w", resource, err)
	}

	c.metrics.ObserveUpstream(resource, "success", time.Since(start))
	c.log.Debug("upstream fetch succeeded", "resource", resource, "status", resp.StatusCode)
	return nil
}

func (c *Client) decorate(req *http.Request, token string) {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := requestIDFrom(req.Context()); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}
	// Pin the Host header to the upstream hostname regardless of how the
	// target URL was built.
	req.Host = c.host
}
