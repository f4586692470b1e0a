package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotConfigured is returned by every call when the backend URL or API key
// is missing. Callers fall back to their demo datasets on it.
var ErrNotConfigured = errors.New("backend is not configured")

// Error is a non-2xx response from the hosted backend. Only its message text
// is ever surfaced to users.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend request failed with status %d", e.Status)
	}
	return e.Message
}

// Config carries the two values the hosted backend hands out: the project
// endpoint URL and the public API key.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client is a thin row-level client for the hosted backend's REST API.
// It knows nothing about the tables it touches beyond their names; the
// repositories layer owns the mapping to models.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}
}

// Enabled reports whether the client has credentials to talk to the backend.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

// Filter is one query predicate in the backend's column=op.value syntax.
type Filter struct {
	column string
	value  string
}

func Eq(column, value string) Filter {
	return Filter{column: column, value: "eq." + value}
}

func Ilike(column, pattern string) Filter {
	return Filter{column: column, value: "ilike." + pattern}
}

func In(column string, values []string) Filter {
	return Filter{column: column, value: "in.(" + strings.Join(values, ",") + ")"}
}

// Or combines column.op.value conditions disjunctively, e.g.
// Or("sender_id.eq.42", "receiver_id.eq.42").
func Or(conditions ...string) Filter {
	return Filter{column: "or", value: "(" + strings.Join(conditions, ",") + ")"}
}

// Query shapes a Select call: projected columns, predicates, ordering, limit.
type Query struct {
	Columns    string
	Filters    []Filter
	OrderBy    string
	Descending bool
	NullsLast  bool
	Limit      int
}

func (q Query) encode() url.Values {
	params := url.Values{}
	columns := q.Columns
	if columns == "" {
		columns = "*"
	}
	params.Set("select", columns)
	for _, f := range q.Filters {
		params.Add(f.column, f.value)
	}
	if q.OrderBy != "" {
		order := q.OrderBy
		if q.Descending {
			order += ".desc"
		} else {
			order += ".asc"
		}
		if q.NullsLast {
			order += ".nullslast"
		}
		params.Set("order", order)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params
}

// Select fetches rows from table into dst, which must be a pointer to a slice
// of row structs. Requests run with the session's token when one is given so
// the backend's row-level rules apply to the acting user.
func (c *Client) Select(ctx context.Context, sess *Session, table string, q Query, dst interface{}) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, table, q.encode().Encode())
	return c.do(ctx, sess, http.MethodGet, endpoint, nil, "", dst)
}

// Insert creates rows in table. When dst is non-nil the created rows are
// decoded back into it.
func (c *Client) Insert(ctx context.Context, sess *Session, table string, payload interface{}, dst interface{}) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	prefer := "return=minimal"
	if dst != nil {
		prefer = "return=representation"
	}
	return c.do(ctx, sess, http.MethodPost, endpoint, payload, prefer, dst)
}

// Update patches every row matching filters with the non-zero fields of
// payload.
func (c *Client) Update(ctx context.Context, sess *Session, table string, payload interface{}, filters []Filter) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}
	params := url.Values{}
	for _, f := range filters {
		params.Add(f.column, f.value)
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, table, params.Encode())
	return c.do(ctx, sess, http.MethodPatch, endpoint, payload, "return=minimal", nil)
}

// Upsert inserts rows, merging with existing rows on the onConflict columns
// (comma separated).
func (c *Client) Upsert(ctx context.Context, sess *Session, table string, payload interface{}, onConflict string) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}
	params := url.Values{}
	if onConflict != "" {
		params.Set("on_conflict", onConflict)
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, table, params.Encode())
	return c.do(ctx, sess, http.MethodPost, endpoint, payload, "resolution=merge-duplicates,return=minimal", nil)
}

func (c *Client) do(ctx context.Context, sess *Session, method, endpoint string, payload interface{}, prefer string, dst interface{}) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode backend payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	token := c.apiKey
	if sess != nil && sess.AccessToken != "" {
		token = sess.AccessToken
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var parsed struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	message := ""
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&parsed); err == nil {
		switch {
		case parsed.Message != "":
			message = parsed.Message
		case parsed.Msg != "":
			message = parsed.Msg
		case parsed.ErrorDescription != "":
			message = parsed.ErrorDescription
		}
	}
	return &Error{Status: resp.StatusCode, Message: message}
}
