package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Session identifies the acting user for the duration of one request.
// It is threaded explicitly through handlers and services instead of living
// in process-wide state; a nil *Session means anonymous.
type Session struct {
	AccessToken string
	UserID      string
	Email       string
	ExpiresAt   time.Time
}

// AuthClient talks to the hosted backend's session auth API: sign up, sign in
// with password, sign out. Token validation on incoming requests is handled
// separately by the auth middleware.
type AuthClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewAuthClient(cfg Config) *AuthClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &AuthClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}
}

func (a *AuthClient) Enabled() bool {
	return a != nil && a.baseURL != "" && a.apiKey != ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (t tokenResponse) session() *Session {
	sess := &Session{
		AccessToken: t.AccessToken,
		UserID:      t.User.ID,
		Email:       t.User.Email,
	}
	if t.ExpiresIn > 0 {
		sess.ExpiresAt = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return sess
}

// SignUp registers a new account. When the backend requires email
// confirmation the returned session has an empty AccessToken and the caller
// should tell the user to confirm before signing in.
func (a *AuthClient) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	if !a.Enabled() {
		return nil, ErrNotConfigured
	}
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     map[string]string{"name": name},
	}
	var resp tokenResponse
	if err := a.post(ctx, a.baseURL+"/auth/v1/signup", "", payload, &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

// SignIn exchanges email/password for an access token.
func (a *AuthClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if !a.Enabled() {
		return nil, ErrNotConfigured
	}
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp tokenResponse
	endpoint := a.baseURL + "/auth/v1/token?grant_type=password"
	if err := a.post(ctx, endpoint, "", payload, &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

// SignOut revokes the session's token. A failed revocation is not fatal to
// the caller; the frontend drops the token either way.
func (a *AuthClient) SignOut(ctx context.Context, sess *Session) error {
	if !a.Enabled() {
		return ErrNotConfigured
	}
	if sess == nil || sess.AccessToken == "" {
		return nil
	}
	return a.post(ctx, a.baseURL+"/auth/v1/logout", sess.AccessToken, nil, nil)
}

func (a *AuthClient) post(ctx context.Context, endpoint, token string, payload, dst interface{}) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode auth payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", a.apiKey)
	if token == "" {
		token = a.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	return nil
}
