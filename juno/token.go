package juno

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// A session is treated as expired this long before the server would reject it.
const expirySkew = 30 * time.Second

// Session is a bearer token obtained with the client-credentials grant.
type Session struct {
	AccessToken string
	TokenType   string
	// ExpiresAt is zero when the server did not report expires_in.
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(expirySkew).Before(s.ExpiresAt)
}

type tokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   json.RawMessage `json:"expires_in"`
}

// lifetime reads expires_in as a number or a quoted number. Anything else
// yields zero, leaving the session without a local expiry.
func (t tokenResponse) lifetime() time.Duration {
	raw := strings.Trim(strings.TrimSpace(string(t.ExpiresIn)), `"`)
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// Authenticate fetches a new access token, replacing the current session.
// The returned session is a copy.
func (c *Client) Authenticate(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.authenticateLocked(ctx)
	if err != nil {
		return nil, err
	}
	cp := *sess
	return &cp, nil
}

// Session returns a copy of the current session.
func (c *Client) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return Session{}
	}
	return *c.session
}

func (c *Client) currentSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.Expired(c.now()) {
		return c.session, nil
	}

	c.logger.Info("juno session expired, re-authenticating")
	return c.authenticateLocked(ctx)
}

func (c *Client) authenticateLocked(ctx context.Context) (*Session, error) {
	form := url.Values{"grant_type": {"client_credentials"}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.env.AuthURL+"oauth/token", strings.NewReader(form))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+basicCredentials(c.cfg.ClientID, c.cfg.ClientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.send(req, []byte(form))
	if err != nil {
		return nil, fmt.Errorf("fetch access token: %w", err)
	}

	var tok tokenResponse
	if err := json.Unmarshal(resp.Body, &tok); err != nil || tok.AccessToken == "" {
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	sess := &Session{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
	}
	if ttl := tok.lifetime(); ttl > 0 {
		sess.ExpiresAt = c.now().Add(ttl)
	}
	c.session = sess

	c.logger.Info("juno session established", zap.Time("expires_at", sess.ExpiresAt))

	return sess, nil
}

func basicCredentials(clientID, clientSecret string) string {
	return base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
}
