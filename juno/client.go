package juno

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	apiVersion     = "2"
	defaultTimeout = 30 * time.Second
)

// Environment is a pair of base URLs, both ending with a slash.
type Environment struct {
	APIURL  string
	AuthURL string
}

var (
	ProductionEnvironment = Environment{
		APIURL:  "https://api.juno.com.br/",
		AuthURL: "https://api.juno.com.br/authorization-server/",
	}
	SandboxEnvironment = Environment{
		APIURL:  "https://sandbox.boletobancario.com/api-integration/",
		AuthURL: "https://sandbox.boletobancario.com/authorization-server/",
	}
)

// Client talks to the Juno API v2. It is safe for concurrent use.
type Client struct {
	cfg    Config
	env    Environment
	http   *http.Client
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	session *Session
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Its Timeout and CheckRedirect
// are used as is, so Config.Timeout and the no-follow redirect policy no
// longer apply. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEnvironment overrides the hosts chosen by Config.Sandbox.
func WithEnvironment(env Environment) Option {
	return func(c *Client) { c.env = env }
}

// WithClock sets the time source used for session expiry. A nil clock is ignored.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New validates cfg and fetches the first access token before returning.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		cfg: cfg,
		env: cfg.Environment(),
		http: &http.Client{
			Timeout:       timeout,
			CheckRedirect: noRedirects,
		},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("component", "juno"), zap.String("api", c.env.APIURL))

	if _, err := c.Authenticate(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// noRedirects hands 3xx replies back to the caller like any other status.
func noRedirects(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// Response is the raw reply of the API. Non-2xx statuses are not turned into errors.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode/100 == 2
}

func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

func (r *Response) String() string {
	return string(r.Body)
}

// InferMethod picks the verb from the shape of a call: POST with a body,
// PUT for bodiless paths ending in "cancelation", GET otherwise.
func InferMethod(path string, hasBody bool) string {
	if hasBody {
		return http.MethodPost
	}
	if strings.HasSuffix(path, "cancelation") {
		return http.MethodPut
	}
	return http.MethodGet
}

// Request calls an endpoint that has no dedicated method, inferring the verb
// with InferMethod. A nil body sends no payload.
func (c *Client) Request(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, InferMethod(path, body != nil), path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Response, error) {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.env.APIURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}

	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	req.Header.Set("X-Api-Version", apiVersion)
	req.Header.Set("X-Resource-Token", c.cfg.ResourceToken)
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, payload)
}

func (c *Client) send(req *http.Request, payload []byte) (*Response, error) {
	log := c.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)
	if c.cfg.Debug {
		log.Debug("juno request", zap.String("curl", curlCommand(req, payload, c.cfg.ResourceToken, c.cfg.ClientSecret)))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error("juno request failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}

	log.Debug("juno response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
