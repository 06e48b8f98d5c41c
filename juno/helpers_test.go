package juno_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/NordeN37/juno-integration/juno"
	"github.com/stretchr/testify/require"
)

const (
	testResourceToken = "resource-token"
	testClientID      = "client-id"
	testClientSecret  = "client-secret"
)

type recorded struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// fakeJuno serves the authorization server under /auth/ and the API under /api/.
type fakeJuno struct {
	srv *httptest.Server

	mu         sync.Mutex
	tokenCalls int
	tokenReqs  []recorded
	requests   []recorded

	// expiresIn is reported with every issued token.
	expiresIn int
	// apiStatus and apiBody are returned for every API call.
	apiStatus int
	apiBody   string
}

func newFakeJuno(t *testing.T) *fakeJuno {
	t.Helper()

	f := &fakeJuno{
		expiresIn: 3600,
		apiStatus: http.StatusOK,
		apiBody:   `{"ok":true}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.tokenReqs = append(f.tokenReqs, record(r))

		id, secret, ok := r.BasicAuth()
		if !ok || id != testClientID || secret != testClientSecret {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":"unauthorized","error_description":"Bad credentials"}`)
			return
		}

		f.tokenCalls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"bearer","expires_in":%d}`, f.tokenCalls, f.expiresIn)
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.requests = append(f.requests, record(r))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.apiStatus)
		io.WriteString(w, f.apiBody)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)

	return f
}

func record(r *http.Request) recorded {
	body, _ := io.ReadAll(r.Body)
	return recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	}
}

func (f *fakeJuno) env() juno.Environment {
	return juno.Environment{
		APIURL:  f.srv.URL + "/api/",
		AuthURL: f.srv.URL + "/auth/",
	}
}

func (f *fakeJuno) last(t *testing.T) recorded {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.requests, "no API request recorded")
	return f.requests[len(f.requests)-1]
}

func (f *fakeJuno) tokens() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.tokenCalls
}

func testConfig() juno.Config {
	return juno.Config{
		ResourceToken: testResourceToken,
		ClientID:      testClientID,
		ClientSecret:  testClientSecret,
	}
}

func newTestClient(t *testing.T, f *fakeJuno, opts ...juno.Option) *juno.Client {
	t.Helper()

	opts = append([]juno.Option{juno.WithEnvironment(f.env())}, opts...)
	c, err := juno.New(context.Background(), testConfig(), opts...)
	require.NoError(t, err)

	return c
}
