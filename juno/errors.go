package juno

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthentication indicates the authorization server did not issue an access token
	ErrAuthentication = errors.New("juno: unauthorized access, check client id and client secret")

	// ErrInvalidConfig indicates missing or malformed credentials
	ErrInvalidConfig = errors.New("juno: invalid config")

	// ErrInvalidRequest indicates a request rejected before it was sent
	ErrInvalidRequest = errors.New("juno: invalid request")

	// ErrInvalidSignature indicates a webhook delivery whose signature does not match
	ErrInvalidSignature = errors.New("juno: invalid webhook signature")
)

// AuthenticationError carries the authorization server's reply when no token was issued.
type AuthenticationError struct {
	StatusCode int
	Body       []byte
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: status=%d body=%s", ErrAuthentication, e.StatusCode, strings.TrimSpace(string(e.Body)))
}

func (e *AuthenticationError) Unwrap() error {
	return ErrAuthentication
}

// IsAuthentication returns true if err is an authentication failure
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}
