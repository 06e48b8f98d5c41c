package juno

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// SignatureHeader carries the hex HMAC-SHA256 of a webhook delivery body.
const SignatureHeader = "X-Signature"

// Notification is a webhook delivery.
type Notification struct {
	EventID   string             `json:"eventId"`
	EventType string             `json:"eventType"`
	Timestamp string             `json:"timestamp"`
	Data      []NotificationData `json:"data"`
}

type NotificationData struct {
	EntityID   string          `json:"entityId"`
	EntityType string          `json:"entityType"`
	Attributes json.RawMessage `json:"attributes"`
}

func ParseNotification(body []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}
	if n.EventType == "" {
		return nil, fmt.Errorf("%w: notification without eventType", ErrInvalidRequest)
	}
	return &n, nil
}

func VerifySignature(body []byte, signature, secret string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature)))) {
		return ErrInvalidSignature
	}
	return nil
}
