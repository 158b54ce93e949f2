package linebot

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Reply tokens carried by platform connectivity probes. Events bearing
// them verify webhook reachability and must never reach business logic.
const (
	ProbeReplyTokenZeros = "00000000000000000000000000000000"
	ProbeReplyTokenOnes  = "ffffffffffffffffffffffffffffffff"
)

const EventTypeMessage = "message"

// WebhookRequest is the body of a Messaging API webhook delivery.
type WebhookRequest struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

type Event struct {
	Type       string        `json:"type"`
	ReplyToken string        `json:"replyToken"`
	Source     EventSource   `json:"source"`
	Message    *EventMessage `json:"message,omitempty"`
	Timestamp  int64         `json:"timestamp,omitempty"`
}

type EventSource struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type EventMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// IsConnectivityProbe reports whether the event is a reachability check
// rather than user content.
func (e Event) IsConnectivityProbe() bool {
	return e.ReplyToken == ProbeReplyTokenZeros || e.ReplyToken == ProbeReplyTokenOnes
}

// ValidateSignature checks the X-Line-Signature header value against the
// raw request body using the bot channel secret.
func ValidateSignature(channelSecret, signature string, body []byte) bool {
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}
