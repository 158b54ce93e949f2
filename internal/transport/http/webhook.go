package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sumihiro3/hands-on-line-pay/internal/linebot"
)

const signatureHeader = "X-Line-Signature"

const defaultEventTimeout = 30 * time.Second

// Events larger than this are not legitimate webhook deliveries.
const maxWebhookBody = 1 << 20

// EventHandler is the minimal interface needed to process webhook events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event linebot.Event) error
}

// WebhookHandler accepts Messaging API deliveries. It acknowledges the
// provider immediately and fans each event out to its own goroutine, so a
// slow gateway call for one event never blocks its batch siblings and the
// provider never sees per-event outcomes.
type WebhookHandler struct {
	events        EventHandler
	channelSecret string
	eventTimeout  time.Duration
	log           *logrus.Logger

	wg sync.WaitGroup
}

func NewWebhookHandler(events EventHandler, channelSecret string, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		events:        events,
		channelSecret: channelSecret,
		eventTimeout:  defaultEventTimeout,
		log:           log,
	}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if !linebot.ValidateSignature(h.channelSecret, r.Header.Get(signatureHeader), body) {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	var req linebot.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// The webhook contract is fire-and-forget: the batch is acknowledged
	// before any event's effects are complete, and a failing event must
	// not surface to the provider. Workers outlive the request, so they
	// run on a context detached from its cancellation.
	parent := context.WithoutCancel(r.Context())
	for _, event := range req.Events {
		event := event
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			ctx, cancel := context.WithTimeout(parent, h.eventTimeout)
			defer cancel()
			if err := h.events.HandleEvent(ctx, event); err != nil {
				h.log.WithError(err).WithField("event_type", event.Type).Error("event handling failed")
			}
		}()
	}

	w.WriteHeader(http.StatusOK)
}

// Wait blocks until all in-flight event workers finish. Used on shutdown
// and in tests; never on the request path.
func (h *WebhookHandler) Wait() {
	h.wg.Wait()
}
