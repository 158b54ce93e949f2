package linepay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{
		ChannelID:     "channel-1",
		ChannelSecret: "secret-1",
		BaseURL:       server.URL,
	})
}

func TestClient_Reserve(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/v2/payments/request" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			if r.Header.Get(headerChannelID) != "channel-1" {
				t.Errorf("expected channel id header, got %q", r.Header.Get(headerChannelID))
			}
			if r.Header.Get(headerChannelSecret) != "secret-1" {
				t.Errorf("expected channel secret header")
			}

			var body ReserveRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if body.Amount != 10 || body.Currency != "JPY" {
				t.Errorf("expected 10 JPY, got %d %s", body.Amount, body.Currency)
			}

			w.Header().Set("Content-Type", "application/json")
			// The gateway returns the transaction id as a JSON number.
			_, _ = w.Write([]byte(`{
				"returnCode": "0000",
				"returnMessage": "OK",
				"info": {
					"transactionId": 2025021412000001,
					"paymentUrl": {"web": "https://pay.example/web", "app": "line://pay"}
				}
			}`))
		})

		info, err := client.Reserve(context.Background(), ReserveRequest{
			ProductName: "チョコレート",
			Amount:      10,
			Currency:    "JPY",
			OrderID:     "order-1",
			ConfirmURL:  "https://example.com/pay/confirm",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if info.TransactionID != "2025021412000001" {
			t.Fatalf("expected transaction id as decimal string, got %q", info.TransactionID)
		}
		if info.PaymentURL != "https://pay.example/web" {
			t.Fatalf("expected web payment url, got %q", info.PaymentURL)
		}
	})

	t.Run("non-zero return code", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"returnCode": "1104", "returnMessage": "merchant not found"}`))
		})

		_, err := client.Reserve(context.Background(), ReserveRequest{Amount: 10, Currency: "JPY"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.ReturnCode != "1104" {
			t.Fatalf("expected returnCode 1104, got %s", apiErr.ReturnCode)
		}
	})

	t.Run("http error status", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		})

		if _, err := client.Reserve(context.Background(), ReserveRequest{}); err == nil {
			t.Fatalf("expected error for 500 response")
		}
	})
}

func TestClient_Confirm(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v2/payments/tx1/confirm" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			var body struct {
				Amount   int64  `json:"amount"`
				Currency string `json:"currency"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if body.Amount != 10 || body.Currency != "JPY" {
				t.Errorf("expected 10 JPY, got %d %s", body.Amount, body.Currency)
			}

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"returnCode": "0000",
				"returnMessage": "OK",
				"info": {"transactionId": 1, "orderId": "order-1"}
			}`))
		})

		info, err := client.Confirm(context.Background(), "tx1", 10, "JPY")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if info.OrderID != "order-1" {
			t.Fatalf("expected order id, got %q", info.OrderID)
		}
	})

	t.Run("capture rejected", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"returnCode": "1172", "returnMessage": "existing same orderId"}`))
		})

		_, err := client.Confirm(context.Background(), "tx1", 10, "JPY")
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
	})
}
