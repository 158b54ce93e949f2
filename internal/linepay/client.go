// Package linepay is a minimal client for the LINE Pay v2 payments API,
// covering the reserve (request) and confirm legs used by the bot.
package linepay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	productionBaseURL = "https://api-pay.line.me"
	sandboxBaseURL    = "https://sandbox-api-pay.line.me"

	headerChannelID     = "X-LINE-ChannelId"
	headerChannelSecret = "X-LINE-ChannelSecret"

	returnCodeOK = "0000"

	defaultTimeout = 10 * time.Second
)

// Config carries the channel credentials issued by LINE Pay. BaseURL
// overrides the sandbox/production host when set, for tests.
type Config struct {
	ChannelID     string
	ChannelSecret string
	Sandbox       bool
	Timeout       time.Duration
	BaseURL       string
}

type Client struct {
	http *resty.Client
}

func New(cfg Config) *Client {
	baseURL := productionBaseURL
	if cfg.Sandbox {
		baseURL = sandboxBaseURL
	}
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader(headerChannelID, cfg.ChannelID).
		SetHeader(headerChannelSecret, cfg.ChannelSecret).
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient}
}

// APIError is a LINE Pay response whose returnCode signals failure.
type APIError struct {
	ReturnCode    string
	ReturnMessage string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("line pay: returnCode=%s message=%q", e.ReturnCode, e.ReturnMessage)
}

type apiResponse struct {
	ReturnCode    string          `json:"returnCode"`
	ReturnMessage string          `json:"returnMessage"`
	Info          json.RawMessage `json:"info"`
}

// ReserveRequest mirrors the /v2/payments/request payload.
type ReserveRequest struct {
	ProductName     string `json:"productName"`
	ProductImageURL string `json:"productImageUrl,omitempty"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	OrderID         string `json:"orderId"`
	ConfirmURL      string `json:"confirmUrl"`
	ConfirmURLType  string `json:"confirmUrlType,omitempty"`
	CancelURL       string `json:"cancelUrl,omitempty"`
}

// ReserveInfo is the acknowledged reservation: the gateway-issued
// transaction id plus the URL the user opens to authorize payment.
type ReserveInfo struct {
	TransactionID string
	PaymentURL    string
}

// Reserve registers the order with LINE Pay and returns the transaction id
// and payment URL. The transaction id arrives as a JSON number and is
// normalized to its decimal string form; callers treat it as opaque.
func (c *Client) Reserve(ctx context.Context, req ReserveRequest) (ReserveInfo, error) {
	info, err := c.call(ctx, "/v2/payments/request", req)
	if err != nil {
		return ReserveInfo{}, err
	}

	var payload struct {
		TransactionID json.Number `json:"transactionId"`
		PaymentURL    struct {
			Web string `json:"web"`
			App string `json:"app"`
		} `json:"paymentUrl"`
	}
	if err := json.Unmarshal(info, &payload); err != nil {
		return ReserveInfo{}, fmt.Errorf("decode reserve info: %w", err)
	}
	if payload.TransactionID.String() == "" {
		return ReserveInfo{}, fmt.Errorf("reserve info missing transaction id")
	}

	return ReserveInfo{
		TransactionID: payload.TransactionID.String(),
		PaymentURL:    payload.PaymentURL.Web,
	}, nil
}

// ConfirmInfo echoes the identifiers of a captured payment.
type ConfirmInfo struct {
	TransactionID string
	OrderID       string
}

// Confirm captures the reserved payment. Amount and currency must equal
// the values given to Reserve or the gateway rejects the capture.
func (c *Client) Confirm(ctx context.Context, transactionID string, amount int64, currency string) (ConfirmInfo, error) {
	body := struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}{Amount: amount, Currency: currency}

	info, err := c.call(ctx, "/v2/payments/"+transactionID+"/confirm", body)
	if err != nil {
		return ConfirmInfo{}, err
	}

	var payload struct {
		TransactionID json.Number `json:"transactionId"`
		OrderID       string      `json:"orderId"`
	}
	if err := json.Unmarshal(info, &payload); err != nil {
		return ConfirmInfo{}, fmt.Errorf("decode confirm info: %w", err)
	}

	out := ConfirmInfo{
		TransactionID: payload.TransactionID.String(),
		OrderID:       payload.OrderID,
	}
	if out.TransactionID == "" {
		out.TransactionID = transactionID
	}
	return out, nil
}

func (c *Client) call(ctx context.Context, path string, body any) (json.RawMessage, error) {
	var result apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("line pay %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("line pay %s: unexpected status %d", path, resp.StatusCode())
	}
	if result.ReturnCode != returnCodeOK {
		return nil, &APIError{ReturnCode: result.ReturnCode, ReturnMessage: result.ReturnMessage}
	}
	return result.Info, nil
}
