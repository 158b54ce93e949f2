// Package linebot is a minimal client for the LINE Messaging API: webhook
// payload types plus the reply and push endpoints the bot uses.
package linebot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL    = "https://api.line.me"
	defaultAPITimeout = 10 * time.Second
)

type Client struct {
	http *resty.Client
}

type ClientOption func(*resty.Client)

// WithBaseURL points the client at another host, for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *resty.Client) {
		c.SetBaseURL(baseURL)
	}
}

func NewClient(accessToken string, opts ...ClientOption) *Client {
	httpClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(defaultAPITimeout).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json")

	for _, opt := range opts {
		opt(httpClient)
	}

	return &Client{http: httpClient}
}

type replyRequest struct {
	ReplyToken string    `json:"replyToken"`
	Messages   []Message `json:"messages"`
}

type pushRequest struct {
	To       string    `json:"to"`
	Messages []Message `json:"messages"`
}

// Reply answers the conversation identified by replyToken. A token is
// single-use and only valid shortly after the triggering event.
func (c *Client) Reply(ctx context.Context, replyToken string, messages ...Message) error {
	return c.post(ctx, "/v2/bot/message/reply", replyRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	})
}

// Push sends messages to a user outside any request/response cycle.
func (c *Client) Push(ctx context.Context, userID string, messages ...Message) error {
	return c.post(ctx, "/v2/bot/message/push", pushRequest{
		To:       userID,
		Messages: messages,
	})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return fmt.Errorf("line bot %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("line bot %s: status %d: %s", path, resp.StatusCode(), resp.String())
	}
	return nil
}
