package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lineup-manager/internal/constants"
	"lineup-manager/internal/domain"
	"lineup-manager/internal/service"

	"github.com/valyala/fasthttp"
)

// APIError is a non-2xx answer from the lineup server.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("server error %d: %s (request %s)", e.Status, e.Message, e.RequestID)
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// Client talks to a running lineup server.
type Client struct {
	baseURL string
	client  *fasthttp.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			ReadTimeout:         constants.ClientTimeout,
			WriteTimeout:        constants.ClientTimeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

func (c *Client) Players(ctx context.Context, sort string) ([]domain.Player, error) {
	return doJSON[[]domain.Player](ctx, c, fasthttp.MethodGet, "/players?sort="+sort, nil)
}

func (c *Client) Lineup(ctx context.Context) (service.LineupView, error) {
	return doJSON[service.LineupView](ctx, c, fasthttp.MethodGet, "/lineup", nil)
}

func (c *Client) LineupTable(ctx context.Context) (string, error) {
	body, err := c.do(ctx, fasthttp.MethodGet, "/lineup/table", nil)
	return string(body), err
}

func (c *Client) InningsTable(ctx context.Context) (string, error) {
	body, err := c.do(ctx, fasthttp.MethodGet, "/innings/table", nil)
	return string(body), err
}

// Random asks for a generated lineup. No ids means the whole registry.
func (c *Client) Random(ctx context.Context, ids []string) (service.LineupView, error) {
	return doJSON[service.LineupView](ctx, c, fasthttp.MethodPost, "/lineup/random", map[string][]string{"playerIds": ids})
}

func (c *Client) Reverse(ctx context.Context) (service.LineupView, error) {
	return doJSON[service.LineupView](ctx, c, fasthttp.MethodPost, "/lineup/reverse", nil)
}

func (c *Client) AddDH(ctx context.Context) (service.LineupView, error) {
	return doJSON[service.LineupView](ctx, c, fasthttp.MethodPost, "/lineup/slots", map[string]string{"label": "DH"})
}

func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	return c.do(ctx, fasthttp.MethodGet, "/players/export", nil)
}

func doJSON[T any](ctx context.Context, c *Client, method, path string, payload any) (T, error) {
	var result T
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(raw)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ClientTimeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}

	if status := resp.StatusCode(); status < 200 || status >= 300 {
		apiErr := &APIError{Status: status}
		var body struct {
			Error     string `json:"error"`
			RequestID string `json:"requestId"`
		}
		if json.Unmarshal(resp.Body(), &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
			apiErr.RequestID = body.RequestID
		} else {
			apiErr.Message = string(resp.Body())
		}
		return nil, apiErr
	}

	// the response buffer goes back to the pool on return
	return append([]byte(nil), resp.Body()...), nil
}
