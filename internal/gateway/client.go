// Package gateway is the client side of the ticket server API. It is the only
// code that talks to the server, and it translates every failure into one of
// three kinds (see Kind) before anything else sees it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/thenoetrevino/deskboard/internal/models"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultRetries   = 3
	defaultBaseDelay = 50 * time.Millisecond

	// unixHost is the placeholder host for requests over a unix socket
	unixHost = "http://deskboard"

	maxErrorBody = 64 << 10
)

// Client fetches the board and sends reorder commands
type Client struct {
	baseURL   string
	http      *http.Client
	retries   int
	baseDelay time.Duration
	logger    *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRetry sets how many times FetchBoard tries and the first backoff delay
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retries = attempts
		}
		if baseDelay > 0 {
			c.baseDelay = baseDelay
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewHTTPClient talks to a server at baseURL, e.g. http://127.0.0.1:7420
func NewHTTPClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: defaultTimeout},
		retries:   defaultRetries,
		baseDelay: defaultBaseDelay,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewUnixClient talks to a server listening on a unix socket
func NewUnixClient(socketPath string, opts ...Option) *Client {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
	}
	opts = append([]Option{WithHTTPClient(&http.Client{
		Timeout:   defaultTimeout,
		Transport: transport,
	})}, opts...)
	return NewHTTPClient(unixHost, opts...)
}

// FetchBoard reads the whole board. Transient failures are retried.
func (c *Client) FetchBoard(ctx context.Context) (*models.Board, error) {
	var board models.Board
	err := withRetry(ctx, c.logger, "fetch", c.retries, c.baseDelay, func(ctx context.Context) error {
		board = models.Board{}
		return c.do(ctx, "fetch", http.MethodGet, models.RouteBoard, nil, &board)
	})
	if err != nil {
		return nil, err
	}

	var tickets []*models.TicketSummary
	for _, column := range board.Columns {
		tickets = append(tickets, column...)
	}
	return models.BoardFromTickets(tickets, board.Versions), nil
}

// Reorder sends one command. It is never retried: a command that failed may
// have been computed from a stale board, so the caller refreshes first.
func (c *Client) Reorder(ctx context.Context, cmd models.ReorderCommand) (*models.ReorderResult, error) {
	body, err := json.Marshal(cmd)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Op: "reorder", Message: "failed to encode command", Err: err}
	}
	var result models.ReorderResult
	if err := c.do(ctx, "reorder", http.MethodPatch, models.RouteReorder, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateTicket adds a ticket and returns it as stored
func (c *Client) CreateTicket(ctx context.Context, req models.NewTicket) (*models.Ticket, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Op: "create", Message: "failed to encode ticket", Err: err}
	}
	var t models.Ticket
	if err := c.do(ctx, "create", http.MethodPost, models.RouteTickets, body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTicket reads one ticket by id or number ("12" or "#12")
func (c *Client) GetTicket(ctx context.Context, ref string) (*models.Ticket, error) {
	var t models.Ticket
	if err := c.do(ctx, "get", http.MethodGet, models.TicketPath(ref), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTicket removes a ticket by id or number and returns what was removed
func (c *Client) DeleteTicket(ctx context.Context, ref string) (*models.Ticket, error) {
	var t models.Ticket
	if err := c.do(ctx, "delete", http.MethodDelete, models.TicketPath(ref), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Metrics reads the server counters
func (c *Client) Metrics(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	if err := c.do(ctx, "metrics", http.MethodGet, models.RouteMetrics, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindValidation, Op: op, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(op, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr models.APIError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err := json.Unmarshal(raw, &apiErr); err != nil {
			apiErr.Error = strings.TrimSpace(string(raw))
		}
		gerr := classifyStatus(op, resp.StatusCode, apiErr.Code, apiErr.Error)
		if len(apiErr.Details) > 0 {
			gerr.Message += ": " + strings.Join(apiErr.Details, "; ")
		}
		return gerr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &Error{
			Kind:    KindTransient,
			Op:      op,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to decode response: %v", err),
			Err:     err,
		}
	}
	return nil
}
