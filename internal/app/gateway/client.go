// Package gateway is the HTTP transport to the portal REST API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mustso/portal/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout is the single fixed request timeout
	DefaultTimeout = 10 * time.Second
	// DefaultAuthScheme prefixes the token in the Authorization header.
	// Django's TokenAuthentication expects "Token" instead.
	DefaultAuthScheme = "Bearer"

	maxResponseBytes = 10 << 20
)

// Credentials supplies the bearer token and is told when the gateway
// rejects it. *session.Session implements it.
type Credentials interface {
	Token(ctx context.Context) string
	Invalidate(ctx context.Context)
}

// Config defines the client settings
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	AuthScheme string
	// Transport replaces http.DefaultTransport, e.g. with the in-process mock gateway
	Transport http.RoundTripper
}

// Client calls the REST API and unwraps JSON and error bodies
type Client struct {
	baseURL     string
	authScheme  string
	httpClient  *http.Client
	credentials Credentials
	logger      zerolog.Logger
}

// NewClient creates a gateway client. credentials may be nil for anonymous use.
func NewClient(cfg Config, credentials Credentials, logger zerolog.Logger) (*Client, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = DefaultAuthScheme
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		authScheme: cfg.AuthScheme,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		credentials: credentials,
		logger:      logger.With().Str("component", "gateway").Logger(),
	}, nil
}

// BaseURL returns the API base URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the response into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// Post sends body as JSON. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out)
}

// Patch sends body as JSON
func (c *Client) Patch(ctx context.Context, path string, body any, out any) error {
	return c.sendJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

// PostForm sends form as multipart/form-data
func (c *Client) PostForm(ctx context.Context, path string, form Form, out any) error {
	return c.sendForm(ctx, http.MethodPost, path, form, out)
}

// PatchForm sends form as multipart/form-data
func (c *Client) PatchForm(ctx context.Context, path string, form Form, out any) error {
	return c.sendForm(ctx, http.MethodPatch, path, form, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any, out any) error {
	if body == nil {
		return c.do(ctx, method, path, nil, nil, "", out)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, method, path, nil, bytes.NewReader(payload), "application/json", out)
}

func (c *Client) sendForm(ctx context.Context, method, path string, form Form, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}
	return c.do(ctx, method, path, nil, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.credentials != nil {
		if token := c.credentials.Token(ctx); token != "" {
			req.Header.Set("Authorization", c.authScheme+" "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("Request failed")
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return classifyTransportError(err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("Gateway request")

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp.StatusCode, raw, isJSON)
		if resp.StatusCode == http.StatusUnauthorized && c.credentials != nil {
			c.credentials.Invalidate(ctx)
		}
		c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Str("error", apiErr.Error()).Msg("Gateway rejected request")
		return apiErr
	}

	return decodeBody(raw, isJSON, out)
}

func decodeBody(raw []byte, isJSON bool, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if !isJSON {
		if s, ok := out.(*string); ok {
			*s = string(raw)
			return nil
		}
		// some deployments omit the content type on JSON bodies
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDecode, err)
	}
	return nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", apperrors.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
}
