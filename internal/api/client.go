// Package api is the HTTP client for the Dark AI backend.
//
// Every failure is returned as a structured error from internal/errors so
// callers can tell transport failures (KindNetwork, KindTimeout,
// KindCanceled) from server rejections (KindRejected, with an *HTTPError
// inside) and from unexpected bodies (KindMalformed).
package api

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
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"

	pErrors "github.com/darkai/darkchat/internal/errors"
	"github.com/darkai/darkchat/internal/logger"
)

// DefaultTimeout is the HTTP timeout used when none is given
const DefaultTimeout = 60 * time.Second

// maxErrorBody caps how much of a rejection body is kept for display
const maxErrorBody = 4096

// maxResponseBody caps how much of any JSON response is read
var maxResponseBody int64 = 8 << 20

// HTTPError describes a non-2xx response
type HTTPError struct {
	StatusCode int
	Body       string // raw response text, truncated
	Message    string // "error" or "message" field when the body is JSON
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the backend rooted at baseURL
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, pErrors.E(pErrors.Op("api.NewClient"), pErrors.KindConfig, err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.WithComponent("api"),
	}, nil
}

// BaseURL returns the backend root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Resolve turns a backend-relative reference into an absolute URL
func (c *Client) Resolve(ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.baseURL.ResolveReference(r).String()
}

// Chat sends one chat message and returns the assistant's reply
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.post(ctx, ChatPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.BotResponse == "" {
		return nil, pErrors.ResponseMalformed(ChatPath, errors.New("missing bot_response"))
	}
	return &resp, nil
}

// GenerateImage asks the backend to render prompt and returns the image reference
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	var resp ImageResponse
	if err := c.post(ctx, ImagePath, req, &resp); err != nil {
		return nil, err
	}
	if resp.FileName == "" {
		return nil, pErrors.ResponseMalformed(ImagePath, errors.New("missing file_name"))
	}
	return &resp, nil
}

// TextToSpeech synthesizes text and returns the audio reference
func (c *Client) TextToSpeech(ctx context.Context, req SpeechRequest) (*SpeechResponse, error) {
	var resp SpeechResponse
	if err := c.post(ctx, TextToSpeechPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.AudioURL == "" {
		return nil, pErrors.ResponseMalformed(TextToSpeechPath, errors.New("missing audio_url"))
	}
	return &resp, nil
}

// Auth performs one auth action. Signup and verify only need a 2xx, so a
// success body that is not JSON yields an empty response rather than an error.
func (c *Client) Auth(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	body, err := c.do(ctx, AuthPath, req)
	if err != nil {
		return nil, err
	}
	var resp AuthResponse
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			c.log.Debug("auth response is not JSON", "action", req.Action, "error", err)
			return &AuthResponse{}, nil
		}
	}
	resp.Username = lo.CoalesceOrEmpty(resp.Username, resp.User.Username)
	return &resp, nil
}

// Download streams the resource at ref (resolved against the base URL) into w
func (c *Client) Download(ctx context.Context, ref string, w io.Writer) (int64, error) {
	target := c.Resolve(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, pErrors.E(pErrors.Op("api.Download"), pErrors.KindInvalid, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, classifyTransport(ctx, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return 0, pErrors.RequestRejected(target, newHTTPError(resp.StatusCode, body))
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, pErrors.E(pErrors.Op("api.Download"), pErrors.KindIO, err)
	}
	return n, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := c.do(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return pErrors.ResponseMalformed(endpoint, err)
	}
	return nil
}

// do sends payload as JSON and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, pErrors.E(pErrors.Op("api.Encode"), pErrors.KindInvalid, err)
	}

	target := c.Resolve(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		return nil, pErrors.E(pErrors.Op("api.Post"), pErrors.KindInvalid, err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.With("endpoint", endpoint, "requestID", requestID)
	start := time.Now()
	log.Debug("request sent", "bytes", len(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err, "elapsed", time.Since(start))
		return nil, classifyTransport(ctx, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		log.Warn("reading response failed", "error", err)
		return nil, classifyTransport(ctx, endpoint, err)
	}
	log.Debug("response received", "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, pErrors.RequestRejected(endpoint, newHTTPError(resp.StatusCode, body))
	}
	if int64(len(body)) > maxResponseBody {
		log.Warn("response too large", "limit", maxResponseBody)
		return nil, pErrors.ResponseMalformed(endpoint, fmt.Errorf("body exceeds %d bytes", maxResponseBody))
	}
	return body, nil
}

func newHTTPError(status int, body []byte) *HTTPError {
	text := string(body)
	if len(text) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	httpErr := &HTTPError{StatusCode: status, Body: text}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		httpErr.Message = lo.CoalesceOrEmpty(eb.Error, eb.Message)
	}
	return httpErr
}

// classifyTransport maps a failed round trip onto timeout, cancellation or
// plain network failure
func classifyTransport(ctx context.Context, endpoint string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return pErrors.RequestCanceled(endpoint, err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return pErrors.RequestTimeout(endpoint, err)
	default:
		return pErrors.RequestFailed(endpoint, err)
	}
}

// AsHTTPError returns the rejection details inside err, if any
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
