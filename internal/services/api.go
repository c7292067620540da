// HTTP gateway for the voting API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/versus/internal/shared"
)

const defaultBaseURL string = "http://127.0.0.1:8000"

// RequestError is the single error shape for failed API calls.
//
// Error returns only the user-facing message.
type RequestError struct {
	Method  string
	Path    string
	Status  int // 0 when no response was received
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is makes every RequestError match [shared.ErrAPIRequest].
func (e *RequestError) Is(target error) bool {
	return target == shared.ErrAPIRequest
}

// Gateway performs JSON requests against the voting API.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewGateway creates a gateway for baseURL. Empty values fall back to the local default server and [http.DefaultClient].
func NewGateway(baseURL string, client *http.Client) *Gateway {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		logger:     shared.NewLogger(io.Discard),
	}
}

// NewHTTPClient returns an [http.Client] with the given timeout in seconds (no timeout when <= 0).
func NewHTTPClient(timeoutSeconds int) *http.Client {
	if timeoutSeconds <= 0 {
		return &http.Client{}
	}
	return &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second}
}

// SetLogger replaces the gateway's logger.
func (g *Gateway) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// BaseURL returns the API root the gateway talks to.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Request sends method to path with body JSON-encoded (when non-nil) and decodes a successful response into result (when non-nil).
//
// An empty method means GET.
func (g *Gateway) Request(ctx context.Context, method, path string, body, result any) error {
	if method == "" {
		method = http.MethodGet
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{
				Method:  method,
				Path:    path,
				Message: fmt.Sprintf("failed to encode request: %v", err),
				Err:     fmt.Errorf("%w: %v", shared.ErrInvalidInput, err),
			}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return &RequestError{Method: method, Path: path, Message: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return &RequestError{Method: method, Path: path, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.Warn("failed to read response", "method", method, "path", path, "error", err)
		raw = nil
	}
	if !json.Valid(raw) {
		raw = []byte("{}")
	}

	g.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(raw, resp),
		}
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return &RequestError{
				Method:  method,
				Path:    path,
				Status:  resp.StatusCode,
				Message: shared.ErrInvalidResponse.Error(),
				Err:     fmt.Errorf("%w: %v", shared.ErrInvalidResponse, err),
			}
		}
	}

	return nil
}

// errorMessage picks the body's detail field, falling back to the status text.
func errorMessage(body []byte, resp *http.Response) string {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if detail, ok := envelope["detail"]; ok {
			var s string
			if err := json.Unmarshal(detail, &s); err == nil {
				if s != "" {
					return s
				}
			} else if string(detail) != "null" {
				return string(detail)
			}
		}
	}

	return statusText(resp)
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return text
}

// Message extracts the user-facing message from err, or fallback when err carries none.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Message != "" {
			return reqErr.Message
		}
		return fallback
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
