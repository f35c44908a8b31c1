package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	GeneratePath   = "/generate-sql"
	userAgent      = "RoriSQL/1.0"
)

type HTTPConfig struct {
	BaseURL string
	// Timeout of zero means the request is bounded only by its context
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// HTTPClient calls a remote generation service over JSON/HTTP
type HTTPClient struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("backend URL must start with http:// or https://: %q", cfg.BaseURL)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPClient{
		endpoint: baseURL + GeneratePath,
		client:   client,
		logger:   logger,
	}, nil
}

// Endpoint returns the full URL requests are posted to
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

func (c *HTTPClient) Generate(ctx context.Context, question string) (*Response, error) {
	if err := Validate(question); err != nil {
		return nil, err
	}

	body, err := json.Marshal(Request{Question: question})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("generate request failed", "endpoint", c.endpoint, "error", err)
		return nil, &TransportError{Op: "send request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("read generate response failed", "endpoint", c.endpoint, "error", err)
		return nil, &TransportError{Op: "read response", Err: err}
	}

	c.logger.Debug("generate response",
		"status", resp.StatusCode,
		"bytes", len(raw),
		"duration", time.Since(start).String(),
	)

	return decodeResponse(resp.StatusCode, raw)
}

// rawResponse keeps every field undecoded so one malformed field cannot reject the body
type rawResponse struct {
	SQL     json.RawMessage `json:"sql"`
	Columns json.RawMessage `json:"columns"`
	Rows    json.RawMessage `json:"rows"`
	Error   json.RawMessage `json:"error"`
}

// decodeResponse applies the classification rules: an error field wins over the status
// code, anything else that is not a 2xx JSON object is a transport failure. Columns and
// rows of the wrong shape are dropped together, leaving an sql-only response.
func decodeResponse(status int, raw []byte) (*Response, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, &TransportError{Op: "decode response", Err: fmt.Errorf("status=%d: body is not a JSON object", status)}
	}
	var fields rawResponse
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &TransportError{Op: "decode response", Err: fmt.Errorf("status=%d: %w", status, err)}
	}
	if msg := errorText(fields.Error); msg != "" {
		return nil, &ServiceError{Message: msg}
	}
	if status < 200 || status >= 300 {
		return nil, &TransportError{Op: "generate", Err: fmt.Errorf("unexpected status %d", status)}
	}

	parsed := &Response{SQL: stringField(fields.SQL)}
	var columns []string
	var rows [][]any
	if decodeField(fields.Columns, &columns) && decodeField(fields.Rows, &rows) {
		parsed.Columns = columns
		parsed.Rows = rows
	}
	return parsed, nil
}

// decodeField reports whether raw held a non-null value of the target's type
func decodeField(raw json.RawMessage, target any) bool {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	return json.Unmarshal(raw, target) == nil
}

func stringField(raw json.RawMessage) string {
	var s string
	if decodeField(raw, &s) {
		return s
	}
	return ""
}

// errorText returns the message carried by an error field. Falsy values mean no error;
// a structured error is shown as its compact JSON.
func errorText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "false", "0", `""`:
		return ""
	}
	if s := stringField(trimmed); s != "" {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}
