// Package api implements the single configured request pipeline every
// backend call goes through: bearer-token injection, cookie handling,
// centralized error normalization, and the global sign-out event on 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lawdesk/lawdesk/internal/session"
)

// defaultPrefix is joined to the base URL ahead of every request path.
const defaultPrefix = "/api"

// MultipartFile is one file part of a multipart request.
type MultipartFile struct {
	// Field is the form field name the file is submitted under.
	Field string
	// Name is the file name reported to the server.
	Name string
	// Content is the file content.
	Content io.Reader
}

// MultipartPayload is a multipart/form-data request body.
type MultipartPayload struct {
	Fields map[string]string
	Files  []MultipartFile
}

// Request describes one backend call. Exactly one of Body and Multipart
// may be set; exactly one of Out and RawOut may be set.
type Request struct {
	// Method is the HTTP verb.
	Method string
	// Path is the endpoint path under the /api prefix.
	Path string
	// Body, when non-nil, is JSON-encoded as the request body.
	Body any
	// Multipart, when non-nil, is encoded as multipart/form-data.
	Multipart *MultipartPayload
	// Query holds the URL query parameters.
	Query url.Values
	// Out, when non-nil, receives the JSON-decoded response body.
	Out any
	// RawOut, when non-nil, receives the raw response body (blob
	// endpoints such as the visa export).
	RawOut io.Writer
}

// Client is the shared request pipeline. All typed endpoint groups go
// through its Do method.
type Client struct {
	http             *http.Client
	baseURL          string
	store            session.Store
	logger           *zap.Logger
	onSessionExpired func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSessionExpiredHandler registers the single listener notified when
// any endpoint responds 401. The transport layer itself does not clear
// storage or navigate; that is the listener's job.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// NewClient builds the pipeline for the backend at baseURL (without the
// /api prefix). Cookies are carried on every request via an in-process
// jar.
func NewClient(baseURL string, store session.Store, logger *zap.Logger, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		http:    &http.Client{Jar: jar},
		baseURL: strings.TrimRight(baseURL, "/") + defaultPrefix,
		store:   store,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes one request through the pipeline. Transport errors and
// context cancellation propagate unmodified; any non-2xx response is
// normalized into *Error. A 401 additionally fires the session-expired
// handler before the error is returned.
func (c *Client) Do(ctx context.Context, req Request) error {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return err
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if tok, ok := c.store.Get(session.TokenKey); ok && tok != "" {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		// No response reached the client: network failure or abort.
		// Propagate untouched so callers can tell cancellation apart.
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeBody(resp.Body, req)
	}

	raw, _ := io.ReadAll(resp.Body)
	var serverBody struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &serverBody)

	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    messageFor(resp.StatusCode, serverBody.Message),
		Body:       raw,
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onSessionExpired != nil {
		c.logger.Warn("authentication rejected",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
		)
		c.onSessionExpired()
	}

	return apiErr
}

// encodeBody renders the request body and its content type.
func encodeBody(req Request) (io.Reader, string, error) {
	switch {
	case req.Multipart != nil:
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for field, value := range req.Multipart.Fields {
			if err := w.WriteField(field, value); err != nil {
				return nil, "", fmt.Errorf("write field %q: %w", field, err)
			}
		}
		for _, file := range req.Multipart.Files {
			part, err := w.CreateFormFile(file.Field, file.Name)
			if err != nil {
				return nil, "", fmt.Errorf("create file part %q: %w", file.Field, err)
			}
			if _, err := io.Copy(part, file.Content); err != nil {
				return nil, "", fmt.Errorf("copy file part %q: %w", file.Field, err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil

	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("encode body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
	return nil, "", nil
}

// decodeBody delivers a successful response to the requested sink.
func decodeBody(body io.Reader, req Request) error {
	switch {
	case req.RawOut != nil:
		if _, err := io.Copy(req.RawOut, body); err != nil {
			return fmt.Errorf("read response: %w", err)
		}
	case req.Out != nil:
		if err := json.NewDecoder(body).Decode(req.Out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
