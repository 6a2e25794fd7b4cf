package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
)

const DefaultTimeout = 10 * time.Second

// Envelope is the response body shared by all endpoints.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	// Error is set by some server error handlers instead of Message.
	Error string `json:"error,omitempty"`
}

// Text returns the human-readable message of the envelope.
func (e *Envelope) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// Decode unmarshals the envelope's data into a T. Missing data yields the
// zero value.
func Decode[T any](env *Envelope) (T, error) {
	var v T
	if env == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return v, fmt.Errorf("decode response data: %w", err)
	}
	return v, nil
}

// Client talks to the REST API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type config struct {
	timeout     time.Duration
	transport   http.RoundTripper
	middlewares []Middleware
}

// Option configures a Client.
type Option func(*config)

// WithTimeout bounds every request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithTransport replaces http.DefaultTransport as the innermost RoundTripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *config) { c.transport = rt }
}

// WithMiddleware appends middlewares; the first given is the outermost.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *config) { c.middlewares = append(c.middlewares, mws...) }
}

// New builds a Client for baseURL, e.g. "http://127.0.0.1:8080/api".
func New(baseURL string, opts ...Option) *Client {
	cfg := &config{timeout: DefaultTimeout, transport: http.DefaultTransport}
	for _, o := range opts {
		o(cfg)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.timeout,
			Transport: Chain(cfg.transport, cfg.middlewares...),
		},
	}
}

// BaseURL returns the address requests are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// DoJSON sends body (if non-nil) as JSON and returns the decoded envelope.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.doEnvelope(req)
}

// Upload posts r as a multipart form with a single file part.
func (c *Client) Upload(ctx context.Context, path, field, fileName string, r io.Reader) (*Envelope, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, fileName))
	h.Set("Content-Type", contentTypeOf(fileName))
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload source: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.doEnvelope(req)
}

// Download fetches a raw file body.
func (c *Client) Download(ctx context.Context, path string) (*models.FileContent, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, mapTransportError(err)
	}
	if resp.StatusCode >= 400 {
		return nil, statusError(resp.StatusCode, data)
	}

	return &models.FileContent{
		FileName:    attachmentName(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	return resp, nil
}

func (c *Client) doEnvelope(req *http.Request) (*Envelope, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, mapTransportError(err)
	}
	if resp.StatusCode >= 400 {
		return nil, statusError(resp.StatusCode, data)
	}

	var env Envelope
	if len(bytes.TrimSpace(data)) == 0 {
		env.Success = true
		return &env, nil
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}

func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func statusError(code int, body []byte) error {
	apiErr := &APIError{StatusCode: code}
	var env Envelope
	if json.Unmarshal(body, &env) == nil {
		apiErr.Message = env.Text()
	}
	return apiErr
}

func contentTypeOf(fileName string) string {
	if ct := mime.TypeByExtension(filepath.Ext(fileName)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
