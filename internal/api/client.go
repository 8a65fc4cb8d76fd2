package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jackzampolin/langextract/version"
)

// DefaultBaseURL is used when no backend URL is configured.
const DefaultBaseURL = "http://localhost:8000"

const (
	extractPath   = "/api/extract"
	uploadPath    = "/api/upload"
	providersPath = "/api/providers"
)

// Client is an HTTP client for the extraction backend.
// It holds no state besides the base URL and the transport; every call is
// exactly one round trip with no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is the backend root (default: DefaultBaseURL)
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the transport (tests)
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return New(ClientConfig{BaseURL: baseURL})
}

// New creates a client from cfg.
func New(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the backend root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Extract posts req to /api/extract and decodes the extraction result.
func (c *Client) Extract(ctx context.Context, req ExtractionRequest) (*ExtractionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+extractPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var result ExtractionResponse
	if err := c.do(httpReq, "extract", "API Error", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadDocument sends the file as multipart field "file" to /api/upload.
func (c *Client) UploadDocument(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	var result UploadResult
	if err := c.do(httpReq, "upload", "Upload Error", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProviders lists the providers and models the backend offers.
func (c *Client) GetProviders(ctx context.Context) ([]Provider, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+providersPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result []Provider
	if err := c.do(httpReq, "providers", "API Error", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// WaitReady polls the providers endpoint until the backend answers with a
// 2xx status or timeout elapses. Only used at start-up.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	attempts := uint(timeout.Seconds())
	if attempts == 0 {
		attempts = 1
	}
	return retry.Do(
		func() error {
			_, err := c.GetProviders(ctx)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(1*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

func (c *Client) do(req *http.Request, op, prefix string, result any) error {
	req.Header.Set("User-Agent", version.UserAgent())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, op, prefix, result)
}

func (c *Client) handleResponse(resp *http.Response, op, prefix string, result any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{Prefix: prefix, StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// unwrapURLError drops the *url.Error wrapper so messages do not repeat the
// method and URL.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
