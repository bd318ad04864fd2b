package cloudinary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/cloudinary-migrate/internal/config"
	"github.com/Chapsvision-dev/cloudinary-migrate/internal/provider"
)

// Client talks to the Admin and Upload APIs of a single account.
type Client struct {
	http      *retryablehttp.Client
	baseURL   string // e.g. https://api.cloudinary.com
	cloud     string
	apiKey    string
	apiSecret string
	sigAlg    string
	now       func() time.Time
}

// retryLogger routes retryablehttp's leveled logs to zerolog.
type retryLogger struct{ cloud string }

func (l retryLogger) Error(msg string, kv ...interface{}) {
	log.Error().Fields(kv).Str("cloud", l.cloud).Msg(msg)
}

func (l retryLogger) Warn(msg string, kv ...interface{}) {
	log.Warn().Fields(kv).Str("cloud", l.cloud).Msg(msg)
}

func (l retryLogger) Info(msg string, kv ...interface{}) {
	log.Debug().Fields(kv).Str("cloud", l.cloud).Msg(msg)
}

func (l retryLogger) Debug(msg string, kv ...interface{}) {
	log.Trace().Fields(kv).Str("cloud", l.cloud).Msg(msg)
}

// New builds a client handle bound to creds.
func New(cfg config.Config, creds config.Credentials) (*Client, error) {
	if strings.TrimSpace(creds.CloudName) == "" {
		return nil, fmt.Errorf("cloudinary: cloud name is required")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if base == "" {
		base = "https://api.cloudinary.com"
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("cloudinary: invalid api url %q: %w", base, err)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.HTTPRetryMax
	rc.RetryWaitMin = 1 * time.Second
	rc.RetryWaitMax = 30 * time.Second
	rc.HTTPClient.Timeout = cfg.HTTPTimeout
	rc.Logger = retryLogger{cloud: creds.CloudName}
	// Hand back the last response so API error bodies can be decoded.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		http:      rc,
		baseURL:   base,
		cloud:     creds.CloudName,
		apiKey:    creds.APIKey,
		apiSecret: creds.APISecret,
		sigAlg:    cfg.SignatureAlgorithm,
		now:       time.Now,
	}, nil
}

func (c *Client) Name() string { return "cloudinary" }

func (c *Client) Account() string { return c.cloud }

// endpoint builds {base}/v1_1/{cloud}/{parts...}.
func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, 0, len(parts)+2)
	escaped = append(escaped, "v1_1", url.PathEscape(c.cloud))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

// do sends req and returns the body of a 2xx response, or an *APIError.
func (c *Client) do(req *retryablehttp.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, body)
	}
	return body, nil
}

const maxBodyBytes = 32 << 20

func init() {
	provider.Register("cloudinary", func(cfg config.Config, creds config.Credentials) (provider.Provider, error) {
		return New(cfg, creds)
	})
}

var _ provider.Provider = (*Client)(nil)

// newRequest is a thin wrapper so every call carries ctx.
func newRequest(ctx context.Context, method, rawURL string, body interface{}) (*retryablehttp.Request, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}
