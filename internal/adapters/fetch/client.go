// Package fetch retrieves fragment documents over HTTP or from the local filesystem.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/loom/internal/adapters/telemetry"
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/loom/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/net/publicsuffix"
)

const (
	defaultTimeout = 30 * time.Second

	// XSRFCookie is the cookie whose value is echoed back in XSRFHeader.
	XSRFCookie = "XSRF-TOKEN"
	// XSRFHeader carries the XSRF token on every request.
	XSRFHeader = "X-XSRF-TOKEN"
)

// StatusError is returned when the server answers with a 4xx or 5xx status.
type StatusError struct {
	Path       string
	StatusCode int
	Response   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", domain.ErrFetchFailed.Error(), e.StatusCode)
}

// Unwrap makes errors.Is(err, domain.ErrFetchFailed) hold.
func (e *StatusError) Unwrap() error {
	return domain.ErrFetchFailed
}

// Client implements ports.Fetcher.
type Client struct {
	httpClient *http.Client
	jar        http.CookieJar
	baseURL    *url.URL
	root       string
	logger     ports.Logger
	tracer     ports.Tracer
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL joins relative paths onto base instead of reading them from disk.
func WithBaseURL(base string) Option {
	return func(c *Client) error {
		if base == "" {
			return nil
		}
		u, err := url.Parse(base)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "invalid base url"), "base_url", base)
		}
		c.baseURL = u
		return nil
	}
}

// WithRoot sets the directory relative local paths are read from.
func WithRoot(root string) Option {
	return func(c *Client) error {
		if root != "" {
			c.root = root
		}
		return nil
	}
}

// WithTimeout bounds every HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d > 0 {
			c.httpClient.Timeout = d
		}
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its Jar is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		cp := *hc
		cp.Jar = nil
		c.httpClient = &cp
		return nil
	}
}

// WithTracer records a span per fetch.
func WithTracer(t ports.Tracer) Option {
	return func(c *Client) error {
		if t != nil {
			c.tracer = t
		}
		return nil
	}
}

// New creates a Client. Failures are reported to logger before being returned.
func New(logger ports.Logger, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create cookie jar")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		jar:        jar,
		root:       ".",
		logger:     logger,
		tracer:     telemetry.NewNoOpTracer(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Fetch returns the body of the document at path.
func (c *Client) Fetch(ctx context.Context, path string, opts ports.FetchOptions) (string, error) {
	ctx, span := c.tracer.Start(ctx, "fetch")
	defer span.End()
	span.SetAttribute("path", path)

	body, err := c.fetch(ctx, path, opts)
	if err != nil {
		span.RecordError(err)
		if c.logger != nil {
			c.logger.Error(err)
		}
		return "", err
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, path string, opts ports.FetchOptions) (string, error) {
	target, remote, err := c.locate(path)
	if err != nil {
		return "", transportErr(err, path)
	}
	if !remote {
		return c.readFile(path, target)
	}
	return c.get(ctx, path, target, opts)
}

// locate returns the URL or file path for path and whether it is remote.
func (c *Client) locate(path string) (string, bool, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, true, nil
	}
	if strings.HasPrefix(path, "file://") {
		return c.localPath(strings.TrimPrefix(path, "file://")), false, nil
	}
	if c.baseURL != nil {
		ref, err := url.Parse(path)
		if err != nil {
			return "", false, err
		}
		return c.baseURL.ResolveReference(ref).String(), true, nil
	}
	return c.localPath(path), false, nil
}

func (c *Client) localPath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.root, filepath.FromSlash(p))
}

func (c *Client) readFile(path, file string) (string, error) {
	//nolint:gosec // path comes from the fragment manifest
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", statusErr(&StatusError{Path: path, StatusCode: http.StatusNotFound})
		}
		return "", transportErr(err, path)
	}
	return string(data), nil
}

func (c *Client) get(ctx context.Context, path, target string, opts ports.FetchOptions) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return "", transportErr(err, path)
	}

	for _, ck := range c.jar.Cookies(req.URL) {
		if ck.Name == XSRFCookie {
			req.Header.Set(XSRFHeader, ck.Value)
		}
		if opts.WithCredentials {
			req.AddCookie(ck)
		}
	}

	if c.logger != nil {
		c.logger.Debug("fetching document", "path", path, "url", target)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportErr(err, path)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if cookies := resp.Cookies(); len(cookies) > 0 {
		c.jar.SetCookies(req.URL, cookies)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportErr(err, path)
	}

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode <= 599 {
		return "", statusErr(&StatusError{Path: path, StatusCode: resp.StatusCode, Response: string(body)})
	}

	return string(body), nil
}

func statusErr(se *StatusError) error {
	err := zerr.Wrap(se, fmt.Sprintf("cannot fetch '%s'", se.Path))
	err = zerr.With(err, "path", se.Path)
	return zerr.With(err, "status_code", se.StatusCode)
}

func transportErr(err error, path string) error {
	wrapped := domain.WrapCause(domain.ErrFetchFailed, err, fmt.Sprintf("cannot fetch '%s'", path))
	return zerr.With(wrapped, "path", path)
}
