// file: internal/upstream/client.go
// version: 1.2.0
// guid: c3d4e5f6-a7b8-9c0d-1e2f-a3b4c5d6e7f8

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hoangdinhthien/swimadmin/internal/cache"
	"github.com/hoangdinhthien/swimadmin/internal/dedup"
	"github.com/hoangdinhthien/swimadmin/internal/envelope"
	"github.com/hoangdinhthien/swimadmin/internal/metrics"
	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// ErrNotFound is returned when the backend reports 404 or when a
// single-record envelope holds no record at the expected path.
var ErrNotFound = errors.New("record not found")

// CredentialSource supplies the bearer token and the selected tenant for
// outgoing requests. It mirrors the opaque credential store the dashboard
// reads from; the client never caches or inspects the values.
type CredentialSource interface {
	Token() string
	Tenant() string
}

// StaticCredentials is the fixed service-account CredentialSource used by
// the gateway process.
type StaticCredentials struct {
	APIToken string
	TenantID string
}

func (s StaticCredentials) Token() string  { return s.APIToken }
func (s StaticCredentials) Tenant() string { return s.TenantID }

type ctxKey int

const tenantKey ctxKey = iota

// WithTenant overrides the credential tenant for a single request chain.
func WithTenant(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, tenantKey, tenant)
}

// TenantFrom reports the per-request tenant override, if any.
func TenantFrom(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tenantKey).(string)
	return t, ok && t != ""
}

// Client talks to the swim-school backend API. Every request carries the
// x-tenant-id header; authenticated endpoints add a bearer token; the
// permission module additionally names itself in a `service` header.
// Slow-moving catalogs go through the shared TTL cache and the profile
// lookup is deduplicated across concurrent callers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      CredentialSource
	limiter    *rate.Limiter
	cache      *cache.Cache[any]
	flights    *dedup.Group
	catalogTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit caps outgoing requests per minute with the given burst.
func WithRateLimit(perMinute, burst int) Option {
	return func(c *Client) {
		if perMinute < 1 {
			perMinute = 1
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
	}
}

// WithCache supplies the shared response cache.
func WithCache(store *cache.Cache[any]) Option {
	return func(c *Client) { c.cache = store }
}

// WithCatalogTTL sets the TTL used for catalog listings (slots, courses,
// permissions).
func WithCatalogTTL(ttl time.Duration) Option {
	return func(c *Client) { c.catalogTTL = ttl }
}

// New creates a backend client for the given base URL and credentials.
func New(baseURL string, creds CredentialSource, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		catalogTTL: 10 * time.Minute,
		flights:    dedup.NewGroup(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.New[any](cache.DefaultTTL)
	}
	return c
}

// Reset clears cached responses and forgets in-flight deduplication keys.
// Called on logout and tenant switches.
func (c *Client) Reset() {
	c.cache.Clear()
	c.flights.Clear()
}

// do performs one backend request and returns the raw body. Non-2xx
// responses become descriptive errors; network failures are wrapped and
// always propagate to the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, service string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	tenant := c.creds.Tenant()
	if override, ok := TenantFrom(ctx); ok {
		tenant = override
	}
	if tenant != "" {
		req.Header.Set("x-tenant-id", tenant)
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if service != "" {
		req.Header.Set("service", service)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveUpstreamDuration(method, time.Since(start))
	if err != nil {
		metrics.IncUpstreamRequest(method, "error")
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncUpstreamRequest(method, "error")
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		metrics.IncUpstreamRequest(method, "not_found")
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.IncUpstreamRequest(method, "error")
		return nil, fmt.Errorf("upstream returned status %d for %s %s: %s",
			resp.StatusCode, method, path, truncate(strings.TrimSpace(string(data)), 300))
	}

	metrics.IncUpstreamRequest(method, "ok")
	return data, nil
}

// pageFrom normalizes a list envelope into a typed page. Unrecognized
// shapes degrade to an empty page with a logged warning, never an error.
func pageFrom[T any](path string, raw []byte) (models.Page[T], error) {
	res := envelope.Normalize(raw)
	if !res.Recognized {
		metrics.IncUnrecognizedEnvelope()
		log.Printf("[WARN] unrecognized envelope from %s: %s", path, truncate(string(raw), 500))
	}
	items, err := envelope.DecodeList[T](res)
	if err != nil {
		return models.Page[T]{Items: []T{}}, fmt.Errorf("bad list payload from %s: %w", path, err)
	}
	return models.Page[T]{
		Items:       items,
		Total:       res.Total,
		CurrentPage: res.CurrentPage,
		LastPage:    res.LastPage,
	}, nil
}

// oneFrom extracts the data[0][0][0] record of a single-record envelope.
// A missing record maps to ErrNotFound.
func oneFrom[T any](path string, raw []byte) (*T, error) {
	rec := envelope.One(raw)
	if rec == nil {
		metrics.IncUnrecognizedEnvelope()
		log.Printf("[WARN] no record at expected path in envelope from %s: %s", path, truncate(string(raw), 500))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return envelope.DecodeOne[T](rec)
}

// maybeOneFrom is oneFrom for mutations whose echo payload is optional:
// a missing record yields nil without error.
func maybeOneFrom[T any](raw []byte) (*T, error) {
	rec := envelope.One(raw)
	if rec == nil {
		return nil, nil
	}
	return envelope.DecodeOne[T](rec)
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	return q
}

// tenantFor picks the effective tenant for cache keys so two tenants never
// share a cached catalog.
func (c *Client) tenantFor(ctx context.Context) string {
	if override, ok := TenantFrom(ctx); ok {
		return override
	}
	return c.creds.Tenant()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
