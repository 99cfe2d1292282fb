package jokes

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fetcher is the set of joke API operations the application depends on.
// It is implemented by *Client and can be faked in tests.
type Fetcher interface {
	FetchRandom(ctx context.Context) (string, error)
	FetchByCategory(ctx context.Context, category string) (CategoryJoke, error)
	Search(ctx context.Context, query string) (string, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the joke HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *zap.Logger

	randMu sync.Mutex
	rand   *rand.Rand
}

const (
	// DefaultBaseURL is the public Chuck Norris joke API.
	DefaultBaseURL   = "https://api.chucknorris.io/jokes"
	defaultUserAgent = "jester/0.1"
	requestTimeout   = 10 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRand sets the source used to pick a search result.
func WithRand(r *rand.Rand) Option {
	return func(c *Client) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger attaches a logger for per-request debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a Client rooted at baseURL. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    zap.NewNop(),
		rand:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6a657374)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchRandom retrieves a random joke from any category.
func (c *Client) FetchRandom(ctx context.Context) (string, error) {
	const op = "fetch random joke"
	if c == nil {
		return "", networkFailure(op, fmt.Errorf("client is nil"))
	}
	var payload Joke
	if err := c.get(ctx, "random", nil, &payload); err != nil {
		return "", networkFailure(op, err)
	}
	if err := payload.validate(); err != nil {
		return "", networkFailure(op, err)
	}
	return payload.Text(), nil
}

// FetchByCategory retrieves a random joke from category. The returned
// category is the one requested, not the one the server reports.
func (c *Client) FetchByCategory(ctx context.Context, category string) (CategoryJoke, error) {
	const op = "fetch joke by category"
	if c == nil {
		return CategoryJoke{}, networkFailure(op, fmt.Errorf("client is nil"))
	}
	values := url.Values{}
	values.Set("category", category)
	var payload Joke
	if err := c.get(ctx, "random", values, &payload); err != nil {
		return CategoryJoke{}, networkFailure(op, err)
	}
	if err := payload.validate(); err != nil {
		return CategoryJoke{}, networkFailure(op, err)
	}
	return CategoryJoke{Joke: payload.Text(), Category: category}, nil
}

// Search runs a free-text query and returns one matching joke chosen
// uniformly at random. An empty result list fails with EmptySearchResult.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	const op = "search jokes"
	if c == nil {
		return "", networkFailure(op, fmt.Errorf("client is nil"))
	}
	values := url.Values{}
	values.Set("query", query)
	var payload SearchResponse
	if err := c.get(ctx, "search", values, &payload); err != nil {
		return "", networkFailure(op, err)
	}
	if err := payload.validate(); err != nil {
		return "", networkFailure(op, err)
	}
	results := *payload.Result
	if len(results) == 0 {
		return "", &Failure{Kind: EmptySearchResult, Op: op, Message: NoJokeFoundMessage}
	}
	return results[c.pick(len(results))].Text(), nil
}

// ListCategories retrieves the available categories in server order.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	const op = "list categories"
	if c == nil {
		return nil, networkFailure(op, fmt.Errorf("client is nil"))
	}
	var payload []string
	if err := c.get(ctx, "categories", nil, &payload); err != nil {
		return nil, networkFailure(op, err)
	}
	if err := validateCategories(payload); err != nil {
		return nil, networkFailure(op, err)
	}
	return payload, nil
}

func (c *Client) pick(n int) int {
	c.randMu.Lock()
	defer c.randMu.Unlock()
	return c.rand.IntN(n)
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, dest any) error {
	reqURL := c.endpointURL(endpoint, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("joke api request failed",
			zap.String("url", reqURL.String()),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("joke api response",
		zap.String("url", reqURL.String()),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api /%s returned status %d", endpoint, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) endpointURL(endpoint string, query url.Values) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + endpoint
	u.RawPath = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
