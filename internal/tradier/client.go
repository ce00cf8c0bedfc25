// Package tradier is a minimal client for the Tradier market data API:
// batched quotes and intraday time and sales.
package tradier

import (
	"context"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"stonks/internal/domain"
	"stonks/internal/errs"
	"stonks/internal/util"
)

// EnvAPIKey names the environment variable holding the bearer token.
const EnvAPIKey = "TRADIER_API_KEY"

// TokenSource returns the bearer token for a request. It is called once per
// request so rotated credentials are picked up.
type TokenSource func() string

// EnvToken reads the token from TRADIER_API_KEY.
func EnvToken() string { return os.Getenv(EnvAPIKey) }

// Client issues authenticated requests against the market data API.
type Client struct {
	http    *resty.Client
	baseURL string
	token   TokenSource
	limiter *util.RateLimiter
}

// Option configures a Client.
type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithRateLimiter throttles requests through rl.
func WithRateLimiter(rl *util.RateLimiter) Option {
	return func(c *Client) { c.limiter = rl }
}

// WithTimeout sets a per-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// NewClient returns a Client that authenticates with token. A nil token
// source reads TRADIER_API_KEY.
func NewClient(token TokenSource, opts ...Option) *Client {
	if token == nil {
		token = EnvToken
	}
	c := &Client{
		http:    resty.New().SetHeader("Accept", "application/json"),
		baseURL: DefaultBaseURL,
		token:   token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Quotes returns the current quote for each of symbols, in the API's order.
func (c *Client) Quotes(ctx context.Context, symbols []string) ([]domain.Quote, error) {
	u, err := QuotesURL(c.baseURL, symbols)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return DecodeQuotes(body)
}

// TimeSales returns the intraday series of symbol over r in buckets of
// intervalMinutes.
func (c *Client) TimeSales(ctx context.Context, symbol string, intervalMinutes int, r domain.DateRange) (domain.TimeSeries, error) {
	u, err := TimeSalesURL(c.baseURL, symbol, intervalMinutes, r)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return DecodeSeries(body)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	token := c.token()
	if token == "" {
		return nil, errs.SetUp(EnvAPIKey+" is not set", nil)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errs.Unknown("waiting for rate limit", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(rawURL)
	if err != nil {
		if resp != nil && resp.StatusCode() != 0 {
			return nil, errs.Network(resp.StatusCode(), err.Error())
		}
		return nil, errs.Unknown("request failed", err)
	}

	if code := resp.StatusCode(); code >= http.StatusBadRequest {
		return nil, errs.Network(code, http.StatusText(code))
	}

	body := resp.Body()
	if !utf8.Valid(body) {
		return nil, errs.Unknown("response body is not valid UTF-8", nil)
	}
	return body, nil
}
