// Package slack provides a rate-limited, read-only client for the Slack
// Web API: workspace search, channel browsing, and direct-message
// browsing. All failures surface through a closed error taxonomy so the
// command layer can branch on kind instead of message text.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Slack Web API base URL.
	BaseURL = "https://slack.com/api"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit paces outgoing requests; Slack Tier 2 methods allow
	// roughly 20 requests per minute, Tier 3 around 50.
	RateLimit = 1.0

	// PageSize is the per-page item count requested from paginated
	// endpoints.
	PageSize = 200

	// Default limits for the command families.
	DefaultSearchLimit  = 20
	DefaultHistoryLimit = 50
)

// TokenKind distinguishes elevated user tokens from restricted bot tokens.
type TokenKind string

const (
	// TokenUser is an elevated user credential (xoxp-).
	TokenUser TokenKind = "user"

	// TokenBot is a restricted bot credential (xoxb-).
	TokenBot TokenKind = "bot"

	// TokenUnknown is any other credential shape.
	TokenUnknown TokenKind = "unknown"
)

// KindOfToken infers the credential kind from the token prefix.
func KindOfToken(token string) TokenKind {
	switch {
	case strings.HasPrefix(token, "xoxp-"):
		return TokenUser
	case strings.HasPrefix(token, "xoxb-"):
		return TokenBot
	}
	return TokenUnknown
}

// RetryPolicy bounds the governor's behavior under throttling and
// transient network failure.
type RetryPolicy struct {
	MaxRetries     int           // retries after throttling responses
	FallbackWait   time.Duration // used when no Retry-After hint is present
	MaxBackoff     time.Duration // cap on total time slept per invocation
	TransientDelay time.Duration // delay before the single network-error retry
}

// DefaultRetryPolicy is the policy used unless overridden.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries:     3,
	FallbackWait:   2 * time.Second,
	MaxBackoff:     60 * time.Second,
	TransientDelay: 500 * time.Millisecond,
}

// SleepFunc suspends the calling goroutine for d, or returns early with
// the context error if ctx is done. Injectable so tests simulate time.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Client is a rate-limited HTTP client for the Slack Web API. The token
// is attached as a bearer header on every call and is never logged.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string
	policy     RetryPolicy
	sleep      SleepFunc

	// userCache maps user IDs to users within a single invocation;
	// nothing is persisted across invocations.
	userCache map[string]User
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *Client) {
		c.policy = p
	}
}

// WithSleepFunc replaces the backoff sleep (for testing without delays).
func WithSleepFunc(fn SleepFunc) ClientOption {
	return func(c *Client) {
		c.sleep = fn
	}
}

// WithRateLimit overrides the client-side request pacing.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a client using the given bearer token. The token is
// required; credential discovery (env, config file) is the caller's
// concern.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		token:      token,
		baseURL:    BaseURL,
		policy:     DefaultRetryPolicy,
		sleep:      defaultSleep,
		userCache:  make(map[string]User),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// TokenKind reports the kind of the client's credential.
func (c *Client) TokenKind() TokenKind {
	return KindOfToken(c.token)
}

// doRequest issues one authenticated GET against a Web API method and
// decodes the response body into out, which must embed apiEnvelope.
// It performs exactly one network call; retry sequencing lives in
// callWithRetry.
func (c *Client) doRequest(ctx context.Context, method string, params url.Values, out interface{ envelope() apiEnvelope }) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + "/" + method
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "ratelimited",
			Method:     method,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Method: method}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrInvalidResponse, method, err)
	}

	if env := out.envelope(); !env.OK {
		return &APIError{StatusCode: resp.StatusCode, Code: env.Error, Method: method}
	}

	return nil
}

// parseRetryAfter parses a Retry-After header value in seconds.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// callWithRetry wraps a single doRequest-shaped call with the bounded
// retry policy: throttling responses are retried after the hinted wait
// (or the fallback) up to MaxRetries times with total sleep capped at
// MaxBackoff; connection-level failures are retried exactly once after a
// short fixed delay. Retries are strictly sequential and the context is
// checked before each one. Auth, permission, and not-found outcomes are
// never retried.
func (c *Client) callWithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var slept time.Duration
	throttleRetries := 0
	transientRetried := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}

		if hint, ok := isThrottle(err); ok {
			if throttleRetries >= c.policy.MaxRetries {
				return fmt.Errorf("%w: %d retries exhausted", ErrRateLimited, c.policy.MaxRetries)
			}
			wait := hint
			if wait <= 0 {
				wait = c.policy.FallbackWait
			}
			if slept+wait > c.policy.MaxBackoff {
				return fmt.Errorf("%w: backoff budget exceeded", ErrRateLimited)
			}
			if err := c.sleep(ctx, wait); err != nil {
				return err
			}
			slept += wait
			throttleRetries++
			continue
		}

		if isTransient(err) && !transientRetried {
			if serr := c.sleep(ctx, c.policy.TransientDelay); serr != nil {
				return serr
			}
			transientRetried = true
			continue
		}

		return err
	}
}

// call issues one logical API call through the retry governor.
func (c *Client) call(ctx context.Context, method string, params url.Values, out interface{ envelope() apiEnvelope }) error {
	return c.callWithRetry(ctx, func(ctx context.Context) error {
		return c.doRequest(ctx, method, params, out)
	})
}

func (e apiEnvelope) envelope() apiEnvelope { return e }
