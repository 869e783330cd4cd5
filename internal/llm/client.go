package llm

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// requestTimeout is the wall-clock limit for one transport call.
	requestTimeout = 60 * time.Second

	// maxAttempts is the number of tries per query, including the first.
	maxAttempts = 3

	// backoffMin and backoffMax bound the randomized exponential backoff
	// between attempts.
	backoffMin = 1 * time.Second
	backoffMax = 10 * time.Second

	// defaultRateLimit caps outbound requests per second across all
	// concurrent chunk analyses, staying under provider rate limits.
	defaultRateLimit = 5.0

	// DefaultMaxTokens is the output token limit when a request does not
	// specify one.
	DefaultMaxTokens = 4000
)

// Request describes one prompt to send to a model.
type Request struct {
	Prompt      string
	System      string
	Model       string // logical model name; empty means the client default
	Temperature float64
	MaxTokens   int
}

// transport issues a single completion call against one provider.
type transport interface {
	complete(ctx context.Context, model ModelInfo, req Request) (string, error)
}

// Client routes queries to provider transports with rate limiting and
// retry. Stateless per call apart from the shared limiter.
type Client struct {
	transports   map[Provider]transport
	creds        Credentials
	defaultModel string
	limiter      *rate.Limiter
	logger       *zap.Logger

	// sleep is swappable in tests to avoid real backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithDefaultModel sets the logical model used when a request names none.
func WithDefaultModel(name string) Option {
	return func(c *Client) {
		c.defaultModel = name
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit overrides the requests-per-second cap.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewClient creates a router over the providers for which credentials are
// available. Returns ErrNoCredentials when neither key is set.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	if creds.Empty() {
		return nil, ErrNoCredentials
	}

	c := &Client{
		transports:   make(map[Provider]transport),
		creds:        creds,
		defaultModel: DefaultOpenAIModel,
		limiter:      rate.NewLimiter(rate.Limit(defaultRateLimit), 1),
		logger:       zap.NewNop(),
		sleep:        sleepCtx,
	}

	if creds.OpenAIKey != "" {
		c.transports[ProviderOpenAI] = newOpenAITransport(creds.OpenAIKey)
	}
	if creds.AnthropicKey != "" {
		c.transports[ProviderAnthropic] = newAnthropicTransport(creds.AnthropicKey)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// DefaultModel returns the client's default logical model name.
func (c *Client) DefaultModel() string {
	return c.defaultModel
}

// Query resolves the requested model, dispatches to its provider, and
// retries transient failures with randomized exponential backoff.
func (c *Client) Query(ctx context.Context, req Request) (string, error) {
	requested := req.Model
	if requested == "" {
		requested = c.defaultModel
	}

	model, fellBack, err := Resolve(requested, c.creds)
	if err != nil {
		return "", err
	}
	if fellBack {
		c.logger.Warn("requested model unavailable, falling back",
			zap.String("requested", requested),
			zap.String("effective", model.Name))
	}

	tr, ok := c.transports[model.Provider]
	if !ok {
		return "", fmt.Errorf("%w: no credential for provider %s", ErrNoCredentials, model.Provider)
	}

	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}
	if req.MaxTokens > model.MaxOutputTokens {
		req.MaxTokens = model.MaxOutputTokens
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		text, err := tr.complete(callCtx, model, req)
		cancel()

		if err == nil {
			if text == "" {
				return "", ErrEmptyResponse
			}
			return text, nil
		}

		lastErr = err
		if !IsTransient(err) {
			return "", err
		}

		if attempt < maxAttempts {
			delay := backoffDelay(attempt)
			c.logger.Warn("transient provider error, retrying",
				zap.String("model", model.Name),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", delay),
				zap.Error(err))
			if err := c.sleep(ctx, delay); err != nil {
				return "", err
			}
		}
	}

	return "", fmt.Errorf("query failed after %d attempts: %w", maxAttempts, lastErr)
}

// backoffDelay returns a random delay within [backoffMin, cap] where the
// cap doubles each attempt, bounded by backoffMax.
func backoffDelay(attempt int) time.Duration {
	cap := backoffMin << (attempt - 1)
	if cap > backoffMax {
		cap = backoffMax
	}
	if cap <= backoffMin {
		return backoffMin
	}
	return backoffMin + time.Duration(rand.Int64N(int64(cap-backoffMin)))
}

// sleepCtx sleeps for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
