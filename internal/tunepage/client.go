package tunepage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tunesets/internal/logging"
	"tunesets/internal/services"
	"tunesets/internal/tunes"
)

// ErrFetchFailed reports a tune page that could not be retrieved within the
// attempt budget.
var ErrFetchFailed = errors.New("tune page fetch failed")

const (
	defaultBaseURL       = "https://www.irishtune.info"
	defaultUserAgent     = "Mozilla/5.0"
	defaultTimeout       = 60 * time.Second
	defaultAttempts      = 4
	maxPageBytes         = 8 << 20
	progressEventType    = "tune_page_fetched"
	restEventType        = "fetch_throttle_rest"
	retryEventType       = "tune_page_fetch_retry"
	fetchFailedEventType = "tune_page_fetch_failed"
)

// Config describes the catalog client.
type Config struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	Attempts      int
	RetryDelay    time.Duration
	ThrottleAfter time.Duration
	ThrottleRest  time.Duration
	HTTPClient    *http.Client
	Logger        *slog.Logger

	// Now and Sleep default to the wall clock and services.SleepWithContext.
	Now   func() time.Time
	Sleep func(context.Context, time.Duration) error
}

// Client fetches tune pages. It is not safe for concurrent use; fetching is
// deliberately sequential.
type Client struct {
	baseURL       *url.URL
	userAgent     string
	attempts      int
	retryDelay    time.Duration
	throttleAfter time.Duration
	throttleRest  time.Duration
	http          *http.Client
	logger        *slog.Logger
	now           func() time.Time
	sleep         func(context.Context, time.Duration) error
	lastRest      time.Time
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("tunepage: parse base url: %w", err)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = services.SleepWithContext
	}
	return &Client{
		baseURL:       baseURL,
		userAgent:     userAgent,
		attempts:      attempts,
		retryDelay:    cfg.RetryDelay,
		throttleAfter: cfg.ThrottleAfter,
		throttleRest:  cfg.ThrottleRest,
		http:          client,
		logger:        logging.NewComponentLogger(cfg.Logger, "tunepage"),
		now:           now,
		sleep:         sleep,
		lastRest:      now(),
	}, nil
}

// TuneURL returns the page address for a tune id.
func (c *Client) TuneURL(id string) string {
	return c.baseURL.JoinPath("tune", id).String() + "/"
}

// Fetch retrieves and parses one tune page. Every failed attempt is retried
// until the budget runs out; a page that parses badly is not retried.
func (c *Client) Fetch(ctx context.Context, id string) (Adjacency, error) {
	if c == nil {
		return Adjacency{}, errors.New("tunepage: client is nil")
	}
	pageURL := c.TuneURL(id)

	var body []byte
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		body, lastErr = c.get(ctx, pageURL)
		if lastErr == nil {
			break
		}
		if ctx.Err() != nil {
			return Adjacency{}, ctx.Err()
		}
		c.logger.Warn("tune page fetch attempt failed",
			logging.String(logging.FieldEventType, retryEventType),
			logging.String(logging.FieldTuneID, id),
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", c.attempts),
			logging.Bool("retriable", services.IsRetriable(lastErr)),
			logging.Error(lastErr))
		if attempt < c.attempts {
			if err := c.sleep(ctx, c.retryDelay); err != nil {
				return Adjacency{}, err
			}
		}
	}
	if lastErr != nil {
		c.logger.Error("tune page fetch failed",
			logging.String(logging.FieldEventType, fetchFailedEventType),
			logging.String(logging.FieldTuneID, id),
			logging.String(logging.FieldErrorHint, "check network access to the catalog site"),
			logging.Error(lastErr))
		return Adjacency{}, fmt.Errorf("%w: tune %s after %d attempts: %w", ErrFetchFailed, id, c.attempts, lastErr)
	}

	adj, err := ParseAdjacency(bytes.NewReader(body))
	if err != nil {
		return Adjacency{}, fmt.Errorf("tune %s: %w", id, err)
	}
	return adj, nil
}

// FetchAll fetches every seed tune in order, resting between requests as
// configured, and returns one catalog entry per seed line.
func (c *Client) FetchAll(ctx context.Context, seed []tunes.SeedTune) ([]tunes.Entry, error) {
	c.lastRest = c.now()
	entries := make([]tunes.Entry, 0, len(seed))
	for i, st := range seed {
		if err := c.throttle(ctx); err != nil {
			return nil, err
		}
		adj, err := c.Fetch(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		c.logger.Info("fetched tune page",
			logging.String(logging.FieldEventType, progressEventType),
			logging.String(logging.FieldTuneID, st.ID),
			logging.String("title", st.Title),
			logging.Int("position", i+1),
			logging.Int("total", len(seed)),
			logging.Int("follows", len(adj.Follows)),
			logging.Int("goes_into", len(adj.Precedes)))
		entries = append(entries, tunes.Entry{
			Tune:     tunes.TuneRef{ID: st.ID, Name: st.Title},
			Follows:  adj.Follows,
			Precedes: adj.Precedes,
		})
	}
	return entries, nil
}

func (c *Client) throttle(ctx context.Context) error {
	if c.throttleRest <= 0 {
		return nil
	}
	if c.now().Sub(c.lastRest) <= c.throttleAfter {
		return nil
	}
	c.logger.Debug("resting between tune page fetches",
		logging.String(logging.FieldEventType, restEventType),
		logging.Duration("rest", c.throttleRest))
	if err := c.sleep(ctx, c.throttleRest); err != nil {
		return err
	}
	c.lastRest = c.now()
	return nil
}

func (c *Client) get(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
}
