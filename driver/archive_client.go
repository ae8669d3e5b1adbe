package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/retry"
	apperrors "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/errors"
)

const maxPageBytes = 8 << 20

// ErrDisallowedByRobots is returned for paths robots.txt forbids for our user agent.
var ErrDisallowedByRobots = errors.New("disallowed by robots.txt")

// ArchiveClient fetches HTML pages politely: one request per interval,
// robots.txt honored per host, transient failures retried.
type ArchiveClient struct {
	httpClient    *http.Client
	limiter       *rate.Limiter
	retrier       *retry.Retrier
	logger        *slog.Logger
	robots        map[string]*robotstxt.RobotsData
	userAgent     string
	respectRobots bool
	mu            sync.Mutex
}

type ArchiveClientOptions struct {
	UserAgent     string
	Interval      time.Duration
	RespectRobots bool
}

// NewArchiveClient builds a fetcher. A nil retrier means a single attempt per page.
func NewArchiveClient(httpClient *http.Client, opts ArchiveClientOptions, retrier *retry.Retrier, logger *slog.Logger) *ArchiveClient {
	limit := rate.Inf
	if opts.Interval > 0 {
		limit = rate.Every(opts.Interval)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchiveClient{
		httpClient:    httpClient,
		limiter:       rate.NewLimiter(limit, 1),
		retrier:       retrier,
		logger:        logger,
		robots:        make(map[string]*robotstxt.RobotsData),
		userAgent:     opts.UserAgent,
		respectRobots: opts.RespectRobots,
	}
}

// IsRetryableFetchError classifies archive fetch failures for the retrier.
func IsRetryableFetchError(err error) bool {
	if errors.Is(err, ErrDisallowedByRobots) {
		return false
	}
	return apperrors.IsRetryable(err)
}

// Fetch returns the body of pageURL. Failures are tagged with domain.ErrFetch.
func (c *ArchiveClient) Fetch(ctx context.Context, pageURL string) (string, error) {
	if c.respectRobots {
		allowed, err := c.allowed(ctx, pageURL)
		if err != nil {
			return "", domain.Wrap(domain.ErrFetch, "", "fetch", pageURL, err)
		}
		if !allowed {
			return "", domain.Wrap(domain.ErrFetch, "", "fetch", pageURL, ErrDisallowedByRobots)
		}
	}

	var body string
	op := func() error {
		var err error
		body, err = c.fetchOnce(ctx, pageURL)
		return err
	}

	var err error
	if c.retrier != nil {
		err = c.retrier.Do(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		return "", domain.Wrap(domain.ErrFetch, "", "fetch", pageURL, err)
	}

	return body, nil
}

func (c *ArchiveClient) fetchOnce(ctx context.Context, pageURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.ErrorContext(ctx, "failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &apperrors.HTTPStatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.DebugContext(ctx, "page fetched",
		"url", pageURL,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds())

	return string(data), nil
}

func (c *ArchiveClient) allowed(ctx context.Context, pageURL string) (bool, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false, fmt.Errorf("invalid URL: %w", err)
	}

	robots, err := c.robotsFor(ctx, u)
	if err != nil {
		// An unreachable robots.txt does not block the crawl.
		c.logger.WarnContext(ctx, "robots.txt unavailable, allowing fetch", "host", u.Host, "error", err)
		return true, nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return robots.TestAgent(path, c.userAgent), nil
}

func (c *ArchiveClient) robotsFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	key := u.Scheme + "://" + u.Host

	c.mu.Lock()
	cached, ok := c.robots[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.robots[key] = robots
	c.mu.Unlock()

	return robots, nil
}
