package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kmod24/moodboard/internal/metrics"
)

const (
	defaultMaxAttempts = 3
	defaultBackoffUnit = time.Second
	maxBackoffUnits    = 8
	maxBodySnippet     = 200
)

// Caller posts JSON to the generation API, retrying rate-limit and server
// errors with capped exponential backoff. Failures of any kind come back as
// ok=false; nothing is returned as an error.
type Caller struct {
	httpClient  *http.Client
	logger      *zap.Logger
	backoffUnit time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewCaller wraps httpClient. The client is expected to carry credentials in
// its transport and is shared across concurrent calls.
func NewCaller(httpClient *http.Client, logger *zap.Logger) *Caller {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Caller{
		httpClient:  httpClient,
		logger:      logger,
		backoffUnit: defaultBackoffUnit,
		sleep:       sleepWithContext,
	}
}

// Call POSTs body to endpoint and returns the response body of the first 2xx
// answer. maxAttempts <= 0 means the default of 3.
func (c *Caller) Call(ctx context.Context, endpoint string, header http.Header, body []byte, maxAttempts int) ([]byte, bool) {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	label := endpointLabel(endpoint)
	log := c.logger.With(zap.String("endpoint", label))

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			log.Warn("upstream call canceled", zap.Int("attempt", attempt), zap.Error(err))
			return nil, false
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			log.Error("build upstream request", zap.Error(err))
			return nil, false
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		if req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.RecordUpstreamAttempt(label, "transport")
			log.Warn("upstream request failed", zap.Int("attempt", attempt), zap.Error(err))
			return nil, false
		}

		status := resp.StatusCode
		metrics.RecordUpstreamAttempt(label, strconv.Itoa(status))

		if status >= 200 && status < 300 {
			data, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				log.Warn("read upstream response", zap.Error(err))
				return nil, false
			}
			return data, true
		}

		snippet := readSnippet(resp.Body)
		_ = resp.Body.Close()

		switch {
		case status == http.StatusUnauthorized:
			log.Error("upstream rejected credentials", zap.Int("status", status), zap.String("body", snippet))
			return nil, false
		case isTransient(status):
			if attempt == maxAttempts {
				log.Warn("upstream retries exhausted",
					zap.Int("status", status), zap.Int("attempts", maxAttempts))
				return nil, false
			}
			wait := c.backoff(attempt)
			log.Warn("upstream transient error, retrying",
				zap.Int("status", status),
				zap.Duration("wait", wait),
				zap.String("attempt", fmt.Sprintf("%d/%d", attempt, maxAttempts)))
			if err := c.sleep(ctx, wait); err != nil {
				log.Warn("upstream backoff interrupted", zap.Error(err))
				return nil, false
			}
		default:
			log.Error("upstream error", zap.Int("status", status), zap.String("body", snippet))
			return nil, false
		}
	}

	return nil, false
}

// backoff is min(2^attempt, 8) units for a 1-based attempt.
func (c *Caller) backoff(attempt int) time.Duration {
	units := maxBackoffUnits
	if attempt < 3 {
		units = 1 << attempt
	}
	return time.Duration(units) * c.backoffUnit
}

func isTransient(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxBodySnippet))
	return string(b)
}

func endpointLabel(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Path == "" {
		return "unknown"
	}
	return path.Base(u.Path)
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("openai adapter: backoff canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
