package snapshots

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// HTTPSource fetches snapshots over HTTP, for deployments where the export
// bucket sits behind a CDN instead of a mounted volume. Requests run through
// a client-side rate limiter and a circuit breaker so a misbehaving origin
// degrades one refresh instead of hammering the bucket.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	retries    int
	logger     *logrus.Logger
}

// NewHTTPSource creates an HTTP snapshot source rooted at baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration, breakerThreshold, retries int, logger *logrus.Logger) *HTTPSource {
	if retries < 1 {
		retries = 1
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "snapshot-http",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(breakerThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, fs.ErrNotExist)
		},
	})
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
		breaker:    breaker,
		retries:    retries,
		logger:     logger,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	url := s.baseURL + "/" + name

	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		if attempt > 0 {
			waitTime := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			s.logger.Warnf("Snapshot fetch %s failed (attempt %d), waiting %v: %v", name, attempt, waitTime, lastErr)
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		result, err := s.breaker.Execute(func() (interface{}, error) {
			return s.fetchOnce(ctx, url)
		})
		if err == nil {
			return result.([]byte), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		lastErr = err
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("snapshot source unavailable: %w", err)
		}
	}
	return nil, fmt.Errorf("fetch snapshot %s after %d attempts: %w", name, s.retries, lastErr)
}

func (s *HTTPSource) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Absent per-season files are a normal dataset shape, not an outage.
		return nil, fmt.Errorf("snapshot %s: %w", url, fs.ErrNotExist)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
