package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ad-widget/internal/domain"
	"ad-widget/internal/infrastructure/metrics"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotAList is returned when /get_ads answers with a JSON null.
var ErrNotAList = errors.New("ads response is not a list")

// SessionCookieName is the cookie the ad backend keys user preferences on.
const SessionCookieName = "session"

type AdRepository interface {
	GetAds(ctx context.Context) ([]domain.Advertisement, error)
	Dislike(ctx context.Context, id int64) error
}

type Options struct {
	BaseURL       string
	SessionCookie string
	Timeout       time.Duration
	Transport     http.RoundTripper
}

type httpAdRepository struct {
	client        *http.Client
	baseURL       string
	sessionCookie string
	metrics       *metrics.RepositoryMetrics
	tracer        trace.Tracer
}

func NewHTTPAdRepository(opts Options, metrics *metrics.RepositoryMetrics) AdRepository {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	tracer := otel.Tracer("ad-widget/repository")
	return &httpAdRepository{
		client: &http.Client{
			Transport: otelhttp.NewTransport(base),
			Timeout:   opts.Timeout,
		},
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		sessionCookie: opts.SessionCookie,
		metrics:       metrics,
		tracer:        tracer,
	}
}

func (r *httpAdRepository) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if r.sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: r.sessionCookie})
	}
	return req, nil
}

// GetAds reads the ad list. The status code is not checked: whatever the
// backend returns must decode as a JSON array or the call fails.
func (r *httpAdRepository) GetAds(ctx context.Context) ([]domain.Advertisement, error) {
	ctx, span := r.tracer.Start(ctx, "Repository GetAds")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.CallCount.WithLabelValues("GetAds", status).Inc()
		r.metrics.CallDuration.WithLabelValues("GetAds", status).Observe(duration)
	}()

	req, err := r.newRequest(ctx, http.MethodGet, "/get_ads")
	if err != nil {
		status = "error"
		span.RecordError(err)
		return nil, fmt.Errorf("failed to build ads request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return nil, fmt.Errorf("failed to fetch ads: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read ads: %w", err)
	}

	var ads []domain.Advertisement
	if err := json.Unmarshal(body, &ads); err != nil {
		status = "parse_error"
		span.RecordError(err)
		return nil, fmt.Errorf("failed to decode ads: %w", err)
	}
	if ads == nil {
		status = "parse_error"
		span.RecordError(ErrNotAList)
		return nil, fmt.Errorf("failed to decode ads: %w", ErrNotAList)
	}

	span.SetAttributes(attribute.Int("ads.count", len(ads)))
	return ads, nil
}

// Dislike records a dislike. Only transport errors are reported; the
// response is drained and ignored.
func (r *httpAdRepository) Dislike(ctx context.Context, id int64) error {
	ctx, span := r.tracer.Start(ctx, "Repository Dislike")
	defer span.End()

	span.SetAttributes(attribute.Int64("ad.id", id))

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.CallCount.WithLabelValues("Dislike", status).Inc()
		r.metrics.CallDuration.WithLabelValues("Dislike", status).Observe(duration)
	}()

	req, err := r.newRequest(ctx, http.MethodPost, fmt.Sprintf("/dislike/%d", id))
	if err != nil {
		status = "error"
		span.RecordError(err)
		return fmt.Errorf("failed to build dislike request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return fmt.Errorf("failed to post dislike: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	return nil
}
