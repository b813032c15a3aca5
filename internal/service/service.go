package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ad-widget/internal/domain"
	"ad-widget/internal/infrastructure/display"
	"ad-widget/internal/infrastructure/metrics"
	"ad-widget/internal/repository"
	"ad-widget/pkg/logger"
	"ad-widget/pkg/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultMaxCards     = 5
	DefaultDismissDelay = 450 * time.Millisecond
)

type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateRendered   State = "rendered"
	StateDismissing State = "dismissing"
)

// LoadFailure is returned when the ad list could not be fetched or parsed.
type LoadFailure struct {
	Err error
}

func (e *LoadFailure) Error() string { return fmt.Sprintf("load ads: %v", e.Err) }
func (e *LoadFailure) Unwrap() error { return e.Err }

// DislikeWriteFailure is returned when the dislike could not be sent.
type DislikeWriteFailure struct {
	ID  int64
	Err error
}

func (e *DislikeWriteFailure) Error() string {
	return fmt.Sprintf("dislike ad %d: %v", e.ID, e.Err)
}
func (e *DislikeWriteFailure) Unwrap() error { return e.Err }

// AdDisplayService drives the fetch, render, dismiss and refresh cycle of the
// ad widget. Errors it returns have already been logged; callers discard them.
type AdDisplayService interface {
	Initialize(ctx context.Context)
	Load(ctx context.Context) error
	Render(ctx context.Context, ads []domain.Advertisement)
	Dismiss(ctx context.Context, id int64) error
	State() State
}

type Options struct {
	MaxCards     int
	DismissDelay time.Duration
	// Sleep waits out the dismiss delay. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

type adDisplayService struct {
	repository repository.AdRepository
	display    display.Display
	logger     *logger.Loggers
	metrics    *metrics.ServiceMetrics
	tracer     trace.Tracer

	maxCards     int
	dismissDelay time.Duration
	sleep        func(ctx context.Context, d time.Duration) error

	initOnce sync.Once

	mu    sync.Mutex
	state State
}

func NewAdDisplayService(repository repository.AdRepository, display display.Display, loggers *logger.Loggers, metrics *metrics.ServiceMetrics, opts Options) AdDisplayService {
	if opts.MaxCards <= 0 {
		opts.MaxCards = DefaultMaxCards
	}
	if opts.DismissDelay == 0 {
		opts.DismissDelay = DefaultDismissDelay
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}

	tracer := otel.Tracer("ad-widget/service")
	return &adDisplayService{
		repository:   repository,
		display:      display,
		logger:       loggers,
		metrics:      metrics,
		tracer:       tracer,
		maxCards:     opts.MaxCards,
		dismissDelay: opts.DismissDelay,
		sleep:        opts.Sleep,
		state:        StateIdle,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *adDisplayService) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *adDisplayService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Initialize runs the first load. Later calls do nothing.
func (s *adDisplayService) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		_ = s.Load(ctx)
	})
}

func (s *adDisplayService) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "Load")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		s.metrics.MethodCount.WithLabelValues("Load", status).Inc()
		s.metrics.MethodDuration.WithLabelValues("Load", status).Observe(duration)
	}()

	s.setState(StateLoading)
	s.display.SetLoading(true)
	defer s.display.SetLoading(false)

	ads, err := s.repository.GetAds(ctx)
	if err != nil {
		status = "error"
		span.RecordError(err)
		s.setState(StateIdle)
		failure := &LoadFailure{Err: err}
		s.logger.ErrorLogger.Error("Failed to load ads", utils.Err(failure))
		return failure
	}

	span.SetAttributes(attribute.Int("ads.count", len(ads)))

	s.Render(ctx, ads)
	s.setState(StateRendered)
	return nil
}

// Render replaces the page content with the first maxCards ads.
func (s *adDisplayService) Render(ctx context.Context, ads []domain.Advertisement) {
	_, span := s.tracer.Start(ctx, "Render")
	defer span.End()

	if len(ads) > s.maxCards {
		ads = ads[:s.maxCards]
	}

	cards := make([]display.Card, 0, len(ads))
	for _, ad := range ads {
		id := ad.ID
		cards = append(cards, display.Card{
			Ad: ad,
			Dismiss: func(ctx context.Context) error {
				return s.Dismiss(ctx, id)
			},
		})
	}

	s.display.Replace(cards)

	s.metrics.RenderedCards.Set(float64(len(ads)))
	span.SetAttributes(attribute.Int("ads.rendered", len(ads)))
}

// Dismiss fades the card, waits for the transition, records the dislike and
// reloads the list. The reload happens whether or not the dislike was sent.
func (s *adDisplayService) Dismiss(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "Dismiss")
	defer span.End()

	span.SetAttributes(attribute.Int64("ad.id", id))

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		s.metrics.MethodCount.WithLabelValues("Dismiss", status).Inc()
		s.metrics.MethodDuration.WithLabelValues("Dismiss", status).Observe(duration)
	}()

	s.setState(StateDismissing)

	if !s.display.MarkFading(id) {
		s.logger.DebugLogger.Debug("Dismissed ad is not on the page", "ad_id", id)
	}

	if err := s.sleep(ctx, s.dismissDelay); err != nil {
		status = "canceled"
		span.RecordError(err)
		return err
	}

	var failure error
	if err := s.repository.Dislike(ctx, id); err != nil {
		status = "error"
		span.RecordError(err)
		failure = &DislikeWriteFailure{ID: id, Err: err}
		s.logger.ErrorLogger.Error("Failed to record dislike", "ad_id", id, utils.Err(err))
	}

	_ = s.Load(ctx)

	return failure
}
