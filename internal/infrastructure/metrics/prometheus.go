package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HandlerMetrics struct {
	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type ServiceMetrics struct {
	MethodCount    *prometheus.CounterVec
	MethodDuration *prometheus.HistogramVec
	RenderedCards  prometheus.Gauge
}

type RepositoryMetrics struct {
	CallCount    *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec
}

func NewHandlerMetrics(reg prometheus.Registerer) *HandlerMetrics {
	requestCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handler_requests_total",
			Help: "Total number of HTTP requests handled by the widget.",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "handler_request_duration_seconds",
			Help:    "Histogram of response latency for handler in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	reg.MustRegister(requestCount, requestDuration)

	return &HandlerMetrics{
		RequestCount:    requestCount,
		RequestDuration: requestDuration,
	}
}

func NewServiceMetrics(reg prometheus.Registerer) *ServiceMetrics {
	methodCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "controller_operations_total",
			Help: "Total number of display controller operations (load, dismiss).",
		},
		[]string{"method", "status"},
	)

	methodDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "controller_operation_duration_seconds",
			Help:    "Histogram of display controller operation duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	renderedCards := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "controller_rendered_cards",
			Help: "Number of ad cards currently on the page.",
		},
	)

	reg.MustRegister(methodCount, methodDuration, renderedCards)

	return &ServiceMetrics{
		MethodCount:    methodCount,
		MethodDuration: methodDuration,
		RenderedCards:  renderedCards,
	}
}

func NewRepositoryMetrics(reg prometheus.Registerer) *RepositoryMetrics {
	callCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_calls_total",
			Help: "Total number of calls made to the ad backend.",
		},
		[]string{"call", "status"},
	)

	callDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_call_duration_seconds",
			Help:    "Histogram of ad backend call duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"call", "status"},
	)

	reg.MustRegister(callCount, callDuration)

	return &RepositoryMetrics{
		CallCount:    callCount,
		CallDuration: callDuration,
	}
}

func (hm *HandlerMetrics) HTTPHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
