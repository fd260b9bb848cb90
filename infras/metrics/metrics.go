package metrics

import (
	"net/http"
	"strconv"
	"time"

	"sportsassist/config"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace    = "sportsassist"
	unknownRoute = "unmatched"
)

const (
	OutcomeConfirmed  = "confirmed"
	OutcomeWaitlisted = "waitlisted"
	OutcomeRejected   = "rejected"
	OutcomeCancelled  = "cancelled"
	OutcomePromoted   = "promoted"
)

// Metrics records HTTP and domain counters into a private registry that is
// exposed by Handler.
type Metrics interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
	Registration(outcome string)
	Booking(outcome string)
	MessageSent(recipients int)
	EmailDelivery(status string)
	Registry() *prometheus.Registry
}

type metricsImpl struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	httpInFlight  prometheus.Gauge
	registrations *prometheus.CounterVec
	bookings      *prometheus.CounterVec
	messages      prometheus.Counter
	recipients    prometheus.Counter
	emails        *prometheus.CounterVec
}

func New(cfg *config.Config) Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application information, always 1",
	}, []string{"name", "env"}).WithLabelValues(cfg.App.Name, cfg.Server.Env).Set(1)

	return &metricsImpl{
		registry: registry,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		httpInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		}),
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Camp registrations by outcome",
		}, []string{"outcome"}),
		bookings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_bookings_total",
			Help:      "Availability slot bookings by outcome",
		}, []string{"outcome"}),
		messages: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "camp_messages_total",
			Help:      "Camp messages sent by staff",
		}),
		recipients: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "camp_message_recipients_total",
			Help:      "Parents addressed by camp messages",
		}),
		emails: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Camp message emails by delivery status",
		}, []string{"status"}),
	}
}

func (m *metricsImpl) Registry() *prometheus.Registry {
	return m.registry
}

func (m *metricsImpl) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *metricsImpl) Registration(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *metricsImpl) Booking(outcome string) {
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *metricsImpl) MessageSent(recipients int) {
	m.messages.Inc()
	m.recipients.Add(float64(recipients))
}

func (m *metricsImpl) EmailDelivery(status string) {
	m.emails.WithLabelValues(status).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

// Middleware labels requests by chi route pattern so path parameters do not
// create new series.
func (m *metricsImpl) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(wrapped, r)

		route := unknownRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		if wrapped.status == 0 {
			wrapped.status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
