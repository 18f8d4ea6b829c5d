package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the books backend.
// All methods are safe to call on a nil *Metrics, which records nothing.
type Metrics struct {
	// Registry owns the collectors below; the /metrics endpoint serves it.
	Registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	vouchersPosted    *prometheus.CounterVec
	vouchersCancelled *prometheus.CounterVec
	postingFailures   *prometheus.CounterVec
	reportDuration    *prometheus.HistogramVec
	stockRejections   prometheus.Counter
}

// NewMetrics creates a private registry and registers all collectors in it,
// so building more than one Metrics (as tests do) never panics on duplicates.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "books_http_requests_total",
				Help: "Total HTTP requests by route and status code.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "books_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		vouchersPosted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "books_vouchers_posted_total",
				Help: "Vouchers committed by type.",
			},
			[]string{"type"},
		),
		vouchersCancelled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "books_vouchers_cancelled_total",
				Help: "Vouchers cancelled by type.",
			},
			[]string{"type"},
		),
		postingFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "books_posting_failures_total",
				Help: "Rejected postings by error kind.",
			},
			[]string{"kind"},
		),
		reportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "books_report_duration_seconds",
				Help:    "Time spent assembling reports.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		stockRejections: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "books_stock_rejections_total",
				Help: "Stock movements refused because stock would go negative.",
			},
		),
	}
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncrVoucherPosted counts a committed voucher.
func (m *Metrics) IncrVoucherPosted(voucherType string) {
	if m == nil {
		return
	}
	m.vouchersPosted.WithLabelValues(voucherType).Inc()
}

// IncrVoucherCancelled counts a cancelled voucher.
func (m *Metrics) IncrVoucherCancelled(voucherType string) {
	if m == nil {
		return
	}
	m.vouchersCancelled.WithLabelValues(voucherType).Inc()
}

// IncrPostingFailure counts a rejected posting. An empty kind is recorded as "Other".
func (m *Metrics) IncrPostingFailure(kind string) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "Other"
	}
	m.postingFailures.WithLabelValues(kind).Inc()
}

// RecordReportDuration records how long a report took to assemble.
func (m *Metrics) RecordReportDuration(report string, d time.Duration) {
	if m == nil {
		return
	}
	m.reportDuration.WithLabelValues(report).Observe(d.Seconds())
}

// IncrStockRejection counts a refused stock movement.
func (m *Metrics) IncrStockRejection() {
	if m == nil {
		return
	}
	m.stockRejections.Inc()
}
