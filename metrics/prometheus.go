package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Syndicate metrics collector for API and scheme lifecycle monitoring.

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all syndicate metrics
type Collector struct {
	// Scheme lifecycle metrics
	SchemesTotal     *prometheus.CounterVec
	SchemesByState   *prometheus.GaugeVec
	StateTransitions *prometheus.CounterVec

	// Ledger metrics
	DepositsTotal    *prometheus.CounterVec
	WithdrawalsTotal *prometheus.CounterVec
	DepositVolume    *prometheus.CounterVec

	// Redemption metrics
	RedemptionsTotal  *prometheus.CounterVec
	RedemptionPayouts *prometheus.CounterVec

	// API metrics
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
	WSConnections     prometheus.Gauge

	registry *prometheus.Registry
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{
		SchemesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syndicate",
				Name:      "schemes_total",
				Help:      "Total number of schemes created",
			},
			[]string{"settlement_denom"},
		),
		SchemesByState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "syndicate",
				Name:      "schemes_by_state",
				Help:      "Number of schemes per lifecycle state",
			},
			[]string{"state"},
		),
		StateTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syndicate",
				Name:      "state_transitions_total",
				Help:      "Lifecycle transitions by edge",
			},
			[]string{"from", "to"},
		),
		DepositsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syndicate",
				Name:      "deposits_total",
				Help:      "Total deposit operations",
			},
			[]string{"scheme_id"},
		),
		WithdrawalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syndicate",
				Name:      "withdrawals_total",
				Help:      "Total withdrawal operations",
			},
			[]string{"scheme_id"},
		),
		DepositVolume: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syndicate",
				Name:      "deposit_volume",
				Help:      "Cumulative deposited settlement amount",
			},
			[]string{"scheme_id", "denom"},
		),
		RedemptionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syndicate",
				Name:      "redemptions_total",
				Help:      "Total redemption runs",
			},
			[]string{"kind"},
		),
		RedemptionPayouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syndicate",
				Name:      "redemption_payouts_total",
				Help:      "Individual refund payouts issued",
			},
			[]string{"scheme_id"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syndicate",
				Subsystem: "api",
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status",
			},
			[]string{"route", "method", "status"},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "syndicate",
				Subsystem: "api",
				Name:      "http_latency_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		WSConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "syndicate",
				Subsystem: "api",
				Name:      "ws_connections",
				Help:      "Open websocket connections",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	c.registry.MustRegister(
		c.SchemesTotal,
		c.SchemesByState,
		c.StateTransitions,
		c.DepositsTotal,
		c.WithdrawalsTotal,
		c.DepositVolume,
		c.RedemptionsTotal,
		c.RedemptionPayouts,
		c.HTTPRequestsTotal,
		c.HTTPLatency,
		c.WSConnections,
	)

	return c
}

// Handler returns the HTTP handler serving the /metrics endpoint
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request
func (c *Collector) ObserveHTTP(route, method, status string, duration time.Duration) {
	c.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	c.HTTPLatency.WithLabelValues(route).Observe(duration.Seconds())
}
