package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders committed to the ledger",
	})

	OrdersRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of refused order submissions",
	}, []string{"reason"})

	OrdersRevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_revenue_bs_total",
		Help: "Sum of committed order totals in Bs",
	})

	LedgerPersistFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_persist_failures_total",
		Help: "Total number of failed ledger writes",
	})

	LedgerPersistLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_persist_latency_seconds",
		Help:    "Latency of whole-ledger writes",
		Buckets: prometheus.DefBuckets,
	})

	LedgerLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_loads_total",
		Help: "Ledger rehydrations by outcome",
	}, []string{"outcome"})

	NotificationsPushedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_pushed_total",
		Help: "Total number of dashboard notifications",
	}, []string{"kind"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
