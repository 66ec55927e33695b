package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catsearch_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catsearch_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	CatalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catsearch_catalog_requests_total",
		Help: "Requests issued to the breed catalog, by endpoint and outcome",
	}, []string{"endpoint", "status"})

	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catsearch_catalog_request_duration_seconds",
		Help:    "Latency of breed catalog requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	CatalogCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catsearch_catalog_cache_total",
		Help: "Catalog cache lookups by result (hit|miss)",
	}, []string{"endpoint", "result"})

	FetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catsearch_fetches_total",
		Help: "Debounced search fetches by outcome (ok|error|superseded)",
	}, []string{"outcome"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catsearch_active_sessions",
		Help: "Search sessions currently alive",
	})
)
