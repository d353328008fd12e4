// Package metrics holds the Prometheus instruments shared across the
// service. All collectors are registered with the default registry, which
// the /metrics route exposes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

	ContentSavesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_saves_total",
			Help: "Content save attempts by content type and outcome.",
		}, []string{"type", "outcome"})

	ImageUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_image_uploads_total",
			Help: "Inline image uploads by outcome.",
		}, []string{"outcome"})

	ImageDeletesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_image_deletes_total",
			Help: "Stored image deletions by outcome.",
		}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ContentSavesTotal,
		ImageUploadsTotal,
		ImageDeletesTotal,
	)
}
