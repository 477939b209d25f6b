package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidtube_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Webhook metrics
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_webhook_events_total",
			Help: "Total number of webhook events received",
		},
		[]string{"source", "type", "outcome"},
	)

	// Upload metrics
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_image_uploads_total",
			Help: "Total number of thumbnail and banner uploads",
		},
		[]string{"kind"},
	)

	UploadSessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vidtube_upload_sessions_total",
			Help: "Total number of video upload sessions opened",
		},
	)

	// Workflow metrics
	WorkflowTriggersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_workflow_triggers_total",
			Help: "Total number of background workflow triggers",
		},
		[]string{"workflow"},
	)

	// Rate limit metrics
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_rate_limited_total",
			Help: "Total number of rate limited requests",
		},
		[]string{"scope"},
	)
)
