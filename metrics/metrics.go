// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	AssistantIntents *prometheus.CounterVec
	Classifications  *prometheus.CounterVec
	IssuesCreated    *prometheus.CounterVec
	StatusChanges    *prometheus.CounterVec
}

// New builds a registry with the service collectors plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotsolve_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spotsolve_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		AssistantIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotsolve_assistant_replies_total",
			Help: "Assistant replies by matched intent.",
		}, []string{"intent"}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotsolve_classifications_total",
			Help: "Image classifications by outcome (detected, none, error).",
		}, []string{"outcome"}),
		IssuesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotsolve_issues_created_total",
			Help: "Issues created by department.",
		}, []string{"department"}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotsolve_issue_status_changes_total",
			Help: "Issue status changes by new status.",
		}, []string{"status"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.AssistantIntents,
		m.Classifications,
		m.IssuesCreated,
		m.StatusChanges,
	)
	return m
}
