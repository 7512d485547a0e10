// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BoardActionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_actions_completed_total",
			Help: "Total number of board actions completed",
		},
		[]string{"action"},
	)

	BoardActionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_actions_failed_total",
			Help: "Total number of board actions failed",
		},
		[]string{"action", "error_code"},
	)

	BoardActionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "board_action_duration_seconds",
			Help: "Duration of board actions in seconds",
		},
		[]string{"action"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_api_requests_total",
			Help: "Total number of CRM API requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)
)
