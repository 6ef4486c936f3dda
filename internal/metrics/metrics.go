// Package metrics exposes prometheus counters for the contract workflow.
package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	EscrowsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "escrow_contracts_created_total",
			Help: "Total number of escrow contracts created",
		},
	)

	ContractsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "escrow_contracts_accepted_total",
			Help: "Total number of escrow contracts accepted by candidates",
		},
	)

	PaymentsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_completed_total",
			Help: "Total number of payments settled",
		},
	)

	NotificationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Total number of notifications created",
		},
	)
)

// RequestCounter is a gin middleware that counts finished requests per route.
func RequestCounter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
