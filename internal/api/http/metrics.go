package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/planner"
)

// MetricsHandler exposes plan generation counters.
func MetricsHandler(c *gin.Context) {
	m := planner.GetMetrics()
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"generation": gin.H{
			"model_calls":          m.ModelCalls(),
			"model_errors":         m.ModelErrors(),
			"model_error_rate":     m.ModelErrorRate(),
			"avg_model_latency_ms": m.AverageModelLatency(),
			"validation_failures":  m.ValidationFailures(),
			"mock_plans_served":    m.MockPlansServed(),
		},
	})
}
