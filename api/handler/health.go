package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/store"
)

// Health returns a handler for GET /api/v1/health.
//
// Degrades status when the history store stops answering pings.
func Health(st *store.Store, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		storeStatus := "ok"
		if err := st.Ping(c.Request.Context()); err != nil {
			status = "degraded"
			storeStatus = err.Error()
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Store:   storeStatus,
			Version: "0.1.0",
		})
	}
}
