package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/store"
)

// History returns a handler for GET /api/v1/history?url=...
func History(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		url := c.Query("url")
		if url == "" {
			c.JSON(http.StatusBadRequest, models.HistoryResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "url query parameter is required",
				},
			})
			return
		}

		scans, recs, err := st.History(c.Request.Context(), url)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		c.JSON(http.StatusOK, models.HistoryResponse{
			Success:         true,
			URL:             url,
			Scans:           scans,
			Recommendations: recs,
		})
	}
}

// Progress returns a handler for GET /api/v1/progress?url=...
// A URL with no recorded scans is a 404, never an all-zero summary.
func Progress(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		url := c.Query("url")
		if url == "" {
			c.JSON(http.StatusBadRequest, models.ProgressResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "url query parameter is required",
				},
			})
			return
		}

		summary, err := st.Progress(c.Request.Context(), url)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		c.JSON(http.StatusOK, models.ProgressResponse{
			Success:  true,
			Progress: summary,
		})
	}
}

// UpdateRecommendation returns a handler for
// PATCH /api/v1/recommendations/:id.
func UpdateRecommendation(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.UpdateRecommendationResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "recommendation id must be an integer",
				},
			})
			return
		}

		var req models.UpdateRecommendationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.UpdateRecommendationResponse{
				Success: false,
				ID:      id,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		if err := st.UpdateRecommendationStatus(c.Request.Context(), id, req.Status, req.Notes); err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		c.JSON(http.StatusOK, models.UpdateRecommendationResponse{
			Success: true,
			ID:      id,
			Status:  req.Status,
		})
	}
}
