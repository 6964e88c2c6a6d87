package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/api/middleware"
	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/store"
)

// Redeem returns a handler for POST /api/v1/access/redeem. A valid unused
// access code is consumed atomically and exchanged for a session token that
// unlocks the pro endpoints.
func Redeem(st *store.Store, sessions *middleware.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RedeemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.RedeemResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		email, err := st.ConsumeAccessCode(c.Request.Context(), req.Code)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		token, expiresAt := sessions.Create(email)
		c.JSON(http.StatusOK, models.RedeemResponse{
			Success:   true,
			Token:     token,
			Email:     email,
			ExpiresAt: expiresAt.Unix(),
		})
	}
}
