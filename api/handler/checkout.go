package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/payment"
)

// Checkout returns a handler for POST /api/v1/checkout. It opens a Stripe
// hosted checkout session and hands the redirect URL back to the frontend.
func Checkout(pay *payment.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.CheckoutResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		if pay == nil {
			c.JSON(http.StatusServiceUnavailable, models.CheckoutResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodePayment,
					Message: "payments are not configured",
				},
			})
			return
		}

		checkoutURL, err := pay.CreateCheckout(c.Request.Context(), req.Email, req.URL)
		if err != nil {
			scanErr, ok := err.(*models.ScanError)
			if !ok {
				scanErr = models.NewScanError(models.ErrCodePayment, err.Error(), err)
			}
			c.JSON(http.StatusBadGateway, models.CheckoutResponse{
				Success: false,
				Error:   scanErr.ToDetail(),
			})
			return
		}

		c.JSON(http.StatusOK, models.CheckoutResponse{
			Success:     true,
			CheckoutURL: checkoutURL,
		})
	}
}
