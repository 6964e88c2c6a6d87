package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/leads"
	"github.com/rankscore-ai/rankscore/mailer"
	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/payment"
	"github.com/rankscore-ai/rankscore/store"
)

// StripeWebhook returns a handler for POST /api/v1/stripe/webhook.
//
// On checkout.session.completed it issues an access code and mails it to the
// buyer. Mail and lead-sheet failures are logged but never fail the webhook:
// Stripe retries on non-2xx, and the code is already persisted, so a retry
// would mint a second code for the same purchase.
func StripeWebhook(st *store.Store, m *mailer.Mailer, sink *leads.Sink, webhookSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "could not read webhook payload",
				},
			})
			return
		}

		event, err := payment.VerifyEvent(payload, c.GetHeader("Stripe-Signature"), webhookSecret)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeWebhookSig,
					Message: "webhook signature verification failed",
				},
			})
			return
		}

		// Only completed checkouts mint codes; everything else is ack'd.
		if event.Type != "checkout.session.completed" {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		purchase, err := payment.ParseCheckoutCompleted(event)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		code, err := st.IssueAccessCode(c.Request.Context(), purchase.Email)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		if m != nil {
			if err := m.SendAccessCode(c.Request.Context(), purchase.Email, code); err != nil {
				slog.Error("access code delivery failed",
					"email", purchase.Email,
					"error", err,
				)
			}
		}

		captureLead(sink, purchase.Email, purchase.URL)

		slog.Info("purchase completed", "email", purchase.Email, "url", purchase.URL)
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
