// Package payment wraps the Stripe SDK: hosted checkout session creation and
// inbound webhook verification.
package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/models"
)

// Client creates checkout sessions for the pro upgrade. A nil Client is
// valid and means payments are not configured.
type Client struct {
	cfg config.StripeConfig
}

// New returns a Client, or nil when no secret key is configured.
func New(cfg config.StripeConfig) *Client {
	if cfg.SecretKey == "" {
		return nil
	}
	stripe.Key = cfg.SecretKey
	return &Client{cfg: cfg}
}

// CreateCheckout opens a hosted checkout session for one pro purchase and
// returns the redirect URL. The analyzed URL travels in session metadata so
// the completion webhook can associate the purchase with the site.
func (c *Client) CreateCheckout(ctx context.Context, email, url string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(c.cfg.PriceID), Quantity: stripe.Int64(1)},
		},
		CustomerEmail: stripe.String(email),
		SuccessURL:    stripe.String(c.cfg.SuccessURL),
		CancelURL:     stripe.String(c.cfg.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("url", url)

	sess, err := session.New(params)
	if err != nil {
		return "", models.NewScanError(models.ErrCodePayment, "could not create checkout session", err)
	}
	return sess.URL, nil
}

// VerifyEvent checks the Stripe-Signature header against the webhook secret
// and returns the parsed event.
func VerifyEvent(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return stripe.Event{}, models.NewScanError(models.ErrCodeWebhookSig, "webhook signature verification failed", err)
	}
	return event, nil
}

// CheckoutCompleted is the purchase data extracted from a completed-checkout
// event.
type CheckoutCompleted struct {
	Email string
	URL   string
}

// ParseCheckoutCompleted extracts the buyer email and the analyzed URL from
// a checkout.session.completed event. The email falls back to customer
// details when the session-level field is empty.
func ParseCheckoutCompleted(event stripe.Event) (*CheckoutCompleted, error) {
	if event.Type != "checkout.session.completed" {
		return nil, fmt.Errorf("payment: unexpected event type %q", event.Type)
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("payment: parse checkout session: %w", err)
	}

	email := sess.CustomerEmail
	if email == "" && sess.CustomerDetails != nil {
		email = sess.CustomerDetails.Email
	}
	if email == "" {
		return nil, fmt.Errorf("payment: completed checkout carries no customer email")
	}

	return &CheckoutCompleted{
		Email: email,
		URL:   sess.Metadata["url"],
	}, nil
}
