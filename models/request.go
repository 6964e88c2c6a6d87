package models

// AnalyzeRequest is the payload for POST /api/v1/analyze.
type AnalyzeRequest struct {
	// URL is the page to analyze. Required.
	URL string `json:"url" binding:"required,url"`

	// MaxAge enables the response cache: a cached analysis younger than
	// MaxAge milliseconds is returned instead of re-scanning.
	// Default: 0 (no cache lookup).
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`

	// Persist controls whether the scan and its recommendations are written
	// to history. Default: true.
	Persist *bool `json:"persist,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *AnalyzeRequest) Defaults() {
	if r.Persist == nil {
		t := true
		r.Persist = &t
	}
}

// FreeScoreRequest is the payload for POST /api/v1/score — the free-tier
// teaser. The email is the lead captured in exchange for the score.
type FreeScoreRequest struct {
	Email string `json:"email" binding:"required,email"`
	URL   string `json:"url" binding:"required,url"`
}

// CheckoutRequest is the payload for POST /api/v1/checkout.
type CheckoutRequest struct {
	Email string `json:"email" binding:"required,email"`

	// URL is carried through Stripe metadata so the webhook can associate
	// the purchase with the site being analyzed.
	URL string `json:"url" binding:"required,url"`
}

// RedeemRequest is the payload for POST /api/v1/access/redeem.
type RedeemRequest struct {
	Code string `json:"code" binding:"required,len=8"`
}

// UpdateRecommendationRequest is the payload for
// PATCH /api/v1/recommendations/:id.
type UpdateRecommendationRequest struct {
	// Status must be one of "pending", "in_progress", "implemented",
	// "deferred".
	Status string `json:"status" binding:"required"`

	// Notes is free text attached to the recommendation.
	Notes string `json:"notes,omitempty"`
}

// ReportRequest is the payload for the pro report endpoints
// (POST /api/v1/reports/detailed and /reports/progress).
type ReportRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// QuickWinsReportRequest is the payload for POST /api/v1/reports/quick-wins.
// Same shape as the free score: the report is the free tier's artifact.
type QuickWinsReportRequest struct {
	Email string `json:"email" binding:"required,email"`
	URL   string `json:"url" binding:"required,url"`
}

// BatchAnalyzeRequest is the payload for POST /api/v1/batch/analyze.
type BatchAnalyzeRequest struct {
	// URLs to analyze. Max 20 per batch.
	URLs []string `json:"urls" binding:"required,min=1,dive,url"`

	// Persist controls history writes for every URL in the batch.
	// Default: true.
	Persist *bool `json:"persist,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *BatchAnalyzeRequest) Defaults() {
	if r.Persist == nil {
		t := true
		r.Persist = &t
	}
}
