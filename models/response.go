package models

// AnalyzeResponse is the response for POST /api/v1/analyze.
type AnalyzeResponse struct {
	// Success indicates whether the analysis completed.
	Success bool `json:"success"`

	// Facts is the full extracted signal set.
	Facts *PageFacts `json:"facts,omitempty"`

	// Score is the weighted breakdown derived from Facts.
	Score *ScoreBreakdown `json:"score,omitempty"`

	// Assessment is the plain-language tier for Score.Total
	// ("excellent", "good", "needs_work").
	Assessment string `json:"assessment,omitempty"`

	// Recommendations is the prioritized issue list, most urgent first.
	Recommendations []Issue `json:"recommendations,omitempty"`

	// Saved reports whether this scan was written to history; false when
	// persistence was off or the write was debounced.
	Saved bool `json:"saved"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// LiteScoreResponse is the response for POST /api/v1/score (free tier).
type LiteScoreResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`

	// Score is the teaser score: 65 when the page has a title, 50 when it
	// does not, 0 when the page could not be fetched.
	Score int `json:"score"`

	// Assessment is the plain-language tier for Score.
	Assessment string `json:"assessment"`

	// QuickWins is the top of the prioritized issue list (up to 3 entries).
	QuickWins []Issue `json:"quick_wins,omitempty"`

	// Warning carries a fetch problem that degraded the score to 0.
	Warning string `json:"warning,omitempty"`

	Timing TimingInfo   `json:"timing"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

// HistoryResponse is the response for GET /api/v1/history.
type HistoryResponse struct {
	Success         bool             `json:"success"`
	URL             string           `json:"url"`
	Scans           []ScanRecord     `json:"scans"`
	Recommendations []Recommendation `json:"recommendations"`
	Error           *ErrorDetail     `json:"error,omitempty"`
}

// ProgressResponse is the response for GET /api/v1/progress.
type ProgressResponse struct {
	Success  bool             `json:"success"`
	Progress *ProgressSummary `json:"progress,omitempty"`
	Error    *ErrorDetail     `json:"error,omitempty"`
}

// RedeemResponse is the response for POST /api/v1/access/redeem. The token
// is the session credential for the pro endpoints.
type RedeemResponse struct {
	Success   bool         `json:"success"`
	Token     string       `json:"token,omitempty"`
	Email     string       `json:"email,omitempty"`
	ExpiresAt int64        `json:"expires_at,omitempty"` // unix seconds
	Error     *ErrorDetail `json:"error,omitempty"`
}

// CheckoutResponse is the response for POST /api/v1/checkout.
type CheckoutResponse struct {
	Success     bool         `json:"success"`
	CheckoutURL string       `json:"checkout_url,omitempty"`
	Error       *ErrorDetail `json:"error,omitempty"`
}

// UpdateRecommendationResponse is the response for
// PATCH /api/v1/recommendations/:id.
type UpdateRecommendationResponse struct {
	Success bool         `json:"success"`
	ID      int64        `json:"id"`
	Status  string       `json:"status,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent fetching the main document.
	FetchMs int64 `json:"fetch_ms,omitempty"`

	// AnalyzeMs is the time spent extracting signals, including the
	// concurrent resource probes.
	AnalyzeMs int64 `json:"analyze_ms,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"` // "healthy" or "degraded"
	Uptime  string `json:"uptime"`
	Store   string `json:"store"` // "ok" or the ping error
	Version string `json:"version"`
}
