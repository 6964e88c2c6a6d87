package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/analyzer"
	"github.com/rankscore-ai/rankscore/cache"
	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/scoring"
	"github.com/rankscore-ai/rankscore/store"
	"github.com/rankscore-ai/rankscore/webhook"
)

// Analyze returns a handler for POST /api/v1/analyze — the full pro scan.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup (when max_age is set).
//  3. Analyzer.Analyze → facts            (records fetch/analyze timing)
//  4. Score + recommendations.
//  5. Persist scan (debounced) and recommendations unless persist=false.
//  6. Emit scan.completed, store in cache, respond 200.
func Analyze(an *analyzer.Analyzer, st *store.Store, cc *cache.Cache, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		// ── 2. Cache lookup ─────────────────────────────────────────
		cacheKey := cache.Key(req.URL)
		if cc != nil && req.MaxAge > 0 {
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				out := *cached
				out.CacheStatus = "hit"
				out.Timing = models.TimingInfo{
					TotalMs: time.Since(totalStart).Milliseconds(),
				}
				c.JSON(http.StatusOK, &out)
				return
			}
		}

		// ── 3. Analyze ──────────────────────────────────────────────
		analyzeStart := time.Now()
		facts, err := an.Analyze(c.Request.Context(), req.URL)
		analyzeMs := time.Since(analyzeStart).Milliseconds()

		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs:   time.Since(totalStart).Milliseconds(),
				AnalyzeMs: analyzeMs,
			})
			return
		}

		// ── 4. Score + recommend ────────────────────────────────────
		breakdown := scoring.Compute(facts)
		issues := scoring.Recommend(facts, speedBudgets(cfg))

		// ── 5. Persist ──────────────────────────────────────────────
		saved := false
		if *req.Persist {
			var err error
			saved, err = st.RecordScan(c.Request.Context(), req.URL, breakdown, facts)
			if err != nil {
				respondError(c, err, models.TimingInfo{
					TotalMs:   time.Since(totalStart).Milliseconds(),
					AnalyzeMs: analyzeMs,
				})
				return
			}
			if _, err := st.RecordRecommendations(c.Request.Context(), req.URL, issues); err != nil {
				respondError(c, err, models.TimingInfo{
					TotalMs:   time.Since(totalStart).Milliseconds(),
					AnalyzeMs: analyzeMs,
				})
				return
			}
		}

		resp := &models.AnalyzeResponse{
			Success:         true,
			Facts:           facts,
			Score:           &breakdown,
			Assessment:      scoring.Assessment(breakdown.Total),
			Recommendations: issues,
			Saved:           saved,
			Timing: models.TimingInfo{
				TotalMs:   time.Since(totalStart).Milliseconds(),
				FetchMs:   facts.Speed.TTFBMs,
				AnalyzeMs: analyzeMs,
			},
		}

		// ── 6. Events, cache, respond ───────────────────────────────
		if saved && cfg.Webhook.URL != "" {
			webhook.DeliverAsync(cfg.Webhook.URL, cfg.Webhook.Secret, &webhook.Event{
				Type:      webhook.EventScanCompleted,
				URL:       req.URL,
				Timestamp: time.Now().Unix(),
				Data:      resp,
			})
		}

		if cc != nil && req.MaxAge > 0 {
			cc.Set(cacheKey, resp)
			resp.CacheStatus = "miss"
		}

		c.JSON(http.StatusOK, resp)
	}
}

// speedBudgets bridges the analyzer's performance budgets into the shape the
// recommendation engine consumes.
func speedBudgets(cfg *config.Config) scoring.SpeedBudgets {
	return scoring.SpeedBudgets{
		TTFBMs:    cfg.Analyzer.TTFBBudgetMs,
		SizeBytes: cfg.Analyzer.SizeBudgetBytes,
		Resources: cfg.Analyzer.ResourceBudget,
	}
}

// respondError maps a ScanError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	scanErr, ok := err.(*models.ScanError)
	if !ok {
		scanErr = models.NewScanError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(scanErr), models.AnalyzeResponse{
		Success: false,
		Error:   scanErr.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScanError) int {
	switch e.Code {
	case models.ErrCodeFetchTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeFetch, models.ErrCodeParse:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput, models.ErrCodeWebhookSig:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized, models.ErrCodeInvalidCode:
		return http.StatusUnauthorized // 401
	case models.ErrCodeNoScanData:
		return http.StatusNotFound // 404
	case models.ErrCodeCodeExhausted:
		return http.StatusConflict // 409
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}
