package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/analyzer"
	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/leads"
	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/scoring"
)

// FreeScore returns a handler for POST /api/v1/score — the free-tier teaser.
//
// The page is analyzed in full but only the lite score and the top three
// quick wins are returned. Nothing is persisted. A page that cannot be
// fetched scores 0 with a warning rather than an HTTP error: the lead was
// already captured and deserves an answer.
func FreeScore(an *analyzer.Analyzer, sink *leads.Sink, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.FreeScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.LiteScoreResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		captureLead(sink, req.Email, req.URL)

		facts, err := an.Analyze(c.Request.Context(), req.URL)
		if err != nil {
			c.JSON(http.StatusOK, models.LiteScoreResponse{
				Success:    true,
				URL:        req.URL,
				Score:      0,
				Assessment: scoring.Assessment(0),
				Warning:    err.Error(),
				Timing: models.TimingInfo{
					TotalMs: time.Since(totalStart).Milliseconds(),
				},
			})
			return
		}

		score := scoring.Lite(facts)
		issues := scoring.Recommend(facts, speedBudgets(cfg))

		c.JSON(http.StatusOK, models.LiteScoreResponse{
			Success:    true,
			URL:        req.URL,
			Score:      score,
			Assessment: scoring.Assessment(score),
			QuickWins:  scoring.QuickWins(issues, 3),
			Timing: models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
				FetchMs: facts.Speed.TTFBMs,
			},
		})
	}
}

// captureLead appends the email to the lead sheet in the background. Sink
// failures never surface to the caller.
func captureLead(sink *leads.Sink, email, url string) {
	if sink == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := sink.Append(ctx, email, url, time.Now()); err != nil {
			slog.Warn("lead capture failed", "email", email, "error", err)
		}
	}()
}
