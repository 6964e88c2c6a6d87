package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/analyzer"
	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/leads"
	"github.com/rankscore-ai/rankscore/llm"
	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/report"
	"github.com/rankscore-ai/rankscore/scoring"
	"github.com/rankscore-ai/rankscore/store"
)

// summaryTimeout bounds the optional LLM summary call so a slow model never
// holds a report hostage.
const summaryTimeout = 20 * time.Second

// QuickWinsReport returns a handler for POST /api/v1/reports/quick-wins —
// the free tier's PDF artifact: lite score plus top three fixes.
func QuickWinsReport(an *analyzer.Analyzer, sink *leads.Sink, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.QuickWinsReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		captureLead(sink, req.Email, req.URL)

		facts, err := an.Analyze(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		score := scoring.Lite(facts)
		wins := scoring.QuickWins(scoring.Recommend(facts, speedBudgets(cfg)), 3)

		data, err := report.QuickWins(req.URL, score, wins)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		servePDF(c, "quick-wins", req.URL, data)
	}
}

// DetailedReport returns a handler for POST /api/v1/reports/detailed — the
// pro audit PDF with every signal, the full recommendation list, and an
// optional model-written executive summary.
func DetailedReport(an *analyzer.Analyzer, lc *llm.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		facts, err := an.Analyze(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		breakdown := scoring.Compute(facts)
		issues := scoring.Recommend(facts, speedBudgets(cfg))

		// Summary failures degrade to a report without the summary block.
		summary := ""
		if lc != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), summaryTimeout)
			summary, err = lc.Summarize(ctx, facts, breakdown, issues)
			cancel()
			if err != nil {
				slog.Warn("report summary skipped", "url", req.URL, "error", err)
				summary = ""
			}
		}

		data, err := report.Detailed(req.URL, facts, breakdown, issues, summary)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		servePDF(c, "detailed", req.URL, data)
	}
}

// ProgressReport returns a handler for POST /api/v1/reports/progress — the
// pro trajectory PDF built from stored history, no live scan.
func ProgressReport(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		summary, err := st.Progress(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		_, recs, err := st.History(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		data, err := report.Progress(req.URL, summary, recs)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		servePDF(c, "progress", req.URL, data)
	}
}

// servePDF writes the PDF bytes as a download named after the report kind
// and the analyzed host.
func servePDF(c *gin.Context, kind, rawURL string, data []byte) {
	host := "site"
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="rankscore-%s-%s.pdf"`, kind, host))
	c.Data(http.StatusOK, "application/pdf", data)
}
