package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/analyzer"
	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/scoring"
	"github.com/rankscore-ai/rankscore/store"
	"github.com/rankscore-ai/rankscore/webhook"
)

// batchStore holds all in-flight and completed batch jobs.
var batchStore sync.Map

func init() {
	// Background goroutine to expire batch jobs older than 1 hour.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-1 * time.Hour).Unix()
			batchStore.Range(func(key, value any) bool {
				job := value.(*models.BatchJob)
				if job.CreatedAt < cutoff {
					batchStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// PostBatch returns a handler for POST /api/v1/batch/analyze.
// It validates the request, creates a batch job, and launches goroutines
// to analyze each URL concurrently.
func PostBatch(an *analyzer.Analyzer, st *store.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchAnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		if len(req.URLs) > cfg.Batch.MaxURLs {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: fmt.Sprintf("maximum %d URLs per batch", cfg.Batch.MaxURLs),
				},
			})
			return
		}

		jobID := "batch-" + randomID()
		job := &models.BatchJob{
			ID:        jobID,
			Status:    "processing",
			Total:     len(req.URLs),
			Completed: 0,
			Results:   make([]*models.AnalyzeResponse, len(req.URLs)),
			CreatedAt: time.Now().Unix(),
		}
		batchStore.Store(jobID, job)

		// Launch analysis in background.
		go runBatch(an, st, cfg, job, req)

		c.JSON(http.StatusOK, models.BatchResponse{
			ID:     jobID,
			Status: "processing",
			Total:  len(req.URLs),
		})
	}
}

// GetBatch returns a handler for GET /api/v1/batch/:id.
func GetBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")
		val, ok := batchStore.Load(jobID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "batch job not found",
				},
			})
			return
		}

		job := val.(*models.BatchJob)
		c.JSON(http.StatusOK, models.BatchStatusResponse{
			ID:        job.ID,
			Status:    job.Status,
			Completed: job.Completed,
			Total:     job.Total,
			Results:   job.Results,
		})
	}
}

// runBatch analyzes all URLs in a batch job with concurrency limited by
// a semaphore.
func runBatch(an *analyzer.Analyzer, st *store.Store, cfg *config.Config, job *models.BatchJob, req models.BatchAnalyzeRequest) {
	maxConcurrent := cfg.Batch.Concurrency
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	sem := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	var completed atomic.Int32
	var failed atomic.Int32

	for i, rawURL := range req.URLs {
		wg.Add(1)
		go func(idx int, targetURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			resp := analyzeOne(an, st, cfg, targetURL, *req.Persist)
			job.Results[idx] = resp

			if resp.Success {
				completed.Add(1)
			} else {
				failed.Add(1)
			}
			job.Completed = int(completed.Load()) + int(failed.Load())
		}(i, rawURL)
	}

	wg.Wait()

	failedCount := int(failed.Load())
	completedCount := int(completed.Load())

	switch {
	case failedCount == job.Total:
		job.Status = "failed"
	case failedCount > 0:
		job.Status = "partial"
	default:
		job.Status = "completed"
	}
	job.Completed = completedCount + failedCount

	if cfg.Webhook.URL != "" {
		webhook.DeliverAsync(cfg.Webhook.URL, cfg.Webhook.Secret, &webhook.Event{
			Type:      webhook.EventBatchCompleted,
			JobID:     job.ID,
			Timestamp: time.Now().Unix(),
			Data: models.BatchStatusResponse{
				ID:        job.ID,
				Status:    job.Status,
				Completed: job.Completed,
				Total:     job.Total,
			},
		})
	}

	slog.Info("batch job finished",
		"id", job.ID,
		"status", job.Status,
		"completed", completedCount,
		"failed", failedCount,
		"total", job.Total,
	)
}

// analyzeOne scores a single URL for a batch job.
func analyzeOne(an *analyzer.Analyzer, st *store.Store, cfg *config.Config, targetURL string, persist bool) *models.AnalyzeResponse {
	totalStart := time.Now()

	facts, err := an.Analyze(context.Background(), targetURL)
	analyzeMs := time.Since(totalStart).Milliseconds()

	if err != nil {
		scanErr, ok := err.(*models.ScanError)
		if !ok {
			scanErr = models.NewScanError(models.ErrCodeInternal, err.Error(), err)
		}
		return &models.AnalyzeResponse{
			Success: false,
			Error:   scanErr.ToDetail(),
			Timing: models.TimingInfo{
				TotalMs:   time.Since(totalStart).Milliseconds(),
				AnalyzeMs: analyzeMs,
			},
		}
	}

	breakdown := scoring.Compute(facts)
	issues := scoring.Recommend(facts, speedBudgets(cfg))

	saved := false
	if persist {
		saved, err = st.RecordScan(context.Background(), targetURL, breakdown, facts)
		if err != nil {
			slog.Error("batch scan persistence failed", "url", targetURL, "error", err)
		} else if _, err := st.RecordRecommendations(context.Background(), targetURL, issues); err != nil {
			slog.Error("batch recommendation persistence failed", "url", targetURL, "error", err)
		}
	}

	return &models.AnalyzeResponse{
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
}

// randomID generates a short random hex string for job IDs.
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
