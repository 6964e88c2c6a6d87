package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/scoring"
)

func checkPDF(t *testing.T, data []byte, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header (%d bytes)", len(data))
	}
}

func TestQuickWins(t *testing.T) {
	wins := []models.Issue{
		{Type: "title", Fix: "Add a descriptive title tag", Effort: "low", Example: "Best Italian Recipes"},
		{Type: "h1", Fix: "Add an H1 header", Effort: "low", Example: "Welcome"},
	}
	data, err := QuickWins("https://example.com", 50, wins)
	checkPDF(t, data, err)
}

func TestDetailed(t *testing.T) {
	facts := &models.PageFacts{
		URL:      "https://example.com",
		Metadata: models.MetadataFacts{Title: "Example", TitleFound: true},
		Headings: models.HeadingFacts{H1Count: 1, H1Present: true},
		Speed:    models.SpeedFacts{Performance: 85, TTFBMs: 120, ResourceCount: 12, TotalBytes: 250_000},
	}
	breakdown := scoring.Compute(facts)
	issues := scoring.Recommend(facts, scoring.DefaultSpeedBudgets())

	data, err := Detailed("https://example.com", facts, breakdown, issues, "Fix the metadata first.")
	checkPDF(t, data, err)

	// Without a summary block.
	data, err = Detailed("https://example.com", facts, breakdown, issues, "")
	checkPDF(t, data, err)
}

func TestProgress(t *testing.T) {
	implementedAt := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	summary := &models.ProgressSummary{
		URL:                  "https://example.com",
		InitialScore:         45,
		CurrentScore:         70,
		TotalImprovement:     25,
		ScanCount:            3,
		ImplementedCount:     2,
		PendingCount:         1,
		ImplementationImpact: 30,
		FirstScanAt:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		LastScanAt:           time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ContentChanged:       true,
	}
	recs := []models.Recommendation{
		{Type: "title", Description: "Add a descriptive title tag", Priority: 1,
			PointsPotential: 10, Status: models.StatusImplemented, ImplementationDate: &implementedAt},
		{Type: "faq", Description: "Add FAQ schema markup", Priority: 3,
			PointsPotential: 20, Status: models.StatusPending},
	}

	data, err := Progress("https://example.com", summary, recs)
	checkPDF(t, data, err)
}
