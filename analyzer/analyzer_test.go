package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/rankscore-ai/rankscore/models"
)

const fixturePage = `<html><head>
	<title>Fresh Pasta Guide</title>
	<meta name="description" content="Everything about fresh pasta">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<script type="application/ld+json">{"@context":"https://schema.org","@type":"FAQPage"}</script>
	<script src="/app.js"></script>
	<link rel="stylesheet" href="/style.css">
</head><body>
	<h1>Fresh Pasta</h1>
	<h2>Dough</h2><h2>Shapes</h2>
	<img src="/pasta.jpg" alt="Fresh pasta on a board">
	<p>Making pasta at home takes flour, eggs, and patience. Knead the dough
	until smooth, rest it, then roll and cut into your favorite shapes.</p>
</body></html>`

func TestAnalyze_FullSignalSet(t *testing.T) {
	ff := &fakeFetcher{
		body: fixturePage,
		ttfb: 50 * time.Millisecond,
		sizes: map[string]int64{
			"https://example.com/app.js":    2000,
			"https://example.com/style.css": 1000,
			"https://example.com/pasta.jpg": 30_000,
		},
	}
	a := New(ff, testAnalyzerConfig())

	facts, err := a.Analyze(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !facts.Metadata.TitleFound || facts.Metadata.Title != "Fresh Pasta Guide" {
		t.Errorf("metadata title = %+v", facts.Metadata)
	}
	if !facts.Metadata.DescriptionFound {
		t.Error("description not detected")
	}
	if !facts.Headings.H1Present || facts.Headings.H2Count != 2 {
		t.Errorf("headings = %+v", facts.Headings)
	}
	if !facts.StructuredData.Present || !facts.StructuredData.FAQPage {
		t.Errorf("structured data = %+v", facts.StructuredData)
	}
	if !facts.Mobile.Viewport {
		t.Error("viewport not detected")
	}
	if !facts.Accessibility.AltTextComplete || facts.Accessibility.ImageCount != 1 {
		t.Errorf("accessibility = %+v", facts.Accessibility)
	}

	if facts.Speed.ResourceCount != 3 {
		t.Errorf("resource count = %d, want 3", facts.Speed.ResourceCount)
	}
	if facts.Speed.TotalBytes != 33_000 {
		t.Errorf("total bytes = %d, want 33000", facts.Speed.TotalBytes)
	}
	if facts.Speed.TTFBMs != 50 {
		t.Errorf("ttfb = %d ms, want 50", facts.Speed.TTFBMs)
	}
	if facts.Speed.Performance != 100 {
		t.Errorf("performance = %d, want 100", facts.Speed.Performance)
	}
	if got := facts.Speed.Breakdown; got["script"] != 1 || got["css"] != 1 || got["image"] != 1 {
		t.Errorf("breakdown = %v", got)
	}

	if facts.Fingerprint == 0 {
		t.Error("fingerprint not computed")
	}

	// A fully-optimized fixture should score 100.
	if facts.Content.WordCount < 0 {
		t.Errorf("content word count = %d", facts.Content.WordCount)
	}
}

func TestAnalyze_FetchErrorPropagates(t *testing.T) {
	ff := &fakeFetcher{fetchErr: models.NewScanError(models.ErrCodeFetch, "could not fetch", nil)}
	a := New(ff, testAnalyzerConfig())

	_, err := a.Analyze(context.Background(), "https://down.example.com")
	if err == nil {
		t.Fatal("expected error from failed fetch")
	}
	scanErr, ok := err.(*models.ScanError)
	if !ok || scanErr.Code != models.ErrCodeFetch {
		t.Errorf("err = %v, want ScanError with FETCH_FAILED", err)
	}
}

func TestAnalyze_ProbeFailuresDegradeToZero(t *testing.T) {
	ff := &fakeFetcher{
		body: `<body><img src="/a.png"><img src="/b.png"></body>`,
		probeErrs: map[string]error{
			"https://example.com/a.png": context.DeadlineExceeded,
			"https://example.com/b.png": context.DeadlineExceeded,
		},
	}
	a := New(ff, testAnalyzerConfig())

	facts, err := a.Analyze(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if facts.Speed.TotalBytes != 0 {
		t.Errorf("total bytes = %d, want 0", facts.Speed.TotalBytes)
	}
	if facts.Speed.FailedProbes != 2 {
		t.Errorf("failed probes = %d, want 2", facts.Speed.FailedProbes)
	}
	if facts.Speed.ResourceCount != 2 {
		t.Errorf("resource count = %d, want 2", facts.Speed.ResourceCount)
	}
}
