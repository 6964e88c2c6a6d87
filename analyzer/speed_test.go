package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/fetcher"
	"github.com/rankscore-ai/rankscore/models"
)

// fakeFetcher serves canned pages and probe sizes for analyzer tests.
type fakeFetcher struct {
	body      string
	ttfb      time.Duration
	fetchErr  error
	sizes     map[string]int64
	probeErrs map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*fetcher.Result, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return &fetcher.Result{
		Body:       []byte(f.body),
		StatusCode: 200,
		FinalURL:   url,
		TTFB:       f.ttfb,
	}, nil
}

func (f *fakeFetcher) Probe(_ context.Context, url string) (int64, error) {
	if err, ok := f.probeErrs[url]; ok {
		return 0, err
	}
	return f.sizes[url], nil
}

func testAnalyzerConfig() config.AnalyzerConfig {
	return config.AnalyzerConfig{
		ProbeWorkers:    4,
		MaxResources:    200,
		TTFBBudgetMs:    200,
		TotalBudgetMs:   3000,
		ResourceBudget:  50,
		SizeBudgetBytes: 5_000_000,
	}
}

func parseTree(t *testing.T, rawHTML string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return root
}

func TestDiscoverResources(t *testing.T) {
	page := `<html><head>
		<script src="/app.js"></script>
		<script>inline();</script>
		<link rel="stylesheet" href="style.css">
		<link rel="icon" href="/favicon.ico">
	</head><body>
		<img src="https://cdn.example.com/hero.png">
		<img src="data:image/png;base64,AAAA">
	</body></html>`

	resources := discoverResources(parseTree(t, page), "https://example.com/blog/post", 200)

	want := map[string]string{
		"https://example.com/app.js":         "script",
		"https://example.com/blog/style.css": "css",
		"https://cdn.example.com/hero.png":   "image",
	}
	if len(resources) != len(want) {
		t.Fatalf("got %d resources %v, want %d", len(resources), resources, len(want))
	}
	for _, r := range resources {
		if want[r.url] != r.kind {
			t.Errorf("resource %q classified as %q, want %q", r.url, r.kind, want[r.url])
		}
	}
}

func TestDiscoverResources_CapsAtMax(t *testing.T) {
	var b strings.Builder
	b.WriteString("<body>")
	for i := 0; i < 20; i++ {
		b.WriteString(`<img src="/img.png">`)
	}
	b.WriteString("</body>")

	resources := discoverResources(parseTree(t, b.String()), "https://example.com/", 5)
	if len(resources) != 5 {
		t.Errorf("got %d resources, want 5 (capped)", len(resources))
	}
}

func TestProbeAll_FailuresCountAsZeroSize(t *testing.T) {
	ff := &fakeFetcher{
		sizes: map[string]int64{
			"https://example.com/a.js":  1000,
			"https://example.com/b.css": 500,
		},
		probeErrs: map[string]error{
			"https://example.com/broken.png": errors.New("connection refused"),
		},
	}
	a := New(ff, testAnalyzerConfig())

	total, failed := a.probeAll(context.Background(), []resource{
		{url: "https://example.com/a.js", kind: "script"},
		{url: "https://example.com/b.css", kind: "css"},
		{url: "https://example.com/broken.png", kind: "image"},
	})

	if total != 1500 {
		t.Errorf("total bytes = %d, want 1500", total)
	}
	if failed != 1 {
		t.Errorf("failed probes = %d, want 1", failed)
	}
}

func TestPerformanceScore(t *testing.T) {
	a := New(&fakeFetcher{}, testAnalyzerConfig())

	cases := []struct {
		name  string
		facts models.SpeedFacts
		want  int
	}{
		{"all within budget", models.SpeedFacts{TTFBMs: 100, TotalMs: 1000, ResourceCount: 10, TotalBytes: 100_000}, 100},
		{"slow ttfb", models.SpeedFacts{TTFBMs: 500}, 80},
		{"slow total", models.SpeedFacts{TotalMs: 5000}, 80},
		{"two budgets missed", models.SpeedFacts{TTFBMs: 500, TotalBytes: 6_000_000}, 60},
		{"all budgets missed", models.SpeedFacts{TTFBMs: 500, TotalMs: 5000, ResourceCount: 80, TotalBytes: 6_000_000}, 20},
		{"at the boundary nothing fires", models.SpeedFacts{TTFBMs: 200, TotalMs: 3000, ResourceCount: 50, TotalBytes: 5_000_000}, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.performanceScore(&tc.facts); got != tc.want {
				t.Errorf("performanceScore = %d, want %d", got, tc.want)
			}
		})
	}
}
