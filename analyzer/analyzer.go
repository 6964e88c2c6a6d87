// Package analyzer extracts the per-signal facts one scan needs: metadata,
// headings, structured data, mobile and accessibility checks from the parsed
// document, plus timing and resource-weight measurements from the network.
package analyzer

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/fetcher"
	"github.com/rankscore-ai/rankscore/models"
)

// Fetcher is the page-retrieval capability the analyzer consumes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Result, error)
	Probe(ctx context.Context, url string) (int64, error)
}

// Analyzer runs the full extraction pipeline for one URL at a time.
// It is stateless between calls and safe for concurrent use.
type Analyzer struct {
	fetcher Fetcher
	cfg     config.AnalyzerConfig
}

// New creates an Analyzer backed by the given fetcher.
func New(f Fetcher, cfg config.AnalyzerConfig) *Analyzer {
	return &Analyzer{fetcher: f, cfg: cfg}
}

// Analyze fetches the URL and extracts every signal category.
//
// Flow:
//  1. Fetch the document (records TTFB).
//  2. Parse once; the same tree feeds goquery and the resource selectors.
//  3. Run the document extractors (pure, never error on odd HTML).
//  4. Discover linked resources and probe their sizes concurrently.
//  5. Profile the main content via readability (best effort).
//  6. Fingerprint the visible text for longitudinal change detection.
//
// Only a failed fetch or an unparseable body is an error; every individual
// signal degrades to its documented default instead of aborting the scan.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*models.PageFacts, error) {
	start := time.Now()

	// ── 1. Fetch ────────────────────────────────────────────────────
	res, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	// ── 2. Parse once ───────────────────────────────────────────────
	root, err := html.Parse(bytes.NewReader(res.Body))
	if err != nil {
		return nil, models.NewScanError(models.ErrCodeParse, "could not parse page body", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	facts := &models.PageFacts{
		URL:        rawURL,
		FinalURL:   res.FinalURL,
		StatusCode: res.StatusCode,
		FetchedAt:  start.UTC(),
	}

	// ── 3. Document signals ─────────────────────────────────────────
	facts.Metadata = extractMetadata(doc)
	facts.Headings = extractHeadings(doc)
	facts.StructuredData = extractStructuredData(doc)
	facts.Mobile = extractMobile(doc)
	facts.Accessibility = extractAccessibility(doc)

	// ── 4. Speed ────────────────────────────────────────────────────
	facts.Speed = a.measureSpeed(ctx, root, res, start)

	// ── 5. Content profile ──────────────────────────────────────────
	facts.Content = extractContent(res.Body, res.FinalURL)

	// ── 6. Fingerprint ──────────────────────────────────────────────
	facts.Fingerprint = Fingerprint(visibleText(res.Body))

	return facts, nil
}
