package analyzer

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/rankscore-ai/rankscore/fetcher"
	"github.com/rankscore-ai/rankscore/models"
)

// Compiled selectors for the resource types counted against the page weight.
var (
	selScripts     = cascadia.MustCompile(`script[src]`)
	selStylesheets = cascadia.MustCompile(`link[rel="stylesheet"][href]`)
	selImages      = cascadia.MustCompile(`img[src]`)
)

// budgetPenalty is the performance cost of each missed budget.
const budgetPenalty = 20

// resource is one discovered sub-resource with its absolute URL.
type resource struct {
	url  string
	kind string // "script", "css", "image"
}

// measureSpeed aggregates the timing facts for one scan: the already-recorded
// TTFB, the sizes of every discovered resource (probed concurrently), and the
// derived performance score.
func (a *Analyzer) measureSpeed(ctx context.Context, root *html.Node, res *fetcher.Result, start time.Time) models.SpeedFacts {
	facts := models.SpeedFacts{
		TTFBMs:    res.TTFB.Milliseconds(),
		Breakdown: make(map[string]int),
	}

	resources := discoverResources(root, res.FinalURL, a.cfg.MaxResources)
	facts.ResourceCount = len(resources)
	for _, r := range resources {
		facts.Breakdown[r.kind]++
	}

	facts.TotalBytes, facts.FailedProbes = a.probeAll(ctx, resources)
	facts.TotalMs = time.Since(start).Milliseconds()
	facts.Performance = a.performanceScore(&facts)

	return facts
}

// discoverResources collects script, stylesheet, and image URLs from the
// parsed tree, resolved against the page's final URL. Non-HTTP schemes
// (data:, javascript:) and unresolvable references are skipped. The list is
// capped at max entries to keep probe fan-out bounded on pathological pages.
func discoverResources(root *html.Node, baseURL string, max int) []resource {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var resources []resource
	collect := func(sel cascadia.Selector, attr, kind string) {
		for _, node := range sel.MatchAll(root) {
			if max > 0 && len(resources) >= max {
				return
			}
			ref := attrValue(node, attr)
			if ref == "" {
				continue
			}
			resolved, err := base.Parse(ref)
			if err != nil {
				continue
			}
			if resolved.Scheme != "http" && resolved.Scheme != "https" {
				continue
			}
			resources = append(resources, resource{url: resolved.String(), kind: kind})
		}
	}

	collect(selScripts, "src", "script")
	collect(selStylesheets, "href", "css")
	collect(selImages, "src", "image")

	return resources
}

// probeAll issues a HEAD request per resource through a bounded worker pool
// and sums the advertised sizes. A failed probe counts the resource with
// size 0; it never aborts the batch.
func (a *Analyzer) probeAll(ctx context.Context, resources []resource) (totalBytes int64, failed int) {
	if len(resources) == 0 {
		return 0, 0
	}

	workers := a.cfg.ProbeWorkers
	if workers <= 0 {
		workers = 10
	}
	sem := make(chan struct{}, workers)

	var (
		wg          sync.WaitGroup
		total       atomic.Int64
		failedCount atomic.Int32
	)

	for _, r := range resources {
		wg.Add(1)
		go func(r resource) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			size, err := a.fetcher.Probe(ctx, r.url)
			if err != nil {
				failedCount.Add(1)
				slog.Debug("resource probe failed", "url", r.url, "kind", r.kind, "error", err)
				return
			}
			total.Add(size)
		}(r)
	}
	wg.Wait()

	return total.Load(), int(failedCount.Load())
}

// performanceScore starts at 100 and loses 20 points per missed budget,
// floored at 0. The budgets fire independently and never compound.
func (a *Analyzer) performanceScore(facts *models.SpeedFacts) int {
	score := 100
	if facts.TTFBMs > a.cfg.TTFBBudgetMs {
		score -= budgetPenalty
	}
	if facts.TotalMs > a.cfg.TotalBudgetMs {
		score -= budgetPenalty
	}
	if facts.ResourceCount > a.cfg.ResourceBudget {
		score -= budgetPenalty
	}
	if facts.TotalBytes > a.cfg.SizeBudgetBytes {
		score -= budgetPenalty
	}
	if score < 0 {
		score = 0
	}
	return score
}

// attrValue returns the named attribute of an element node, or "".
func attrValue(node *html.Node, name string) string {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
