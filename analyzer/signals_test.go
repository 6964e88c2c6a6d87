package analyzer

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, rawHTML string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestExtractMetadata(t *testing.T) {
	cases := []struct {
		name      string
		html      string
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "both present",
			html:      `<html><head><title>Pasta Guide</title><meta name="description" content="All about pasta"></head></html>`,
			wantTitle: "Pasta Guide",
			wantDesc:  "All about pasta",
		},
		{
			name: "both missing",
			html: `<html><head></head><body><p>hi</p></body></html>`,
		},
		{
			name: "empty elements count as missing",
			html: `<html><head><title>  </title><meta name="description" content=""></head></html>`,
		},
		{
			name:      "other meta tags ignored",
			html:      `<html><head><title>x</title><meta name="keywords" content="pasta"></head></html>`,
			wantTitle: "x",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facts := extractMetadata(parseDoc(t, tc.html))
			if facts.Title != tc.wantTitle || facts.TitleFound != (tc.wantTitle != "") {
				t.Errorf("title = %q (found=%v), want %q", facts.Title, facts.TitleFound, tc.wantTitle)
			}
			if facts.Description != tc.wantDesc || facts.DescriptionFound != (tc.wantDesc != "") {
				t.Errorf("description = %q (found=%v), want %q", facts.Description, facts.DescriptionFound, tc.wantDesc)
			}
		})
	}
}

func TestExtractHeadings(t *testing.T) {
	facts := extractHeadings(parseDoc(t, `<body><h1>a</h1><h2>b</h2><h2>c</h2></body>`))
	if facts.H1Count != 1 || !facts.H1Present {
		t.Errorf("h1: count=%d present=%v, want 1/true", facts.H1Count, facts.H1Present)
	}
	if facts.H2Count != 2 || !facts.H2Present {
		t.Errorf("h2: count=%d present=%v, want 2/true", facts.H2Count, facts.H2Present)
	}

	none := extractHeadings(parseDoc(t, `<body><h3>only</h3></body>`))
	if none.H1Present || none.H2Present {
		t.Errorf("no h1/h2 in fixture but got present flags: %+v", none)
	}
}

func TestExtractStructuredData(t *testing.T) {
	cases := []struct {
		name        string
		html        string
		wantPresent bool
		wantFAQ     bool
		wantBlocks  int
	}{
		{
			name:        "json-ld without faq",
			html:        `<script type="application/ld+json">{"@type":"Recipe"}</script>`,
			wantPresent: true,
			wantBlocks:  1,
		},
		{
			name:        "faq page schema",
			html:        `<script type="application/ld+json">{"@type":"FAQPage"}</script>`,
			wantPresent: true,
			wantFAQ:     true,
			wantBlocks:  1,
		},
		{
			name: "plain script is not structured data",
			html: `<script>var FAQPage = true;</script>`,
		},
		{
			// Substring matching, not schema validation: any mention of
			// FAQPage inside a JSON-LD block counts.
			name:        "faq substring in unrelated json-ld",
			html:        `<script type="application/ld+json">{"note":"see FAQPage docs"}</script>`,
			wantPresent: true,
			wantFAQ:     true,
			wantBlocks:  1,
		},
		{
			name: "multiple blocks",
			html: `<script type="application/ld+json">{"@type":"Article"}</script>` +
				`<script type="application/ld+json">{"@type":"FAQPage"}</script>`,
			wantPresent: true,
			wantFAQ:     true,
			wantBlocks:  2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facts := extractStructuredData(parseDoc(t, tc.html))
			if facts.Present != tc.wantPresent {
				t.Errorf("Present = %v, want %v", facts.Present, tc.wantPresent)
			}
			if facts.FAQPage != tc.wantFAQ {
				t.Errorf("FAQPage = %v, want %v", facts.FAQPage, tc.wantFAQ)
			}
			if facts.BlockCount != tc.wantBlocks {
				t.Errorf("BlockCount = %d, want %d", facts.BlockCount, tc.wantBlocks)
			}
		})
	}
}

func TestExtractMobile(t *testing.T) {
	facts := extractMobile(parseDoc(t, `<head><meta name="viewport" content="width=device-width"></head>`))
	if !facts.Viewport {
		t.Error("viewport meta tag present but not detected")
	}
	if facts.ViewportContent != "width=device-width" {
		t.Errorf("ViewportContent = %q", facts.ViewportContent)
	}

	if extractMobile(parseDoc(t, `<head><meta name="robots" content="index"></head>`)).Viewport {
		t.Error("viewport reported on a page without one")
	}
}

func TestExtractAccessibility(t *testing.T) {
	cases := []struct {
		name         string
		html         string
		wantImages   int
		wantWithAlt  int
		wantComplete bool
	}{
		{
			name:         "zero images is vacuously complete",
			html:         `<body><p>text only</p></body>`,
			wantComplete: true,
		},
		{
			name:         "all images have alt",
			html:         `<body><img src="a.jpg" alt="a"><img src="b.jpg" alt="b"></body>`,
			wantImages:   2,
			wantWithAlt:  2,
			wantComplete: true,
		},
		{
			name:        "one missing alt",
			html:        `<body><img src="a.jpg" alt="a"><img src="b.jpg"></body>`,
			wantImages:  2,
			wantWithAlt: 1,
		},
		{
			name:        "whitespace alt counts as missing",
			html:        `<body><img src="a.jpg" alt="  "></body>`,
			wantImages:  1,
			wantWithAlt: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facts := extractAccessibility(parseDoc(t, tc.html))
			if facts.ImageCount != tc.wantImages || facts.ImagesWithAlt != tc.wantWithAlt {
				t.Errorf("images = %d/%d with alt, want %d/%d",
					facts.ImagesWithAlt, facts.ImageCount, tc.wantWithAlt, tc.wantImages)
			}
			if facts.AltTextComplete != tc.wantComplete {
				t.Errorf("AltTextComplete = %v, want %v", facts.AltTextComplete, tc.wantComplete)
			}
		})
	}
}
