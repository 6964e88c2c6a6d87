package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rankscore-ai/rankscore/models"
)

// extractMetadata reads the title element and the meta description. A
// missing or empty element maps to Found=false, never an error.
func extractMetadata(doc *goquery.Document) models.MetadataFacts {
	var facts models.MetadataFacts

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title != "" {
		facts.Title = title
		facts.TitleFound = true
	}

	desc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	desc = strings.TrimSpace(desc)
	if desc != "" {
		facts.Description = desc
		facts.DescriptionFound = true
	}

	return facts
}

// extractHeadings counts h1 and h2 elements.
func extractHeadings(doc *goquery.Document) models.HeadingFacts {
	h1 := doc.Find("h1").Length()
	h2 := doc.Find("h2").Length()
	return models.HeadingFacts{
		H1Count:   h1,
		H1Present: h1 > 0,
		H2Count:   h2,
		H2Present: h2 > 0,
	}
}

// extractStructuredData detects JSON-LD script blocks. FAQPage detection is
// a raw substring match on the script text, not a JSON parse — near-miss
// text like a quoted mention of "FAQPage" counts. Deliberate: tightening it
// to a schema parse would reclassify pages already scored under this rule.
func extractStructuredData(doc *goquery.Document) models.StructuredDataFacts {
	var facts models.StructuredDataFacts

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		facts.BlockCount++
		if strings.Contains(s.Text(), "FAQPage") {
			facts.FAQPage = true
		}
	})
	facts.Present = facts.BlockCount > 0

	return facts
}

// extractMobile detects the viewport meta tag.
func extractMobile(doc *goquery.Document) models.MobileFacts {
	sel := doc.Find(`meta[name="viewport"]`).First()
	if sel.Length() == 0 {
		return models.MobileFacts{}
	}
	content, _ := sel.Attr("content")
	return models.MobileFacts{Viewport: true, ViewportContent: content}
}

// extractAccessibility checks that every image carries non-empty alt text.
// A page with no images passes vacuously.
func extractAccessibility(doc *goquery.Document) models.AccessibilityFacts {
	var facts models.AccessibilityFacts

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		facts.ImageCount++
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			facts.ImagesWithAlt++
		}
	})
	facts.AltTextComplete = facts.ImagesWithAlt == facts.ImageCount

	return facts
}
