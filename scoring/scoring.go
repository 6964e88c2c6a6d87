// Package scoring turns extracted page facts into the 0-100 AEO score and
// the prioritized remediation list. Everything here is a pure function of
// models.PageFacts; the same facts always produce the same output.
package scoring

import "github.com/rankscore-ai/rankscore/models"

// Point allocations per signal. These are load-bearing: stored scan history
// is only comparable across time if the weights never move.
const (
	PointsStructuredData = 25
	PointsFAQ            = 20
	PointsHeadings       = 15
	PointsTitle          = 10
	PointsSpeed          = 10
	PointsDescription    = 8
	PointsMobile         = 7
	PointsAccessibility  = 5
)

// performanceFloor is the minimum performance score that still earns the
// speed component.
const performanceFloor = 80

// Compute derives the full score breakdown from one scan's facts.
func Compute(facts *models.PageFacts) models.ScoreBreakdown {
	var c models.ComponentPoints

	if facts.StructuredData.Present {
		c.StructuredData = PointsStructuredData
	}
	if facts.StructuredData.FAQPage {
		c.FAQ = PointsFAQ
	}
	if facts.Headings.H1Present {
		c.Headings = PointsHeadings
	}
	if facts.Metadata.TitleFound {
		c.Title = PointsTitle
	}
	if facts.Speed.Performance >= performanceFloor {
		c.Speed = PointsSpeed
	}
	if facts.Metadata.DescriptionFound {
		c.Description = PointsDescription
	}
	if facts.Mobile.Viewport {
		c.Mobile = PointsMobile
	}
	if facts.Accessibility.AltTextComplete {
		c.Accessibility = PointsAccessibility
	}

	return models.ScoreBreakdown{
		Total: c.StructuredData + c.FAQ + c.Headings + c.Title +
			c.Speed + c.Description + c.Mobile + c.Accessibility,
		ContentStructure: c.StructuredData + c.FAQ + c.Headings,
		Technical:        c.Speed + c.Mobile,
		Metadata:         c.Title + c.Description,
		Accessibility:    c.Accessibility,
		Components:       c,
	}
}

// Lite is the free-tier teaser score: a page with a title scores 65,
// without one 50. The caller maps a failed fetch to 0 before getting here.
func Lite(facts *models.PageFacts) int {
	if facts.Metadata.TitleFound {
		return 65
	}
	return 50
}

// Assessment maps a total score to its plain-language tier.
func Assessment(total int) string {
	switch {
	case total >= 80:
		return "excellent"
	case total >= 60:
		return "good"
	default:
		return "needs_work"
	}
}
