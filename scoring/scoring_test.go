package scoring

import (
	"testing"

	"github.com/rankscore-ai/rankscore/models"
)

// allPositiveFacts returns facts where every signal is satisfied.
func allPositiveFacts() *models.PageFacts {
	return &models.PageFacts{
		Metadata: models.MetadataFacts{
			Title: "Home", TitleFound: true,
			Description: "A page", DescriptionFound: true,
		},
		Headings: models.HeadingFacts{H1Count: 1, H1Present: true, H2Count: 2, H2Present: true},
		StructuredData: models.StructuredDataFacts{
			Present: true, FAQPage: true, BlockCount: 2,
		},
		Mobile:        models.MobileFacts{Viewport: true},
		Accessibility: models.AccessibilityFacts{ImageCount: 3, ImagesWithAlt: 3, AltTextComplete: true},
		Speed:         models.SpeedFacts{Performance: 100},
	}
}

func TestCompute_AllPositiveIsExactly100(t *testing.T) {
	b := Compute(allPositiveFacts())
	if b.Total != 100 {
		t.Errorf("Total = %d, want 100", b.Total)
	}
}

func TestCompute_AllNegativeIsExactlyZero(t *testing.T) {
	b := Compute(&models.PageFacts{})
	if b.Total != 0 {
		t.Errorf("Total = %d, want 0", b.Total)
	}
}

func TestCompute_TotalEqualsComponentSum(t *testing.T) {
	cases := []struct {
		name  string
		facts *models.PageFacts
	}{
		{"all positive", allPositiveFacts()},
		{"all negative", &models.PageFacts{}},
		{"mixed", &models.PageFacts{
			Metadata: models.MetadataFacts{DescriptionFound: true},
			Headings: models.HeadingFacts{H1Present: true},
			Mobile:   models.MobileFacts{Viewport: true},
			Speed:    models.SpeedFacts{Performance: 85},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Compute(tc.facts)
			c := b.Components
			sum := c.StructuredData + c.FAQ + c.Headings + c.Title +
				c.Speed + c.Description + c.Mobile + c.Accessibility
			if b.Total != sum {
				t.Errorf("Total = %d, component sum = %d", b.Total, sum)
			}
			if b.Total < 0 || b.Total > 100 {
				t.Errorf("Total = %d, want within [0, 100]", b.Total)
			}
			if got := b.ContentStructure + b.Technical + b.Metadata + b.Accessibility; got != b.Total {
				t.Errorf("subscore partition sums to %d, want %d", got, b.Total)
			}
		})
	}
}

// The worked example: missing title, description present, H1 present, no
// structured data, no FAQ, mobile-friendly, accessible, performance 85.
func TestCompute_WorkedExample(t *testing.T) {
	facts := &models.PageFacts{
		Metadata:      models.MetadataFacts{DescriptionFound: true},
		Headings:      models.HeadingFacts{H1Count: 1, H1Present: true},
		Mobile:        models.MobileFacts{Viewport: true},
		Accessibility: models.AccessibilityFacts{AltTextComplete: true},
		Speed:         models.SpeedFacts{Performance: 85},
	}

	b := Compute(facts)
	if b.Total != 45 {
		t.Errorf("Total = %d, want 45", b.Total)
	}
	want := models.ComponentPoints{
		Description:   8,
		Headings:      15,
		Mobile:        7,
		Accessibility: 5,
		Speed:         10,
	}
	if b.Components != want {
		t.Errorf("Components = %+v, want %+v", b.Components, want)
	}
}

func TestCompute_SpeedComponentThreshold(t *testing.T) {
	cases := []struct {
		performance int
		want        int
	}{
		{100, PointsSpeed},
		{80, PointsSpeed},
		{79, 0},
		{0, 0},
	}
	for _, tc := range cases {
		facts := &models.PageFacts{Speed: models.SpeedFacts{Performance: tc.performance}}
		if got := Compute(facts).Components.Speed; got != tc.want {
			t.Errorf("performance %d: speed points = %d, want %d", tc.performance, got, tc.want)
		}
	}
}

func TestLite(t *testing.T) {
	withTitle := &models.PageFacts{Metadata: models.MetadataFacts{TitleFound: true}}
	if got := Lite(withTitle); got != 65 {
		t.Errorf("Lite with title = %d, want 65", got)
	}
	if got := Lite(&models.PageFacts{}); got != 50 {
		t.Errorf("Lite without title = %d, want 50", got)
	}
}

func TestAssessment(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{100, "excellent"},
		{80, "excellent"},
		{79, "good"},
		{60, "good"},
		{59, "needs_work"},
		{0, "needs_work"},
	}
	for _, tc := range cases {
		if got := Assessment(tc.total); got != tc.want {
			t.Errorf("Assessment(%d) = %q, want %q", tc.total, got, tc.want)
		}
	}
}
