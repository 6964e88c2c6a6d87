package scoring

import (
	"sort"

	"github.com/rankscore-ai/rankscore/models"
)

// Issue type identifiers. The (url, type) pair keys pending recommendations
// in the history store, so these strings are part of the stored schema.
const (
	IssueTitle          = "title"
	IssueDescription    = "description"
	IssueH1             = "h1"
	IssueStructuredData = "structured_data"
	IssueFAQ            = "faq"
	IssueMobile         = "mobile"
	IssueAccessibility  = "accessibility"
	IssueSpeed          = "speed"
)

// Recommend maps unmet signals to a prioritized issue list. Each boolean
// signal emits exactly one issue when unmet; speed emits one issue per
// missed budget (0-3). Ordering is ascending priority, low effort first on
// ties, and the sort is stable.
func Recommend(facts *models.PageFacts, budgets SpeedBudgets) []models.Issue {
	var issues []models.Issue

	if !facts.Metadata.TitleFound {
		issues = append(issues, models.Issue{
			Type:     IssueTitle,
			Fix:      "Add a descriptive title tag",
			Example:  "Best Italian Recipes | Easy Guide",
			Priority: 1,
			Effort:   "low",
			Points:   PointsTitle,
		})
	}
	if !facts.Metadata.DescriptionFound {
		issues = append(issues, models.Issue{
			Type:     IssueDescription,
			Fix:      "Add a meta description",
			Example:  "Discover easy Italian recipes for every occasion",
			Priority: 2,
			Effort:   "low",
			Points:   PointsDescription,
		})
	}
	if !facts.Headings.H1Present {
		issues = append(issues, models.Issue{
			Type:     IssueH1,
			Fix:      "Add an H1 header",
			Example:  "Welcome to Italian Recipes",
			Priority: 1,
			Effort:   "low",
			Points:   PointsHeadings,
		})
	}
	if !facts.StructuredData.Present {
		issues = append(issues, models.Issue{
			Type:     IssueStructuredData,
			Fix:      "Implement structured data",
			Example:  "Add Recipe schema markup in a JSON-LD script block",
			Priority: 3,
			Effort:   "medium",
			Points:   PointsStructuredData,
		})
	}
	if !facts.StructuredData.FAQPage {
		issues = append(issues, models.Issue{
			Type:     IssueFAQ,
			Fix:      "Add FAQ schema markup",
			Example:  "Include FAQs with FAQPage schema markup",
			Priority: 3,
			Effort:   "medium",
			Points:   PointsFAQ,
		})
	}
	if !facts.Mobile.Viewport {
		issues = append(issues, models.Issue{
			Type:     IssueMobile,
			Fix:      "Implement responsive design",
			Example:  `<meta name="viewport" content="width=device-width">`,
			Priority: 2,
			Effort:   "medium",
			Points:   PointsMobile,
		})
	}
	if !facts.Accessibility.AltTextComplete {
		issues = append(issues, models.Issue{
			Type:     IssueAccessibility,
			Fix:      "Add image alt text",
			Example:  `<img src="pasta.jpg" alt="Fresh pasta">`,
			Priority: 2,
			Effort:   "low",
			Points:   PointsAccessibility,
		})
	}

	// Speed issues fire independently per missed budget. Clearing any one
	// budget can restore the whole speed component, so each carries the
	// full component weight.
	if facts.Speed.TTFBMs > budgets.TTFBMs {
		issues = append(issues, models.Issue{
			Type:     IssueSpeed,
			Fix:      "Improve server response time",
			Example:  "Add caching or a CDN in front of the origin",
			Priority: 1,
			Effort:   "medium",
			Points:   PointsSpeed,
		})
	}
	if facts.Speed.TotalBytes > budgets.SizeBytes {
		issues = append(issues, models.Issue{
			Type:     IssueSpeed,
			Fix:      "Reduce page size",
			Example:  "Compress images and enable gzip",
			Priority: 2,
			Effort:   "medium",
			Points:   PointsSpeed,
		})
	}
	if facts.Speed.ResourceCount > budgets.Resources {
		issues = append(issues, models.Issue{
			Type:     IssueSpeed,
			Fix:      "Reduce the number of requests",
			Example:  "Combine CSS files and bundle scripts",
			Priority: 2,
			Effort:   "medium",
			Points:   PointsSpeed,
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Priority != issues[j].Priority {
			return issues[i].Priority < issues[j].Priority
		}
		return effortRank(issues[i].Effort) < effortRank(issues[j].Effort)
	})
	return issues
}

// SpeedBudgets are the thresholds that trigger speed issues. They mirror the
// analyzer's performance budgets so a page that lost performance points gets
// told why.
type SpeedBudgets struct {
	TTFBMs    int64
	SizeBytes int64
	Resources int
}

// DefaultSpeedBudgets match the analyzer's default performance budgets.
func DefaultSpeedBudgets() SpeedBudgets {
	return SpeedBudgets{TTFBMs: 200, SizeBytes: 5_000_000, Resources: 50}
}

// effortRank orders efforts for tie-breaking: low sorts before anything else.
func effortRank(effort string) int {
	if effort == "low" {
		return 0
	}
	return 1
}

// QuickWins returns the first n issues of an already-sorted list.
func QuickWins(issues []models.Issue, n int) []models.Issue {
	if len(issues) <= n {
		return issues
	}
	return issues[:n]
}

// Impact is the report copy attached to an issue type.
type Impact struct {
	What  string
	Why   string
	Level string
}

var impacts = map[string]Impact{
	IssueTitle: {
		What:  "Title tags are the first signal answer engines read from a page.",
		Why:   "A well-optimized title directly improves how often the page is cited in answers.",
		Level: "High",
	},
	IssueDescription: {
		What:  "Meta descriptions summarize the page for answer engines and result snippets.",
		Why:   "Clear descriptions increase the chance the page is selected as a source.",
		Level: "Medium-High",
	},
	IssueH1: {
		What:  "H1 headers define the main topic of the page.",
		Why:   "Answer engines use the H1 to match questions to content.",
		Level: "High",
	},
	IssueStructuredData: {
		What:  "Structured data provides machine-readable facts about the page.",
		Why:   "It lets answer engines extract and cite content without guessing.",
		Level: "High",
	},
	IssueFAQ: {
		What:  "FAQ sections address user questions in a question-answer format.",
		Why:   "This format matches how answer engines compose responses.",
		Level: "Medium-High",
	},
	IssueMobile: {
		What:  "Mobile-friendly pages render correctly on small screens.",
		Why:   "Voice searches and mobile answers favor responsive pages.",
		Level: "Medium",
	},
	IssueAccessibility: {
		What:  "Accessible content carries text alternatives for non-text elements.",
		Why:   "Alt text gives answer engines a readable description of every image.",
		Level: "Medium",
	},
	IssueSpeed: {
		What:  "Page speed affects whether a page is fetched and parsed at all.",
		Why:   "Faster pages are crawled more often and ranked ahead of slow ones.",
		Level: "High",
	},
}

// ImpactInfo returns the report copy for an issue type. Unknown types yield
// a zero Impact.
func ImpactInfo(issueType string) Impact {
	return impacts[issueType]
}
