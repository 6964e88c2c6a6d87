package scoring

import (
	"testing"

	"github.com/rankscore-ai/rankscore/models"
)

func TestRecommend_NoIssuesWhenAllSignalsSatisfied(t *testing.T) {
	issues := Recommend(allPositiveFacts(), DefaultSpeedBudgets())
	if len(issues) != 0 {
		t.Errorf("got %d issues for a fully-optimized page, want 0", len(issues))
	}
}

func TestRecommend_OneIssuePerUnmetBooleanSignal(t *testing.T) {
	// Every boolean signal unmet, all speed budgets within limits.
	issues := Recommend(&models.PageFacts{}, DefaultSpeedBudgets())

	if len(issues) != 7 {
		t.Fatalf("got %d issues, want 7 (one per unmet boolean signal)", len(issues))
	}

	seen := make(map[string]int)
	for _, is := range issues {
		seen[is.Type]++
	}
	for _, typ := range []string{
		IssueTitle, IssueDescription, IssueH1, IssueStructuredData,
		IssueFAQ, IssueMobile, IssueAccessibility,
	} {
		if seen[typ] != 1 {
			t.Errorf("issue %q emitted %d times, want exactly 1", typ, seen[typ])
		}
	}
	if seen[IssueSpeed] != 0 {
		t.Errorf("speed issue emitted with all budgets within limits")
	}
}

func TestRecommend_SpeedIssuesFireIndependently(t *testing.T) {
	cases := []struct {
		name  string
		speed models.SpeedFacts
		want  int
	}{
		{"all within budget", models.SpeedFacts{TTFBMs: 100, TotalBytes: 1000, ResourceCount: 10}, 0},
		{"slow ttfb only", models.SpeedFacts{TTFBMs: 500}, 1},
		{"oversized only", models.SpeedFacts{TotalBytes: 6_000_000}, 1},
		{"too many resources only", models.SpeedFacts{ResourceCount: 80}, 1},
		{"all three", models.SpeedFacts{TTFBMs: 500, TotalBytes: 6_000_000, ResourceCount: 80}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facts := allPositiveFacts()
			facts.Speed = tc.speed
			issues := Recommend(facts, DefaultSpeedBudgets())

			got := 0
			for _, is := range issues {
				if is.Type == IssueSpeed {
					got++
				}
			}
			if got != tc.want {
				t.Errorf("got %d speed issues, want %d", got, tc.want)
			}
		})
	}
}

func TestRecommend_OrderingIsStableByPriorityThenEffort(t *testing.T) {
	issues := Recommend(&models.PageFacts{Speed: models.SpeedFacts{TTFBMs: 500}}, DefaultSpeedBudgets())

	for i := 1; i < len(issues); i++ {
		prev, cur := issues[i-1], issues[i]
		if cur.Priority < prev.Priority {
			t.Fatalf("issue %d (%s, p%d) sorted after p%d", i, cur.Type, cur.Priority, prev.Priority)
		}
		if cur.Priority == prev.Priority && effortRank(cur.Effort) < effortRank(prev.Effort) {
			t.Fatalf("within priority %d, effort %q sorted after %q", cur.Priority, prev.Effort, cur.Effort)
		}
	}

	// Priority 1 issues come first: title and h1 are both p1/low, speed-ttfb
	// is p1/medium, so the first three are title, h1, speed in input order.
	if len(issues) < 3 {
		t.Fatalf("got %d issues, want at least 3", len(issues))
	}
	if issues[0].Type != IssueTitle || issues[1].Type != IssueH1 || issues[2].Type != IssueSpeed {
		t.Errorf("first three issues = %s, %s, %s; want title, h1, speed",
			issues[0].Type, issues[1].Type, issues[2].Type)
	}
}

func TestRecommend_PointsMatchComponentWeights(t *testing.T) {
	issues := Recommend(&models.PageFacts{}, DefaultSpeedBudgets())
	want := map[string]int{
		IssueTitle:          PointsTitle,
		IssueDescription:    PointsDescription,
		IssueH1:             PointsHeadings,
		IssueStructuredData: PointsStructuredData,
		IssueFAQ:            PointsFAQ,
		IssueMobile:         PointsMobile,
		IssueAccessibility:  PointsAccessibility,
	}
	for _, is := range issues {
		if is.Points != want[is.Type] {
			t.Errorf("issue %q points = %d, want %d", is.Type, is.Points, want[is.Type])
		}
	}
}

func TestQuickWins(t *testing.T) {
	issues := Recommend(&models.PageFacts{}, DefaultSpeedBudgets())

	wins := QuickWins(issues, 3)
	if len(wins) != 3 {
		t.Errorf("got %d quick wins, want 3", len(wins))
	}

	all := QuickWins(issues, 100)
	if len(all) != len(issues) {
		t.Errorf("got %d quick wins, want all %d issues", len(all), len(issues))
	}
}

func TestImpactInfo(t *testing.T) {
	for _, typ := range []string{
		IssueTitle, IssueDescription, IssueH1, IssueStructuredData,
		IssueFAQ, IssueMobile, IssueAccessibility, IssueSpeed,
	} {
		info := ImpactInfo(typ)
		if info.What == "" || info.Why == "" || info.Level == "" {
			t.Errorf("ImpactInfo(%q) has empty fields: %+v", typ, info)
		}
	}
	if got := ImpactInfo("unknown"); got != (Impact{}) {
		t.Errorf("ImpactInfo(unknown) = %+v, want zero value", got)
	}
}
