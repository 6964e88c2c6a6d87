// Package report renders score results and recommendations as printable PDF
// documents.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/rankscore-ai/rankscore/models"
	"github.com/rankscore-ai/rankscore/scoring"
)

// QuickWins renders the free-tier teaser: the lite score, up to three quick
// wins, and the upgrade pitch.
func QuickWins(url string, score int, wins []models.Issue) ([]byte, error) {
	pdf := newDoc()

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, "RankScore Lite Quick Wins", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, "URL: "+url, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("AEO Score: %d/100", score), "", 1, "L", false, 0, "")
	pdf.Ln(5)
	pdf.MultiCell(0, 10, "Upgrade to RankScore Pro for a full AEO analysis and detailed recommendations!", "", "L", false)
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 10, "Top 3 Quick Wins", "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Arial", "", 10)
	for i, issue := range wins {
		if i >= 3 {
			break
		}
		pdf.MultiCell(0, 10, fmt.Sprintf("%d. %s (Effort: %s, Example: %s)",
			i+1, issue.Fix, issue.Effort, issue.Example), "", "L", false)
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 10, "Next Step", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 10, "Upgrade to RankScore Pro at https://rankscore.ai/", "", "L", false)

	return output(pdf)
}

// Detailed renders the full signal-by-signal pro report. The summary block
// is optional and comes from the LLM writer when configured.
func Detailed(url string, facts *models.PageFacts, breakdown models.ScoreBreakdown, issues []models.Issue, summary string) ([]byte, error) {
	pdf := newDoc()

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, "RankScore Pro Detailed Analysis", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, "URL: "+url, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("RankScore: %d/100 (%s)", breakdown.Total, scoring.Assessment(breakdown.Total)), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	if summary != "" {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 10, "Executive Summary", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, summary, "", "L", false)
		pdf.Ln(5)
	}

	for _, sec := range signalSections(facts, breakdown) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 10, sec.title, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("Value: %s (%d points)", sec.value, sec.points), "", 1, "L", false, 0, "")
		if impact := scoring.ImpactInfo(sec.issueType); impact.What != "" {
			pdf.MultiCell(0, 6, fmt.Sprintf("%s %s (Impact: %s)", impact.What, impact.Why, impact.Level), "", "L", false)
		}
		pdf.Ln(3)
	}

	if len(issues) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 10, "Recommended Actions", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for i, issue := range issues {
			pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s (+%d points, effort: %s)",
				i+1, issue.Fix, issue.Points, issue.Effort), "", "L", false)
		}
	}

	return output(pdf)
}

// Progress renders the longitudinal dashboard as a document: the score
// trajectory and every recommendation with its current status.
func Progress(url string, summary *models.ProgressSummary, recs []models.Recommendation) ([]byte, error) {
	pdf := newDoc()

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, "RankScore Progress Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, "URL: "+url, "", 1, "L", false, 0, "")
	pdf.Ln(5)

	lines := []string{
		fmt.Sprintf("Score: %d/100 initially, %d/100 now (%+d points)",
			summary.InitialScore, summary.CurrentScore, summary.TotalImprovement),
		fmt.Sprintf("Scans recorded: %d (first %s, latest %s)",
			summary.ScanCount,
			summary.FirstScanAt.Format("2006-01-02"),
			summary.LastScanAt.Format("2006-01-02")),
		fmt.Sprintf("Implemented changes: %d (+%d potential points)",
			summary.ImplementedCount, summary.ImplementationImpact),
		fmt.Sprintf("Pending optimizations: %d", summary.PendingCount),
	}
	if summary.ContentChanged {
		lines = append(lines, "Note: page content changed significantly between the last two scans.")
	}
	for _, line := range lines {
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	if len(recs) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 10, "Recommendations", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, rec := range recs {
			line := fmt.Sprintf("[%s] %s: %s (+%d points, priority %d)",
				rec.Status, rec.Type, rec.Description, rec.PointsPotential, rec.Priority)
			if rec.ImplementationDate != nil {
				line += " implemented " + rec.ImplementationDate.Format("2006-01-02")
			}
			pdf.MultiCell(0, 6, line, "", "L", false)
		}
	}

	return output(pdf)
}

type section struct {
	title     string
	value     string
	points    int
	issueType string
}

func signalSections(facts *models.PageFacts, b models.ScoreBreakdown) []section {
	return []section{
		{"Title", presentOr(facts.Metadata.TitleFound, facts.Metadata.Title), b.Components.Title, scoring.IssueTitle},
		{"Description", presentOr(facts.Metadata.DescriptionFound, facts.Metadata.Description), b.Components.Description, scoring.IssueDescription},
		{"Headers", fmt.Sprintf("H1: %d, H2: %d", facts.Headings.H1Count, facts.Headings.H2Count), b.Components.Headings, scoring.IssueH1},
		{"Structured Data", presentOr(facts.StructuredData.Present, fmt.Sprintf("%d JSON-LD blocks", facts.StructuredData.BlockCount)), b.Components.StructuredData, scoring.IssueStructuredData},
		{"FAQs", yesNo(facts.StructuredData.FAQPage), b.Components.FAQ, scoring.IssueFAQ},
		{"Mobile-Friendliness", yesNo(facts.Mobile.Viewport), b.Components.Mobile, scoring.IssueMobile},
		{"Accessibility", fmt.Sprintf("%d/%d images with alt text", facts.Accessibility.ImagesWithAlt, facts.Accessibility.ImageCount), b.Components.Accessibility, scoring.IssueAccessibility},
		{"Speed", fmt.Sprintf("%d/100 (TTFB %d ms, %d resources, %d bytes)",
			facts.Speed.Performance, facts.Speed.TTFBMs, facts.Speed.ResourceCount, facts.Speed.TotalBytes), b.Components.Speed, scoring.IssueSpeed},
	}
}

func presentOr(found bool, value string) string {
	if found {
		return value
	}
	return "Missing"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	return pdf
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, models.NewScanError(models.ErrCodeReport, "could not render PDF", err)
	}
	return buf.Bytes(), nil
}
