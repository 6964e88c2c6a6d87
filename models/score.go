package models

// ComponentPoints is the per-signal breakdown of an AEO score: each field is
// the points the signal earned (its full weight or zero).
type ComponentPoints struct {
	StructuredData int `json:"structured_data"`
	FAQ            int `json:"faq"`
	Headings       int `json:"headings"`
	Title          int `json:"title"`
	Speed          int `json:"speed"`
	Description    int `json:"description"`
	Mobile         int `json:"mobile"`
	Accessibility  int `json:"accessibility"`
}

// ScoreBreakdown is the complete scoring result for one page: the 0-100
// total, the four category subscores (a non-overlapping partition of the
// components), and the per-signal points. It is a pure function of PageFacts.
type ScoreBreakdown struct {
	Total int `json:"total"`

	// ContentStructure = structured data + FAQ + headings (max 60).
	ContentStructure int `json:"content_structure"`
	// Technical = speed + mobile (max 17).
	Technical int `json:"technical"`
	// Metadata = title + description (max 18).
	Metadata int `json:"metadata"`
	// Accessibility stands alone (max 5).
	Accessibility int `json:"accessibility"`

	Components ComponentPoints `json:"components"`
}

// Issue is one actionable finding from the recommendation engine.
// Priority 1 is most urgent; Effort is one of "low", "medium", "high".
// Points is the score gain available from fixing the issue.
type Issue struct {
	Type     string `json:"type"`
	Fix      string `json:"fix"`
	Example  string `json:"example,omitempty"`
	Priority int    `json:"priority"`
	Effort   string `json:"effort"`
	Points   int    `json:"points"`
}
