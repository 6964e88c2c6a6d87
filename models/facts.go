package models

import "time"

// PageFacts is the full set of per-signal facts extracted from one fetch of a
// page. It is built once per scan and never mutated afterwards; everything
// downstream (scoring, recommendations, reports, history) is derived from it.
type PageFacts struct {
	URL        string    `json:"url"`
	FinalURL   string    `json:"final_url,omitempty"`
	StatusCode int       `json:"status_code"`
	FetchedAt  time.Time `json:"fetched_at"`

	Metadata       MetadataFacts       `json:"metadata"`
	Headings       HeadingFacts        `json:"headings"`
	StructuredData StructuredDataFacts `json:"structured_data"`
	Mobile         MobileFacts         `json:"mobile"`
	Accessibility  AccessibilityFacts  `json:"accessibility"`
	Speed          SpeedFacts          `json:"speed"`
	Content        ContentFacts        `json:"content"`

	// Fingerprint is a 64-bit simhash of the page's visible text, stored with
	// each scan so later scans can tell "score moved" from "content moved".
	Fingerprint uint64 `json:"fingerprint,string"`
}

// MetadataFacts holds the title and meta description signals. Found flags are
// the explicit presence markers; an empty element counts as absent.
type MetadataFacts struct {
	Title            string `json:"title,omitempty"`
	TitleFound       bool   `json:"title_found"`
	Description      string `json:"description,omitempty"`
	DescriptionFound bool   `json:"description_found"`
}

// HeadingFacts holds h1/h2 counts and their derived presence booleans.
type HeadingFacts struct {
	H1Count   int  `json:"h1_count"`
	H1Present bool `json:"h1_present"`
	H2Count   int  `json:"h2_count"`
	H2Present bool `json:"h2_present"`
}

// StructuredDataFacts reports JSON-LD presence. FAQPage is a raw substring
// match on the script text, not a schema parse.
type StructuredDataFacts struct {
	Present    bool `json:"present"`
	FAQPage    bool `json:"faq_page"`
	BlockCount int  `json:"block_count"`
}

// MobileFacts reports the viewport meta tag.
type MobileFacts struct {
	Viewport        bool   `json:"viewport"`
	ViewportContent string `json:"viewport_content,omitempty"`
}

// AccessibilityFacts reports image alt-text coverage. AltTextComplete is
// vacuously true on a page with no images.
type AccessibilityFacts struct {
	ImageCount      int  `json:"image_count"`
	ImagesWithAlt   int  `json:"images_with_alt"`
	AltTextComplete bool `json:"alt_text_complete"`
}

// SpeedFacts holds the timing and resource-weight measurements for one scan.
//
// TTFBMs is the time until the main document's response headers arrived;
// TotalMs runs from the start of the fetch through the last resource probe.
// Breakdown counts discovered sub-resources by type ("script", "css",
// "image"). Probe failures count the resource with size 0 and increment
// FailedProbes — they never abort the scan.
type SpeedFacts struct {
	TTFBMs        int64          `json:"ttfb_ms"`
	TotalMs       int64          `json:"total_ms"`
	ResourceCount int            `json:"resource_count"`
	TotalBytes    int64          `json:"total_bytes"`
	Breakdown     map[string]int `json:"breakdown,omitempty"`
	FailedProbes  int            `json:"failed_probes,omitempty"`

	// Performance is the derived 0-100 page performance score.
	Performance int `json:"performance"`
}

// ContentFacts is a readability-derived profile of the page's main content.
// All zero values when extraction falls back.
type ContentFacts struct {
	WordCount int    `json:"word_count"`
	Excerpt   string `json:"excerpt,omitempty"`
	SiteName  string `json:"site_name,omitempty"`
	Language  string `json:"language,omitempty"`
}
