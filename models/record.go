package models

import "time"

// Recommendation status lifecycle. A recommendation starts pending and is
// only ever updated, never deleted.
const (
	StatusPending     = "pending"
	StatusInProgress  = "in_progress"
	StatusImplemented = "implemented"
	StatusDeferred    = "deferred"
)

// ValidStatus reports whether s is a known recommendation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusImplemented, StatusDeferred:
		return true
	}
	return false
}

// ScanRecord is one persisted scan event for a URL.
type ScanRecord struct {
	ID                    int64     `json:"id"`
	URL                   string    `json:"url"`
	ScanDate              time.Time `json:"scan_date"`
	TotalScore            int       `json:"total_score"`
	ContentStructureScore int       `json:"content_structure_score"`
	TechnicalScore        int       `json:"technical_score"`
	MetadataScore         int       `json:"metadata_score"`
	AccessibilityScore    int       `json:"accessibility_score"`
	SpeedScore            int       `json:"speed_score"`
	StructuredDataPresent bool      `json:"structured_data_present"`
	FAQPresent            bool      `json:"faq_present"`
	MobileFriendly        bool      `json:"mobile_friendly"`
	Fingerprint           uint64    `json:"fingerprint,string"`
}

// Recommendation is one persisted remediation item for a URL. At most one
// pending recommendation exists per (url, type) pair.
type Recommendation struct {
	ID                 int64      `json:"id"`
	URL                string     `json:"url"`
	CreatedAt          time.Time  `json:"created_at"`
	Type               string     `json:"type"`
	Description        string     `json:"description"`
	Priority           int        `json:"priority"`
	PointsPotential    int        `json:"points_potential"`
	Status             string     `json:"status"`
	ImplementationDate *time.Time `json:"implementation_date,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

// ProgressSummary compares the first and latest scans of a URL and counts
// recommendation movement in between. It is only produced when at least one
// scan exists; "no scans yet" is a distinct result, not a zero summary.
type ProgressSummary struct {
	URL                  string    `json:"url"`
	InitialScore         int       `json:"initial_score"`
	CurrentScore         int       `json:"current_score"`
	TotalImprovement     int       `json:"total_improvement"`
	ScanCount            int       `json:"scan_count"`
	ImplementedCount     int       `json:"implemented_count"`
	PendingCount         int       `json:"pending_count"`
	ImplementationImpact int       `json:"implementation_impact"`
	FirstScanAt          time.Time `json:"first_scan_at"`
	LastScanAt           time.Time `json:"last_scan_at"`

	// ContentChanged reports whether the visible text drifted between the
	// two most recent scans (simhash distance beyond the similarity
	// threshold). False when fewer than two scans carry fingerprints.
	ContentChanged bool `json:"content_changed"`
}
