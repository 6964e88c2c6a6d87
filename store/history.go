package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rankscore-ai/rankscore/analyzer"
	"github.com/rankscore-ai/rankscore/models"
)

// ErrNoScans is returned by Progress when a URL has no recorded scans.
// Callers must treat this as "no data", not as an all-zero summary.
var ErrNoScans = models.NewScanError(models.ErrCodeNoScanData, "no scans recorded for this URL", nil)

// debounceWindow suppresses duplicate scan rows for the same URL.
const debounceWindow = 60 * time.Second

// RecordScan appends one scan row for the URL. A scan recorded within the
// debounce window of an earlier one for the same URL is silently dropped;
// the bool reports whether a row was written.
func (s *Store) RecordScan(ctx context.Context, url string, b models.ScoreBreakdown, facts *models.PageFacts) (bool, error) {
	now := s.now()
	cutoff := now.Add(-debounceWindow).UnixMilli()

	var recent int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scans WHERE url = ? AND scan_date >= ?`, url, cutoff,
	).Scan(&recent)
	if err != nil {
		return false, fmt.Errorf("store: check debounce: %w", err)
	}
	if recent > 0 {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scans (url, scan_date, total_score, content_structure_score,
			technical_score, metadata_score, accessibility_score, speed_score,
			structured_data_present, faq_present, mobile_friendly, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		url, now.UnixMilli(), b.Total, b.ContentStructure, b.Technical,
		b.Metadata, b.Accessibility, facts.Speed.Performance,
		facts.StructuredData.Present, facts.StructuredData.FAQPage,
		facts.Mobile.Viewport, int64(facts.Fingerprint),
	)
	if err != nil {
		return false, fmt.Errorf("store: insert scan: %w", err)
	}
	return true, nil
}

// RecordRecommendations inserts one pending recommendation per issue, unless
// a pending recommendation with the same (url, type) already exists. Returns
// the number of rows inserted.
func (s *Store) RecordRecommendations(ctx context.Context, url string, issues []models.Issue) (int, error) {
	inserted := 0
	for _, issue := range issues {
		var pending int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM recommendations WHERE url = ? AND type = ? AND status = ?`,
			url, issue.Type, models.StatusPending,
		).Scan(&pending)
		if err != nil {
			return inserted, fmt.Errorf("store: check pending recommendation: %w", err)
		}
		if pending > 0 {
			continue
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO recommendations (url, creation_date, type, description,
				priority, points_potential, status)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			url, s.now().UnixMilli(), issue.Type, issue.Fix,
			issue.Priority, issue.Points, models.StatusPending,
		)
		if err != nil {
			return inserted, fmt.Errorf("store: insert recommendation: %w", err)
		}
		inserted++
	}
	return inserted, nil
}

// UpdateRecommendationStatus sets status and notes on one recommendation.
// The implementation timestamp is set only on a transition to "implemented"
// and cleared on any other status.
func (s *Store) UpdateRecommendationStatus(ctx context.Context, id int64, status, notes string) error {
	if !models.ValidStatus(status) {
		return models.NewScanError(models.ErrCodeInvalidInput,
			fmt.Sprintf("unknown recommendation status %q", status), nil)
	}

	var implementedAt any
	if status == models.StatusImplemented {
		implementedAt = s.now().UnixMilli()
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE recommendations SET status = ?, implementation_date = ?, notes = ? WHERE id = ?`,
		status, implementedAt, notes, id,
	)
	if err != nil {
		return fmt.Errorf("store: update recommendation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update recommendation: %w", err)
	}
	if affected == 0 {
		return models.NewScanError(models.ErrCodeNoScanData,
			fmt.Sprintf("recommendation %d not found", id), nil)
	}
	return nil
}

// History returns all scans (chronological) and all recommendations (most
// urgent first: ascending priority, descending potential points) for a URL.
func (s *Store) History(ctx context.Context, url string) ([]models.ScanRecord, []models.Recommendation, error) {
	scans, err := s.scansFor(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, creation_date, type, description, priority,
			points_potential, status, implementation_date, notes
		FROM recommendations WHERE url = ?
		ORDER BY priority ASC, points_potential DESC`, url)
	if err != nil {
		return nil, nil, fmt.Errorf("store: query recommendations: %w", err)
	}
	defer rows.Close()

	recs := []models.Recommendation{}
	for rows.Next() {
		var (
			rec       models.Recommendation
			createdMs int64
			implMs    sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.URL, &createdMs, &rec.Type, &rec.Description,
			&rec.Priority, &rec.PointsPotential, &rec.Status, &implMs, &rec.Notes); err != nil {
			return nil, nil, fmt.Errorf("store: scan recommendation row: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(createdMs).UTC()
		if implMs.Valid {
			t := time.UnixMilli(implMs.Int64).UTC()
			rec.ImplementationDate = &t
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("store: iterate recommendations: %w", err)
	}

	return scans, recs, nil
}

// Progress summarizes a URL's trajectory: first vs latest score, scan count,
// recommendation movement, and whether the page content itself drifted
// between the two most recent scans.
func (s *Store) Progress(ctx context.Context, url string) (*models.ProgressSummary, error) {
	scans, err := s.scansFor(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(scans) == 0 {
		return nil, ErrNoScans
	}

	first, last := scans[0], scans[len(scans)-1]
	summary := &models.ProgressSummary{
		URL:              url,
		InitialScore:     first.TotalScore,
		CurrentScore:     last.TotalScore,
		TotalImprovement: last.TotalScore - first.TotalScore,
		ScanCount:        len(scans),
		FirstScanAt:      first.ScanDate,
		LastScanAt:       last.ScanDate,
	}

	if len(scans) >= 2 {
		prev := scans[len(scans)-2]
		if prev.Fingerprint != 0 && last.Fingerprint != 0 {
			summary.ContentChanged = !analyzer.Similar(prev.Fingerprint, last.Fingerprint, analyzer.SimilarityThreshold)
		}
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN status = ? THEN 1 END),
			COUNT(CASE WHEN status = ? THEN 1 END),
			COALESCE(SUM(CASE WHEN status = ? THEN points_potential END), 0)
		FROM recommendations WHERE url = ?`,
		models.StatusImplemented, models.StatusPending, models.StatusImplemented, url,
	).Scan(&summary.ImplementedCount, &summary.PendingCount, &summary.ImplementationImpact)
	if err != nil {
		return nil, fmt.Errorf("store: summarize recommendations: %w", err)
	}

	return summary, nil
}

// scansFor returns all scan rows for a URL in chronological order.
func (s *Store) scansFor(ctx context.Context, url string) ([]models.ScanRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, scan_date, total_score, content_structure_score,
			technical_score, metadata_score, accessibility_score, speed_score,
			structured_data_present, faq_present, mobile_friendly, fingerprint
		FROM scans WHERE url = ? ORDER BY scan_date ASC, id ASC`, url)
	if err != nil {
		return nil, fmt.Errorf("store: query scans: %w", err)
	}
	defer rows.Close()

	scans := []models.ScanRecord{}
	for rows.Next() {
		var (
			rec    models.ScanRecord
			dateMs int64
			fp     int64
		)
		if err := rows.Scan(&rec.ID, &rec.URL, &dateMs, &rec.TotalScore,
			&rec.ContentStructureScore, &rec.TechnicalScore, &rec.MetadataScore,
			&rec.AccessibilityScore, &rec.SpeedScore, &rec.StructuredDataPresent,
			&rec.FAQPresent, &rec.MobileFriendly, &fp); err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		rec.ScanDate = time.UnixMilli(dateMs).UTC()
		rec.Fingerprint = uint64(fp)
		scans = append(scans, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate scans: %w", err)
	}
	return scans, nil
}
