package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/rankscore-ai/rankscore/models"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8

	// maxIssueAttempts bounds the regenerate-on-collision loop. With a
	// 36^8 code space, hitting it means something other than bad luck.
	maxIssueAttempts = 5
)

// IssueAccessCode generates and stores a single-use access code for the
// email. A collision with an existing code or email regenerates rather than
// failing; after maxIssueAttempts the error carries CODE_ISSUE_EXHAUSTED.
func (s *Store) IssueAccessCode(ctx context.Context, email string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return "", fmt.Errorf("store: generate access code: %w", err)
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO access_codes (email, code, used) VALUES (?, ?, 0)`,
			email, code,
		)
		if err == nil {
			return code, nil
		}
		if !isConstraintViolation(err) {
			return "", fmt.Errorf("store: insert access code: %w", err)
		}
		lastErr = err
	}
	return "", models.NewScanError(models.ErrCodeCodeExhausted,
		fmt.Sprintf("could not issue a unique access code after %d attempts", maxIssueAttempts), lastErr)
}

// ValidateAccessCode reports whether the code exists and is still unused.
// It does not consume the code.
func (s *Store) ValidateAccessCode(ctx context.Context, code string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM access_codes WHERE code = ? AND used = 0`, code,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("store: validate access code: %w", err)
	}
	return n > 0, nil
}

// ConsumeAccessCode atomically flips an unused code to used and returns the
// owning email. The conditional update makes validate-and-consume a single
// statement, so concurrent redemptions of the same code cannot both succeed.
func (s *Store) ConsumeAccessCode(ctx context.Context, code string) (string, error) {
	var email string
	err := s.db.QueryRowContext(ctx,
		`UPDATE access_codes SET used = 1 WHERE code = ? AND used = 0 RETURNING email`, code,
	).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.NewScanError(models.ErrCodeInvalidCode, "access code not found or already used", nil)
	}
	if err != nil {
		return "", fmt.Errorf("store: consume access code: %w", err)
	}
	return email, nil
}

// generateCode draws codeLength characters from the uppercase-and-digits
// alphabet using crypto/rand.
func generateCode() (string, error) {
	var b strings.Builder
	b.Grow(codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// isConstraintViolation detects SQLite unique-constraint failures without
// depending on driver-specific error types.
func isConstraintViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
