package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rankscore-ai/rankscore/models"
)

func TestIssueAccessCode_Format(t *testing.T) {
	s := OpenMemory(t)

	code, err := s.IssueAccessCode(context.Background(), "buyer@example.com")
	if err != nil {
		t.Fatalf("IssueAccessCode: %v", err)
	}
	if len(code) != codeLength {
		t.Errorf("code length = %d, want %d", len(code), codeLength)
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			t.Errorf("code %q contains character outside [A-Z0-9]", code)
		}
	}
}

func TestIssueAccessCode_DuplicateEmailExhausts(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	if _, err := s.IssueAccessCode(ctx, "buyer@example.com"); err != nil {
		t.Fatal(err)
	}

	// The email is UNIQUE, so every regeneration attempt collides and the
	// bounded loop must give up with the typed exhaustion error.
	_, err := s.IssueAccessCode(ctx, "buyer@example.com")
	var scanErr *models.ScanError
	if !errors.As(err, &scanErr) || scanErr.Code != models.ErrCodeCodeExhausted {
		t.Errorf("err = %v, want CODE_ISSUE_EXHAUSTED", err)
	}
}

func TestValidateAndConsumeAccessCode(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	code, err := s.IssueAccessCode(ctx, "buyer@example.com")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.ValidateAccessCode(ctx, code)
	if err != nil || !ok {
		t.Fatalf("ValidateAccessCode(%q) = %v, %v; want true", code, ok, err)
	}

	email, err := s.ConsumeAccessCode(ctx, code)
	if err != nil {
		t.Fatalf("ConsumeAccessCode: %v", err)
	}
	if email != "buyer@example.com" {
		t.Errorf("email = %q", email)
	}

	// Used codes no longer validate.
	ok, err = s.ValidateAccessCode(ctx, code)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("used code still validates")
	}

	// A second consume must be rejected, not silently accepted.
	_, err = s.ConsumeAccessCode(ctx, code)
	var scanErr *models.ScanError
	if !errors.As(err, &scanErr) || scanErr.Code != models.ErrCodeInvalidCode {
		t.Errorf("second consume err = %v, want INVALID_ACCESS_CODE", err)
	}
}

func TestConsumeAccessCode_UnknownCode(t *testing.T) {
	s := OpenMemory(t)

	_, err := s.ConsumeAccessCode(context.Background(), "NOSUCH12")
	var scanErr *models.ScanError
	if !errors.As(err, &scanErr) || scanErr.Code != models.ErrCodeInvalidCode {
		t.Errorf("err = %v, want INVALID_ACCESS_CODE", err)
	}
}

func TestValidateAccessCode_Unknown(t *testing.T) {
	s := OpenMemory(t)

	ok, err := s.ValidateAccessCode(context.Background(), "NOSUCH12")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unknown code validated")
	}
}
