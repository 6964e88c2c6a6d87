package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeFetch         = "FETCH_FAILED"
	ErrCodeFetchTimeout  = "FETCH_TIMEOUT"
	ErrCodeParse         = "PARSE_FAILED"
	ErrCodeStorage       = "STORAGE_FAILURE"
	ErrCodeNoScanData    = "NO_SCAN_DATA"
	ErrCodeInvalidCode   = "INVALID_ACCESS_CODE"
	ErrCodeCodeExhausted = "CODE_ISSUE_EXHAUSTED"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodePayment       = "PAYMENT_FAILURE"
	ErrCodeWebhookSig    = "WEBHOOK_SIGNATURE_INVALID"
	ErrCodeReport        = "REPORT_FAILURE"
	ErrCodeMail          = "MAIL_FAILURE"
	ErrCodeInternal      = "INTERNAL_ERROR"

	// LLM-related error codes for the detailed report summary.
	ErrCodeLLMFailure     = "LLM_FAILURE"
	ErrCodeLLMAuthFailure = "LLM_AUTH_FAILURE"
	ErrCodeLLMRateLimited = "LLM_RATE_LIMITED"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScanError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScanError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// NewScanError creates a new ScanError.
func NewScanError(code, message string, err error) *ScanError {
	return &ScanError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ScanError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
