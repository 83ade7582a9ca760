package errors

import "fmt"

// ErrorCode represents a storypipe error code.
type ErrorCode string

const (
	ErrMissingTitle     ErrorCode = "MISSING_TITLE"      // no title marker and no usable fallback
	ErrMissingAsset     ErrorCode = "MISSING_ASSET"      // document, cover, or page images absent
	ErrConversionFailed ErrorCode = "CONVERSION_FAILED"  // external converter non-zero exit
	ErrParseFailed      ErrorCode = "PARSE_FAILED"       // story markdown could not be parsed
	ErrPersistence      ErrorCode = "PERSISTENCE_FAILED" // ledger or manifest write failed
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"    // bad command arguments
	ErrInternal         ErrorCode = "INTERNAL"           // unexpected failure
)

// PipeError represents a structured error with code and details.
type PipeError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *PipeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMissingTitle creates an error for a story with no title marker and no fallback name.
func NewMissingTitle() *PipeError {
	return &PipeError{
		Code:    ErrMissingTitle,
		Message: "no title marker in document and no fallback name provided",
	}
}

// NewMissingAsset creates an error for a story folder missing a required asset.
// Kind is one of "document", "cover", "pages".
func NewMissingAsset(slug, kind string) *PipeError {
	return &PipeError{
		Code:    ErrMissingAsset,
		Message: fmt.Sprintf("story %q has no %s asset", slug, kind),
		Details: map[string]any{"slug": slug, "asset": kind},
	}
}

// NewConversionFailed creates an error for an external converter failure.
func NewConversionFailed(slug, step string, err error) *PipeError {
	return &PipeError{
		Code:    ErrConversionFailed,
		Message: fmt.Sprintf("story %q: %s conversion failed: %v", slug, step, err),
		Details: map[string]any{"slug": slug, "step": step},
	}
}

// NewParseFailed creates an error for a story document that could not be parsed.
func NewParseFailed(slug string, err error) *PipeError {
	return &PipeError{
		Code:    ErrParseFailed,
		Message: fmt.Sprintf("story %q: %v", slug, err),
		Details: map[string]any{"slug": slug},
	}
}

// NewPersistence creates an error for a failed ledger or manifest write.
// These must propagate loudly: losing a status update risks inconsistent re-runs.
func NewPersistence(err error) *PipeError {
	return &PipeError{
		Code:    ErrPersistence,
		Message: err.Error(),
	}
}

// NewInvalidRequest creates an error for invalid command parameters.
func NewInvalidRequest(msg string) *PipeError {
	return &PipeError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *PipeError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &PipeError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a PipeError with the given code.
func Is(err error, code ErrorCode) bool {
	if pErr, ok := err.(*PipeError); ok {
		return pErr.Code == code
	}
	return false
}
