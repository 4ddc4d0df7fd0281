package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Error codes.
const (
	CodeInvalidInput        = "CLM_001"
	CodeNotFound            = "CLM_002"
	CodeAlreadyDecided      = "CLM_003"
	CodeInvalidState        = "CLM_004"
	CodeForbidden           = "CLM_005"
	CodeOracleUnavailable   = "ORC_001"
	CodeOracleRejected      = "ORC_002"
	CodeAlreadyLocked       = "ESC_001"
	CodeNotLocked           = "ESC_002"
	CodeAlreadyReleased     = "ESC_003"
	CodeRecipientMismatch   = "ESC_004"
	CodeAmountExceedsLock   = "ESC_005"
	CodeSettlementTransient = "ESC_006"
	CodeInvalidToken        = "AUTH_001"
	CodeRateLimitExceeded   = "RATE_001"
	CodeInternal            = "SYS_001"
)

// ---- Claim lifecycle (CLM) ----

func ErrInvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrAlreadyDecided() *AppError {
	return New(CodeAlreadyDecided, "Claim has already been decided", http.StatusConflict)
}

func ErrInvalidState(message string) *AppError {
	return New(CodeInvalidState, message, http.StatusConflict)
}

func ErrForbidden() *AppError {
	return New(CodeForbidden, "Not allowed to access this resource", http.StatusForbidden)
}

// ---- Evaluation oracle (ORC) ----

func ErrOracleUnavailable(err error) *AppError {
	return Wrap(CodeOracleUnavailable, "Evaluation oracle unavailable", http.StatusServiceUnavailable, err)
}

func ErrOracleRejected(reason string) *AppError {
	return New(CodeOracleRejected, "Evaluation oracle rejected the claim input: "+reason, http.StatusUnprocessableEntity)
}

// ---- Escrow ledger (ESC) ----

func ErrAlreadyLocked() *AppError {
	return New(CodeAlreadyLocked, "Escrow already locked for claim", http.StatusConflict)
}

func ErrNotLocked() *AppError {
	return New(CodeNotLocked, "No escrow locked for claim", http.StatusConflict)
}

func ErrAlreadyReleased() *AppError {
	return New(CodeAlreadyReleased, "Escrow already released with different parameters", http.StatusConflict)
}

func ErrRecipientMismatch() *AppError {
	return New(CodeRecipientMismatch, "Recipient does not match authorized recipient", http.StatusUnprocessableEntity)
}

func ErrAmountExceedsLock() *AppError {
	return New(CodeAmountExceedsLock, "Release amount exceeds locked amount", http.StatusUnprocessableEntity)
}

func ErrSettlementTransient(err error) *AppError {
	return Wrap(CodeSettlementTransient, "Settlement transaction failed, retry later", http.StatusServiceUnavailable, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns an input validation error.
func Validation(message string) *AppError {
	return ErrInvalidInput(message)
}

// CodeOf returns the AppError code found in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given AppError code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// IsTransient reports whether err is worth retrying later.
func IsTransient(err error) bool {
	switch CodeOf(err) {
	case CodeOracleUnavailable, CodeSettlementTransient:
		return true
	}
	return false
}

// IsPermanentSettlement reports whether a settlement failure points at a data or
// logic fault that must go to operator review instead of being retried.
func IsPermanentSettlement(err error) bool {
	switch CodeOf(err) {
	case CodeRecipientMismatch, CodeAmountExceedsLock, CodeNotLocked, CodeAlreadyReleased:
		return true
	}
	return false
}
