package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   ErrAlreadyDecided(),
			expected: "[CLM_003] Claim has already been decided",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("dial tcp: timeout")
	appErr := ErrSettlementTransient(inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, ErrNotLocked().Unwrap())
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidInput", ErrInvalidInput("amount must be positive"), "CLM_001", 400},
		{"NotFound", ErrNotFound("claim"), "CLM_002", 404},
		{"AlreadyDecided", ErrAlreadyDecided(), "CLM_003", 409},
		{"InvalidState", ErrInvalidState("claim is not settleable"), "CLM_004", 409},
		{"Forbidden", ErrForbidden(), "CLM_005", 403},
		{"OracleUnavailable", ErrOracleUnavailable(nil), "ORC_001", 503},
		{"OracleRejected", ErrOracleRejected("bad evidence"), "ORC_002", 422},
		{"AlreadyLocked", ErrAlreadyLocked(), "ESC_001", 409},
		{"NotLocked", ErrNotLocked(), "ESC_002", 409},
		{"AlreadyReleased", ErrAlreadyReleased(), "ESC_003", 409},
		{"RecipientMismatch", ErrRecipientMismatch(), "ESC_004", 422},
		{"AmountExceedsLock", ErrAmountExceedsLock(), "ESC_005", 422},
		{"SettlementTransient", ErrSettlementTransient(nil), "ESC_006", 503},
		{"InvalidToken", ErrInvalidToken(), "AUTH_001", 401},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", 429},
		{"Internal", InternalError(errors.New("boom")), "SYS_001", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestCodeOf_WrappedChain(t *testing.T) {
	err := fmt.Errorf("settle claim: %w", ErrRecipientMismatch())

	assert.Equal(t, CodeRecipientMismatch, CodeOf(err))
	assert.True(t, HasCode(err, CodeRecipientMismatch))
	assert.False(t, HasCode(nil, CodeRecipientMismatch))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
		permanent bool
	}{
		{"oracle unavailable", ErrOracleUnavailable(nil), true, false},
		{"settlement transient", ErrSettlementTransient(nil), true, false},
		{"recipient mismatch", ErrRecipientMismatch(), false, true},
		{"amount exceeds lock", ErrAmountExceedsLock(), false, true},
		{"not locked", ErrNotLocked(), false, true},
		{"invalid state", ErrInvalidState("x"), false, false},
		{"plain error", errors.New("x"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transient, IsTransient(tt.err))
			assert.Equal(t, tt.permanent, IsPermanentSettlement(tt.err))
		})
	}
}
