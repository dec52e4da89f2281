package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_MatchesKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		code int
	}{
		{"not found", apperrors.NewNotFoundError("shift not found"), apperrors.ErrNotFound, http.StatusNotFound},
		{"validation", apperrors.NewValidationFailedError("bad"), apperrors.ErrValidation, http.StatusBadRequest},
		{"conflict", apperrors.NewConflictError("open shift exists"), apperrors.ErrConflict, http.StatusConflict},
		{"invalid state", apperrors.NewInvalidStateError("return is approved"), apperrors.ErrInvalidState, http.StatusConflict},
		{"operation failed", apperrors.NewOperationFailedError("failed", assert.AnError), apperrors.ErrOperationFailed, http.StatusInternalServerError},
		{"from code", apperrors.NewAppError(500, "failed to query", assert.AnError), apperrors.ErrOperationFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
			assert.Equal(t, tt.code, apperrors.HTTPStatus(wrapped))
		})
	}
}

func TestOperationFailedError_KeepsCauseButHidesMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.NewOperationFailedError("failed to create reconciliation", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to create reconciliation", err.Error())
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestIsGuardError(t *testing.T) {
	assert.True(t, apperrors.IsGuardError(apperrors.NewInvalidStateError("x")))
	assert.True(t, apperrors.IsGuardError(apperrors.ErrNotFound))
	assert.False(t, apperrors.IsGuardError(assert.AnError))
	assert.False(t, apperrors.IsGuardError(apperrors.NewOperationFailedError("x", nil)))
}
