package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
)

// respondError maps err to its HTTP status. Messages of application errors are
// caller-safe; anything else is replaced by fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.HTTPStatus(err)
	msg := fallback
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
	} else {
		logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, logger *slog.Logger, what string, err error) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

// parseDay reads a YYYY-MM-DD value as midnight in loc. An empty value yields nil.
func parseDay(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("dates must use the YYYY-MM-DD format")
	}
	return &t, nil
}
