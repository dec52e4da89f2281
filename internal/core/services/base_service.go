package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/smartduka/smartduka_backend/internal/apperrors"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	"github.com/smartduka/smartduka_backend/internal/middleware"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
	defaultStatsTTL     = 5 * time.Minute
)

// BaseService provides common functionality for all services
type BaseService struct {
	now        func() time.Time
	location   *time.Location
	statsCache portsrepo.StatsCache
	statsTTL   time.Duration
}

// Option configures the fields every service shares.
type Option func(*BaseService)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *BaseService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the shop time zone used for calendar-day windows.
func WithLocation(loc *time.Location) Option {
	return func(s *BaseService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithStatsCache enables caching of per-shop aggregates.
func WithStatsCache(cache portsrepo.StatsCache, ttl time.Duration) Option {
	return func(s *BaseService) {
		s.statsCache = cache
		if ttl > 0 {
			s.statsTTL = ttl
		}
	}
}

func newBaseService(opts ...Option) BaseService {
	base := BaseService{
		now:      time.Now,
		location: time.Local,
		statsTTL: defaultStatsTTL,
	}
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock's current time.
func (s *BaseService) Now() time.Time {
	return s.now()
}

// WrapError applies the one error policy of the service layer: guard errors
// (validation, not found, conflict, invalid state) pass through unchanged, anything
// else is logged with its cause and replaced by an OperationFailedError carrying msg.
func (s *BaseService) WrapError(ctx context.Context, err error, msg string, keyvals ...any) error {
	if err == nil {
		return nil
	}
	if apperrors.IsGuardError(err) {
		return err
	}
	s.LogError(ctx, err, msg, keyvals...)
	return apperrors.NewOperationFailedError(msg, err)
}

// transitionError turns a lost compare-and-set into an InvalidStateError naming the
// status the record moved to.
func transitionError(err error, action string) error {
	var mismatch *portsrepo.StatusMismatchError
	if errors.As(err, &mismatch) {
		return apperrors.NewInvalidStateError(fmt.Sprintf("cannot %s %s with status %s", action, mismatch.Entity, mismatch.Current))
	}
	return err
}

// statsKey pins a stats read to the scope's current generation. ok is false when the
// cache is off or the generation cannot be read, and the caller then skips the cache.
func (s *BaseService) statsKey(ctx context.Context, scope string) (key string, ok bool) {
	if s.statsCache == nil {
		return "", false
	}
	gen, err := s.statsCache.Generation(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Stats cache generation read failed", slog.String("scope", scope))
		return "", false
	}
	return fmt.Sprintf("%s:%d", scope, gen), true
}

func (s *BaseService) cacheGet(ctx context.Context, key string, dest any) bool {
	hit, err := s.statsCache.Get(ctx, key, dest)
	if err != nil {
		s.LogError(ctx, err, "Stats cache read failed", slog.String("key", key))
		return false
	}
	return hit
}

func (s *BaseService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.statsCache.Set(ctx, key, value, s.statsTTL); err != nil {
		s.LogError(ctx, err, "Stats cache write failed", slog.String("key", key))
	}
}

// cacheInvalidate retires every aggregate of scope, including one still being computed
// from a read that preceded this write.
func (s *BaseService) cacheInvalidate(ctx context.Context, scope string) {
	if s.statsCache == nil {
		return
	}
	if err := s.statsCache.Bump(ctx, scope); err != nil {
		s.LogError(ctx, err, "Stats cache invalidation failed", slog.String("scope", scope))
	}
}

func reconciliationStatsScope(shopID string) string {
	return "smartduka:stats:reconciliation:" + shopID
}

func returnStatsScope(shopID string) string {
	return "smartduka:stats:returns:" + shopID
}
