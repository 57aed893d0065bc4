package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mrp/internal/apperror"
)

// ScoreCache caches media average scores. Implementations must be safe to call when disabled.
// A miss returns the generation to pass to Set; Set drops the value when Invalidate ran
// after that generation was read.
type ScoreCache interface {
	Get(ctx context.Context, mediaID string) (score float64, gen int64, ok bool)
	Set(ctx context.Context, mediaID string, gen int64, score float64)
	Invalidate(ctx context.Context, mediaID string)
}

type noopScoreCache struct{}

func (noopScoreCache) Get(context.Context, string) (float64, int64, bool) { return 0, 0, false }
func (noopScoreCache) Set(context.Context, string, int64, float64)        {}
func (noopScoreCache) Invalidate(context.Context, string)                 {}

func orNoop(c ScoreCache) ScoreCache {
	if c == nil {
		return noopScoreCache{}
	}
	return c
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// requireID rejects ids that are not UUIDs before they reach the database.
func requireID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.Validation("%s must be a valid UUID", field)
	}
	return nil
}

// ownership turns a zero-row guarded write into NotFound or Forbidden.
func ownership(ctx context.Context, exists func(context.Context, string) (bool, error), id, what string) error {
	found, err := exists(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !found {
		return apperror.NotFound("%s not found", what)
	}
	return apperror.Forbidden("only the owner may modify this %s", what)
}
