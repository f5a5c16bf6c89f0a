package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/auth"
)

// TokenJobs keeps the refresh token table small.
type TokenJobs struct {
	refreshTokenRepo auth.RefreshTokenRepository
	now              func() time.Time
}

func NewTokenJobs(refreshTokenRepo auth.RefreshTokenRepository) *TokenJobs {
	return &TokenJobs{
		refreshTokenRepo: refreshTokenRepo,
		now:              time.Now,
	}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("sweep_refresh_tokens", interval, j.SweepRefreshTokens)
}

// SweepRefreshTokens deletes revoked and expired refresh tokens. Unknown tokens
// already count as revoked, so removal never re-enables a token.
func (j *TokenJobs) SweepRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokenRepo.DeleteStaleRefreshTokens(ctx, j.now())
	if err != nil {
		return fmt.Errorf("sweep refresh tokens: %w", err)
	}
	if deleted > 0 {
		slog.Info("Cron: refresh tokens swept", "deleted", deleted)
	}
	return nil
}
