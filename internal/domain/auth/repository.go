package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository persists issued refresh tokens by hash so they can be revoked.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error
	// IsRefreshTokenRevoked reports true for revoked, expired or unknown tokens.
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	// DeleteStaleRefreshTokens removes revoked tokens and tokens expired at now.
	DeleteStaleRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}
