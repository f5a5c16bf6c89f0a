package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/auth"
)

type refreshToken struct {
	userID    string
	expiresAt time.Time
	revoked   bool
}

type refreshTokenRepository struct{ s *Store }

func (s *Store) RefreshTokenRepository() auth.RefreshTokenRepository {
	return refreshTokenRepository{s}
}

// Tokens are keyed by their raw value.
func (r refreshTokenRepository) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = refreshToken{userID: userID, expiresAt: time.Unix(expiresAt, 0)}
	s.onRollback(ctx, func() { delete(s.tokens, token) })
	return nil
}

func (r refreshTokenRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[token]
	if !ok {
		return true, nil
	}
	return t.revoked || !t.expiresAt.After(time.Now()), nil
}

func (r refreshTokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok || t.revoked {
		return nil
	}
	previous := t
	t.revoked = true
	s.tokens[token] = t
	s.onRollback(ctx, func() { s.tokens[token] = previous })
	return nil
}

func (r refreshTokenRepository) DeleteStaleRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for token, t := range s.tokens {
		if t.revoked || !t.expiresAt.After(now) {
			removed := t
			delete(s.tokens, token)
			s.onRollback(ctx, func() { s.tokens[token] = removed })
			n++
		}
	}
	return n, nil
}

// RefreshTokenCount returns the number of stored refresh tokens.
func (s *Store) RefreshTokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
