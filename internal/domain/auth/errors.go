package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid company, username or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrRefreshTokenMissing = errors.New("refresh token cookie not found")
)
