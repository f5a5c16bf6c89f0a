package jwt

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("unexpected token type")

// RefreshClaims are the claims carried by a refresh token.
type RefreshClaims struct {
	UserID    string
	CompanyID string
}

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	GenerateRefreshToken(u user.User) (token string, expiresAt int64, err error)
	// ParseRefreshToken verifies signature, expiry and token type.
	ParseRefreshToken(ctx context.Context, token string) (RefreshClaims, error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	accessTokenExpirationTime  time.Duration
	refreshTokenExpirationTime time.Duration
	tokenAuth                  *jwtauth.JWTAuth
	now                        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration, refreshTokenExpirationTime time.Duration) Service {
	return &JWTService{
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                        time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()

	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    u.ID,
		"company_id": u.CompanyID,
		"username":   u.Username,
		"is_owner":   u.IsOwner,
		"is_admin":   u.IsAdmin,
		"type":       TokenTypeAccess,
		"exp":        expiresAt,
	})
	return token, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(u user.User) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.refreshTokenExpirationTime).Unix()

	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    u.ID,
		"company_id": u.CompanyID,
		"type":       TokenTypeRefresh,
		"exp":        expiresAt,
		// jti keeps two refresh tokens issued in the same second distinct
		"jti": u.ID + ":" + j.now().Format(time.RFC3339Nano),
	})
	return token, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(ctx context.Context, tokenString string) (RefreshClaims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return RefreshClaims{}, err
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return RefreshClaims{}, err
	}
	if tokenType, _ := claims["type"].(string); tokenType != TokenTypeRefresh {
		return RefreshClaims{}, ErrWrongTokenType
	}

	userID, _ := claims["user_id"].(string)
	companyID, _ := claims["company_id"].(string)
	if userID == "" || companyID == "" {
		return RefreshClaims{}, jwt.ErrInvalidJWT()
	}
	return RefreshClaims{UserID: userID, CompanyID: companyID}, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}
