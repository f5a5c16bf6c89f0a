package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/auth"
	"github.com/cmlabs-hris/workledger/internal/domain/company"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/pkg/jwt"
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
	"github.com/cmlabs-hris/workledger/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func newTestAuthService(store *memory.Store) auth.AuthService {
	jwtService := jwt.NewJWTService(testSecret, time.Hour, 24*time.Hour)
	return NewAuthService(store, store.UserRepository(), store.CompanyRepository(), jwtService, store.RefreshTokenRepository())
}

func registerRequest() auth.RegisterRequest {
	return auth.RegisterRequest{CompanyName: "Acme Builders", Username: "owner", Password: "password123"}
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)

	response, err := authService.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)

	counts := store.Counts()
	assert.Equal(t, 1, counts.Companies)
	assert.Equal(t, 1, counts.Users)

	c, err := store.CompanyRepository().GetByName(ctx, "Acme Builders")
	require.NoError(t, err)
	owner, err := store.UserRepository().GetByUsername(ctx, c.ID, "owner")
	require.NoError(t, err)
	assert.True(t, owner.IsOwner)
	assert.True(t, owner.IsAdmin)
	assert.NotEqual(t, "password123", owner.PasswordHash)
}

func TestAuthService_Register_DuplicateCompany(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)

	_, err := authService.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = authService.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, company.ErrCompanyNameExists)
	assert.Equal(t, 1, store.Counts().Users)
}

func TestAuthService_Register_RollsBackCompany(t *testing.T) {
	store := memory.NewStore()
	store.FailOn("User.Create", errors.New("insert failed"))
	authService := newTestAuthService(store)

	_, err := authService.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.Zero(t, store.Counts().Companies)
}

func TestAuthService_Register_Validation(t *testing.T) {
	authService := newTestAuthService(memory.NewStore())

	_, err := authService.Register(context.Background(), auth.RegisterRequest{CompanyName: "", Username: "x", Password: "short"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "company_name")
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)

	hash, err := HashPassword("password123")
	require.NoError(t, err)
	c := store.AddCompany(company.Company{Name: "Acme"})
	store.AddUser(user.User{CompanyID: c.ID, Username: "siti", PasswordHash: hash, IsAdmin: true})

	response, err := authService.Login(ctx, auth.LoginRequest{CompanyName: "Acme", Username: "siti", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Greater(t, response.AccessTokenExpiresIn, int64(0))
	assert.Greater(t, response.RefreshTokenExpiresIn, int64(0))
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)

	hash, err := HashPassword("password123")
	require.NoError(t, err)
	c := store.AddCompany(company.Company{Name: "Acme"})
	store.AddUser(user.User{CompanyID: c.ID, Username: "siti", PasswordHash: hash})
	other := store.AddCompany(company.Company{Name: "Globex"})

	cases := []auth.LoginRequest{
		{CompanyName: "Acme", Username: "siti", Password: "wrongpassword"},
		{CompanyName: "Acme", Username: "nobody", Password: "password123"},
		{CompanyName: "Nowhere", Username: "siti", Password: "password123"},
		{CompanyName: other.Name, Username: "siti", Password: "password123"},
	}
	for _, req := range cases {
		_, err := authService.Login(ctx, req)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "%+v", req)
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)

	registered, err := authService.Register(ctx, registerRequest())
	require.NoError(t, err)

	refreshed, err := authService.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = authService.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: registered.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = authService.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_RevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authService := newTestAuthService(store)

	registered, err := authService.Register(ctx, registerRequest())
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, registered.RefreshToken))
	// A second logout is a no-op.
	require.NoError(t, authService.Logout(ctx, registered.RefreshToken))

	_, err = authService.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
