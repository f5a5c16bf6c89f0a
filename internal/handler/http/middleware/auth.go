package middleware

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/workledger/internal/domain/auth"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/handler/http/response"
	"github.com/cmlabs-hris/workledger/internal/pkg/jwt"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a valid access token and stores the
// caller carried by the token in the request context. Tokens of principals
// that were purged after issue are rejected as well.
func AuthRequired(ja *jwtauth.JWTAuth, users user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			caller, ok := callerFromClaims(claims)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			principal, err := users.GetByID(r.Context(), caller.UserID)
			if errors.Is(err, user.ErrUserNotFound) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if principal.CompanyID != caller.CompanyID {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			caller.IsOwner = principal.IsOwner
			caller.IsAdmin = principal.IsAdmin

			next.ServeHTTP(w, r.WithContext(tenant.NewContext(r.Context(), caller)))
		}
		return http.HandlerFunc(hfn)
	}
}

func callerFromClaims(claims map[string]interface{}) (tenant.Caller, bool) {
	companyID, _ := claims["company_id"].(string)
	userID, _ := claims["user_id"].(string)
	if companyID == "" || userID == "" {
		return tenant.Caller{}, false
	}
	isOwner, _ := claims["is_owner"].(bool)
	isAdmin, _ := claims["is_admin"].(bool)
	return tenant.Caller{CompanyID: companyID, UserID: userID, IsOwner: isOwner, IsAdmin: isAdmin}, true
}
