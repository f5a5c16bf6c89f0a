package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/workledger/internal/handler/http/response"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
)

// RequireOwner requires the company owner
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := tenant.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if err := caller.RequireOwner(); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AdminOnly requires an admin or the owner
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := tenant.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if err := caller.RequireAdmin(); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
