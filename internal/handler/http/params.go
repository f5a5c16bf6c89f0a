package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// queryInt reads an integer query parameter, returning fallback when it is absent.
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validator.ValidationErrors{{Field: key, Message: "must be an integer"}}
	}
	return n, nil
}

// urlID reads the {id} route parameter, rejecting values that are not UUIDs.
func urlID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		return "", validator.ValidationErrors{{Field: "id", Message: "must be a valid UUID"}}
	}
	return id, nil
}
