// Package tenant carries the authenticated caller through a request and gates
// every entity access on the caller's company.
package tenant

import (
	"context"
	"errors"
)

var (
	ErrAccessDenied        = errors.New("access to this resource is denied")
	ErrCallerMissing       = errors.New("authenticated caller is missing from context")
	ErrAdminRequired       = errors.New("admin privilege required")
	ErrOwnerRequired       = errors.New("owner access required")
	ErrCompanyIDRequired   = errors.New("company ID is required")
	ErrPrincipalIDRequired = errors.New("user ID is required")
)

// Caller is the authenticated identity every ledger operation runs as.
type Caller struct {
	CompanyID string
	UserID    string
	IsOwner   bool
	IsAdmin   bool
}

type callerKey struct{}

// NewContext returns a copy of ctx carrying c.
func NewContext(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// FromContext returns the caller stored by NewContext.
func FromContext(ctx context.Context) (Caller, error) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	if !ok {
		return Caller{}, ErrCallerMissing
	}
	if c.CompanyID == "" {
		return Caller{}, ErrCompanyIDRequired
	}
	if c.UserID == "" {
		return Caller{}, ErrPrincipalIDRequired
	}
	return c, nil
}

// Authorize is the scope guard: it allows access only to entities of the
// caller's own company.
func (c Caller) Authorize(companyID string) error {
	if companyID == "" || companyID != c.CompanyID {
		return ErrAccessDenied
	}
	return nil
}

func (c Caller) RequireAdmin() error {
	if !c.IsAdmin && !c.IsOwner {
		return ErrAdminRequired
	}
	return nil
}

func (c Caller) RequireOwner() error {
	if !c.IsOwner {
		return ErrOwnerRequired
	}
	return nil
}
