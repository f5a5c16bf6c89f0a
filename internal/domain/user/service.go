package user

import "context"

// AdminService manages the principals of the caller's company. Owner only.
type AdminService interface {
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (UserResponse, error)
	ListAdmins(ctx context.Context) ([]UserResponse, error)
	// DeleteAdmin purges the principal. Deleting the owner purges the whole company.
	DeleteAdmin(ctx context.Context, id string) error
}
