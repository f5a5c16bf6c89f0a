package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, companyID string, username string) (User, error)
	ListAdmins(ctx context.Context, companyID string) ([]User, error)
}
