package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
)

type CreateAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *CreateAdminRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Username = strings.TrimSpace(r.Username)

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "is required"})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "must be 3-80 characters of letters, digits, '.', '_' or '-'"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: ErrInvalidPasswordLength.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IsOwner   bool      `json:"is_owner"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		IsOwner:   u.IsOwner,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
