package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameExists        = errors.New("username already exists in this company")
	ErrInvalidPasswordLength = errors.New("password must be at least 8 characters")
	ErrManagerMustBeAdmin    = errors.New("team manager must be an admin of the company")
)
