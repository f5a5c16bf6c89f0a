package user

import "time"

// User is a principal that can sign in to a company. IsOwner marks the company
// creator; IsAdmin grants operational rights over the ledgers.
type User struct {
	ID           string
	CompanyID    string
	Username     string
	PasswordHash string
	IsOwner      bool
	IsAdmin      bool
	CreatedAt    time.Time
}
