package company

import "time"

// Company is the tenant: the root every other row hangs off.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
