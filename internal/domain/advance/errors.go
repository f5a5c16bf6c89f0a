package advance

import "errors"

var (
	ErrInvalidAmount = errors.New("advance amount must be greater than 0, below 1000000000000, with at most 2 decimal places")
	ErrFutureDate    = errors.New("advance date cannot be in the future")
)
