package payroll

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid payroll period")
	ErrInvalidScope  = errors.New("scope must be 'month' or 'all'")
)
