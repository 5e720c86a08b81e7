package errors

import "errors"

var (
	// ErrUnknownPlan indicates a checkout was requested for a plan the service does not sell
	ErrUnknownPlan = errors.New("unknown subscription plan")
)
