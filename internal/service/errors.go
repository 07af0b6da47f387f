// Package service provides the business logic for OctoFit Tracker profiles.
package service

import "errors"

// Common service errors.
var (
	// Input validation errors
	ErrMissingRequiredFields = errors.New("user_id and name are required")
	ErrMissingActivityType   = errors.New("activity_type is required")
	ErrInvalidDuration       = errors.New("duration_minutes must be a positive integer")
	ErrInvalidCalories       = errors.New("calories_burned must be a non-negative integer")

	// General errors
	ErrInternalError = errors.New("internal server error")
)
