package services

import "errors"

// Failure categories raised by the services. Handlers translate these to
// HTTP status codes; everything else maps to a generic 400.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("invalid credentials")
)
