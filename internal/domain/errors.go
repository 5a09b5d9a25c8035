package domain

import "errors"

// Error taxonomy shared by services and handlers. Services wrap these with
// fmt.Errorf("%w: ...") for detail; handlers map them to HTTP statuses in one
// place (handler.respondError).
var (
	ErrValidation          = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrRemainingExceeded   = errors.New("amount exceeds remaining amount")
	ErrInvalidCategoryType = errors.New("invalid category type")
	ErrExternalService     = errors.New("external service error")
)
