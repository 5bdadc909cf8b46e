package services

import (
	"errors"
)

// Sentinel errors returned by the workflow services. Routes map them onto the
// HTTP taxonomy: ErrForbidden → 403, ErrValidation → 400, ErrNotFound → 404,
// ErrTerminal → 400, anything else → 500.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("invalid input")
	ErrTerminal   = errors.New("request already resolved")
)
