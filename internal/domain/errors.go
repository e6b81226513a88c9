package domain

import "errors"

// Error kinds shared across layers. Callers wrap them with fmt.Errorf("...: %w")
// and the HTTP layer maps them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)
