package models

import "errors"

// Domain error taxonomy. Services return these (possibly wrapped); the
// HTTP layer maps each one to a status and a stable machine code.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrPortConflict       = errors.New("port conflict")
	ErrPortUnavailable    = errors.New("port unavailable")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidCapacity    = errors.New("invalid capacity")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
