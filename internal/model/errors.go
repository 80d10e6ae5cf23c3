package model

import "errors"

var (
	// ErrNotFound marks an unknown seed, chapter, encounter, slot, or save file.
	ErrNotFound = errors.New("not found")

	// ErrIntegrity marks a save that failed verification and must not be trusted.
	ErrIntegrity = errors.New("save integrity check failed")

	// ErrConflict marks a write based on a save that is no longer the slot's latest.
	ErrConflict = errors.New("save slot changed since load")
)
