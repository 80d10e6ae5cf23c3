// Package store provides the save slot storage interface and SQLite implementation.
package store

import (
	"context"

	"github.com/rcliao/stasis-hunters/internal/model"
	"github.com/rcliao/stasis-hunters/internal/save"
)

// PutParams holds parameters for storing a save.
type PutParams struct {
	Slot           string
	Player         string
	Record         *save.Record
	InventoryCount int
	ChronicleCount int

	// ExpectPrevID, when set, must be the id of the slot's latest live save or the
	// put fails with model.ErrConflict.
	ExpectPrevID string
}

// GetParams holds parameters for retrieving a save.
type GetParams struct {
	Slot    string
	History bool
	Version int // 0 means latest
}

// ListParams holds parameters for listing slots.
type ListParams struct {
	Player string
	Limit  int
}

// RmParams holds parameters for deleting a slot.
type RmParams struct {
	Slot        string
	AllVersions bool
	Hard        bool
}

// Store defines the save slot storage interface.
type Store interface {
	// Put stores a new version of a slot. Returns the stored save.
	Put(ctx context.Context, p PutParams) (*model.SavedGame, error)

	// Get retrieves a slot.
	// Returns a slice (single element normally, multiple with History=true).
	Get(ctx context.Context, p GetParams) ([]model.SavedGame, error)

	// List lists the latest version of each slot.
	List(ctx context.Context, p ListParams) ([]model.SavedGame, error)

	// Rm soft-deletes (or hard-deletes) a slot.
	Rm(ctx context.Context, p RmParams) error

	// Close closes the store.
	Close() error
}

// RecordOf returns the signed record held by a stored save.
func RecordOf(g model.SavedGame) *save.Record {
	return &save.Record{
		ProtectedPayload: g.ProtectedPayload,
		Signature:        g.Signature,
		Extra:            g.Extra,
	}
}
