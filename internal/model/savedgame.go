package model

import (
	"encoding/json"
	"time"
)

// SavedGame is one stored version of a save slot.
type SavedGame struct {
	ID               string          `json:"id"`
	Slot             string          `json:"slot"`
	Version          int             `json:"version"`
	Supersedes       string          `json:"supersedes,omitempty"`
	Player           string          `json:"player"`
	ProtectedPayload json.RawMessage `json:"protected_payload"`
	Signature        string          `json:"signature"`
	Extra            map[string]any  `json:"extra,omitempty"`
	InventoryCount   int             `json:"inventory_count"`
	ChronicleCount   int             `json:"chronicle_count"`
	CreatedAt        time.Time       `json:"created_at"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
	LoadCount        int             `json:"load_count"`
	LastLoadedAt     *time.Time      `json:"last_loaded_at,omitempty"`
}
