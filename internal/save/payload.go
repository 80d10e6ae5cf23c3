// Package save signs and verifies persisted game state.
package save

import (
	"encoding/json"

	"github.com/rcliao/stasis-hunters/internal/model"
)

// Payload is the protected state covered by the signature.
type Payload struct {
	Player           PlayerSnapshot         `json:"player"`
	ChronicleEntries []model.ChronicleEntry `json:"chronicle_entries"`
}

// PlayerSnapshot is the player part of the protected payload.
type PlayerSnapshot struct {
	Name          string                `json:"name"`
	Inventory     []model.InventoryItem `json:"inventory"`
	Relationships map[string]int        `json:"relationships"`
	RomanceFlags  map[string]bool       `json:"romance_flags"`
	Flags         *FlagsSnapshot        `json:"flags,omitempty"`
	Resources     *model.Resources      `json:"resources,omitempty"`
	Chapter       string                `json:"chapter,omitempty"`
}

// FlagsSnapshot holds persisted narrative flags.
type FlagsSnapshot struct {
	PayoffsTriggered []string `json:"payoffs_triggered,omitempty"`
	RomanceLocked    bool     `json:"romance_locked_until_rebuild,omitempty"`
}

// Record is a save as written to disk or the slot store. ProtectedPayload holds the
// canonical payload bytes; Extra is developer metadata outside the signature.
type Record struct {
	ProtectedPayload json.RawMessage `json:"protected_payload"`
	Signature        string          `json:"signature"`
	Extra            map[string]any  `json:"extra,omitempty"`
}
