// Package model defines the core game state data types.
package model

// Seed is a collectible narrative fragment as defined by content.
type Seed struct {
	ID                 string `json:"id"`
	Desc               string `json:"desc"`
	EssentialForPayoff bool   `json:"essential_for_payoff,omitempty"`
	MirrorOnPickup     bool   `json:"mirror_on_pickup,omitempty"`
}

// Mirrors reports whether picking the seed up copies it into the Chronicle.
func (s Seed) Mirrors() bool {
	return s.EssentialForPayoff || s.MirrorOnPickup
}

// Item returns the inventory snapshot form of the seed.
func (s Seed) Item() InventoryItem {
	return InventoryItem{ID: s.ID, Desc: s.Desc}
}

// InventoryItem is a held seed as written to a save.
type InventoryItem struct {
	ID   string `json:"id"`
	Desc string `json:"desc"`
}

// ChronicleEntry is a protected seed with a snapshot of its description.
type ChronicleEntry struct {
	ID   string `json:"id"`
	Desc string `json:"desc"`
}

// PayoffRule unlocks once every required seed is in the Chronicle.
type PayoffRule struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Desc          string   `json:"desc,omitempty"`
	RequiredSeeds []string `json:"required_seeds"`
}

// Encounter is a combat encounter reduced to what the engine consumes: its drops.
type Encounter struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Drops []string `json:"drops,omitempty"`
}
