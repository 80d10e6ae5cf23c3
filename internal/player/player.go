// Package player holds the state a single player owns: inventory, Chronicle,
// relationships, flags and chapter resources.
package player

import (
	"log/slog"

	"github.com/rcliao/stasis-hunters/internal/memorycost"
	"github.com/rcliao/stasis-hunters/internal/model"
	"github.com/rcliao/stasis-hunters/internal/relationship"
)

// DefaultName is used when a player is created without a name.
const DefaultName = "Player"

// State is the capability set the engines need from a player.
type State interface {
	Pickup(seed model.Seed) PickupResult
	IsProtected(id string) bool
	Forget(requested []string) memorycost.Result
	InventorySeeds() []model.Seed
	ChronicleIDs() model.IDSet
}

var _ State = (*Player)(nil)

// PickupResult reports what a pickup did. Duplicates are reported, not errors.
type PickupResult struct {
	ID                string `json:"id"`
	Added             bool   `json:"added"`
	Mirrored          bool   `json:"mirrored"`
	AlreadyHeld       bool   `json:"already_held,omitempty"`
	AlreadyChronicled bool   `json:"already_chronicled,omitempty"`
}

// Flags are persisted narrative flags.
type Flags struct {
	PayoffsTriggered model.IDSet
	RomanceLocked    bool
}

// Player is the concrete State.
type Player struct {
	Name          string
	Relationships *relationship.Ledger
	Flags         Flags
	Resources     model.Resources
	Chapter       string

	inventory []model.Seed
	held      model.IDSet
	chronicle *Chronicle
	logger    *slog.Logger
}

// New returns an empty player. A nil logger uses slog.Default.
func New(name string, logger *slog.Logger) *Player {
	if name == "" {
		name = DefaultName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		Name:          name,
		Relationships: relationship.NewLedger(logger),
		Flags:         Flags{PayoffsTriggered: model.IDSet{}},
		held:          model.IDSet{},
		chronicle:     NewChronicle(),
		logger:        logger,
	}
}

// Pickup adds seed to the inventory unless already held, mirroring it into the
// Chronicle when the seed is essential or flagged for mirroring.
func (p *Player) Pickup(seed model.Seed) PickupResult {
	res := PickupResult{ID: seed.ID}
	if p.held.Has(seed.ID) {
		res.AlreadyHeld = true
		p.logger.Info("seed already collected", "seed", seed.ID)
		return res
	}
	p.inventory = append(p.inventory, seed)
	p.held.Add(seed.ID)
	res.Added = true
	p.logger.Info("seed picked up", "seed", seed.ID)

	if seed.Mirrors() {
		if p.chronicle.Add(seed) {
			res.Mirrored = true
			p.logger.Info("seed mirrored to chronicle", "seed", seed.ID)
		} else {
			res.AlreadyChronicled = true
		}
	}
	return res
}

// IsProtected reports whether id is in the Chronicle.
func (p *Player) IsProtected(id string) bool {
	return p.chronicle.Contains(id)
}

// Forget applies a memory cost removal to the inventory. Chronicle entries are
// never touched and protected seeds are never removed.
func (p *Player) Forget(requested []string) memorycost.Result {
	kept, res := memorycost.ApplyRemoval(p.inventory, p.chronicle.IDs(), requested)
	p.inventory = kept
	for _, id := range res.Removed {
		delete(p.held, id)
	}
	p.logger.Info("memory cost applied", "removed", res.Removed, "blocked", res.Blocked)
	return res
}

// InventorySeeds returns a copy of the inventory in pickup order.
func (p *Player) InventorySeeds() []model.Seed {
	out := make([]model.Seed, len(p.inventory))
	copy(out, p.inventory)
	return out
}

// Holds reports whether id is in the inventory.
func (p *Player) Holds(id string) bool {
	return p.held.Has(id)
}

// ChronicleIDs returns the set of protected ids.
func (p *Player) ChronicleIDs() model.IDSet {
	return p.chronicle.IDs()
}

// ChronicleEntries returns the Chronicle in mirror order.
func (p *Player) ChronicleEntries() []model.ChronicleEntry {
	return p.chronicle.Entries()
}

// Restore rebuilds inventory and Chronicle from saved state. Inventory duplicates
// are dropped. Chronicle ids need not be held, since a save only records what was
// mirrored.
func (p *Player) Restore(inventory []model.Seed, chronicle []model.ChronicleEntry) {
	p.inventory = nil
	p.held = model.IDSet{}
	for _, s := range inventory {
		if p.held.Add(s.ID) {
			p.inventory = append(p.inventory, s)
		}
	}
	p.chronicle = NewChronicle()
	for _, e := range chronicle {
		p.chronicle.Add(model.Seed{ID: e.ID, Desc: e.Desc})
	}
}
