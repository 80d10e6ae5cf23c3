package player

import "github.com/rcliao/stasis-hunters/internal/model"

// Chronicle is the append-only set of protected seeds. It has no removal path.
type Chronicle struct {
	entries []model.ChronicleEntry
	index   model.IDSet
}

// NewChronicle returns an empty Chronicle.
func NewChronicle() *Chronicle {
	return &Chronicle{index: model.IDSet{}}
}

// Add mirrors seed and reports whether it was new.
func (c *Chronicle) Add(seed model.Seed) bool {
	if !c.index.Add(seed.ID) {
		return false
	}
	c.entries = append(c.entries, model.ChronicleEntry{ID: seed.ID, Desc: seed.Desc})
	return true
}

// Contains reports whether id is protected.
func (c *Chronicle) Contains(id string) bool {
	return c.index.Has(id)
}

// Len returns the number of entries.
func (c *Chronicle) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in mirror order.
func (c *Chronicle) Entries() []model.ChronicleEntry {
	out := make([]model.ChronicleEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// IDs returns a copy of the protected id set.
func (c *Chronicle) IDs() model.IDSet {
	return c.index.Clone()
}
