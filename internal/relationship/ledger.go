// Package relationship tracks NPC affinity and the romance flag derived from it.
package relationship

import (
	"log/slog"
	"sort"
)

// RomanceThreshold is the affinity at which the romance flag can be set.
const RomanceThreshold = 5

// Transition describes what a ChangeAffinity call did to the romance flag.
type Transition string

const (
	TransitionNone    Transition = "none"
	TransitionSet     Transition = "set"
	TransitionCleared Transition = "cleared"
)

// Change is the outcome of one affinity adjustment.
type Change struct {
	NPC        string     `json:"npc"`
	Affinity   int        `json:"affinity"`
	Romance    bool       `json:"romance"`
	Transition Transition `json:"transition"`
}

// Ledger holds affinities and romance flags. The flag is hysteresis gated: it is set
// only by a call ending at or above the threshold while unlocked, and cleared only by
// a call ending below it.
type Ledger struct {
	affinities map[string]int
	romance    map[string]bool
	logger     *slog.Logger
}

// NewLedger returns an empty ledger. A nil logger uses slog.Default.
func NewLedger(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		affinities: map[string]int{},
		romance:    map[string]bool{},
		logger:     logger,
	}
}

// ChangeAffinity adds delta to the NPC's affinity and updates the romance flag.
// locked suppresses setting the flag; it never clears one.
func (l *Ledger) ChangeAffinity(name string, delta int, locked bool) Change {
	cur := l.affinities[name] + delta
	l.affinities[name] = cur

	c := Change{NPC: name, Affinity: cur, Transition: TransitionNone}
	if cur >= RomanceThreshold && !locked {
		if !l.romance[name] {
			l.romance[name] = true
			c.Transition = TransitionSet
			l.logger.Info("romance threshold reached", "npc", name, "affinity", cur)
		}
	} else if l.romance[name] && cur < RomanceThreshold {
		l.romance[name] = false
		c.Transition = TransitionCleared
		l.logger.Info("romance cleared", "npc", name, "affinity", cur)
	}
	c.Romance = l.romance[name]
	return c
}

// Affinity returns the NPC's affinity, 0 if never changed.
func (l *Ledger) Affinity(name string) int {
	return l.affinities[name]
}

// Romance reports the NPC's romance flag.
func (l *Ledger) Romance(name string) bool {
	return l.romance[name]
}

// Romances returns the NPCs with a set romance flag, sorted.
func (l *Ledger) Romances() []string {
	var out []string
	for n, v := range l.romance {
		if v {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot returns copies of the affinity and romance maps.
func (l *Ledger) Snapshot() (map[string]int, map[string]bool) {
	aff := make(map[string]int, len(l.affinities))
	for k, v := range l.affinities {
		aff[k] = v
	}
	rom := make(map[string]bool, len(l.romance))
	for k, v := range l.romance {
		rom[k] = v
	}
	return aff, rom
}

// Restore replaces the ledger contents with copies of the given maps.
func (l *Ledger) Restore(affinities map[string]int, romance map[string]bool) {
	l.affinities = make(map[string]int, len(affinities))
	for k, v := range affinities {
		l.affinities[k] = v
	}
	l.romance = make(map[string]bool, len(romance))
	for k, v := range romance {
		l.romance[k] = v
	}
}
