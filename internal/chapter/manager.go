// Package chapter resets and recharges chapter-scoped resources.
package chapter

import (
	"fmt"

	"github.com/rcliao/stasis-hunters/internal/model"
)

// Lookup resolves chapter definitions by id.
type Lookup interface {
	Chapter(id string) (model.ChapterDef, bool)
}

// Manager applies chapter entry rules.
type Manager struct {
	chapters Lookup
}

// NewManager returns a manager over chapters.
func NewManager(chapters Lookup) *Manager {
	return &Manager{chapters: chapters}
}

// Enter returns the resources after entering chapter id. Chronosense uses are hard
// reset; Tech Pulse is initialised once and afterwards recharged up to its max.
// Unknown chapters return ErrNotFound and the current state unchanged.
func (m *Manager) Enter(id string, cur model.Resources) (model.Resources, error) {
	def, ok := m.chapters.Chapter(id)
	if !ok {
		return cur, fmt.Errorf("chapter %q: %w", id, model.ErrNotFound)
	}

	next := cur
	next.ChronosenseUsesRemaining = intOr(def.ChronosenseUses, model.DefaultChronosenseUses)

	prevMax := cur.TechPulseMax
	if !cur.TechPulseSet {
		prevMax = model.DefaultTechPulseMax
	}
	next.TechPulseMax = intOr(def.TechPulseMax, prevMax)

	if !cur.TechPulseSet {
		next.TechPulse = min(intOr(def.TechPulseStart, next.TechPulseMax), next.TechPulseMax)
		next.TechPulseSet = true
	} else {
		next.TechPulse = min(cur.TechPulse+intOr(def.TechPulseRecharge, model.DefaultTechPulseRecharge), next.TechPulseMax)
	}
	return next, nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// UseChronosense spends amount uses (1 when amount <= 0) if enough remain.
func UseChronosense(res *model.Resources, amount int) bool {
	if amount <= 0 {
		amount = 1
	}
	if res.ChronosenseUsesRemaining < amount {
		return false
	}
	res.ChronosenseUsesRemaining -= amount
	return true
}

// UseTechPulse spends amount charges (1 when amount <= 0) if enough remain.
func UseTechPulse(res *model.Resources, amount int) bool {
	if amount <= 0 {
		amount = 1
	}
	if res.TechPulse < amount {
		return false
	}
	res.TechPulse -= amount
	return true
}
