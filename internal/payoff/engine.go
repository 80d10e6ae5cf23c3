// Package payoff evaluates unlock rules against the Chronicle.
package payoff

import (
	"log/slog"

	"github.com/rcliao/stasis-hunters/internal/model"
)

// Engine evaluates payoff rules in content order. It holds no player state.
type Engine struct {
	rules  []model.PayoffRule
	logger *slog.Logger
}

// NewEngine returns an engine over rules. A nil logger uses slog.Default.
func NewEngine(rules []model.PayoffRule, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	r := make([]model.PayoffRule, len(rules))
	copy(r, rules)
	return &Engine{rules: r, logger: logger}
}

// Rules returns the rules in evaluation order.
func (e *Engine) Rules() []model.PayoffRule {
	out := make([]model.PayoffRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// CheckAndTrigger fires every rule not yet in triggered whose non-empty requirement
// set is contained in chronicle. Fired ids are added to triggered, which the caller
// owns and persists. Rules with no requirements never fire.
func (e *Engine) CheckAndTrigger(chronicle, triggered model.IDSet) []model.PayoffRule {
	var fired []model.PayoffRule
	for _, r := range e.rules {
		if triggered.Has(r.ID) || !satisfied(r, chronicle) {
			continue
		}
		triggered.Add(r.ID)
		fired = append(fired, r)
		e.logger.Info("payoff triggered", "payoff", r.ID, "title", r.Title)
	}
	return fired
}

func satisfied(r model.PayoffRule, chronicle model.IDSet) bool {
	if len(r.RequiredSeeds) == 0 {
		return false
	}
	for _, id := range r.RequiredSeeds {
		if !chronicle.Has(id) {
			return false
		}
	}
	return true
}

// Locked is a payoff whose requirements are not met yet.
type Locked struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Missing []string `json:"missing"`
}

// ListLocked returns the rules that chronicle does not satisfy. Rules without
// requirements are listed with nothing missing since they never unlock on their own.
func (e *Engine) ListLocked(chronicle model.IDSet) []Locked {
	out := []Locked{}
	for _, r := range e.rules {
		if satisfied(r, chronicle) {
			continue
		}
		missing := model.IDSet{}
		for _, id := range r.RequiredSeeds {
			if !chronicle.Has(id) {
				missing.Add(id)
			}
		}
		out = append(out, Locked{ID: r.ID, Title: r.Title, Missing: missing.Sorted()})
	}
	return out
}
