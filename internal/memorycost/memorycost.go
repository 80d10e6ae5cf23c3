// Package memorycost implements the memory cost sacrifice: discarding held
// fragments, which can never touch a fragment protected by the Chronicle.
package memorycost

import "github.com/rcliao/stasis-hunters/internal/model"

// Result reports the outcome of a removal request.
type Result struct {
	Removed        []string `json:"removed"`
	Blocked        []string `json:"blocked"`
	RemainingCount int      `json:"remaining_count"`
}

// PreviewRemovable returns, in inventory order, the seeds not in protected.
func PreviewRemovable(inventory []model.Seed, protected model.IDSet) []model.Seed {
	out := []model.Seed{}
	for _, s := range inventory {
		if !protected.Has(s.ID) {
			out = append(out, s)
		}
	}
	return out
}

// ApplyRemoval partitions the requested ids that are held into removed and blocked.
// Blocked seeds stay in place; requested ids not held are ignored. It returns the
// inventory that remains and never drops a protected seed.
func ApplyRemoval(inventory []model.Seed, protected model.IDSet, requested []string) ([]model.Seed, Result) {
	want := model.NewIDSet(requested...)
	res := Result{Removed: []string{}, Blocked: []string{}}
	kept := make([]model.Seed, 0, len(inventory))
	for _, s := range inventory {
		switch {
		case !want.Has(s.ID):
			kept = append(kept, s)
		case protected.Has(s.ID):
			res.Blocked = append(res.Blocked, s.ID)
			kept = append(kept, s)
		default:
			res.Removed = append(res.Removed, s.ID)
		}
	}
	res.RemainingCount = len(kept)
	return kept, res
}
