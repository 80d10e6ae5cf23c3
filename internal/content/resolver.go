package content

import (
	"context"
	"fmt"

	"github.com/rcliao/stasis-hunters/internal/model"
)

// StaticResolver resolves an encounter as a victory that yields its full drop list.
// It stands in for the interactive combat loops, which only ever feed drops back.
type StaticResolver struct {
	Registry *Registry
}

// Resolve returns the drop ids of the encounter.
func (r StaticResolver) Resolve(ctx context.Context, encounterID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := r.Registry.Encounter(encounterID)
	if !ok {
		return nil, fmt.Errorf("encounter %q: %w", encounterID, model.ErrNotFound)
	}
	drops := make([]string, len(e.Drops))
	copy(drops, e.Drops)
	return drops, nil
}
