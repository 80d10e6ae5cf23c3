package store

import (
	"context"
	"strings"

	"github.com/rcliao/stasis-hunters/internal/model"
)

// ExportAll returns all non-deleted saves, optionally filtered by slot.
func (s *SQLiteStore) ExportAll(ctx context.Context, slot string) ([]model.SavedGame, error) {
	where := []string{"deleted_at IS NULL"}
	args := []interface{}{}

	if slot != "" {
		where = append(where, "slot = ?")
		args = append(args, slot)
	}

	query := `SELECT ` + saveColumns + ` FROM saves WHERE ` + strings.Join(where, " AND ") + ` ORDER BY slot, version`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saves []model.SavedGame
	for rows.Next() {
		g, err := scanSave(rows)
		if err != nil {
			return nil, err
		}
		saves = append(saves, g)
	}
	return saves, rows.Err()
}

// Import stores each export entry as a new version of its slot, in order. Entries
// are stored as-is; callers verify signatures before trusting them.
func (s *SQLiteStore) Import(ctx context.Context, saves []model.SavedGame) (int, error) {
	imported := 0
	for _, g := range saves {
		_, err := s.Put(ctx, PutParams{
			Slot:           g.Slot,
			Player:         g.Player,
			Record:         RecordOf(g),
			InventoryCount: g.InventoryCount,
			ChronicleCount: g.ChronicleCount,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
