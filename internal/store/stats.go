package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string      `json:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	TotalSaves  int         `json:"total_saves"`
	ActiveSaves int         `json:"active_saves"`
	Slots       []SlotStats `json:"slots"`
}

// SlotStats holds per-slot counts.
type SlotStats struct {
	Slot     string `json:"slot"`
	Versions int    `json:"versions"`
	Loads    int    `json:"loads"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saves`).Scan(&st.TotalSaves)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saves WHERE deleted_at IS NULL`).Scan(&st.ActiveSaves)

	rows, err := s.db.QueryContext(ctx, `
		SELECT slot, COUNT(*) AS versions, COALESCE(SUM(load_count), 0) AS loads
		FROM saves WHERE deleted_at IS NULL
		GROUP BY slot ORDER BY versions DESC, slot`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var sl SlotStats
		if err := rows.Scan(&sl.Slot, &sl.Versions, &sl.Loads); err != nil {
			return st, err
		}
		st.Slots = append(st.Slots, sl)
	}

	return st, rows.Err()
}
