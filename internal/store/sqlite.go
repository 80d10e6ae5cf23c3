package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/stasis-hunters/internal/model"
)

// timeLayout has fixed-width fractions so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id              TEXT PRIMARY KEY,
		slot            TEXT NOT NULL,
		version         INTEGER NOT NULL DEFAULT 1,
		supersedes      TEXT,
		player          TEXT NOT NULL,
		payload         TEXT NOT NULL,
		signature       TEXT NOT NULL,
		extra           TEXT,
		inventory_count INTEGER NOT NULL DEFAULT 0,
		chronicle_count INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		deleted_at      TEXT,
		load_count      INTEGER NOT NULL DEFAULT 0,
		last_loaded_at  TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_saves_slot ON saves(slot, version);
	CREATE INDEX IF NOT EXISTS idx_saves_player ON saves(player);
	CREATE INDEX IF NOT EXISTS idx_saves_created ON saves(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_saves_deleted ON saves(deleted_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

const saveColumns = `id, slot, version, supersedes, player, payload, signature, extra,
	inventory_count, chronicle_count, created_at, deleted_at, load_count, last_loaded_at`

// Put stores the record as the next version of its slot in one transaction. The
// transaction takes the write lock up front so the ExpectPrevID check and the
// insert see the same latest row.
func (s *SQLiteStore) Put(ctx context.Context, p PutParams) (*model.SavedGame, error) {
	if p.Slot == "" {
		return nil, fmt.Errorf("slot is required")
	}
	if p.Record == nil {
		return nil, fmt.Errorf("record is required")
	}
	now := time.Now().UTC()
	id := s.newID()

	var extraJSON *string
	if len(p.Record.Extra) > 0 {
		b, err := json.Marshal(p.Record.Extra)
		if err != nil {
			return nil, fmt.Errorf("marshal extra: %w", err)
		}
		e := string(b)
		extraJSON = &e
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Check for existing latest version
	var prevID string
	var prevVersion int
	err = tx.QueryRowContext(ctx,
		`SELECT id, version FROM saves
		 WHERE slot = ? AND deleted_at IS NULL
		 ORDER BY version DESC LIMIT 1`, p.Slot).Scan(&prevID, &prevVersion)

	version := 1
	var supersedes *string
	switch {
	case err == nil:
		version = prevVersion + 1
		supersedes = &prevID
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("latest version: %w", err)
	}
	if p.ExpectPrevID != "" && p.ExpectPrevID != prevID {
		return nil, fmt.Errorf("save slot %s: %w", p.Slot, model.ErrConflict)
	}

	// Versions keep counting past soft-deleted rows.
	var maxVersion sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(version) FROM saves WHERE slot = ?`, p.Slot).Scan(&maxVersion); err != nil {
		return nil, fmt.Errorf("max version: %w", err)
	}
	if maxVersion.Valid && int(maxVersion.Int64) >= version {
		version = int(maxVersion.Int64) + 1
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO saves (id, slot, version, supersedes, player, payload, signature, extra,
		                    inventory_count, chronicle_count, created_at, load_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		id, p.Slot, version, supersedes, p.Player, string(p.Record.ProtectedPayload), p.Record.Signature,
		extraJSON, p.InventoryCount, p.ChronicleCount, now.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("insert save: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	g := &model.SavedGame{
		ID:               id,
		Slot:             p.Slot,
		Version:          version,
		Player:           p.Player,
		ProtectedPayload: p.Record.ProtectedPayload,
		Signature:        p.Record.Signature,
		Extra:            p.Record.Extra,
		InventoryCount:   p.InventoryCount,
		ChronicleCount:   p.ChronicleCount,
		CreatedAt:        now,
	}
	if supersedes != nil {
		g.Supersedes = *supersedes
	}
	return g, nil
}

// Get returns the latest version of a slot, a specific version, or the full
// history newest first. Missing slots wrap model.ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, p GetParams) ([]model.SavedGame, error) {
	var query string
	var args []interface{}

	if p.History {
		query = `SELECT ` + saveColumns + ` FROM saves
				 WHERE slot = ? AND deleted_at IS NULL
				 ORDER BY version DESC`
		args = []interface{}{p.Slot}
	} else if p.Version > 0 {
		query = `SELECT ` + saveColumns + ` FROM saves
				 WHERE slot = ? AND version = ? AND deleted_at IS NULL
				 LIMIT 1`
		args = []interface{}{p.Slot, p.Version}
	} else {
		query = `SELECT ` + saveColumns + ` FROM saves
				 WHERE slot = ? AND deleted_at IS NULL
				 ORDER BY version DESC LIMIT 1`
		args = []interface{}{p.Slot}
	}

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
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(saves) == 0 {
		return nil, fmt.Errorf("save slot %s: %w", p.Slot, model.ErrNotFound)
	}

	return saves, nil
}

// MarkLoaded records that a stored save was loaded into a session.
func (s *SQLiteStore) MarkLoaded(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(timeLayout)
	_, err := s.db.ExecContext(ctx,
		`UPDATE saves SET load_count = load_count + 1, last_loaded_at = ? WHERE id = ?`,
		now, id)
	return err
}

// List returns the latest version of each live slot, newest first.
func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.SavedGame, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"g.deleted_at IS NULL"}
	var args []interface{}

	if p.Player != "" {
		where = append(where, "g.player = ?")
		args = append(args, p.Player)
	}

	query := fmt.Sprintf(`
		SELECT g.id, g.slot, g.version, g.supersedes, g.player, g.payload, g.signature, g.extra,
		       g.inventory_count, g.chronicle_count, g.created_at, g.deleted_at, g.load_count, g.last_loaded_at
		FROM saves g
		INNER JOIN (
			SELECT slot, MAX(version) AS max_ver
			FROM saves WHERE deleted_at IS NULL
			GROUP BY slot
		) latest ON g.slot = latest.slot AND g.version = latest.max_ver
		WHERE %s
		ORDER BY g.created_at DESC
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

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

// Rm soft-deletes or hard-deletes the latest version of a slot, or all of them.
func (s *SQLiteStore) Rm(ctx context.Context, p RmParams) error {
	if p.Hard && p.AllVersions {
		res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, p.Slot)
		if err != nil {
			return err
		}
		return requireAffected(res, p.Slot)
	}

	now := time.Now().UTC().Format(timeLayout)
	if p.AllVersions {
		res, err := s.db.ExecContext(ctx,
			`UPDATE saves SET deleted_at = ? WHERE slot = ? AND deleted_at IS NULL`,
			now, p.Slot)
		if err != nil {
			return err
		}
		return requireAffected(res, p.Slot)
	}

	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM saves WHERE slot = ? AND deleted_at IS NULL ORDER BY version DESC LIMIT 1`,
		p.Slot).Scan(&id)
	if err != nil {
		return fmt.Errorf("save slot %s: %w", p.Slot, model.ErrNotFound)
	}
	if p.Hard {
		_, err = s.db.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, id)
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE saves SET deleted_at = ? WHERE id = ?`, now, id)
	return err
}

func requireAffected(res sql.Result, slot string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("save slot %s: %w", slot, model.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSave(row scanner) (model.SavedGame, error) {
	var g model.SavedGame
	var supersedes, extra, deletedAt, lastLoaded sql.NullString
	var payload, createdAt string

	err := row.Scan(
		&g.ID, &g.Slot, &g.Version, &supersedes, &g.Player, &payload, &g.Signature, &extra,
		&g.InventoryCount, &g.ChronicleCount, &createdAt, &deletedAt, &g.LoadCount, &lastLoaded,
	)
	if err != nil {
		return g, err
	}

	g.ProtectedPayload = json.RawMessage(payload)
	g.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	if supersedes.Valid {
		g.Supersedes = supersedes.String
	}
	if extra.Valid {
		json.Unmarshal([]byte(extra.String), &g.Extra)
	}
	if deletedAt.Valid {
		t, _ := time.Parse(timeLayout, deletedAt.String)
		g.DeletedAt = &t
	}
	if lastLoaded.Valid {
		t, _ := time.Parse(timeLayout, lastLoaded.String)
		g.LastLoadedAt = &t
	}

	return g, nil
}
