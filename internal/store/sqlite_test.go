package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcliao/stasis-hunters/internal/model"
	"github.com/rcliao/stasis-hunters/internal/save"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(t *testing.T, name string, seeds ...string) *save.Record {
	t.Helper()
	p := save.Payload{Player: save.PlayerSnapshot{Name: name, Relationships: map[string]int{}}}
	for _, id := range seeds {
		p.Player.Inventory = append(p.Player.Inventory, model.InventoryItem{ID: id})
	}
	rec, err := save.NewSigner(nil).Save(p, map[string]any{"source": "test"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return rec
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec := testRecord(t, "Aki", "S05")
	g, err := s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: rec, InventoryCount: 1})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if g.Version != 1 {
		t.Errorf("expected version 1, got %d", g.Version)
	}
	if g.ID == "" {
		t.Error("expected non-empty ID")
	}

	got, err := s.Get(ctx, GetParams{Slot: "main"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Signature != rec.Signature {
		t.Errorf("expected signature %q, got %q", rec.Signature, got[0].Signature)
	}
	if got[0].Extra["source"] != "test" {
		t.Errorf("expected extra preserved, got %v", got[0].Extra)
	}

	// Stored bytes still verify.
	if _, err := save.NewSigner(nil).LoadAndVerify(RecordOf(got[0])); err != nil {
		t.Errorf("verify stored record: %v", err)
	}
}

func TestVersioning(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki")})
	g2, _ := s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki", "S05")})

	if g2.Version != 2 {
		t.Errorf("expected version 2, got %d", g2.Version)
	}
	if g2.Supersedes == "" {
		t.Error("expected supersedes to be set")
	}

	hist, _ := s.Get(ctx, GetParams{Slot: "main", History: true})
	if len(hist) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(hist))
	}
	if hist[0].Version != 2 {
		t.Errorf("expected newest first, got version %d", hist[0].Version)
	}

	v1, _ := s.Get(ctx, GetParams{Slot: "main", Version: 1})
	if v1[0].InventoryCount != 0 {
		t.Errorf("expected v1 with empty inventory, got %d", v1[0].InventoryCount)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{Slot: "a", Player: "Aki", Record: testRecord(t, "Aki")})
	s.Put(ctx, PutParams{Slot: "a", Player: "Aki", Record: testRecord(t, "Aki", "S05")})
	s.Put(ctx, PutParams{Slot: "b", Player: "Aki", Record: testRecord(t, "Aki")})
	s.Put(ctx, PutParams{Slot: "c", Player: "Mei", Record: testRecord(t, "Mei")})

	all, _ := s.List(ctx, ListParams{})
	if len(all) != 3 {
		t.Errorf("expected 3 slots, got %d", len(all))
	}
	for _, g := range all {
		if g.Slot == "a" && g.Version != 2 {
			t.Errorf("expected latest version of slot a, got %d", g.Version)
		}
	}

	aki, _ := s.List(ctx, ListParams{Player: "Aki"})
	if len(aki) != 2 {
		t.Errorf("expected 2 slots for Aki, got %d", len(aki))
	}
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki")})
	if err := s.Rm(ctx, RmParams{Slot: "main"}); err != nil {
		t.Fatalf("rm: %v", err)
	}

	_, err := s.Get(ctx, GetParams{Slot: "main"})
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound after soft delete, got %v", err)
	}

	// A new save after soft delete does not reuse the version number.
	g, _ := s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki")})
	if g.Version != 2 {
		t.Errorf("expected version 2, got %d", g.Version)
	}
}

func TestHardDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki")})
	s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki", "S05")})
	if err := s.Rm(ctx, RmParams{Slot: "main", Hard: true}); err != nil {
		t.Fatalf("rm hard: %v", err)
	}

	got, err := s.Get(ctx, GetParams{Slot: "main"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got[0].Version != 1 {
		t.Errorf("expected version 1 to remain latest, got %d", got[0].Version)
	}
}

func TestDeleteAllVersions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki")})
	s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki")})

	s.Rm(ctx, RmParams{Slot: "main", AllVersions: true})

	_, err := s.Get(ctx, GetParams{Slot: "main", History: true})
	if err == nil {
		t.Error("expected error after deleting all versions")
	}

	if err := s.Rm(ctx, RmParams{Slot: "main", AllVersions: true, Hard: true}); err != nil {
		t.Fatalf("hard delete soft-deleted rows: %v", err)
	}
	if err := s.Rm(ctx, RmParams{Slot: "main", AllVersions: true, Hard: true}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty slot, got %v", err)
	}
}

func TestRmMissingSlot(t *testing.T) {
	s := newTestStore(t)
	if err := s.Rm(context.Background(), RmParams{Slot: "ghost"}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkLoaded(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	g, _ := s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki")})
	if err := s.MarkLoaded(ctx, g.ID); err != nil {
		t.Fatalf("mark loaded: %v", err)
	}
	got, _ := s.Get(ctx, GetParams{Slot: "main"})
	if got[0].LoadCount != 1 || got[0].LastLoadedAt == nil {
		t.Errorf("expected load tracked, got count=%d at=%v", got[0].LoadCount, got[0].LastLoadedAt)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)

	src.Put(ctx, PutParams{Slot: "a", Player: "Aki", Record: testRecord(t, "Aki")})
	src.Put(ctx, PutParams{Slot: "a", Player: "Aki", Record: testRecord(t, "Aki", "S05")})
	src.Put(ctx, PutParams{Slot: "b", Player: "Mei", Record: testRecord(t, "Mei")})

	exported, err := src.ExportAll(ctx, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exported) != 3 {
		t.Fatalf("expected 3 saves exported, got %d", len(exported))
	}

	b, _ := json.Marshal(exported)
	var decoded []model.SavedGame
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("decode export: %v", err)
	}

	dst := newTestStore(t)
	n, err := dst.Import(ctx, decoded)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 imported, got %d", n)
	}
	latest, _ := dst.Get(ctx, GetParams{Slot: "a"})
	if latest[0].Version != 2 {
		t.Errorf("expected version 2 after import, got %d", latest[0].Version)
	}
	if _, err := save.NewSigner(nil).LoadAndVerify(RecordOf(latest[0])); err != nil {
		t.Errorf("imported record no longer verifies: %v", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "stats.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer s.Close()

	s.Put(ctx, PutParams{Slot: "a", Player: "Aki", Record: testRecord(t, "Aki")})
	s.Put(ctx, PutParams{Slot: "a", Player: "Aki", Record: testRecord(t, "Aki")})
	s.Put(ctx, PutParams{Slot: "b", Player: "Aki", Record: testRecord(t, "Aki")})
	s.Rm(ctx, RmParams{Slot: "b"})

	st, err := s.Stats(ctx, dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalSaves != 3 || st.ActiveSaves != 2 {
		t.Errorf("expected 3 total 2 active, got %d/%d", st.TotalSaves, st.ActiveSaves)
	}
	if len(st.Slots) != 1 || st.Slots[0].Slot != "a" || st.Slots[0].Versions != 2 {
		t.Errorf("unexpected slot stats: %+v", st.Slots)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestPutRequiresSlotAndRecord(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Put(ctx, PutParams{Record: testRecord(t, "Aki")}); err == nil {
		t.Error("expected error without slot")
	}
	if _, err := s.Put(ctx, PutParams{Slot: "main"}); err == nil {
		t.Error("expected error without record")
	}
}

func TestPutRejectsStaleWrite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "shared.db")
	a, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store a: %v", err)
	}
	defer a.Close()
	b, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store b: %v", err)
	}
	defer b.Close()

	v1, _ := a.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki")})

	// Both writers load v1.
	seenA, _ := a.Get(ctx, GetParams{Slot: "main"})
	seenB, _ := b.Get(ctx, GetParams{Slot: "main"})
	if seenA[0].ID != v1.ID || seenB[0].ID != v1.ID {
		t.Fatalf("expected both to load v1")
	}

	v2, err := a.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki", "S22"), ChronicleCount: 1, ExpectPrevID: seenA[0].ID})
	if err != nil {
		t.Fatalf("first writer: %v", err)
	}

	_, err = b.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki", "S05"), ExpectPrevID: seenB[0].ID})
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("expected ErrConflict for stale write, got %v", err)
	}

	latest, _ := b.Get(ctx, GetParams{Slot: "main"})
	if latest[0].ID != v2.ID || latest[0].ChronicleCount != 1 {
		t.Errorf("expected v2 to stay latest, got v%d chronicle=%d", latest[0].Version, latest[0].ChronicleCount)
	}
}

func TestPutExpectPrevOnEmptySlot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	g, _ := s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki")})
	s.Rm(ctx, RmParams{Slot: "main"})

	_, err := s.Put(ctx, PutParams{Slot: "main", Player: "Aki", Record: testRecord(t, "Aki"), ExpectPrevID: g.ID})
	if !errors.Is(err, model.ErrConflict) {
		t.Errorf("expected ErrConflict after the loaded save was deleted, got %v", err)
	}
}
