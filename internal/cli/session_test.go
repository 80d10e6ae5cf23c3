package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rcliao/stasis-hunters/internal/config"
	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/rcliao/stasis-hunters/internal/model"
	"github.com/rcliao/stasis-hunters/internal/store"
)

func setupSlot(t *testing.T) (*store.SQLiteStore, *model.SavedGame) {
	t.Helper()
	prev := cfg
	t.Cleanup(func() { cfg = prev })
	cfg = config.Config{
		DataDir: filepath.Join("..", "..", "data"),
		DBPath:  filepath.Join(t.TempDir(), "saves.db"),
		Slot:    "main",
		Player:  "Aki",
	}

	s, err := openStore()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	g, err := commitSession(context.Background(), s, newSession("Aki"), "", "new")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return s, g
}

func pickup(id string) action {
	return func(ctx context.Context, sess *game.Session) (any, error) {
		return sess.Pickup(id)
	}
}

func TestRunActionStoresNextVersion(t *testing.T) {
	s, first := setupSlot(t)
	ctx := context.Background()

	out, err := runAction(ctx, s, "pickup", pickup("S22"))
	if err != nil {
		t.Fatalf("run action: %v", err)
	}
	if out.Version != 2 {
		t.Errorf("expected version 2, got %d", out.Version)
	}

	latest, _ := s.Get(ctx, store.GetParams{Slot: "main"})
	if latest[0].Supersedes != first.ID {
		t.Errorf("expected v2 to supersede %s, got %s", first.ID, latest[0].Supersedes)
	}
	if latest[0].ChronicleCount != 1 {
		t.Errorf("expected chronicle 1, got %d", latest[0].ChronicleCount)
	}
}

func TestRunActionRejectsTamperedSlot(t *testing.T) {
	s, first := setupSlot(t)
	ctx := context.Background()

	forged := *first
	forged.ProtectedPayload = bytes.Replace(first.ProtectedPayload, []byte(`"Aki"`), []byte(`"Mallory"`), 1)
	if bytes.Equal(forged.ProtectedPayload, first.ProtectedPayload) {
		t.Fatal("test setup: payload unchanged")
	}
	if _, err := s.Put(ctx, store.PutParams{Slot: "main", Player: "Aki", Record: store.RecordOf(forged)}); err != nil {
		t.Fatalf("put forged: %v", err)
	}

	ran := false
	_, err := runAction(ctx, s, "pickup", func(ctx context.Context, sess *game.Session) (any, error) {
		ran = true
		return sess.Pickup("S22")
	})
	if !errors.Is(err, model.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
	if ran {
		t.Error("action ran on a tampered save")
	}

	hist, _ := s.Get(ctx, store.GetParams{Slot: "main", History: true})
	if len(hist) != 2 {
		t.Errorf("expected 2 versions after rejected action, got %d", len(hist))
	}
}

func TestRunActionKeepsSlotOnActionError(t *testing.T) {
	s, _ := setupSlot(t)
	ctx := context.Background()

	_, err := runAction(ctx, s, "pickup", pickup("S99"))
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	hist, _ := s.Get(ctx, store.GetParams{Slot: "main", History: true})
	if len(hist) != 1 {
		t.Errorf("expected 1 version, got %d", len(hist))
	}
}

func TestCommitRejectsStaleSession(t *testing.T) {
	s, _ := setupSlot(t)
	ctx := context.Background()

	stale, loaded, err := loadSlot(ctx, s)
	if err != nil {
		t.Fatalf("load slot: %v", err)
	}
	if _, err := runAction(ctx, s, "pickup", pickup("S22")); err != nil {
		t.Fatalf("run action: %v", err)
	}

	if _, err := stale.Pickup("S05"); err != nil {
		t.Fatalf("pickup: %v", err)
	}
	_, err = commitSession(ctx, s, stale, loaded.ID, "pickup")
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	latest, _ := s.Get(ctx, store.GetParams{Slot: "main"})
	if latest[0].Version != 2 || latest[0].ChronicleCount != 1 {
		t.Errorf("expected v2 with chronicle 1, got v%d with chronicle %d",
			latest[0].Version, latest[0].ChronicleCount)
	}
}
