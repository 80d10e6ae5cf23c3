package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/stasis-hunters/internal/content"
	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/rcliao/stasis-hunters/internal/model"
	"github.com/rcliao/stasis-hunters/internal/save"
	"github.com/rcliao/stasis-hunters/internal/store"
	"github.com/spf13/cobra"
)

// actionOutput wraps the result of a command that stored a new slot version.
type actionOutput struct {
	Slot    string `json:"slot"`
	Version int    `json:"version"`
	Result  any    `json:"result"`
}

type action func(ctx context.Context, sess *game.Session) (any, error)

func newSession(name string) *game.Session {
	reg := content.Load(cfg.DataDir, content.WithLogger(logger))
	return game.NewSession(reg, name,
		game.WithLogger(logger),
		game.WithSigner(save.NewSigner(cfg.Key())),
	)
}

// loadSlot loads and verifies the latest save of the configured slot. A save
// that fails verification is never used.
func loadSlot(ctx context.Context, s *store.SQLiteStore) (*game.Session, *model.SavedGame, error) {
	saves, err := s.Get(ctx, store.GetParams{Slot: cfg.Slot})
	if err != nil {
		return nil, nil, fmt.Errorf("load slot: %w", err)
	}
	g := saves[0]
	sess := newSession(g.Player)
	if err := sess.Load(store.RecordOf(g)); err != nil {
		return nil, nil, fmt.Errorf("verify save: %w", err)
	}
	if err := s.MarkLoaded(ctx, g.ID); err != nil {
		logger.Warn("mark loaded", "slot", g.Slot, "error", err)
	}
	return sess, &g, nil
}

// commitSession signs the session state and stores it as the next slot version.
// prevID is the save the state was loaded from; empty starts the slot over.
func commitSession(ctx context.Context, s *store.SQLiteStore, sess *game.Session, prevID, command string) (*model.SavedGame, error) {
	rec, err := sess.Save(map[string]any{
		"saved_at": time.Now().UTC().Format(time.RFC3339),
		"command":  command,
	})
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	st := sess.Status()
	g, err := s.Put(ctx, store.PutParams{
		Slot:           cfg.Slot,
		Player:         st.Player,
		Record:         rec,
		InventoryCount: len(st.Inventory),
		ChronicleCount: len(st.Chronicle),
		ExpectPrevID:   prevID,
	})
	if err != nil {
		return nil, fmt.Errorf("store save: %w", err)
	}
	return g, nil
}

// runAction loads the slot, applies one action and stores the result. Nothing is
// stored when loading, verifying or the action fails.
func runAction(ctx context.Context, s *store.SQLiteStore, command string, act action) (*actionOutput, error) {
	sess, loaded, err := loadSlot(ctx, s)
	if err != nil {
		return nil, err
	}
	out, err := act(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", command, err)
	}
	g, err := commitSession(ctx, s, sess, loaded.ID, command)
	if err != nil {
		return nil, err
	}
	return &actionOutput{Slot: g.Slot, Version: g.Version, Result: out}, nil
}

// commit stores a session that was not loaded from the slot.
func commit(cmd *cobra.Command, s *store.SQLiteStore, sess *game.Session) *model.SavedGame {
	g, err := commitSession(cmd.Context(), s, sess, "", cmd.Name())
	if err != nil {
		exitErr(cmd.Name(), err)
	}
	return g
}

// mutate applies one action to the slot and stores the result.
func mutate(cmd *cobra.Command, act action) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	out, err := runAction(cmd.Context(), s, cmd.Name(), act)
	if err != nil {
		exitErr(cmd.Name(), err)
	}
	printJSON(out)
}

// inspect runs a read-only query against the slot.
func inspect(cmd *cobra.Command, query func(sess *game.Session) any) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	printJSON(query(openSlot(cmd, s)))
}

func openSlot(cmd *cobra.Command, s *store.SQLiteStore) *game.Session {
	sess, _, err := loadSlot(cmd.Context(), s)
	if err != nil {
		exitErr(cmd.Name(), err)
	}
	return sess
}
