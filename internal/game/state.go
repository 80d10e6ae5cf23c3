package game

import (
	"github.com/rcliao/stasis-hunters/internal/model"
	"github.com/rcliao/stasis-hunters/internal/player"
	"github.com/rcliao/stasis-hunters/internal/save"
)

// Status is a read-only view of the session.
type Status struct {
	Player           string                 `json:"player"`
	Chapter          string                 `json:"chapter,omitempty"`
	Inventory        []model.InventoryItem  `json:"inventory"`
	Chronicle        []model.ChronicleEntry `json:"chronicle"`
	Relationships    map[string]int         `json:"relationships"`
	Romances         []string               `json:"romances"`
	RomanceLocked    bool                   `json:"romance_locked"`
	PayoffsTriggered []string               `json:"payoffs_triggered"`
	Resources        model.Resources        `json:"resources"`
}

// Status returns a snapshot of the session state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	aff, _ := s.player.Relationships.Snapshot()
	romances := s.player.Relationships.Romances()
	if romances == nil {
		romances = []string{}
	}
	return Status{
		Player:           s.player.Name,
		Chapter:          s.player.Chapter,
		Inventory:        items(s.player.InventorySeeds()),
		Chronicle:        s.player.ChronicleEntries(),
		Relationships:    aff,
		Romances:         romances,
		RomanceLocked:    s.player.Flags.RomanceLocked,
		PayoffsTriggered: s.player.Flags.PayoffsTriggered.Sorted(),
		Resources:        s.player.Resources,
	}
}

// Save signs the current state. extra is stored alongside, unsigned.
func (s *Session) Save(extra map[string]any) (*save.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signer.Save(s.payload(), extra)
}

func (s *Session) payload() save.Payload {
	p := s.player
	aff, rom := p.Relationships.Snapshot()
	snap := save.PlayerSnapshot{
		Name:          p.Name,
		Inventory:     items(p.InventorySeeds()),
		Relationships: aff,
		RomanceFlags:  rom,
		Chapter:       p.Chapter,
	}
	if triggered := p.Flags.PayoffsTriggered.Sorted(); len(triggered) > 0 || p.Flags.RomanceLocked {
		snap.Flags = &save.FlagsSnapshot{PayoffsTriggered: triggered, RomanceLocked: p.Flags.RomanceLocked}
	}
	if p.Resources != (model.Resources{}) {
		res := p.Resources
		snap.Resources = &res
	}
	return save.Payload{Player: snap, ChronicleEntries: p.ChronicleEntries()}
}

// Load verifies rec and replaces the session state with it. On any failure the
// current state is kept.
func (s *Session) Load(rec *save.Record) error {
	payload, err := s.signer.LoadAndVerify(rec)
	if err != nil {
		s.logger.Warn("save rejected", "error", err)
		return err
	}
	next := s.restore(payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = next
	s.logger.Info("save loaded", "player", next.Name,
		"inventory", len(payload.Player.Inventory), "chronicle", len(payload.ChronicleEntries))
	return nil
}

func (s *Session) restore(p *save.Payload) *player.Player {
	snap := p.Player
	next := player.New(snap.Name, s.logger)

	inv := make([]model.Seed, 0, len(snap.Inventory))
	for _, it := range snap.Inventory {
		seed, ok := s.content.Seed(it.ID)
		if !ok {
			seed = model.Seed{ID: it.ID}
		}
		seed.Desc = it.Desc
		inv = append(inv, seed)
	}
	next.Restore(inv, p.ChronicleEntries)

	next.Relationships.Restore(snap.Relationships, snap.RomanceFlags)

	if snap.Flags != nil {
		next.Flags.PayoffsTriggered = model.NewIDSet(snap.Flags.PayoffsTriggered...)
		next.Flags.RomanceLocked = snap.Flags.RomanceLocked
	}
	if snap.Resources != nil {
		next.Resources = *snap.Resources
	}
	next.Chapter = snap.Chapter
	return next
}

func items(seeds []model.Seed) []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, s.Item())
	}
	return out
}
