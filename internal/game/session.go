// Package game routes player actions through the engines for one session.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/rcliao/stasis-hunters/internal/chapter"
	"github.com/rcliao/stasis-hunters/internal/content"
	"github.com/rcliao/stasis-hunters/internal/memorycost"
	"github.com/rcliao/stasis-hunters/internal/model"
	"github.com/rcliao/stasis-hunters/internal/payoff"
	"github.com/rcliao/stasis-hunters/internal/player"
	"github.com/rcliao/stasis-hunters/internal/relationship"
	"github.com/rcliao/stasis-hunters/internal/save"
)

// ErrNoResolver is returned when an encounter is requested without a resolver.
var ErrNoResolver = errors.New("no encounter resolver")

// Content is the read-only content a session needs.
type Content interface {
	Seed(id string) (model.Seed, bool)
	Payoffs() []model.PayoffRule
	Chapter(id string) (model.ChapterDef, bool)
}

// EncounterResolver plays an encounter and returns the seed ids it drops.
type EncounterResolver interface {
	Resolve(ctx context.Context, encounterID string) ([]string, error)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Engines log through it too.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSigner sets the signer used by Save and Load.
func WithSigner(signer save.Signer) Option {
	return func(s *Session) { s.signer = signer }
}

// WithResolver sets the encounter resolver.
func WithResolver(r EncounterResolver) Option {
	return func(s *Session) { s.resolver = r }
}

// Session owns one player's state. Every method holds the session lock for the
// whole action, so multi-step updates are never observed half applied.
type Session struct {
	mu       sync.Mutex
	content  Content
	player   *player.Player
	payoffs  *payoff.Engine
	chapters *chapter.Manager
	signer   save.Signer
	resolver EncounterResolver
	logger   *slog.Logger
}

// NewSession starts a fresh game for name. A *content.Registry also serves as the
// default encounter resolver.
func NewSession(c Content, name string, opts ...Option) *Session {
	s := &Session{
		content: c,
		signer:  save.NewSigner(nil),
		logger:  slog.Default(),
	}
	if reg, ok := c.(*content.Registry); ok {
		s.resolver = content.StaticResolver{Registry: reg}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.payoffs = payoff.NewEngine(c.Payoffs(), s.logger)
	s.chapters = chapter.NewManager(c)
	s.player = player.New(name, s.logger)
	return s
}

// NewGame discards the current state and starts over for name.
func (s *Session) NewGame(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = player.New(name, s.logger)
	s.logger.Info("new game", "player", s.player.Name)
}

// PickupOutcome is the result of picking up one seed.
type PickupOutcome struct {
	player.PickupResult
	Triggered []model.PayoffRule `json:"triggered,omitempty"`
}

// Pickup collects a content seed and runs the payoff check.
func (s *Session) Pickup(seedID string) (PickupOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed, ok := s.content.Seed(seedID)
	if !ok {
		return PickupOutcome{}, fmt.Errorf("seed %q: %w", seedID, model.ErrNotFound)
	}
	out := PickupOutcome{PickupResult: s.player.Pickup(seed)}
	out.Triggered = s.checkPayoffs()
	return out, nil
}

// EncounterOutcome is the result of resolving one encounter.
type EncounterOutcome struct {
	Encounter string                `json:"encounter"`
	Pickups   []player.PickupResult `json:"pickups"`
	Skipped   []string              `json:"skipped,omitempty"`
	Triggered []model.PayoffRule    `json:"triggered,omitempty"`
}

// ResolveEncounter asks the resolver for drops and feeds them through pickup.
// The resolver runs before the lock is taken.
func (s *Session) ResolveEncounter(ctx context.Context, encounterID string) (EncounterOutcome, error) {
	drops, err := s.resolve(ctx, encounterID)
	if err != nil {
		return EncounterOutcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.applyDrops(encounterID, drops)
	out.Triggered = s.checkPayoffs()
	return out, nil
}

func (s *Session) resolve(ctx context.Context, encounterID string) ([]string, error) {
	if s.resolver == nil {
		return nil, ErrNoResolver
	}
	drops, err := s.resolver.Resolve(ctx, encounterID)
	if err != nil {
		return nil, fmt.Errorf("resolve encounter: %w", err)
	}
	return drops, nil
}

func (s *Session) applyDrops(encounterID string, drops []string) EncounterOutcome {
	out := EncounterOutcome{Encounter: encounterID, Pickups: []player.PickupResult{}}
	for _, id := range drops {
		seed, ok := s.content.Seed(id)
		if !ok {
			s.logger.Warn("unknown drop skipped", "encounter", encounterID, "seed", id)
			out.Skipped = append(out.Skipped, id)
			continue
		}
		out.Pickups = append(out.Pickups, s.player.Pickup(seed))
	}
	return out
}

// Effects are the consequences of a scene choice.
type Effects struct {
	AddSeed      string         `json:"add_seed,omitempty"`
	Relationship map[string]int `json:"relationship,omitempty"`
	Encounter    string         `json:"encounter,omitempty"`
}

// EffectsOutcome reports each applied part of an Effects value.
type EffectsOutcome struct {
	Pickup        *player.PickupResult  `json:"pickup,omitempty"`
	Relationships []relationship.Change `json:"relationships,omitempty"`
	Encounter     *EncounterOutcome     `json:"encounter,omitempty"`
	Triggered     []model.PayoffRule    `json:"triggered,omitempty"`
}

// ApplyEffects applies a choice in order: pickup, relationship changes,
// encounter drops, then one payoff check. An unknown seed or a failed encounter
// aborts before anything changes.
func (s *Session) ApplyEffects(ctx context.Context, e Effects) (EffectsOutcome, error) {
	var drops []string
	if e.Encounter != "" {
		var err error
		if drops, err = s.resolve(ctx, e.Encounter); err != nil {
			return EffectsOutcome{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out EffectsOutcome
	var seed model.Seed
	if e.AddSeed != "" {
		var ok bool
		if seed, ok = s.content.Seed(e.AddSeed); !ok {
			return EffectsOutcome{}, fmt.Errorf("seed %q: %w", e.AddSeed, model.ErrNotFound)
		}
		res := s.player.Pickup(seed)
		out.Pickup = &res
	}
	for _, npc := range sortedKeys(e.Relationship) {
		out.Relationships = append(out.Relationships, s.changeAffinity(npc, e.Relationship[npc]))
	}
	if e.Encounter != "" {
		enc := s.applyDrops(e.Encounter, drops)
		out.Encounter = &enc
	}
	out.Triggered = s.checkPayoffs()
	return out, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChangeAffinity adjusts an NPC's affinity, honouring the romance lock flag.
func (s *Session) ChangeAffinity(npc string, delta int) relationship.Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changeAffinity(npc, delta)
}

func (s *Session) changeAffinity(npc string, delta int) relationship.Change {
	return s.player.Relationships.ChangeAffinity(npc, delta, s.player.Flags.RomanceLocked)
}

// SetRomanceLock sets the flag that stops new romance flags from being set.
func (s *Session) SetRomanceLock(locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Flags.RomanceLocked = locked
	s.logger.Info("romance lock changed", "locked", locked)
}

// PreviewRemovable lists the held seeds a memory cost may take.
func (s *Session) PreviewRemovable() []model.Seed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memorycost.PreviewRemovable(s.player.InventorySeeds(), s.player.ChronicleIDs())
}

// Forget pays a memory cost with the requested seeds.
func (s *Session) Forget(ids []string) memorycost.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.Forget(ids)
}

// EnterChapter moves to chapter id and updates resources. Unknown chapters leave
// the session unchanged.
func (s *Session) EnterChapter(id string) (model.Resources, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.chapters.Enter(id, s.player.Resources)
	if err != nil {
		return s.player.Resources, err
	}
	s.player.Resources = next
	s.player.Chapter = id
	s.logger.Info("chapter entered", "chapter", id,
		"chronosense", next.ChronosenseUsesRemaining, "tech_pulse", next.TechPulse)
	return next, nil
}

// UseChronosense spends chronosense uses and reports whether it succeeded.
func (s *Session) UseChronosense(amount int) (bool, model.Resources) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := chapter.UseChronosense(&s.player.Resources, amount)
	return ok, s.player.Resources
}

// UseTechPulse spends Tech Pulse charge and reports whether it succeeded.
func (s *Session) UseTechPulse(amount int) (bool, model.Resources) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := chapter.UseTechPulse(&s.player.Resources, amount)
	return ok, s.player.Resources
}

// CheckPayoffs fires any payoff the Chronicle now satisfies.
func (s *Session) CheckPayoffs() []model.PayoffRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkPayoffs()
}

func (s *Session) checkPayoffs() []model.PayoffRule {
	return s.payoffs.CheckAndTrigger(s.player.ChronicleIDs(), s.player.Flags.PayoffsTriggered)
}

// LockedPayoffs lists the payoffs the Chronicle does not satisfy yet.
func (s *Session) LockedPayoffs() []payoff.Locked {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payoffs.ListLocked(s.player.ChronicleIDs())
}
