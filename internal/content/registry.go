// Package content loads the read-only game content: seeds, payoff rules,
// chapters and encounters.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rcliao/stasis-hunters/internal/model"
)

// Content file names inside the data directory.
const (
	SeedsFile      = "seeds.json"
	PayoffsFile    = "payoffs.json"
	ChaptersFile   = "chapters.json"
	EncountersFile = "monsters.json"
)

// Registry is an immutable index of loaded content.
type Registry struct {
	seeds      map[string]model.Seed
	seedOrder  []string
	payoffs    []model.PayoffRule
	chapters   map[string]model.ChapterDef
	encounters map[string]model.Encounter
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report degraded content.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewRegistry builds a registry from in-memory content. Later duplicates win.
func NewRegistry(seeds []model.Seed, payoffs []model.PayoffRule, chapters []model.ChapterDef, encounters []model.Encounter) *Registry {
	r := &Registry{
		seeds:      make(map[string]model.Seed, len(seeds)),
		chapters:   make(map[string]model.ChapterDef, len(chapters)),
		encounters: make(map[string]model.Encounter, len(encounters)),
	}
	for _, s := range seeds {
		if s.ID == "" {
			continue
		}
		if _, ok := r.seeds[s.ID]; !ok {
			r.seedOrder = append(r.seedOrder, s.ID)
		}
		r.seeds[s.ID] = s
	}
	seen := map[string]int{}
	for _, p := range payoffs {
		if p.ID == "" {
			continue
		}
		if i, ok := seen[p.ID]; ok {
			r.payoffs[i] = p
			continue
		}
		seen[p.ID] = len(r.payoffs)
		r.payoffs = append(r.payoffs, p)
	}
	for _, c := range chapters {
		if c.ID != "" {
			r.chapters[c.ID] = c
		}
	}
	for _, e := range encounters {
		if e.ID != "" {
			r.encounters[e.ID] = e
		}
	}
	return r
}

// Load reads every content file from dir. A missing or corrupt file degrades to
// empty content with a warning; Load itself never fails.
func Load(dir string, opts ...Option) *Registry {
	l := &loader{logger: slog.Default()}
	for _, o := range opts {
		o(l)
	}

	var seeds []model.Seed
	l.read(dir, SeedsFile, func(b []byte) error {
		var err error
		seeds, err = decodeSeeds(b)
		return err
	})

	var payoffs []model.PayoffRule
	l.read(dir, PayoffsFile, func(b []byte) error {
		var err error
		payoffs, err = decodePayoffs(b)
		return err
	})

	var chapters []model.ChapterDef
	l.read(dir, ChaptersFile, func(b []byte) error {
		var err error
		chapters, err = decodeList[model.ChapterDef](b)
		return err
	})

	var encounters []model.Encounter
	l.read(dir, EncountersFile, func(b []byte) error {
		var err error
		encounters, err = decodeList[model.Encounter](b)
		return err
	})

	r := NewRegistry(seeds, payoffs, chapters, encounters)
	l.logger.Debug("content loaded",
		"dir", dir,
		"seeds", len(r.seeds),
		"payoffs", len(r.payoffs),
		"chapters", len(r.chapters),
		"encounters", len(r.encounters))
	return r
}

func (l *loader) read(dir, name string, decode func([]byte) error) {
	path := filepath.Join(dir, name)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("content file missing, using empty content", "path", path)
		return
	}
	if err != nil {
		l.logger.Warn("content file unreadable, using empty content", "path", path, "err", err)
		return
	}
	if err := decode(b); err != nil {
		l.logger.Warn("content file corrupt, using empty content", "path", path, "err", err)
	}
}

// decodeList decodes an array and returns nil on any error.
func decodeList[T any](b []byte) ([]T, error) {
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeSeeds accepts either an array of seeds or an object keyed by seed id.
func decodeSeeds(b []byte) ([]model.Seed, error) {
	if isArray(b) {
		var seeds []model.Seed
		if err := json.Unmarshal(b, &seeds); err != nil {
			return nil, err
		}
		return seeds, nil
	}
	var seeds []model.Seed
	err := decodeOrderedObject(b, func(key string, dec *json.Decoder) error {
		var s model.Seed
		if err := dec.Decode(&s); err != nil {
			return err
		}
		if s.ID == "" {
			s.ID = key
		}
		seeds = append(seeds, s)
		return nil
	})
	return seeds, err
}

// decodePayoffs accepts an array of rules or an object keyed by payoff id. Object
// key order is kept because it is the firing order.
func decodePayoffs(b []byte) ([]model.PayoffRule, error) {
	if isArray(b) {
		var rules []model.PayoffRule
		if err := json.Unmarshal(b, &rules); err != nil {
			return nil, err
		}
		return rules, nil
	}
	var rules []model.PayoffRule
	err := decodeOrderedObject(b, func(key string, dec *json.Decoder) error {
		var p model.PayoffRule
		if err := dec.Decode(&p); err != nil {
			return err
		}
		if p.ID == "" {
			p.ID = key
		}
		rules = append(rules, p)
		return nil
	})
	return rules, err
}

func isArray(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '['
}

func decodeOrderedObject(b []byte, each func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object or array, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := each(key, dec); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	_, err = dec.Token()
	return err
}

// Seed returns the seed with the given id.
func (r *Registry) Seed(id string) (model.Seed, bool) {
	s, ok := r.seeds[id]
	return s, ok
}

// Seeds returns all seeds in content order.
func (r *Registry) Seeds() []model.Seed {
	out := make([]model.Seed, 0, len(r.seedOrder))
	for _, id := range r.seedOrder {
		out = append(out, r.seeds[id])
	}
	return out
}

// Payoffs returns the payoff rules in content order.
func (r *Registry) Payoffs() []model.PayoffRule {
	out := make([]model.PayoffRule, len(r.payoffs))
	copy(out, r.payoffs)
	return out
}

// Chapter returns the chapter with the given id.
func (r *Registry) Chapter(id string) (model.ChapterDef, bool) {
	c, ok := r.chapters[id]
	return c, ok
}

// Encounter returns the encounter with the given id.
func (r *Registry) Encounter(id string) (model.Encounter, bool) {
	e, ok := r.encounters[id]
	return e, ok
}
