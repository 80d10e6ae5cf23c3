package content

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcliao/stasis-hunters/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestLoadAllFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SeedsFile, `[
		{"id": "S05", "desc": "Paper lantern"},
		{"id": "S22", "desc": "Clock shard", "essential_for_payoff": true},
		{"id": "S30", "desc": "Echo", "mirror_on_pickup": true}
	]`)
	writeFile(t, dir, PayoffsFile, `{
		"P2": {"title": "Second", "required_seeds": ["S30"]},
		"P1": {"title": "First", "required_seeds": ["S22", "S30"]}
	}`)
	writeFile(t, dir, ChaptersFile, `[{"id": "ch1", "chronosense_uses": 3, "tech_pulse_max": 4}]`)
	writeFile(t, dir, EncountersFile, `[{"id": "wisp", "name": "Wisp", "drops": ["S30"]}]`)

	var buf bytes.Buffer
	r := Load(dir, WithLogger(quietLogger(&buf)))

	s, ok := r.Seed("S22")
	if !ok || !s.EssentialForPayoff {
		t.Fatalf("expected essential S22, got %+v (ok=%v)", s, ok)
	}
	if len(r.Seeds()) != 3 || r.Seeds()[0].ID != "S05" {
		t.Errorf("expected seeds in content order, got %+v", r.Seeds())
	}

	payoffs := r.Payoffs()
	if len(payoffs) != 2 {
		t.Fatalf("expected 2 payoffs, got %d", len(payoffs))
	}
	if payoffs[0].ID != "P2" || payoffs[1].ID != "P1" {
		t.Errorf("expected object key order P2,P1, got %s,%s", payoffs[0].ID, payoffs[1].ID)
	}

	ch, ok := r.Chapter("ch1")
	if !ok || ch.ChronosenseUses == nil || *ch.ChronosenseUses != 3 {
		t.Errorf("expected chapter ch1 with 3 uses, got %+v", ch)
	}
	if ch.TechPulseRecharge != nil {
		t.Errorf("expected unset recharge, got %d", *ch.TechPulseRecharge)
	}

	if _, ok := r.Encounter("wisp"); !ok {
		t.Error("expected encounter wisp")
	}
	if strings.Contains(buf.String(), "WARN") {
		t.Errorf("expected no warnings, got %s", buf.String())
	}
}

func TestLoadSeedsObjectForm(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SeedsFile, `{"S01": {"desc": "Keyed by id"}}`)

	var buf bytes.Buffer
	r := Load(dir, WithLogger(quietLogger(&buf)))
	s, ok := r.Seed("S01")
	if !ok || s.Desc != "Keyed by id" {
		t.Errorf("expected S01 from object form, got %+v", s)
	}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SeedsFile, `[{"id": "S01"`)

	var buf bytes.Buffer
	r := Load(dir, WithLogger(quietLogger(&buf)))

	if len(r.Seeds()) != 0 || len(r.Payoffs()) != 0 {
		t.Errorf("expected empty registry, got %d seeds %d payoffs", len(r.Seeds()), len(r.Payoffs()))
	}
	out := buf.String()
	if !strings.Contains(out, "content file corrupt") {
		t.Errorf("expected corrupt warning, got %s", out)
	}
	if !strings.Contains(out, "content file missing") {
		t.Errorf("expected missing warning, got %s", out)
	}
}

func TestNewRegistryDuplicates(t *testing.T) {
	r := NewRegistry(
		[]model.Seed{{ID: "S1", Desc: "old"}, {ID: "S1", Desc: "new"}, {ID: ""}},
		[]model.PayoffRule{{ID: "P1", Title: "a"}, {ID: "P2"}, {ID: "P1", Title: "b"}},
		nil, nil,
	)
	if s, _ := r.Seed("S1"); s.Desc != "new" {
		t.Errorf("expected later duplicate to win, got %q", s.Desc)
	}
	if len(r.Seeds()) != 1 {
		t.Errorf("expected 1 seed, got %d", len(r.Seeds()))
	}
	p := r.Payoffs()
	if len(p) != 2 || p[0].Title != "b" {
		t.Errorf("expected P1 replaced in place, got %+v", p)
	}
}

func TestStaticResolver(t *testing.T) {
	r := NewRegistry(nil, nil, nil, []model.Encounter{{ID: "boss", Drops: []string{"S40", "S41"}}})
	res := StaticResolver{Registry: r}

	drops, err := res.Resolve(context.Background(), "boss")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(drops) != 2 || drops[0] != "S40" {
		t.Errorf("expected [S40 S41], got %v", drops)
	}

	_, err = res.Resolve(context.Background(), "ghost")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadBundledContent(t *testing.T) {
	var buf bytes.Buffer
	r := Load(filepath.Join("..", "..", "data"), WithLogger(quietLogger(&buf)))

	if buf.Len() != 0 {
		t.Errorf("expected bundled content to load cleanly, got %s", buf.String())
	}
	if s, ok := r.Seed("S22"); !ok || !s.Mirrors() {
		t.Errorf("expected essential S22, got %+v %v", s, ok)
	}
	if p := r.Payoffs(); len(p) != 2 || p[0].ID != "P1" {
		t.Errorf("expected P1 first, got %+v", p)
	}
	if _, ok := r.Chapter("ch2"); !ok {
		t.Error("expected chapter ch2")
	}
	if e, ok := r.Encounter("clock_wraith"); !ok || len(e.Drops) != 2 {
		t.Errorf("expected clock_wraith drops, got %+v", e)
	}
}

func TestLoadCorruptChaptersKeepsNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ChaptersFile, `[{"id": "ch1"}, {"id": "ch2", "chronosense_uses": "two"}]`)

	var buf bytes.Buffer
	r := Load(dir, WithLogger(quietLogger(&buf)))
	if _, ok := r.Chapter("ch1"); ok {
		t.Error("expected corrupt chapters file to load no chapters")
	}
}
