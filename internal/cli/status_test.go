package cli

import (
	"strings"
	"testing"

	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/rcliao/stasis-hunters/internal/model"
)

func TestFormatStatus(t *testing.T) {
	out := formatStatus(game.Status{
		Player:           "Aki",
		Chapter:          "ch2",
		Inventory:        []model.InventoryItem{{ID: "S05", Desc: "Paper lantern"}},
		Chronicle:        []model.ChronicleEntry{{ID: "S22", Desc: "Clock shard"}},
		Relationships:    map[string]int{"Ren": -1, "Hana": 5},
		Romances:         []string{"Hana"},
		RomanceLocked:    true,
		PayoffsTriggered: []string{"P1"},
		Resources:        model.Resources{ChronosenseUsesRemaining: 2, TechPulse: 1, TechPulseMax: 3},
	})

	for _, want := range []string{
		"Player: Aki\n",
		"Chapter: ch2\n",
		"Tech Pulse: 1/3",
		"  S05  Paper lantern\n",
		"Chronicle (1):\n  S22  Clock shard\n",
		"  Hana: 5  [romance]\n  Ren: -1\n",
		"Romance locked\n",
		"Payoffs: P1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"new", "pickup", "encounter", "choose", "affinity", "romance-lock", "forget",
		"chapter", "chronosense", "techpulse", "payoffs", "status", "history", "slots",
		"rm", "stats", "export", "import", "verify", "save-file", "load-file",
	}
	for _, name := range want {
		cmd, _, err := RootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected command %q registered, got %v", name, err)
		}
	}
}
