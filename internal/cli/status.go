package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the player state of the slot",
		Args:  cobra.NoArgs,
		Run:   runStatus,
	}

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	if formatFlag != "text" {
		inspect(cmd, func(sess *game.Session) any { return sess.Status() })
		return
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	fmt.Print(formatStatus(openSlot(cmd, s).Status()))
}

func formatStatus(st game.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Player: %s\n", st.Player)
	if st.Chapter != "" {
		fmt.Fprintf(&b, "Chapter: %s\n", st.Chapter)
	}
	fmt.Fprintf(&b, "Chronosense: %d  Tech Pulse: %d/%d\n",
		st.Resources.ChronosenseUsesRemaining, st.Resources.TechPulse, st.Resources.TechPulseMax)

	fmt.Fprintf(&b, "Inventory (%d):\n", len(st.Inventory))
	for _, it := range st.Inventory {
		fmt.Fprintf(&b, "  %s  %s\n", it.ID, it.Desc)
	}
	fmt.Fprintf(&b, "Chronicle (%d):\n", len(st.Chronicle))
	for _, e := range st.Chronicle {
		fmt.Fprintf(&b, "  %s  %s\n", e.ID, e.Desc)
	}

	npcs := make([]string, 0, len(st.Relationships))
	for n := range st.Relationships {
		npcs = append(npcs, n)
	}
	sort.Strings(npcs)
	romance := map[string]bool{}
	for _, n := range st.Romances {
		romance[n] = true
	}
	b.WriteString("Relationships:\n")
	for _, n := range npcs {
		mark := ""
		if romance[n] {
			mark = "  [romance]"
		}
		fmt.Fprintf(&b, "  %s: %d%s\n", n, st.Relationships[n], mark)
	}
	if st.RomanceLocked {
		b.WriteString("Romance locked\n")
	}
	if len(st.PayoffsTriggered) > 0 {
		fmt.Fprintf(&b, "Payoffs: %s\n", strings.Join(st.PayoffsTriggered, ", "))
	}
	return b.String()
}
