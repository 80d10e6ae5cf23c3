package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rcliao/stasis-hunters/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List save slots",
		Args:  cobra.NoArgs,
		Run:   runSlots,
	}

	cmd.Flags().StringP("player", "p", "", "Filter by player name")
	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("names-only", false, "Only output slot names")

	RootCmd.AddCommand(cmd)
}

func runSlots(cmd *cobra.Command, args []string) {
	player, _ := cmd.Flags().GetString("player")
	limit, _ := cmd.Flags().GetInt("limit")
	namesOnly, _ := cmd.Flags().GetBool("names-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	saves, err := s.List(cmd.Context(), store.ListParams{
		Player: player,
		Limit:  limit,
	})
	if err != nil {
		exitErr("slots", err)
	}

	if namesOnly || formatFlag == "text" {
		for _, g := range saves {
			if namesOnly {
				fmt.Println(g.Slot)
				continue
			}
			fmt.Printf("%s\tv%d\t%s\tinventory=%d chronicle=%d\t%s\n",
				g.Slot, g.Version, g.Player, g.InventoryCount, g.ChronicleCount, humanize.Time(g.CreatedAt))
		}
		return
	}

	printJSON(saves)
}
