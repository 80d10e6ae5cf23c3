package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show save database statistics",
		Args:  cobra.NoArgs,
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	if formatFlag == "text" {
		fmt.Printf("%s (%s)\n", stats.DBPath, humanize.IBytes(uint64(stats.DBSizeBytes)))
		fmt.Printf("saves: %d total, %d active\n", stats.TotalSaves, stats.ActiveSaves)
		for _, sl := range stats.Slots {
			fmt.Printf("  %s\t%d versions\t%d loads\n", sl.Slot, sl.Versions, sl.Loads)
		}
		return
	}

	printJSON(stats)
}
