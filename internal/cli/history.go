package cli

import (
	"github.com/rcliao/stasis-hunters/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored versions of the slot",
		Args:  cobra.NoArgs,
		Run:   runHistory,
	}

	cmd.Flags().IntP("version", "v", 0, "Specific version number")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	version, _ := cmd.Flags().GetInt("version")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	saves, err := s.Get(cmd.Context(), store.GetParams{
		Slot:    cfg.Slot,
		History: version == 0,
		Version: version,
	})
	if err != nil {
		exitErr("history", err)
	}

	if version > 0 {
		printJSON(saves[0])
		return
	}
	printJSON(saves)
}
