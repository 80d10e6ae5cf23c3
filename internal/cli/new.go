package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game in the slot",
		Long:  "Start a new game. The fresh state is stored as the next version of the slot; older versions stay in history.",
		Args:  cobra.NoArgs,
		Run:   runNew,
	}

	cmd.Flags().StringP("name", "n", "", "Player name (default: $STASIS_PLAYER)")

	RootCmd.AddCommand(cmd)
}

func runNew(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = cfg.Player
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sess := newSession(name)
	g := commit(cmd, s, sess)
	printJSON(actionOutput{Slot: g.Slot, Version: g.Version, Result: sess.Status()})
}
