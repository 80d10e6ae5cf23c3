package cli

import (
	"context"

	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:       "romance-lock <on|off>",
		Short:     "Set or clear the romance lock",
		Long:      "While the lock is on, no new romance flag is set. Existing flags still clear when affinity drops below the threshold.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		Run:       runRomanceLock,
	}

	RootCmd.AddCommand(cmd)
}

func runRomanceLock(cmd *cobra.Command, args []string) {
	locked := args[0] == "on"
	mutate(cmd, func(ctx context.Context, sess *game.Session) (any, error) {
		sess.SetRomanceLock(locked)
		return map[string]bool{"romance_locked": locked}, nil
	})
}
