package cli

import (
	"context"

	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "affinity <npc>",
		Short: "Change an NPC's affinity",
		Args:  cobra.ExactArgs(1),
		Run:   runAffinity,
	}

	cmd.Flags().Int("by", 0, "Affinity delta (required)")
	cmd.MarkFlagRequired("by")

	RootCmd.AddCommand(cmd)
}

func runAffinity(cmd *cobra.Command, args []string) {
	delta, _ := cmd.Flags().GetInt("by")
	mutate(cmd, func(ctx context.Context, sess *game.Session) (any, error) {
		return sess.ChangeAffinity(args[0], delta), nil
	})
}
