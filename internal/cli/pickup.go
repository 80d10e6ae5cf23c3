package cli

import (
	"context"

	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "pickup <seed-id>",
		Short: "Pick up a seed",
		Long:  "Pick up a seed from content. Essential and mirrored seeds are copied into the Chronicle, then payoffs are checked.",
		Args:  cobra.ExactArgs(1),
		Run:   runPickup,
	}

	RootCmd.AddCommand(cmd)
}

func runPickup(cmd *cobra.Command, args []string) {
	mutate(cmd, func(ctx context.Context, sess *game.Session) (any, error) {
		return sess.Pickup(args[0])
	})
}
