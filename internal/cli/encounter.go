package cli

import (
	"context"

	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "encounter <encounter-id>",
		Short: "Resolve an encounter and collect its drops",
		Args:  cobra.ExactArgs(1),
		Run:   runEncounter,
	}

	RootCmd.AddCommand(cmd)
}

func runEncounter(cmd *cobra.Command, args []string) {
	mutate(cmd, func(ctx context.Context, sess *game.Session) (any, error) {
		return sess.ResolveEncounter(ctx, args[0])
	})
}
