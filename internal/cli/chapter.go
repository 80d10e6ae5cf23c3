package cli

import (
	"context"

	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chapter <chapter-id>",
		Short: "Enter a chapter",
		Long:  "Enter a chapter. Chronosense uses are reset and Tech Pulse is recharged up to the chapter maximum.",
		Args:  cobra.ExactArgs(1),
		Run:   runChapter,
	}

	RootCmd.AddCommand(cmd)
}

func runChapter(cmd *cobra.Command, args []string) {
	mutate(cmd, func(ctx context.Context, sess *game.Session) (any, error) {
		return sess.EnterChapter(args[0])
	})
}
