package cli

import (
	"context"
	"fmt"

	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "forget [seed-id...]",
		Short: "Pay a memory cost by discarding seeds",
		Long:  "Discard held seeds. Seeds in the Chronicle are reported as blocked and kept. Use --preview to list what can be discarded.",
		Run:   runForget,
	}

	cmd.Flags().Bool("preview", false, "List removable seeds without changing anything")

	RootCmd.AddCommand(cmd)
}

func runForget(cmd *cobra.Command, args []string) {
	preview, _ := cmd.Flags().GetBool("preview")
	if preview {
		inspect(cmd, func(sess *game.Session) any {
			return sess.PreviewRemovable()
		})
		return
	}
	if len(args) == 0 {
		exitErr("forget", fmt.Errorf("no seeds given"))
	}
	mutate(cmd, func(ctx context.Context, sess *game.Session) (any, error) {
		return sess.Forget(args), nil
	})
}
