package cli

import (
	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "payoffs",
		Short: "List triggered payoffs",
		Args:  cobra.NoArgs,
		Run:   runPayoffs,
	}

	cmd.Flags().Bool("locked", false, "List locked payoffs and their missing seeds instead")

	RootCmd.AddCommand(cmd)
}

func runPayoffs(cmd *cobra.Command, args []string) {
	locked, _ := cmd.Flags().GetBool("locked")
	inspect(cmd, func(sess *game.Session) any {
		if locked {
			return sess.LockedPayoffs()
		}
		return map[string][]string{"triggered": sess.Status().PayoffsTriggered}
	})
}
