package cli

import (
	"context"
	"fmt"

	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/rcliao/stasis-hunters/internal/model"
	"github.com/spf13/cobra"
)

type useResult struct {
	OK        bool            `json:"ok"`
	Resources model.Resources `json:"resources"`
}

func init() {
	chronosense := &cobra.Command{
		Use:   "chronosense",
		Short: "Spend Chronosense uses",
		Args:  cobra.NoArgs,
		Run:   runChronosense,
	}
	chronosense.Flags().IntP("amount", "a", 1, "Uses to spend")

	techpulse := &cobra.Command{
		Use:   "techpulse",
		Short: "Spend Tech Pulse charge",
		Args:  cobra.NoArgs,
		Run:   runTechPulse,
	}
	techpulse.Flags().IntP("amount", "a", 1, "Charge to spend")

	RootCmd.AddCommand(chronosense, techpulse)
}

func runChronosense(cmd *cobra.Command, args []string) {
	spend(cmd, (*game.Session).UseChronosense)
}

func runTechPulse(cmd *cobra.Command, args []string) {
	spend(cmd, (*game.Session).UseTechPulse)
}

func spend(cmd *cobra.Command, use func(*game.Session, int) (bool, model.Resources)) {
	amount, _ := cmd.Flags().GetInt("amount")
	mutate(cmd, func(ctx context.Context, sess *game.Session) (any, error) {
		ok, res := use(sess, amount)
		if !ok {
			return nil, fmt.Errorf("not enough %s remaining", cmd.Name())
		}
		return useResult{OK: ok, Resources: res}, nil
	})
}
