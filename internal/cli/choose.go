package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rcliao/stasis-hunters/internal/game"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "choose",
		Short: "Apply the effects of a scene choice",
		Long: "Apply a choice: seed pickup, relationship changes, then an encounter, then one payoff check.\n" +
			"Effects come from flags or a JSON object passed with --effects.",
		Args: cobra.NoArgs,
		Run:  runChoose,
	}

	cmd.Flags().String("seed", "", "Seed to add")
	cmd.Flags().StringToInt("rel", nil, "Relationship deltas, e.g. --rel Hana=2,Ren=-1")
	cmd.Flags().String("encounter", "", "Encounter to resolve")
	cmd.Flags().String("effects", "", `Effects JSON, e.g. {"add_seed":"S05","relationship":{"Hana":1}}`)

	RootCmd.AddCommand(cmd)
}

func runChoose(cmd *cobra.Command, args []string) {
	seed, _ := cmd.Flags().GetString("seed")
	rel, _ := cmd.Flags().GetStringToInt("rel")
	encounter, _ := cmd.Flags().GetString("encounter")
	raw, _ := cmd.Flags().GetString("effects")

	e := game.Effects{AddSeed: seed, Relationship: rel, Encounter: encounter}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			exitErr("parse effects", err)
		}
	}
	if e.AddSeed == "" && len(e.Relationship) == 0 && e.Encounter == "" {
		exitErr("choose", fmt.Errorf("no effects given"))
	}

	mutate(cmd, func(ctx context.Context, sess *game.Session) (any, error) {
		return sess.ApplyEffects(ctx, e)
	})
}
