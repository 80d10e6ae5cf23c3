package cli

import (
	"github.com/rcliao/stasis-hunters/internal/save"
	"github.com/rcliao/stasis-hunters/internal/store"
	"github.com/spf13/cobra"
)

type verifyResult struct {
	OK      bool   `json:"ok"`
	Source  string `json:"source"`
	Version int    `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the signature of a save",
		Long:  "Check the latest save of the slot, a specific version, or a save file given with --file.",
		Args:  cobra.NoArgs,
		Run:   runVerify,
	}

	cmd.Flags().IntP("version", "v", 0, "Specific version number")
	cmd.Flags().String("file", "", "Verify a save file instead of the slot")

	RootCmd.AddCommand(cmd)
}

func runVerify(cmd *cobra.Command, args []string) {
	version, _ := cmd.Flags().GetInt("version")
	file, _ := cmd.Flags().GetString("file")
	signer := save.NewSigner(cfg.Key())

	if file != "" {
		res := verifyResult{OK: true, Source: file}
		rec, err := save.ReadFile(file)
		if err == nil {
			_, err = signer.LoadAndVerify(rec)
		}
		if err != nil {
			res.OK, res.Error = false, err.Error()
		}
		printJSON(res)
		return
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	saves, err := s.Get(cmd.Context(), store.GetParams{Slot: cfg.Slot, Version: version})
	if err != nil {
		exitErr("verify", err)
	}
	res := verifyResult{OK: true, Source: cfg.Slot, Version: saves[0].Version}
	if _, err := signer.LoadAndVerify(store.RecordOf(saves[0])); err != nil {
		res.OK, res.Error = false, err.Error()
	}
	printJSON(res)
}
