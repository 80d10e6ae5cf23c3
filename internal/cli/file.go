package cli

import (
	"github.com/rcliao/stasis-hunters/internal/save"
	"github.com/spf13/cobra"
)

func init() {
	saveFile := &cobra.Command{
		Use:   "save-file <path>",
		Short: "Write the latest save of the slot to a file",
		Args:  cobra.ExactArgs(1),
		Run:   runSaveFile,
	}

	loadFile := &cobra.Command{
		Use:   "load-file <path>",
		Short: "Load a save file into the slot",
		Long:  "Verify a save file and store it as the next version of the slot. A file that fails verification is rejected.",
		Args:  cobra.ExactArgs(1),
		Run:   runLoadFile,
	}

	RootCmd.AddCommand(saveFile, loadFile)
}

func runSaveFile(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sess := openSlot(cmd, s)
	rec, err := sess.Save(map[string]any{"source_slot": cfg.Slot})
	if err != nil {
		exitErr("save", err)
	}
	if err := save.WriteFile(args[0], rec); err != nil {
		exitErr("write file", err)
	}
	printJSON(map[string]any{"ok": true, "path": args[0], "signature": rec.Signature})
}

func runLoadFile(cmd *cobra.Command, args []string) {
	rec, err := save.ReadFile(args[0])
	if err != nil {
		exitErr("read file", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sess := newSession(cfg.Player)
	if err := sess.Load(rec); err != nil {
		exitErr("verify save", err)
	}
	g := commit(cmd, s, sess)
	printJSON(actionOutput{Slot: g.Slot, Version: g.Version, Result: sess.Status()})
}
