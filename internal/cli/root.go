// Package cli implements the stasis CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/rcliao/stasis-hunters/internal/config"
	"github.com/rcliao/stasis-hunters/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	dataDir    string
	slotFlag   string
	formatFlag string

	cfg    config.Config
	logger = slog.Default()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "stasis",
	Short: "Progression engine for Stasis Hunters",
	Long: "Runs one player action at a time against a save slot. Each action loads and verifies " +
		"the latest save, applies the action, and stores a new signed version. SQLite-backed, single binary.",
	PersistentPreRun: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $STASIS_DB or ~/.stasis-hunters/saves.db)")
	RootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Content directory (default: $STASIS_DATA_DIR or ./data)")
	RootCmd.PersistentFlags().StringVarP(&slotFlag, "slot", "s", "", "Save slot (default: $STASIS_SLOT or main)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func setup(cmd *cobra.Command, args []string) {
	c, err := config.Load()
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if slotFlag != "" {
		c.Slot = slotFlag
	}
	l, err := config.NewLogger(c)
	if err != nil {
		exitErr("configure logging", err)
	}
	cfg = c
	logger = l
	slog.SetDefault(l)
}

func getDBPath() string {
	return cfg.DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
