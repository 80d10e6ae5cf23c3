package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saves as JSON",
		Long:  "Export every stored save version, signatures included. Restrict to one slot with --only.",
		Args:  cobra.NoArgs,
		Run:   runExport,
	}

	cmd.Flags().String("only", "", "Only export this slot")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	only, _ := cmd.Flags().GetString("only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	saves, err := s.ExportAll(cmd.Context(), only)
	if err != nil {
		exitErr("export", err)
	}

	printJSON(saves)
}
