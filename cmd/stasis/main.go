package main

import (
	"os"

	"github.com/rcliao/stasis-hunters/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
