package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"logviz/cli"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logviz",
	Short: "Log pattern catalog visualizer",
	Long:  "logviz — renders descriptive charts summarizing categorized error and warning log message templates.",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "", false, "Enable verbose/debug logging")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("logviz version %s\n", version))

	rootCmd.AddCommand(cli.NewRenderCmd())
	rootCmd.AddCommand(cli.NewValidateCmd())
}
