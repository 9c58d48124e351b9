package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"logviz/catalog"
	"logviz/config"
)

// NewValidateCmd creates the "validate" subcommand: load the configuration
// and catalogs and print a summary without rendering anything.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and catalogs without rendering",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}

	cmd.Flags().StringP("config", "c", defaultConfigPath, "Path to configuration file")

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	out := cmd.OutOrStdout()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return exitError(exitFailure, "configuration file not found: %v", err)
		}
		return exitError(exitFailure, "loading configuration: %v", err)
	}

	fmt.Fprintf(out, "Log patterns: %s\n", cfg.LogPatternsFile)
	printCatalog(cmd, catalog.SeverityError, cfg.ErrorLogs)
	printCatalog(cmd, catalog.SeverityWarning, cfg.WarningLogs)

	fmt.Fprintln(out, "\nValid!")
	return nil
}

func printCatalog(cmd *cobra.Command, sev catalog.Severity, c catalog.Catalog) {
	out := cmd.OutOrStdout()
	total := c.Total()
	fmt.Fprintf(out, "\n%s categories (%d %s):\n", sev, total, pluralize("message", total))
	for _, count := range c.Counts() {
		fmt.Fprintf(out, "  %s: %d %s\n", count.Name, count.Count, pluralize("message", count.Count))
	}
}

// pluralize returns the singular or plural form of a word based on count.
func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
