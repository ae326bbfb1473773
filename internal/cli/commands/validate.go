package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chronolog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a ChronoLog configuration file without processing anything.

Checks:
  - YAML syntax
  - Size limits are positive and consistent
  - Timeouts are positive
  - Report settings`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Max file size:      %d MB\n", cfg.Limits.MaxFileSize/1024/1024)
	fmt.Fprintf(out, "  Max text file size: %d MB\n", cfg.Limits.MaxTextFileSize/1024/1024)
	fmt.Fprintf(out, "  File timeout:       %s\n", cfg.Timeouts.File)
	fmt.Fprintf(out, "  Batch timeout:      %s\n", cfg.Timeouts.Batch)
	fmt.Fprintf(out, "  Report title:       %s\n", cfg.Report.Title)

	return nil
}
