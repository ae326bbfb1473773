package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/chronolog/pkg/evidence"
	"github.com/ccollicutt/chronolog/pkg/pipeline"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Preview the events a single file would contribute",
		Long: `Validate and parse a single evidence file, printing the timeline events
it would contribute without building a timeline. Useful for checking how a
file will be interpreted before ingesting a batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show event metadata")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	f, err := evidence.FromPath(args[0])
	if err != nil {
		return err
	}

	dispatcher := pipeline.NewDispatcher(
		pipeline.WithClock(clockwork.NewRealClock()),
		pipeline.WithLimits(cfg.EvidenceLimits()),
		pipeline.WithFileTimeout(cfg.Timeouts.File),
	)

	events := dispatcher.Dispatch(ctx, f)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d event(s)\n\n", f.Name, len(events))
	for i := range events {
		e := &events[i]
		fmt.Fprintf(out, "[%s] %s\n", e.Category, e.Title)
		fmt.Fprintf(out, "  %s\n", e.Time().UTC().Format(time.RFC3339))
		if e.Description != "" {
			fmt.Fprintf(out, "  %s\n", e.Description)
		}
		if opts.Verbose && e.Metadata != nil {
			metadata, err := json.MarshalIndent(e.Metadata, "  ", "  ")
			if err == nil {
				fmt.Fprintf(out, "  %s\n", metadata)
			}
		}
		fmt.Fprintln(out)
	}

	errorEvents := 0
	for i := range events {
		if events[i].IsError() {
			errorEvents++
		}
	}
	if errorEvents > 0 {
		ExitCode = 1
	}

	return nil
}
