package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/export"
	"github.com/ccollicutt/chronolog/pkg/pipeline"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// IngestOptions holds command-line options for the ingest command.
type IngestOptions struct {
	ConfigPath string
	Output     string
	ExportFile string
	Category   string
	TimeRange  string
	Quiet      bool
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand() *cobra.Command {
	opts := &IngestOptions{}

	cmd := &cobra.Command{
		Use:   "ingest <file|glob>...",
		Short: "Process evidence files into a timeline",
		Long: `Process one or more evidence files as a single batch and build a timeline.

Files are processed sequentially in input order. A file that fails
validation or parsing appears on the timeline as an error entry; the rest
of the batch continues. Cancelling the batch (Ctrl-C) or exceeding the
batch timeout discards all of its results.

Exit codes:
  0 - All files processed cleanly
  1 - One or more files produced error entries
  2 - Batch cancelled, batch timeout, or configuration error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|csv|html)")
	cmd.Flags().StringVar(&opts.ExportFile, "export-file", "", "Write the export to a file instead of stdout")
	cmd.Flags().StringVar(&opts.Category, "category", "all", "Filter exported events by category")
	cmd.Flags().StringVar(&opts.TimeRange, "time-range", "all", "Filter exported events by time range (all|today|week|month|year)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress the processing status")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string, opts *IngestOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	filter, err := parseFilter(opts.Category, opts.TimeRange)
	if err != nil {
		return err
	}

	files, preErrors, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no evidence files matched: %v", args)
	}

	clock := clockwork.NewRealClock()
	orchestrator := pipeline.NewOrchestrator(
		pipeline.NewDispatcher(
			pipeline.WithClock(clock),
			pipeline.WithLimits(cfg.EvidenceLimits()),
			pipeline.WithFileTimeout(cfg.Timeouts.File),
		),
		pipeline.WithBatchTimeout(cfg.Timeouts.Batch),
	)

	result, err := orchestrator.Process(ctx, files)
	if err != nil {
		// Cancelled or timed out: nothing is merged.
		return fmt.Errorf("batch aborted: %w", err)
	}

	// Single atomic hand-off to the session timeline.
	timeline := event.NewTimeline(clock)
	timeline.Append(result.Events)

	if !opts.Quiet {
		printStatus(cmd.OutOrStdout(), result, len(files), preErrors)
	}

	if result.ErrorEventCount() > 0 || len(result.Errors) > 0 || len(preErrors) > 0 {
		ExitCode = 1
	}

	if opts.Output == "text" {
		return nil
	}

	formatter, err := export.New(opts.Output, cfg.ExportOptions())
	if err != nil {
		return err
	}

	view := timeline.Filter(filter)
	report := export.NewReport(view, opts.Category, event.TimeRange(opts.TimeRange), cfg.ExportOptions(), clock.Now())

	out := cmd.OutOrStdout()
	if opts.ExportFile != "" {
		f, err := os.Create(opts.ExportFile) // #nosec G304 -- user-provided output path is expected
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := formatter.Format(ctx, report, out); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if opts.ExportFile != "" && !opts.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d event(s) to %s\n", len(report.Events), opts.ExportFile)
	}

	return nil
}
