package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
	"github.com/ccollicutt/chronolog/pkg/pipeline"
)

// WatchOptions holds command-line options for the watch command.
type WatchOptions struct {
	ConfigPath string
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Ingest evidence files dropped into a directory",
		Long: `Watch a directory and ingest each file created in it as its own batch,
accumulating one session timeline. This is the command-line equivalent of
dropping files onto the timeline: the session runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (YAML)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch target %s is not a directory", dir)
	}

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
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
	timeline := event.NewTimeline(clock)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", dir)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(out, "Session ended: %d event(s) on the timeline\n", timeline.Len())
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}

			f, err := evidence.FromPath(ev.Name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", ev.Name, err)
				continue
			}

			result, err := orchestrator.Process(ctx, []evidence.File{f})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Batch aborted: %v\n", err)
				continue
			}

			timeline.Append(result.Events)
			printStatus(out, result, 1, nil)
			fmt.Fprintf(out, "Timeline now has %d event(s)\n", timeline.Len())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		}
	}
}
