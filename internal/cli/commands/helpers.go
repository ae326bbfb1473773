package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/chronolog/pkg/config"
	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

// loadConfig loads the named config file, or the defaults when none given.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// parseFilter validates the category and time-range flags.
func parseFilter(category, timeRange string) (event.FilterOptions, error) {
	var opts event.FilterOptions

	if category != "" && category != "all" {
		c := event.Category(category)
		if !c.Valid() {
			return opts, fmt.Errorf("unknown category %q (use communication, document, system, media, or other)", category)
		}
		opts.Category = c
	}

	r := event.TimeRange(timeRange)
	if timeRange != "" && !r.Valid() {
		return opts, fmt.Errorf("unknown time range %q (use all, today, week, month, or year)", timeRange)
	}
	opts.Range = r

	return opts, nil
}

// collectFiles expands globs and builds descriptors. Paths that cannot be
// read become file errors rather than failing the whole run.
func collectFiles(patterns []string) ([]evidence.File, []event.FileError, error) {
	paths, err := evidence.ExpandGlobs(patterns)
	if err != nil {
		return nil, nil, err
	}

	var files []evidence.File
	var fileErrors []event.FileError
	for _, path := range paths {
		f, err := evidence.FromPath(path)
		if err != nil {
			fileErrors = append(fileErrors, event.FileError{File: path, Error: err.Error()})
			continue
		}
		files = append(files, f)
	}
	return files, fileErrors, nil
}

// printStatus writes the post-batch summary: success line plus the first
// few failures.
func printStatus(w io.Writer, result *event.ProcessingResult, fileCount int, preErrors []event.FileError) {
	errorEvents := result.ErrorEventCount()
	processed := fileCount - errorEvents

	if processed > 0 {
		fmt.Fprintf(w, "Successfully processed %d file(s), %d event(s)\n",
			processed, len(result.Events)-errorEvents)
	}

	failures := append([]event.FileError{}, preErrors...)
	failures = append(failures, result.Errors...)
	for i := range result.Events {
		if e := &result.Events[i]; e.IsError() {
			failures = append(failures, event.FileError{
				File:  fmt.Sprintf("%v", e.Metadata["filename"]),
				Error: fmt.Sprintf("%v", e.Metadata["error"]),
			})
		}
	}

	if len(failures) == 0 {
		return
	}

	fmt.Fprintf(w, "Failed to process %d file(s):\n", len(failures))
	for i, fe := range failures {
		if i == 3 {
			fmt.Fprintf(w, "  ... and %d more\n", len(failures)-3)
			break
		}
		fmt.Fprintf(w, "  - %s: %s\n", fe.File, fe.Error)
	}
}
