package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/endingly/clice/internal/compiler"
	"github.com/endingly/clice/internal/observ"
	"github.com/endingly/clice/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] file...",
	Short: "Build the declaration tree of one or more units",
	Long:  `Build runs the frontend over each unit and reports declarations and diagnostics`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

func init() {
	addUnitFlags(buildCmd)
	buildCmd.Flags().Int("jobs", 0, "parallel builds (0 = number of CPUs)")
	buildCmd.Flags().Bool("progress", false, "stream per-unit progress to stderr")
}

func runBuild(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var sink progress.Sink = progress.NopSink{}
	if showProgress, _ := cmd.Flags().GetBool("progress"); showProgress {
		sink = &progress.WriterSink{W: os.Stderr}
	}

	timer := observ.NewTimer()
	var mu sync.Mutex // serializes stdout lines

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(min(jobs, len(args)))
	for _, path := range args {
		g.Go(func() error {
			params, err := unitParams(cmd, path)
			if err != nil {
				return err
			}
			start := time.Now()
			idx := timer.Begin(path)
			info, err := compiler.BuildAST(params)
			if err != nil {
				timer.End(idx, err.Error())
				sink.OnEvent(progress.Event{File: path, Stage: progress.StageBuild, Status: progress.StatusError, Err: err})
				return fmt.Errorf("%s: %w", path, err)
			}
			defer info.Close()
			timer.End(idx, "")
			sink.OnEvent(progress.Event{File: path, Stage: progress.StageBuild, Status: progress.StatusDone, Elapsed: time.Since(start)})

			if quiet(cmd) {
				return nil
			}
			decls := len(info.Builder().TopLevel())
			mu.Lock()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d declarations, %d tokens, %d diagnostics\n",
				path, decls, info.Tokens().Len(), info.Diagnostics().Len())
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if timingsEnabled(cmd) {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}
