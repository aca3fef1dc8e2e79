package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/endingly/clice/internal/compiler"
	"github.com/endingly/clice/internal/observ"
)

var preambleCmd = &cobra.Command{
	Use:   "preamble [flags] -o out.pch file",
	Short: "Generate a reusable preamble artifact for a unit",
	Long:  `Preamble detects the unit's leading directive region, builds it and serializes the resulting state`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPreamble,
}

func init() {
	addUnitFlags(preambleCmd)
	preambleCmd.Flags().StringP("output", "o", "", "artifact output path (required)")
	_ = preambleCmd.MarkFlagRequired("output")
}

func runPreamble(cmd *cobra.Command, args []string) error {
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	params, err := unitParams(cmd, args[0])
	if err != nil {
		return err
	}
	params.OutPath = out

	timer := observ.NewTimer()
	var art *compiler.PreambleArtifact
	err = timer.Time("preamble", func() error {
		var buildErr error
		art, buildErr = compiler.BuildPreamble(params)
		return buildErr
	})
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	defer art.Close()

	if !quiet(cmd) {
		bounds := art.Bounds()
		fmt.Fprintf(cmd.OutOrStdout(), "%s: preamble covers %d bytes (line-aligned: %v) -> %s\n",
			args[0], bounds.Size, bounds.EndsAtStartOfLine, art.OutputPath())
	}
	if timingsEnabled(cmd) {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}
