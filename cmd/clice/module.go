package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/endingly/clice/internal/compiler"
	"github.com/endingly/clice/internal/observ"
)

var moduleCmd = &cobra.Command{
	Use:   "module [flags] -o out.pcm file",
	Short: "Generate a module interface artifact for a unit",
	Long:  `Module builds a module interface unit and serializes its exported declarations`,
	Args:  cobra.ExactArgs(1),
	RunE:  runModule,
}

func init() {
	addUnitFlags(moduleCmd)
	moduleCmd.Flags().StringP("output", "o", "", "artifact output path (required)")
	_ = moduleCmd.MarkFlagRequired("output")
}

func runModule(cmd *cobra.Command, args []string) error {
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
	var art *compiler.ModuleArtifact
	err = timer.Time("module", func() error {
		var buildErr error
		art, buildErr = compiler.BuildModule(params)
		return buildErr
	})
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	defer art.Close()

	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: module %q -> %s\n", args[0], art.Name(), art.OutputPath())
	}
	if timingsEnabled(cmd) {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}
