package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/endingly/clice/internal/compiler"
	"github.com/endingly/clice/internal/complete"
)

var completeCmd = &cobra.Command{
	Use:   "complete [flags] --line N --column M file",
	Short: "List completion candidates at a position",
	Long:  `Complete builds the unit and prints every candidate visible at the 1-based line and column`,
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

func init() {
	addUnitFlags(completeCmd)
	completeCmd.Flags().Uint32("line", 0, "1-based line (required)")
	completeCmd.Flags().Uint32("column", 0, "1-based column (required)")
	_ = completeCmd.MarkFlagRequired("line")
	_ = completeCmd.MarkFlagRequired("column")
}

func runComplete(cmd *cobra.Command, args []string) error {
	line, err := cmd.Flags().GetUint32("line")
	if err != nil {
		return fmt.Errorf("failed to get line flag: %w", err)
	}
	column, err := cmd.Flags().GetUint32("column")
	if err != nil {
		return fmt.Errorf("failed to get column flag: %w", err)
	}
	params, err := unitParams(cmd, args[0])
	if err != nil {
		return err
	}

	var collector complete.Collector
	info, err := compiler.CodeCompleteAt(params, complete.Request{Line: line, Column: column}, &collector)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	defer info.Close()

	for _, item := range collector.Items() {
		if item.Detail != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s (%s)\n", item.Kind, item.Spelling, item.Detail)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", item.Kind, item.Spelling)
		}
	}
	return nil
}
