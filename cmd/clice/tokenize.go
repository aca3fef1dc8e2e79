package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/diagfmt"
	"github.com/endingly/clice/internal/lexer"
	"github.com/endingly/clice/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Tokenize a source file",
	Long:  `Tokenize breaks a source file into its raw token stream, before any macro expansion`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	files := source.NewFileSet()
	id, err := files.Load(args[0])
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}
	bag := diag.NewBag(maxDiags)
	tokens := lexer.Tokenize(files.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	if bag.HasErrors() || bag.HasWarnings() {
		bag.Sort()
		diagfmt.Render(os.Stderr, files, bag.Items(), colorEnabled(cmd, os.Stderr))
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens, files)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
