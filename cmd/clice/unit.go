package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/endingly/clice/internal/artifact"
	"github.com/endingly/clice/internal/compiler"
	"github.com/endingly/clice/internal/lexer"
)

// addUnitFlags registers the flags shared by every command that runs
// a build.
func addUnitFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("arg", nil, "compiler argument, repeatable (e.g. --arg -Iinclude)")
	cmd.Flags().String("preamble", "", "reuse a previously generated preamble artifact")
	cmd.Flags().StringArray("module", nil, "prebuilt module as name=path, repeatable")
}

// unitParams assembles CompilationParams for one source path: live
// content from disk, arguments from the project manifest plus --arg,
// the optional preamble reference and the module map.
func unitParams(cmd *cobra.Command, path string) (compiler.CompilationParams, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return compiler.CompilationParams{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var args []string
	if manifest, ok, err := loadProjectManifest(filepath.Dir(path)); err != nil {
		return compiler.CompilationParams{}, err
	} else if ok {
		args = manifest.CompileArgs()
	}
	extra, err := cmd.Flags().GetStringArray("arg")
	if err != nil {
		return compiler.CompilationParams{}, fmt.Errorf("failed to get arg flag: %w", err)
	}
	args = append(args, extra...)

	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return compiler.CompilationParams{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	params := compiler.CompilationParams{
		Path:             path,
		Content:          content,
		Args:             args,
		DiagWriter:       os.Stderr,
		ColorDiagnostics: colorEnabled(cmd, os.Stderr),
		MaxDiagnostics:   maxDiags,
	}

	if preamblePath, _ := cmd.Flags().GetString("preamble"); preamblePath != "" {
		ref, err := preambleRef(preamblePath)
		if err != nil {
			return compiler.CompilationParams{}, err
		}
		params.Preamble = ref
	}

	modules, err := cmd.Flags().GetStringArray("module")
	if err != nil {
		return compiler.CompilationParams{}, fmt.Errorf("failed to get module flag: %w", err)
	}
	if len(modules) > 0 {
		params.Modules = make(map[string]string, len(modules))
		for _, m := range modules {
			name, modPath, ok := strings.Cut(m, "=")
			if !ok || name == "" || modPath == "" {
				return compiler.CompilationParams{}, fmt.Errorf("bad --module %q, want name=path", m)
			}
			params.Modules[name] = modPath
		}
	}
	return params, nil
}

// preambleRef reads the artifact header to recover the bounds the
// preamble was generated with.
func preambleRef(path string) (*compiler.PreambleRef, error) {
	payload, err := artifact.ReadPreamble(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read preamble %s: %w", path, err)
	}
	return &compiler.PreambleRef{
		Path: path,
		Bounds: lexer.PreambleBounds{
			Size:              payload.Size,
			EndsAtStartOfLine: payload.EndsAtLineStart,
		},
	}, nil
}

func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

func timingsEnabled(cmd *cobra.Command) bool {
	t, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return t
}
