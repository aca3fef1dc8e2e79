package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// projectManifest is a clice.toml found by walking up from the unit's
// directory. It supplies default compile arguments so editors and
// scripts do not repeat them per invocation.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Project projectSection `toml:"project"`
	Compile compileSection `toml:"compile"`
}

type projectSection struct {
	Name string `toml:"name"`
}

type compileSection struct {
	Std     string   `toml:"std"`
	Target  string   `toml:"target"`
	Include []string `toml:"include"`
	Define  []string `toml:"define"`
}

// CompileArgs flattens the manifest into compiler-style arguments.
// Include directories are resolved against the manifest root.
func (m *projectManifest) CompileArgs() []string {
	var args []string
	c := m.Config.Compile
	if c.Std != "" {
		args = append(args, "-std="+c.Std)
	}
	if c.Target != "" {
		args = append(args, "--target="+c.Target)
	}
	for _, dir := range c.Include {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(m.Root, filepath.FromSlash(dir))
		}
		args = append(args, "-I"+dir)
	}
	for _, d := range c.Define {
		args = append(args, "-D"+d)
	}
	return args
}

func findCliceToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "clice.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findCliceToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return projectConfig{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [project].name", path)
	}
	return cfg, nil
}
