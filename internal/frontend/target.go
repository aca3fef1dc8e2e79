package frontend

import (
	"fmt"
	"runtime"
	"strings"
)

// Target is the initialized target description of a session.
type Target struct {
	Triple string
	Arch   string
	OS     string
}

var knownArch = map[string]bool{
	"x86_64": true, "aarch64": true, "arm64": true, "riscv64": true,
	"i686": true, "wasm32": true,
}

var knownOS = map[string]bool{
	"linux": true, "darwin": true, "windows": true, "freebsd": true,
	"none": true, "unknown": true,
}

// NewTarget parses and validates a target triple. An empty triple
// falls back to the host.
func NewTarget(triple string) (Target, error) {
	if triple == "" {
		triple = hostTriple()
	}
	parts := strings.Split(triple, "-")
	if len(parts) < 2 {
		return Target{}, fmt.Errorf("malformed target triple %q", triple)
	}
	arch := parts[0]
	os := parts[len(parts)-1]
	if os == "gnu" || os == "musl" || os == "msvc" {
		// arch-vendor-os-abi form
		if len(parts) >= 3 {
			os = parts[len(parts)-2]
		}
	}
	if !knownArch[arch] {
		return Target{}, fmt.Errorf("unknown architecture %q in target %q", arch, triple)
	}
	if !knownOS[os] {
		return Target{}, fmt.Errorf("unknown OS %q in target %q", os, triple)
	}
	return Target{Triple: triple, Arch: arch, OS: os}, nil
}

func hostTriple() string {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	}
	return arch + "-unknown-" + runtime.GOOS
}
