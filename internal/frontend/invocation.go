// Package frontend holds the configuration side of a compilation
// session: the parsed command-line invocation, the option groups the
// pipeline mutates during setup, and target initialization.
package frontend

import (
	"strings"
)

// ActionKind selects the frontend product of a build.
type ActionKind uint8

const (
	// ParseSyntaxOnly builds the in-memory tree (with optional token
	// collection); no output file.
	ParseSyntaxOnly ActionKind = iota
	// GeneratePreamble serializes the unit's preamble state to the
	// output file.
	GeneratePreamble
	// GenerateModuleInterface serializes the unit's exported interface
	// to the output file.
	GenerateModuleInterface
)

func (k ActionKind) String() string {
	switch k {
	case ParseSyntaxOnly:
		return "parse-syntax-only"
	case GeneratePreamble:
		return "generate-preamble"
	case GenerateModuleInterface:
		return "generate-module-interface"
	}
	return "unknown"
}

// Invocation is the parsed command-line argument vector. Parsing never
// fails: unknown flags are recorded and surface as diagnostics when
// the action begins.
type Invocation struct {
	Std         string
	Triple      string
	IncludeDirs []string
	Defines     []string // NAME or NAME=VALUE
	Undefines   []string
	Output      string
	Inputs      []string
	Unknown     []string
}

// ParseArgs builds an Invocation from compiler-style arguments.
func ParseArgs(args []string) Invocation {
	inv := Invocation{}
	i := 0
	next := func() (string, bool) {
		if i+1 < len(args) {
			i++
			return args[i], true
		}
		return "", false
	}
	for ; i < len(args); i++ {
		arg := args[i]
		switch {
		case strings.HasPrefix(arg, "-std="):
			inv.Std = strings.TrimPrefix(arg, "-std=")
		case strings.HasPrefix(arg, "--target="):
			inv.Triple = strings.TrimPrefix(arg, "--target=")
		case arg == "-target":
			if v, ok := next(); ok {
				inv.Triple = v
			}
		case arg == "-I":
			if v, ok := next(); ok {
				inv.IncludeDirs = append(inv.IncludeDirs, v)
			}
		case strings.HasPrefix(arg, "-I"):
			inv.IncludeDirs = append(inv.IncludeDirs, strings.TrimPrefix(arg, "-I"))
		case arg == "-D":
			if v, ok := next(); ok {
				inv.Defines = append(inv.Defines, v)
			}
		case strings.HasPrefix(arg, "-D"):
			inv.Defines = append(inv.Defines, strings.TrimPrefix(arg, "-D"))
		case arg == "-U":
			if v, ok := next(); ok {
				inv.Undefines = append(inv.Undefines, v)
			}
		case strings.HasPrefix(arg, "-U"):
			inv.Undefines = append(inv.Undefines, strings.TrimPrefix(arg, "-U"))
		case arg == "-o":
			if v, ok := next(); ok {
				inv.Output = v
			}
		case arg == "-fsyntax-only":
			// default behaviour; accepted for compatibility
		case strings.HasPrefix(arg, "-f") || strings.HasPrefix(arg, "-W"):
			// feature and warning flags are tolerated, not modeled
		case strings.HasPrefix(arg, "-"):
			inv.Unknown = append(inv.Unknown, arg)
		default:
			inv.Inputs = append(inv.Inputs, arg)
		}
	}
	return inv
}
