// Package ast holds the declaration-level semantic tree produced by a
// build. Nodes live in a Builder arena and reference each other by ID;
// the session owning the Builder must outlive every query against the
// tree.
package ast

import (
	"github.com/endingly/clice/internal/source"
)

// DeclID indexes a declaration in the Builder arena.
type DeclID uint32

// InvalidDeclID is the zero-value-adjacent sentinel for "no decl".
const InvalidDeclID DeclID = 0xFFFFFFFF

// IsValid reports whether the ID points at a declaration.
func (id DeclID) IsValid() bool { return id != InvalidDeclID }

// DeclKind classifies a declaration.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	// DeclVariable is a variable or field declaration.
	DeclVariable
	// DeclFunction is a function declaration or definition.
	DeclFunction
	// DeclRecord is a struct/union/class definition.
	DeclRecord
	// DeclEnum is an enum definition.
	DeclEnum
	// DeclTypedef is a typedef or alias-using declaration.
	DeclTypedef
	// DeclNamespace is a namespace with nested members.
	DeclNamespace
	// DeclModule is a C++ module declaration ('module M;').
	DeclModule
	// DeclImport is a module import ('import M;').
	DeclImport
)

func (k DeclKind) String() string {
	switch k {
	case DeclVariable:
		return "Variable"
	case DeclFunction:
		return "Function"
	case DeclRecord:
		return "Record"
	case DeclEnum:
		return "Enum"
	case DeclTypedef:
		return "Typedef"
	case DeclNamespace:
		return "Namespace"
	case DeclModule:
		return "Module"
	case DeclImport:
		return "Import"
	}
	return "Invalid"
}

// Param is one function parameter.
type Param struct {
	Name string
	Type string
	Span source.Span
}

// Decl is one declaration node.
type Decl struct {
	Kind DeclKind
	Name string
	// Type is the flattened specifier text ("const int", "struct S*").
	Type string
	// Doc is the documentation comment attached to the declaration,
	// retained even for declarations from dependency headers.
	Doc      string
	Span     source.Span
	Params   []Param   // functions
	BodySpan source.Span // functions/records with bodies
	Members  []DeclID  // records, enums, namespaces
	Exported bool      // preceded by 'export'
}

// File is the root of the tree for one translation unit.
type File struct {
	Span source.Span
	// ModuleName is set for module units ('module M;').
	ModuleName string
	// IsInterface marks an exported module interface unit.
	IsInterface bool
	Decls       []DeclID
}
