package compiler

import (
	"github.com/endingly/clice/internal/artifact"
	"github.com/endingly/clice/internal/ast"
	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/lexer"
	"github.com/endingly/clice/internal/preproc"
	"github.com/endingly/clice/internal/source"
)

// ASTInfo bundles a finished action with the session that produced it
// and, for tree builds, the collected token buffer. The session stays
// alive as long as the ASTInfo does: spans in the tree point into its
// file set.
type ASTInfo struct {
	action Action
	sess   *Session
	tokens *preproc.TokenBuffer
	closed bool
}

// Tree returns the unit's declaration tree. Nil for runs that never
// parsed (failed builds).
func (info *ASTInfo) Tree() *ast.File {
	if info.sess.builder == nil {
		return nil
	}
	return info.sess.builder.File()
}

// Builder exposes the tree's arena for declaration lookups.
func (info *ASTInfo) Builder() *ast.Builder {
	return info.sess.builder
}

// Tokens returns the expanded-token index, or nil when the build did
// not collect tokens.
func (info *ASTInfo) Tokens() *preproc.TokenBuffer {
	return info.tokens
}

// Files returns the file set every span in the tree resolves against.
func (info *ASTInfo) Files() *source.FileSet {
	return info.sess.files
}

// Diagnostics returns the build's diagnostic bag.
func (info *ASTInfo) Diagnostics() *diag.Bag {
	return info.sess.bag
}

// Close releases the build. The token buffer indexes spans owned by
// the session's expanded stream, so it is dropped strictly before the
// session state it points into. Idempotent.
func (info *ASTInfo) Close() {
	if info.closed {
		return
	}
	info.closed = true
	info.tokens = nil
	info.sess.release()
}

// PreambleArtifact is the handle a preamble build returns: the build
// itself plus everything a later reuse decision needs without
// touching disk.
type PreambleArtifact struct {
	info       *ASTInfo
	outPath    string
	originPath string
	content    []byte
	bounds     lexer.PreambleBounds
	digest     artifact.Digest
}

// AST returns the preamble build's ASTInfo.
func (p *PreambleArtifact) AST() *ASTInfo { return p.info }

// OutputPath is where the serialized preamble lives.
func (p *PreambleArtifact) OutputPath() string { return p.outPath }

// OriginPath is the unit the preamble was generated from.
func (p *PreambleArtifact) OriginPath() string { return p.originPath }

// Bounds returns the byte extent the preamble covers.
func (p *PreambleArtifact) Bounds() lexer.PreambleBounds { return p.bounds }

// Content returns the source snapshot the preamble was built from.
func (p *PreambleArtifact) Content() []byte { return p.content }

// Ref builds the reuse reference a later build passes in its params.
func (p *PreambleArtifact) Ref() *PreambleRef {
	return &PreambleRef{Path: p.outPath, Bounds: p.bounds}
}

// ValidFor reports whether the artifact still matches the given unit:
// same path, same preamble bounds, same leading bytes. Callers that
// skip this check get whatever the stale preamble says; reuse itself
// never validates.
func (p *PreambleArtifact) ValidFor(path string, content []byte) bool {
	if path != p.originPath {
		return false
	}
	bounds := lexer.ComputePreamble(content)
	if bounds != p.bounds {
		return false
	}
	return artifact.HashContent(content[:bounds.Size]) == p.digest
}

// Close releases the underlying build.
func (p *PreambleArtifact) Close() { p.info.Close() }

// ModuleArtifact is the handle a module-interface build returns.
type ModuleArtifact struct {
	info    *ASTInfo
	outPath string
	name    string
}

// AST returns the module build's ASTInfo.
func (m *ModuleArtifact) AST() *ASTInfo { return m.info }

// OutputPath is where the serialized interface lives.
func (m *ModuleArtifact) OutputPath() string { return m.outPath }

// Name is the declared module name.
func (m *ModuleArtifact) Name() string { return m.name }

// Close releases the underlying build.
func (m *ModuleArtifact) Close() { m.info.Close() }
