package ast

// Builder is the arena every tree node lives in. One Builder per
// build; not safe for concurrent mutation.
type Builder struct {
	decls []Decl
	file  *File
}

func NewBuilder() *Builder {
	return &Builder{
		decls: make([]Decl, 0, 64),
	}
}

// AddDecl stores a declaration and returns its ID.
func (b *Builder) AddDecl(d Decl) DeclID {
	id := DeclID(len(b.decls))
	b.decls = append(b.decls, d)
	return id
}

// Decl returns the declaration for id, or nil when invalid.
func (b *Builder) Decl(id DeclID) *Decl {
	if !id.IsValid() || int(id) >= len(b.decls) {
		return nil
	}
	return &b.decls[id]
}

// Len returns the number of declarations in the arena.
func (b *Builder) Len() int {
	return len(b.decls)
}

// SetFile installs the root file node.
func (b *Builder) SetFile(f *File) {
	b.file = f
}

// File returns the root file node, or nil before parsing finished.
func (b *Builder) File() *File {
	return b.file
}

// TopLevel iterates the top-level declarations of the file.
func (b *Builder) TopLevel() []*Decl {
	if b.file == nil {
		return nil
	}
	out := make([]*Decl, 0, len(b.file.Decls))
	for _, id := range b.file.Decls {
		if d := b.Decl(id); d != nil {
			out = append(out, d)
		}
	}
	return out
}
