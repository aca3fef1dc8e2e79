// Package store keeps recently built artifacts alive across editor
// requests: preambles keyed by unit path, module interfaces keyed by
// module name. Eviction closes the artifact it displaces.
package store

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/endingly/clice/internal/compiler"
)

// DefaultCapacity bounds each artifact class when the caller does not
// choose one.
const DefaultCapacity = 128

// ArtifactStore is safe for concurrent use.
type ArtifactStore struct {
	mu        sync.Mutex
	preambles *lru.Cache[string, *compiler.PreambleArtifact]
	modules   *lru.Cache[string, *compiler.ModuleArtifact]
}

// New creates a store holding up to capacity artifacts of each class.
func New(capacity int) (*ArtifactStore, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	preambles, err := lru.NewWithEvict(capacity, func(_ string, art *compiler.PreambleArtifact) {
		art.Close()
	})
	if err != nil {
		return nil, err
	}
	modules, err := lru.NewWithEvict(capacity, func(_ string, art *compiler.ModuleArtifact) {
		art.Close()
	})
	if err != nil {
		return nil, err
	}
	return &ArtifactStore{preambles: preambles, modules: modules}, nil
}

// PutPreamble retains the preamble for its origin path, closing any
// artifact it replaces.
func (s *ArtifactStore) PutPreamble(art *compiler.PreambleArtifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.preambles.Peek(art.OriginPath()); ok && prev != art {
		prev.Close()
	}
	s.preambles.Add(art.OriginPath(), art)
}

// Preamble returns the retained preamble for a unit path.
func (s *ArtifactStore) Preamble(path string) (*compiler.PreambleArtifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preambles.Get(path)
}

// PreambleFor returns the retained preamble only when it is still
// valid for the given content.
func (s *ArtifactStore) PreambleFor(path string, content []byte) (*compiler.PreambleArtifact, bool) {
	art, ok := s.Preamble(path)
	if !ok || !art.ValidFor(path, content) {
		return nil, false
	}
	return art, true
}

// PutModule retains the module interface under its declared name.
func (s *ArtifactStore) PutModule(art *compiler.ModuleArtifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.modules.Peek(art.Name()); ok && prev != art {
		prev.Close()
	}
	s.modules.Add(art.Name(), art)
}

// Module returns the retained interface for a module name.
func (s *ArtifactStore) Module(name string) (*compiler.ModuleArtifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modules.Get(name)
}

// ModulePaths builds the name-to-artifact-path map a build passes as
// its module map.
func (s *ArtifactStore) ModulePaths() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, s.modules.Len())
	for _, name := range s.modules.Keys() {
		if art, ok := s.modules.Peek(name); ok {
			out[name] = art.OutputPath()
		}
	}
	return out
}

// Drop removes and closes the preamble for a unit path.
func (s *ArtifactStore) Drop(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preambles.Remove(path)
}

// Purge closes everything.
func (s *ArtifactStore) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preambles.Purge()
	s.modules.Purge()
}
