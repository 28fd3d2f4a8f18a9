// Package srccheck runs a syntax screen over source files before they are
// wired into the manifest, so obviously broken files are caught early.
package srccheck

import (
	"path/filepath"
	"strings"
)

// Issue is one syntax problem found in a file.
type Issue struct {
	Line   int
	Detail string
}

// Checker screens one language's source files.
type Checker interface {
	Language() string
	Extensions() []string
	Check(filename string, content []byte) ([]Issue, error)
}

// Registry maps file extensions to checkers.
type Registry struct {
	byExt map[string]Checker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Checker)}
}

// Register adds a checker for all its extensions.
func (r *Registry) Register(c Checker) {
	for _, ext := range c.Extensions() {
		r.byExt[ext] = c
	}
}

// ForFile returns the checker for filename's extension, or nil when the
// extension is not screened.
func (r *Registry) ForFile(filename string) Checker {
	ext := strings.ToLower(filepath.Ext(filename))
	return r.byExt[ext]
}

// NewDefaultRegistry creates a registry with all supported checkers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(NewSwiftChecker())
	r.Register(NewCChecker())
	r.Register(NewCppChecker())

	return r
}
