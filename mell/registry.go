// Copyright © 2026 The Mell authors

package mell

import "sort"

// Registry maps function names to their implementations.  The optimizer uses
// it to resolve call nodes to capabilities; a call node whose name is not
// registered is a reference to a user-defined procedure.
type Registry struct {
	funcs map[string]Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]Function{}}
}

// Register adds f, replacing any function already registered under its name.
func (r *Registry) Register(f Function) {
	r.funcs[f.Name()] = f
}

// Lookup resolves name to a registered function.
func (r *Registry) Lookup(name string) (Function, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Names returns the sorted names of all registered functions.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StandardRegistry returns a registry holding the builtin function library.
func StandardRegistry() *Registry {
	r := NewRegistry()
	addBuiltins(r)
	return r
}
