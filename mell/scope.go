// Copyright © 2026 The Mell authors

package mell

import "sort"

// ScopeStack is the nested variable-binding model shared by the compiler's
// procedure-parameter handling and the runtime executor.  Frames map variable
// names to values; the innermost frame is at the top of the stack.  A
// ScopeStack always holds at least one frame after construction and is never
// shared between concurrent executions; independent executions fork a common
// lexical scope with Clone.
type ScopeStack struct {
	frames []map[string]*Value
}

// NewScopeStack returns a stack with a single empty frame.
func NewScopeStack() *ScopeStack {
	s := &ScopeStack{}
	s.PushScope()
	return s
}

// PushScope pushes a new empty frame.  Variables bound while the frame is
// live are destructed when the frame is popped.
func (s *ScopeStack) PushScope() {
	s.frames = append(s.frames, map[string]*Value{})
}

// PopScope pops the top frame and runs the destruction hook of every value
// still bound in it.  Popping an empty stack is an internal invariant
// violation and panics.
func (s *ScopeStack) PopScope() {
	if len(s.frames) == 0 {
		panic("mell: scope stack was empty, but PopScope was called on it anyways")
	}
	frame := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	for _, v := range frame {
		v.destroy()
	}
}

// Set binds name in the innermost frame that already holds it, or freshly in
// the current innermost frame.  It reports whether the binding already
// existed.  When value is itself a variable reference it is resolved to its
// bound value first; a stored binding is never itself a reference, so one
// level of indirection suffices.
func (s *ScopeStack) Set(name string, value *Value) bool {
	if len(s.frames) == 0 {
		panic("mell: scope stack is empty, but Set was called. Did you forget to call PushScope?")
	}
	if value.Kind == KVariable {
		value = s.Get(value.Str)
	}
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i][name]; ok {
			s.frames[i][name] = value
			return true
		}
	}
	s.frames[len(s.frames)-1][name] = value
	return false
}

// Get returns the value bound to name in the innermost frame holding it.
// An unbound name yields an empty-string literal: under strict mode the
// compiler rejects such reads before execution, so reaching the default means
// the file opted out of strict mode and undefined reads silently default.
func (s *ScopeStack) Get(name string) *Value {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v
		}
	}
	return Literal("")
}

// Clone deep-copies the stack.  Names are immutable and shared but every
// value is copied through its clone hook, so mutation in one stack is never
// observable in the other.
func (s *ScopeStack) Clone() *ScopeStack {
	cp := &ScopeStack{frames: make([]map[string]*Value, len(s.frames))}
	for i, frame := range s.frames {
		cpFrame := make(map[string]*Value, len(frame))
		for name, v := range frame {
			cpFrame[name] = v.Clone()
		}
		cp.frames[i] = cpFrame
	}
	return cp
}

// KeySet returns the sorted set of all names bound anywhere on the stack.
// Diagnostic and reflection use only.
func (s *ScopeStack) KeySet() []string {
	seen := map[string]bool{}
	var names []string
	for _, frame := range s.frames {
		for name := range frame {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
