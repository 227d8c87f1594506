// Copyright © 2026 The Mell authors

package mell

import (
	"github.com/mell-lang/mell/parser/token"
	"github.com/tliron/commonlog"
)

// Profiler receives begin/end notifications for compiler passes.  Annotator
// implementations live in x/profiler.
type Profiler interface {
	// Enable attaches the profiler; it is an error to enable twice.
	Enable() error
	// Complete flushes any span left open when compilation ends.
	Complete() error
	// Start begins a region named name at loc and returns a function ending
	// it.
	Start(name string, loc *token.Location) func()
}

// Warning is a non-fatal diagnostic accumulated during compilation.
type Warning struct {
	Message string
	Loc     *token.Location
}

// CompileEnv is the per-compilation mutable context.  It is constructed fresh
// for every compilation and passed explicitly through every pass; nothing in
// it is process-wide.  It carries the active procedure-scope chain, the file
// options currently in effect, and the diagnostic log.
type CompileEnv struct {
	Registry *Registry
	Opts     *FileOptions
	Profiler Profiler
	Log      commonlog.Logger

	procScopes []map[string]*Procedure
	warnings   []*Warning
}

// NewCompileEnv returns an environment resolving functions against reg, with
// one base procedure scope for definitions that must survive across passes.
func NewCompileEnv(reg *Registry) *CompileEnv {
	return &CompileEnv{
		Registry:   reg,
		Log:        commonlog.GetLogger("mell.compiler"),
		procScopes: []map[string]*Procedure{{}},
	}
}

// PushProcedureScope opens a nested procedure registration context.
// Procedures registered while it is live are discarded when it is popped, so
// definitions encountered during one pass never leak into another.
func (env *CompileEnv) PushProcedureScope() {
	env.procScopes = append(env.procScopes, map[string]*Procedure{})
}

// PopProcedureScope discards the innermost procedure scope.  Popping the base
// scope is an internal invariant violation and panics.
func (env *CompileEnv) PopProcedureScope() {
	if len(env.procScopes) <= 1 {
		panic("mell: procedure scope chain was empty, but PopProcedureScope was called on it anyways")
	}
	env.procScopes = env.procScopes[:len(env.procScopes)-1]
}

// AddProcedure registers p in the innermost procedure scope, making it
// visible to its own body.
func (env *CompileEnv) AddProcedure(p *Procedure) {
	env.procScopes[len(env.procScopes)-1][p.Name] = p
}

// GetProcedure resolves name against the active scope chain, innermost first.
// An unresolved name is a compile error.
func (env *CompileEnv) GetProcedure(name string, loc *token.Location) (*Procedure, error) {
	for i := len(env.procScopes) - 1; i >= 0; i-- {
		if p, ok := env.procScopes[i][name]; ok {
			return p, nil
		}
	}
	return nil, CompileErrorf(loc, "unknown procedure %s", name)
}

// SetFileOptions records the options of the file whose nodes are being
// rewritten, so hooks observe the options of the call site.
func (env *CompileEnv) SetFileOptions(opts *FileOptions) {
	env.Opts = opts
}

// CompilerWarning accumulates a non-fatal diagnostic.  Warnings never abort
// compilation.
func (env *CompileEnv) CompilerWarning(msg string, loc *token.Location) {
	env.warnings = append(env.warnings, &Warning{Message: msg, Loc: loc})
	if env.Log != nil {
		if loc != nil {
			env.Log.Warningf("%s: %s", loc, msg)
		} else {
			env.Log.Warningf("%s", msg)
		}
	}
}

// Warnings returns the diagnostics accumulated so far, in emission order.
func (env *CompileEnv) Warnings() []*Warning {
	return env.warnings
}

// StartPass notifies the profiler, when one is attached, that a named pass is
// beginning.  The returned function ends the region and is always non-nil.
func (env *CompileEnv) StartPass(name string, loc *token.Location) func() {
	if env.Profiler == nil {
		return func() {}
	}
	return env.Profiler.Start(name, loc)
}
