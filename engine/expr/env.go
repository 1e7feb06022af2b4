package expr

import (
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"talc/lib/errs"
)

type binding struct {
	name  string
	value Expr
}

// Env holds the local bindings of one evaluation scope, in insertion
// order, together with the interpreter-wide globals and function registry.
// Scopes are thread-confined; only Globals crosses goroutines.
type Env struct {
	binds   []binding
	globals *Globals
	funcs   *Registry
}

func NewEnv(globals *Globals, funcs *Registry) *Env {
	return &Env{globals: globals, funcs: funcs}
}

func (e *Env) Globals() *Globals { return e.globals }
func (e *Env) Funcs() *Registry  { return e.funcs }

func (e *Env) find(name string) mo.Option[int] {
	for i, b := range e.binds {
		if b.name == name {
			return mo.Some(i)
		}
	}
	return mo.None[int]()
}

// Set binds name to value, overwriting an existing binding in place so
// the insertion order of first definitions is preserved.
func (e *Env) Set(name string, value Expr) {
	if i := e.find(name); i.IsPresent() {
		e.binds[i.MustGet()].value = value
		return
	}
	e.binds = append(e.binds, binding{name: name, value: value})
}

// Lookup returns the bound node itself, shared rather than cloned.
func (e *Env) Lookup(name string) (Expr, error) {
	if i := e.find(name); i.IsPresent() {
		return e.binds[i.MustGet()].value, nil
	}
	return nil, errs.Newf(errs.VariableUnbound, "unbound variable: $%s", name)
}

func (e *Env) IsBound(name string) bool {
	return e.find(name).IsPresent()
}

// Shadow copies the local bindings into a fresh scope sharing the same
// globals and registry. Writes to the shadow never reach the parent.
func (e *Env) Shadow() *Env {
	return &Env{
		binds:   lo.Map(e.binds, func(b binding, _ int) binding { return b }),
		globals: e.globals,
		funcs:   e.funcs,
	}
}

// Globals is the single process-wide binding table, shared by every
// evaluation chain on every thread. Reads proceed concurrently; writes
// exclude everything. Construct one per interpreter with NewGlobals.
type Globals struct {
	mu    sync.RWMutex
	table map[string]Expr
}

func NewGlobals() *Globals {
	return &Globals{table: make(map[string]Expr)}
}

func (g *Globals) Set(name string, value Expr) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.table[name] = value
}

func (g *Globals) Lookup(name string) (Expr, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if v, ok := g.table[name]; ok {
		return v, nil
	}
	return nil, errs.Newf(errs.VariableUnbound, "unbound variable: @%s", name)
}

func (g *Globals) IsBound(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.table[name]
	return ok
}

// Handler is a native function. It receives the entire call tuple, head
// included, so it can tell the function position from the arguments, and
// decides for itself which arguments to evaluate.
type Handler func(call *Tup, env *Env) (Expr, error)

// Registry maps function names to handlers. It is populated once at
// bootstrap and read-only afterwards, so resolution needs no locking.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under a case-sensitive name. Registering the
// same name twice is an error.
func (r *Registry) Register(name string, h Handler) error {
	if _, ok := r.handlers[name]; ok {
		return errs.Newf(errs.FunctionUsage, "function already registered: %s", name)
	}
	r.handlers[name] = h
	return nil
}

func (r *Registry) Resolve(name string) (Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, errs.Newf(errs.FunctionUnknown, "unknown function: %s", name)
	}
	return h, nil
}
