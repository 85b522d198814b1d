package runtime

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel failures for scope-chain operations. Callers wrap them with
// source position information before surfacing to the user.
var (
	// ErrUndefinedVariable is returned by Get when the name is bound
	// nowhere on the chain.
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrUndeclaredAssignment is returned by Assign when the target was
	// never declared; assignment never creates a binding.
	ErrUndeclaredAssignment = errors.New("assignment to undeclared variable")
)

// Environment provides lexical scoping for runtime values. Environments form
// a cactus stack: each scope keeps a reference to its parent, the global
// scope has none. A block's scope is dropped as soon as the block finishes.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts a binding into the current scope. Redeclaring a name in the
// same scope silently overwrites; that is the re-declaration semantics of var.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
}

// Assign updates an existing binding in the first scope where it appears,
// walking the chain exactly like Get. It never creates a binding.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value)
	}
	return fmt.Errorf("%w '%s'", ErrUndeclaredAssignment, name)
}

// Snapshot returns a copy of the current scope's bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Keys returns the current scope's names in sorted order (useful for
// deterministic debug dumps and tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
