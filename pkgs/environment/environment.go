// Package environment implements the lexically scoped binding chain
// described in spec.md §4.3: a mapping from name to Value, optionally
// linked to an enclosing scope. Modeled on the teacher's
// ExecutionContext parent-chaining shape (pkgs/execution/context.go's
// embedded-parent + With* constructors), adapted from a flat
// string-to-string variable map to Lox's nested, owned scope chain
// (spec.md §9's redesign away from a raw enclosing pointer).
package environment

import (
	"fmt"

	"github.com/aledsdavies/golox/pkgs/token"
)

// Environment is one scope frame. The global environment has a nil
// Enclosing and outlives every inner scope; a block owns exactly one
// child Environment whose lifetime is bounded by block execution
// (spec.md §3 invariants).
type Environment struct {
	values    map[string]token.Value
	Enclosing *Environment
}

// New creates a fresh environment, optionally enclosed by parent. Pass
// nil to create the global scope.
func New(parent *Environment) *Environment {
	return &Environment{
		values:    make(map[string]token.Value),
		Enclosing: parent,
	}
}

// UndefinedError reports a lookup or assignment against a name with no
// binding anywhere on the scope chain.
type UndefinedError struct {
	Name token.Token
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("Undefined Identifier '%s' .", e.Name.Lexeme)
}

// Define unconditionally binds name to value in this scope. No error
// on redefinition: this is what lets the REPL re-declare a global
// variable across prompts (spec.md §3).
func (e *Environment) Define(name string, value token.Value) {
	e.values[name] = value
}

// Get resolves name against this scope, then each enclosing scope in
// turn, per spec.md §4.3.
func (e *Environment) Get(name token.Token) (token.Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Get(name)
	}
	return nil, &UndefinedError{Name: name}
}

// Assign overwrites an existing binding for name, searching outward
// through enclosing scopes. It never creates a new binding: spec.md
// §9 Q3 flags the source's bug of calling define on the enclosing
// scope when the name isn't found there, which silently shadows the
// real failure. This recurses into Assign instead.
func (e *Environment) Assign(name token.Token, value token.Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Assign(name, value)
	}
	return &UndefinedError{Name: name}
}

// Names returns every name bound anywhere on the scope chain, nearest
// scope first. Used by internal/suggest to build "did you mean"
// candidates for an undefined-identifier runtime error.
func (e *Environment) Names() []string {
	var names []string
	for scope := e; scope != nil; scope = scope.Enclosing {
		for name := range scope.values {
			names = append(names, name)
		}
	}
	return names
}
