/*
File    : cmm/env/env.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
// Package env implements CMM's environment chain: a frame holding local
// variable bindings plus a link to an enclosing frame (spec §3.5). It is
// the teacher's scope/scope.go trimmed to what CMM actually needs -- no
// Consts/LetVars/LetTypes maps (CMM has neither `const` nor `let`), and no
// Copy() (CMM functions never capture a defining scope; see DESIGN.md).
package env

import "github.com/akashmaji946/cmm/value"

// Env is one frame in the environment chain (spec §3.5, GLOSSARY "Frame").
// nil Parent marks the top-level (root) frame.
type Env struct {
	Vars   map[string]value.Value
	Parent *Env
}

// New creates a fresh frame whose enclosing frame is parent (nil for the
// top-level frame, the caller's frame for a dynamic-bound call, or the
// top-level frame for an ordinary call -- spec §4.6).
func New(parent *Env) *Env {
	return &Env{Vars: make(map[string]value.Value), Parent: parent}
}

// Lookup walks outward through the chain until name is found or the root
// is exhausted.
func (e *Env) Lookup(name string) (value.Value, bool) {
	if v, ok := e.Vars[name]; ok {
		return v, true
	}
	if e.Parent != nil {
		return e.Parent.Lookup(name)
	}
	return value.Value{}, false
}

// Bind declares name in this frame only. It returns true if name already
// existed in this frame -- a redeclaration, which spec §3.5 makes an error
// at the call site.
func (e *Env) Bind(name string, v value.Value) (redeclared bool) {
	_, exists := e.Vars[name]
	e.Vars[name] = v
	return exists
}

// Assign updates name in the frame where it is already bound, walking
// outward through the chain. It reports false if name is not bound
// anywhere in the chain.
func (e *Env) Assign(name string, v value.Value) bool {
	if _, ok := e.Vars[name]; ok {
		e.Vars[name] = v
		return true
	}
	if e.Parent != nil {
		return e.Parent.Assign(name, v)
	}
	return false
}
