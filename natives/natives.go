/*
File    : cmm/natives/natives.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
// Package natives implements CMM's native function table (spec §6.3): a
// name -> callback map the evaluator consults after its own user-function
// table comes up empty (spec §4.6). The registration shape -- a Runtime
// callback interface plus a slice/map of named callbacks populated by
// per-concern files -- is grounded in the teacher's std/builtins.go
// (Runtime, CallbackFunc, Builtin) and std/math.go's init()-time
// registration pattern, trimmed to spec §6.3's suggested native set:
// print, println, system, read, readln, readint, random, srand, time,
// exit, toint, todouble, tostring, tobool, typeof, len, strlen, sqrt, pow,
// exp, log, log10. All of it is implemented on the standard library, as
// the teacher's own std/*.go natives are (see DESIGN.md).
package natives

import (
	"bufio"
	"io"

	"github.com/akashmaji946/cmm/value"
)

// Native is the signature every registered native function implements:
// an ordered list of already-evaluated arguments in, a single Value (or a
// runtime error) out (spec §6.3).
type Native func(rt Runtime, args []value.Value) (value.Value, error)

// Runtime is what a native needs back from the evaluator: somewhere to
// print to and somewhere to read from. The evaluator itself satisfies this
// interface (eval.Evaluator), mirroring the teacher's std.Runtime, which
// the evaluator also implements directly.
type Runtime interface {
	Stdout() io.Writer
	Stdin() *bufio.Reader
}

// Registry is the name -> Native lookup table the evaluator's call
// dispatch consults as its second resolution tier (spec §4.6).
type Registry struct {
	fns map[string]Native
}

// NewRegistry builds a Registry pre-populated with every native this build
// ships (registration is described by spec §6.3 as "optional per build";
// this build registers all of them).
func NewRegistry() *Registry {
	r := &Registry{fns: make(map[string]Native)}
	registerIO(r)
	registerMath(r)
	registerConvert(r)
	registerMisc(r)
	return r
}

// Register adds or replaces one native.
func (r *Registry) Register(name string, fn Native) {
	r.fns[name] = fn
}

// Lookup finds a native by name, the second tier of call resolution after
// the user-function table (spec §4.6).
func (r *Registry) Lookup(name string) (Native, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}
