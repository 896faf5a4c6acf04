/*
File    : cmm/natives/misc.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package natives

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/akashmaji946/cmm/value"
)

// rng is CMM's random source. random()/srand() behave like C's rand()/
// srand(): srand reseeds the generator, random returns a non-negative int
// each call. A package-level *rand.Rand (rather than the deprecated global
// rand.Seed) keeps this local to the natives package instead of mutating
// process-global state other packages might also depend on; it is shared
// by every Registry in the process.
var rng = rand.New(rand.NewSource(1))

func registerMisc(r *Registry) {
	r.Register("random", nativeRandom)
	r.Register("srand", nativeSrand)
	r.Register("time", nativeTime)
}

func nativeRandom(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("random expects no arguments")
	}
	return value.IntVal(rng.Int31()), nil
}

func nativeSrand(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Type != value.Int {
		return value.Value{}, fmt.Errorf("srand expects a single int seed")
	}
	rng = rand.New(rand.NewSource(int64(args[0].I)))
	return value.VoidVal(), nil
}

func nativeTime(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("time expects no arguments")
	}
	return value.IntVal(int32(time.Now().Unix())), nil
}
