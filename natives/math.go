/*
File    : cmm/natives/math.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package natives

import (
	"fmt"
	"math"

	"github.com/akashmaji946/cmm/value"
)

func registerMath(r *Registry) {
	r.Register("sqrt", mathUnary(math.Sqrt))
	r.Register("exp", mathUnary(math.Exp))
	r.Register("log", mathUnary(math.Log))
	r.Register("log10", mathUnary(math.Log10))
	r.Register("pow", nativePow)
}

func mathUnary(fn func(float64) float64) Native {
	return func(rt Runtime, args []value.Value) (value.Value, error) {
		if len(args) != 1 || !args[0].IsNumeric() {
			return value.Value{}, fmt.Errorf("expected a single numeric argument, got %d", len(args))
		}
		return value.DoubleVal(fn(args[0].ToDouble())), nil
	}
}

func nativePow(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 2 || !args[0].IsNumeric() || !args[1].IsNumeric() {
		return value.Value{}, fmt.Errorf("pow expects two numeric arguments")
	}
	return value.DoubleVal(math.Pow(args[0].ToDouble(), args[1].ToDouble())), nil
}
