/*
File    : cmm/natives/convert.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package natives

import (
	"fmt"
	"strconv"

	"github.com/akashmaji946/cmm/value"
)

func registerConvert(r *Registry) {
	r.Register("toint", nativeToInt)
	r.Register("todouble", nativeToDouble)
	r.Register("tostring", nativeToString)
	r.Register("tobool", nativeToBool)
	r.Register("typeof", nativeTypeof)
	r.Register("len", nativeLen)
	r.Register("strlen", nativeStrlen)
}

func nativeToInt(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("toint expects one argument")
	}
	a := args[0]
	switch a.Type {
	case value.Int:
		return a, nil
	case value.Double:
		return value.IntVal(int32(a.D)), nil
	case value.Bool:
		if a.B {
			return value.IntVal(1), nil
		}
		return value.IntVal(0), nil
	case value.String:
		n, err := strconv.ParseInt(a.S, 10, 32)
		if err != nil {
			return value.Value{}, fmt.Errorf("cannot convert %q to int", a.S)
		}
		return value.IntVal(int32(n)), nil
	}
	return value.Value{}, fmt.Errorf("cannot convert %s to int", a.Type)
}

func nativeToDouble(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("todouble expects one argument")
	}
	a := args[0]
	switch a.Type {
	case value.Double:
		return a, nil
	case value.Int:
		return value.DoubleVal(float64(a.I)), nil
	case value.String:
		d, err := strconv.ParseFloat(a.S, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("cannot convert %q to double", a.S)
		}
		return value.DoubleVal(d), nil
	}
	return value.Value{}, fmt.Errorf("cannot convert %s to double", a.Type)
}

func nativeToString(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("tostring expects one argument")
	}
	return value.StringVal(args[0].ToString()), nil
}

func nativeToBool(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("tobool expects one argument")
	}
	return value.BoolVal(args[0].ToBool()), nil
}

func nativeTypeof(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("typeof expects one argument")
	}
	return value.StringVal(args[0].Type.String()), nil
}

func nativeLen(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Type != value.Array {
		return value.Value{}, fmt.Errorf("len expects a single array argument")
	}
	if args[0].Arr == nil {
		return value.IntVal(0), nil
	}
	return value.IntVal(int32(len(args[0].Arr.Items))), nil
}

func nativeStrlen(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Type != value.String {
		return value.Value{}, fmt.Errorf("strlen expects a single string argument")
	}
	return value.IntVal(int32(len(args[0].S))), nil
}
