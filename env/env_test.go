/*
File    : cmm/env/env_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package env

import (
	"testing"

	"github.com/akashmaji946/cmm/value"
	"github.com/stretchr/testify/require"
)

func TestEnv_LookupChain(t *testing.T) {
	top := New(nil)
	top.Bind("x", value.IntVal(1))
	inner := New(top)
	inner.Bind("y", value.IntVal(2))

	v, ok := inner.Lookup("x")
	require.True(t, ok)
	require.EqualValues(t, 1, v.I)

	_, ok = top.Lookup("y")
	require.False(t, ok)
}

func TestEnv_BindReportsRedeclaration(t *testing.T) {
	e := New(nil)
	require.False(t, e.Bind("x", value.IntVal(1)))
	require.True(t, e.Bind("x", value.IntVal(2)))
}

func TestEnv_AssignUpdatesDefiningFrame(t *testing.T) {
	top := New(nil)
	top.Bind("x", value.IntVal(1))
	inner := New(top)

	ok := inner.Assign("x", value.IntVal(99))
	require.True(t, ok)
	v, _ := top.Lookup("x")
	require.EqualValues(t, 99, v.I)
	_, foundLocally := inner.Vars["x"]
	require.False(t, foundLocally)
}

func TestEnv_AssignUndefinedFails(t *testing.T) {
	e := New(nil)
	require.False(t, e.Assign("missing", value.IntVal(1)))
}
