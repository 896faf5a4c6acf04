/*
File    : cmm/natives/natives_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package natives

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/akashmaji946/cmm/value"
	"github.com/stretchr/testify/require"
)

type fakeRuntime struct {
	out *bytes.Buffer
	in  *bufio.Reader
}

func newFakeRuntime(stdin string) *fakeRuntime {
	return &fakeRuntime{out: &bytes.Buffer{}, in: bufio.NewReader(strings.NewReader(stdin))}
}

func (f *fakeRuntime) Stdout() io.Writer     { return f.out }
func (f *fakeRuntime) Stdin() *bufio.Reader { return f.in }

func TestNatives_PrintSpaceJoined(t *testing.T) {
	r := NewRegistry()
	fn, ok := r.Lookup("print")
	require.True(t, ok)
	rt := newFakeRuntime("")
	_, err := fn(rt, []value.Value{value.IntVal(14)})
	require.NoError(t, err)
	require.Equal(t, "14 ", rt.out.String())
}

func TestNatives_ToIntFromString(t *testing.T) {
	r := NewRegistry()
	fn, _ := r.Lookup("toint")
	v, err := fn(newFakeRuntime(""), []value.Value{value.StringVal("42")})
	require.NoError(t, err)
	require.EqualValues(t, 42, v.I)
}

func TestNatives_LenOfArray(t *testing.T) {
	r := NewRegistry()
	fn, _ := r.Lookup("len")
	arr := value.ArrayVal(&value.ArrayData{ElemType: value.Int, Rank: 1, Items: []value.Value{value.IntVal(1), value.IntVal(2)}})
	v, err := fn(newFakeRuntime(""), []value.Value{arr})
	require.NoError(t, err)
	require.EqualValues(t, 2, v.I)
}

func TestNatives_SqrtCoercesIntToDouble(t *testing.T) {
	r := NewRegistry()
	fn, _ := r.Lookup("sqrt")
	v, err := fn(newFakeRuntime(""), []value.Value{value.IntVal(9)})
	require.NoError(t, err)
	require.InDelta(t, 3.0, v.D, 1e-9)
}

func TestNatives_TypeofReportsTag(t *testing.T) {
	r := NewRegistry()
	fn, _ := r.Lookup("typeof")
	v, err := fn(newFakeRuntime(""), []value.Value{value.BoolVal(true)})
	require.NoError(t, err)
	require.Equal(t, "bool", v.S)
}
