/*
File    : cmm/sourcemgr/sourcemgr.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
// Package sourcemgr loads a CMM source file once and offers a byte cursor
// plus location-to-line/column mapping and diagnostic formatting over it.
//
// It plays the role the teacher's lexer played for itself (go-mix's Lexer
// tracks Line/Column inline as it scans); CMM's own spec calls the source
// buffer, cursor and diagnostic formatter out as one component
// (SourceManager), grounded in original_source/include/SourceMgr.h, so it
// gets its own package here.
package sourcemgr

import (
	"fmt"
	"os"
	"sort"
)

// Loc is a byte offset into the source buffer.
type Loc int

// EOF is the cursor sentinel returned by Get/Peek past the end of the buffer.
const EOF byte = 0

// Severity distinguishes a fatal diagnostic from an advisory one.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "Warning"
	}
	return "Error"
}

// Diagnostic is a single formatted lex/parse message tied to a source location.
type Diagnostic struct {
	Severity Severity
	Loc      Loc
	Line     int
	Col      int
	Msg      string
}

// String renders a diagnostic as "KIND at (Line L, Col C): MSG".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at (Line %d, Col %d): %s", d.Severity, d.Line, d.Col, d.Msg)
}

// SourceManager owns the whole-file buffer for one compilation unit and a
// cursor over it. Diagnostics may be dumped instantly as they are raised or
// queued for a single end-of-run dump; which mode applies is fixed at
// construction.
type SourceManager struct {
	Path string
	Buf  []byte
	Pos  int // next byte to read

	// lineStarts[i] is the byte offset of line i (zero-based).
	lineStarts []int

	instant     bool
	Diagnostics []Diagnostic
	HadError    bool
}

// New reads path into memory and builds the line-start table. A failure to
// open the file is fatal per spec: it is reported on stderr and the process
// exits with failure, matching the teacher's own runFile (main/main.go),
// which reports a file-read error and calls os.Exit(1).
func New(path string, instantDiagnostics bool) *SourceManager {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CMM: could not read file %q: %v\n", path, err)
		os.Exit(1)
	}
	return NewFromBytes(path, data, instantDiagnostics)
}

// NewFromBytes builds a SourceManager over an in-memory buffer, used by the
// REPL (which has no file to open) and by tests.
func NewFromBytes(path string, data []byte, instantDiagnostics bool) *SourceManager {
	sm := &SourceManager{
		Path:    path,
		Buf:     data,
		instant: instantDiagnostics,
	}
	sm.lineStarts = []int{0}
	for i, b := range data {
		if b == '\n' {
			sm.lineStarts = append(sm.lineStarts, i+1)
		}
	}
	return sm
}

// Get returns the next byte and advances the cursor, or (EOF, false) at end of input.
func (sm *SourceManager) Get() (byte, bool) {
	if sm.Pos >= len(sm.Buf) {
		return EOF, false
	}
	b := sm.Buf[sm.Pos]
	sm.Pos++
	return b, true
}

// Peek returns the next byte without advancing the cursor.
func (sm *SourceManager) Peek() (byte, bool) {
	if sm.Pos >= len(sm.Buf) {
		return EOF, false
	}
	return sm.Buf[sm.Pos], true
}

// PeekAt returns the byte offset bytes ahead of the cursor without advancing it.
func (sm *SourceManager) PeekAt(offset int) (byte, bool) {
	p := sm.Pos + offset
	if p < 0 || p >= len(sm.Buf) {
		return EOF, false
	}
	return sm.Buf[p], true
}

// Unget retreats the cursor by one byte. Calling it at position 0 is a no-op.
func (sm *SourceManager) Unget() {
	if sm.Pos > 0 {
		sm.Pos--
	}
}

// Here returns the current cursor position as a Loc.
func (sm *SourceManager) Here() Loc {
	return Loc(sm.Pos)
}

// LocToLineCol maps a byte offset to a (line, column) pair, both 1-based,
// by binary-searching the ascending line-start vector built during load.
func (sm *SourceManager) LocToLineCol(loc Loc) (line, col int) {
	l := int(loc)
	// index of the last line-start <= l
	i := sort.Search(len(sm.lineStarts), func(i int) bool { return sm.lineStarts[i] > l }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, l - sm.lineStarts[i] + 1
}

// Error records a fatal diagnostic at loc. If the SourceManager was
// constructed for instant dumping, it prints immediately to stderr;
// otherwise it is queued for Dump.
func (sm *SourceManager) Error(loc Loc, format string, args ...any) {
	sm.record(SeverityError, loc, fmt.Sprintf(format, args...))
	sm.HadError = true
}

// Warning records a non-fatal diagnostic at loc (trailing-underscore
// identifier, reassigned function name, nested block comment).
func (sm *SourceManager) Warning(loc Loc, format string, args ...any) {
	sm.record(SeverityWarning, loc, fmt.Sprintf(format, args...))
}

func (sm *SourceManager) record(sev Severity, loc Loc, msg string) {
	line, col := sm.LocToLineCol(loc)
	d := Diagnostic{Severity: sev, Loc: loc, Line: line, Col: col, Msg: msg}
	if sm.instant {
		fmt.Fprintln(os.Stderr, d.String())
		return
	}
	sm.Diagnostics = append(sm.Diagnostics, d)
}

// Dump prints every queued diagnostic to stderr. It is a no-op for a
// SourceManager constructed with instant dumping, since those were already
// printed as they were raised.
func (sm *SourceManager) Dump() {
	for _, d := range sm.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
