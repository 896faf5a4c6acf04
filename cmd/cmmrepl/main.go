/*
File    : cmm/cmd/cmmrepl/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package main is the interactive REPL front end for CMM. It reads one line
at a time, parses it as a standalone fragment, folds any function or
infix-operator definitions it contains into a persistent evaluator so
later lines can call them, and runs its top-level statements against that
same evaluator's top-level frame -- the REPL's stand-in for the file front
end's single whole-program parse (spec has no REPL requirement; this is
an enrichment grounded in the teacher's repl/repl.go).
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/akashmaji946/cmm/eval"
	"github.com/akashmaji946/cmm/parser"
	"github.com/akashmaji946/cmm/sourcemgr"
	"github.com/akashmaji946/cmm/value"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const (
	version = "v1.0.0"
	author  = "akashmaji(@iisc.ac.in)"
	license = "MIT"
	prompt  = "cmm >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
   ____ __  __ __  __
  / ___|  \/  |  \/  |
 | |   | |\/| | |\/| |
 | |___| |  | | |  | |
  \____|_|  |_|_|  |_|
`
)

func main() {
	printBanner(os.Stdout)

	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	prog := &parser.Program{
		TopLevel: &parser.BlockStmt{},
		Funcs:    make(map[string]*parser.FunctionDefinition),
		Infixes:  make(map[string]*parser.InfixOpDefinition),
	}
	ev := eval.New(prog, os.Stdout, os.Stdin)

	for {
		in, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(os.Stdout, "Good bye!")
			break
		}
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		if in == ".exit" {
			fmt.Fprintln(os.Stdout, "Good bye!")
			break
		}
		rl.SaveHistory(in)
		evalLine(ev, in)
	}
}

func printBanner(w *os.File) {
	blueColor.Fprintln(w, line)
	greenColor.Fprintln(w, banner)
	blueColor.Fprintln(w, line)
	yellowColor.Fprintf(w, "Version: %s | Author: %s | License: %s\n", version, author, license)
	blueColor.Fprintln(w, line)
	cyanColor.Fprintln(w, "Type CMM statements and press enter.")
	cyanColor.Fprintln(w, "Type '.exit' to quit.")
	blueColor.Fprintln(w, line)
}

// evalLine parses in as a standalone fragment and executes its top-level
// statements one by one against ev's persistent frame, printing the value
// of any bare expression statement the way an interactive shell does.
func evalLine(ev *eval.Evaluator, in string) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(os.Stderr, "CMM Runtime Error: %v\n", r)
		}
	}()

	sm := sourcemgr.NewFromBytes("<repl>", []byte(in), true)
	p := parser.New(sm)
	prog := p.Parse()
	if p.HasErrors() {
		for _, e := range p.Errors() {
			redColor.Fprintf(os.Stderr, "%s\n", e)
		}
		return
	}

	ev.MergeDefinitions(prog)

	for _, stmt := range prog.TopLevel.Stmts {
		v, err := ev.EvalLine(stmt)
		if err != nil {
			redColor.Fprintf(os.Stderr, "CMM Runtime Error: %s\n", err)
			return
		}
		if v.Type != value.Void {
			yellowColor.Fprintln(os.Stdout, v.ToString())
		}
	}
}
