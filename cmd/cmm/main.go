/*
File    : cmm/cmd/cmm/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package main is the entry point for the CMM interpreter. It reads a CMM
source file and runs it. An optional leading mode flag instead dumps its
tokens or its AST and stops, or dumps its AST or echoes the source before
running.
*/
package main

import (
	"fmt"
	"os"

	"github.com/akashmaji946/cmm/eval"
	"github.com/akashmaji946/cmm/lexer"
	"github.com/akashmaji946/cmm/parser"
	"github.com/akashmaji946/cmm/sourcemgr"
	"github.com/fatih/color"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

const (
	usage = `cmm - a small C-like interpreter

USAGE:
  cmm [flag] <source-file> [program-args...]

FLAGS:
  -l, --lex      dump the token stream, then stop
  -p, --parse    dump the parsed AST, then stop
  -d, --debug    dump the AST, then interpret
  -f, --file     echo the source file, then interpret
  -h, --help     print this message

Any positional arguments after <source-file> are passed to the program's
main() as a string array.`
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		cyanColor.Println(usage)
		return 1
	}

	mode := ""
	switch args[0] {
	case "-h", "--help":
		cyanColor.Println(usage)
		return 0
	case "-l", "--lex", "-p", "--parse", "-d", "--debug", "-f", "--file":
		mode = args[0]
		args = args[1:]
	}

	if len(args) == 0 {
		redColor.Fprintln(os.Stderr, "[USAGE ERROR] missing source file")
		return 1
	}
	sourceFile := args[0]
	programArgs := args[1:]

	src, err := os.ReadFile(sourceFile)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", sourceFile, err)
		return 1
	}

	if mode == "-f" || mode == "--file" {
		cyanColor.Fprintln(os.Stdout, string(src))
	}

	sm := sourcemgr.NewFromBytes(sourceFile, src, true)

	if mode == "-l" || mode == "--lex" {
		dumpTokens(sm)
		return 0
	}

	p := parser.New(sm)
	prog := p.Parse()
	if p.HasErrors() {
		for _, e := range p.Errors() {
			redColor.Fprintf(os.Stderr, "[PARSE ERROR] %s\n", e)
		}
		return 1
	}

	if mode == "-p" || mode == "--parse" {
		parser.Dump(os.Stdout, prog)
		return 0
	}
	if mode == "-d" || mode == "--debug" {
		parser.Dump(os.Stdout, prog)
	}

	code := eval.Main(prog, programArgs)
	if code != 0 {
		yellowColor.Fprintf(os.Stderr, "exit code: %d\n", code)
	}
	return code
}

func dumpTokens(sm *sourcemgr.SourceManager) {
	lex := lexer.New(sm)
	for {
		tok := lex.Next()
		fmt.Println(tok.String())
		if tok.Type == lexer.EOF {
			break
		}
	}
}
