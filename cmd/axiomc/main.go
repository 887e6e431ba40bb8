/*
Axiomc is the command-line front end for the Axiom toolchain.

Usage:

	axiomc run <path>
	axiomc build
	axiomc lsp
	axiomc init <name> <bin|lib>

The flags are:

	-v, --version
		Print the current version and exit.

"run" compiles the given source file, then evaluates its "main" entrypoint
and prints the resulting integer. "build" is reserved and always fails.
"lsp" starts the language server, listening on a local TCP socket. "init"
scaffolds a new project directory.
*/
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/pflag"

	"github.com/axiomlang/axiom/compiler"
	"github.com/axiomlang/axiom/interp"
	"github.com/axiomlang/axiom/scaffold"
	axiomlsp "github.com/axiomlang/axiom/lsp"
)

const (
	// ExitSuccess indicates a successful invocation.
	ExitSuccess = iota

	// ExitUsageError indicates a malformed or missing command line.
	ExitUsageError

	// ExitCompileError indicates a lex/parse/analysis failure.
	ExitCompileError

	// ExitRuntimeError indicates a successfully compiled program that
	// failed during evaluation.
	ExitRuntimeError

	// ExitInitError indicates a setup step could not complete: reading the
	// source file, opening the lsp listener, or scaffolding a project.
	ExitInitError
)

const version = "0.1.0"

var flagVersion = pflag.BoolP("version", "v", false, "Print the current version and exit")

var returnCode = ExitSuccess

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()
	if *flagVersion {
		fmt.Printf("axiomc %s\n", version)
		return
	}

	args := pflag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "ERROR: no subcommand given\nDo -h for help.\n")
		returnCode = ExitUsageError
		return
	}

	switch args[0] {
	case "run":
		runCmd(args[1:])
	case "build":
		fmt.Fprintf(os.Stderr, "ERROR: build is reserved and not implemented\n")
		returnCode = ExitUsageError
	case "lsp":
		lspCmd(args[1:])
	case "init":
		initCmd(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown subcommand %q\n", args[0])
		returnCode = ExitUsageError
	}
}

func runCmd(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "ERROR: run requires exactly one path argument\n")
		returnCode = ExitUsageError
		return
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	res := compiler.Compile(string(data))
	if res.Errs.HasErrors() {
		for _, line := range res.Errs.Lines() {
			fmt.Fprintln(os.Stderr, line)
		}
		returnCode = ExitCompileError
		return
	}

	result, err := interp.New(res.File).RunMain()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitRuntimeError
		return
	}
	fmt.Println(result)
}

func lspCmd(args []string) {
	fs := pflag.NewFlagSet("lsp", pflag.ContinueOnError)
	addr := fs.StringP("listen", "l", "127.0.0.1:9999", "Address to listen on")
	if err := fs.Parse(args); err != nil {
		returnCode = ExitUsageError
		return
	}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not listen on %s: %s\n", *addr, err.Error())
		returnCode = ExitInitError
		return
	}
	defer ln.Close()

	fmt.Printf("axiomc lsp listening on %s\n", *addr)
	store := axiomlsp.NewStore()
	_ = store // not served: each accepted connection is closed without reading requests.
	for {
		conn, err := ln.Accept()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: accept failed: %s\n", err.Error())
			returnCode = ExitRuntimeError
			return
		}
		conn.Close()
	}
}

func initCmd(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "ERROR: init requires <name> and <bin|lib>\n")
		returnCode = ExitUsageError
		return
	}
	name := args[0]
	var kind scaffold.ProjectType
	switch args[1] {
	case "bin":
		kind = scaffold.Bin
	case "lib":
		kind = scaffold.Lib
	default:
		fmt.Fprintf(os.Stderr, "ERROR: project type must be \"bin\" or \"lib\", got %q\n", args[1])
		returnCode = ExitUsageError
		return
	}

	if err := scaffold.Init(".", name, kind); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
}
