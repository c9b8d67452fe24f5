// Command mvslc compiles a single source file to x86-64 AT&T assembly.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"mvslc/internal/backend/x86"
	"mvslc/internal/check"
	"mvslc/internal/cli"
	"mvslc/internal/ir"
	"mvslc/internal/lexer"
	"mvslc/internal/parser"
)

func main() {
	opt, err := cli.ParseArgs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cli.PrintHelp()
		os.Exit(2)
	}
	if opt.Help {
		cli.PrintHelp()
		return
	}
	if opt.Version {
		cli.PrintVersion()
		return
	}
	if err := run(opt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run chains the five pipeline stages in order, each consuming the
// previous stage's full output; there are no suspension points between
// them. Behavior is controlled entirely by opt.
func run(opt cli.Options) error {
	src, file, err := readSource(opt.Src)
	if err != nil {
		return fmt.Errorf("could not read source: %w", err)
	}

	start := time.Now()
	tokens, err := lexer.Lex(string(src), file)
	if err != nil {
		return err
	}
	if opt.Verbose {
		fmt.Fprintf(os.Stderr, "lex: %s\n", time.Since(start))
	}

	if opt.TokenStream {
		for _, t := range tokens {
			fmt.Println(t)
		}
		return nil
	}

	start = time.Now()
	root, err := parser.Parse(tokens, file)
	if err != nil {
		return err
	}
	if opt.Verbose {
		fmt.Fprintf(os.Stderr, "parse: %s\n", time.Since(start))
	}

	start = time.Now()
	_, rootTable, err := check.Check(root)
	if err != nil {
		return err
	}
	if opt.Verbose {
		fmt.Fprintf(os.Stderr, "check: %s\n", time.Since(start))
	}

	if opt.PrintAST {
		var sb strings.Builder
		root.Print(&sb, 0)
		fmt.Print(sb.String())
		return nil
	}

	start = time.Now()
	prog, err := ir.Generate(root, rootTable)
	if err != nil {
		return err
	}
	if opt.Verbose {
		fmt.Fprintf(os.Stderr, "ir: %s\n", time.Since(start))
	}

	start = time.Now()
	asm := x86.Emit(prog)
	if opt.Verbose {
		fmt.Fprintf(os.Stderr, "emit: %s\n", time.Since(start))
	}

	if opt.Out == "" {
		fmt.Print(asm)
		return nil
	}
	return os.WriteFile(opt.Out, []byte(asm), 0o644)
}

// readSource reads opt.Src, or stdin (reported as "<stdin>" in
// diagnostics) when no source path was given.
func readSource(path string) ([]byte, string, error) {
	if path == "" {
		src, err := io.ReadAll(os.Stdin)
		return src, "<stdin>", err
	}
	src, err := os.ReadFile(path)
	return src, path, err
}
