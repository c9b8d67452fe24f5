// Package cli parses the compiler's command-line arguments with a
// hand-rolled scanning loop over os.Args, covering the flag surface
// this compiler's single x86-64 target needs.
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
)

const version = "mvslc 1.0"

// Options holds every flag the compiler accepts.
type Options struct {
	Src         string // input source path
	Out         string // output assembly path ("-o"); defaults to stdout if empty
	TokenStream bool   // -ts: print the token stream and exit
	PrintAST    bool   // -ast: print the parsed AST and exit
	Verbose     bool   // -vb: log stage timings to stderr
	Help        bool   // -h / -help
	Version     bool   // -v / -version
}

// ParseArgs scans os.Args[1:] into Options.
func ParseArgs() (Options, error) {
	var opt Options
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "-help":
			opt.Help = true
		case "-v", "-version":
			opt.Version = true
		case "-ts":
			opt.TokenStream = true
		case "-ast":
			opt.PrintAST = true
		case "-vb":
			opt.Verbose = true
		case "-o":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("-o requires an output path")
			}
			i++
			opt.Out = args[i]
		default:
			if len(args[i]) > 0 && args[i][0] == '-' {
				return opt, fmt.Errorf("unrecognized flag %q", args[i])
			}
			if opt.Src != "" {
				return opt, fmt.Errorf("unexpected argument %q", args[i])
			}
			opt.Src = args[i]
		}
	}
	return opt, nil
}

// PrintHelp writes the usage summary to stderr.
func PrintHelp() {
	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "usage: mvslc [flags] <source>")
	fmt.Fprintln(w, "-o <path>\toutput assembly path (default: stdout)")
	fmt.Fprintln(w, "-ts\tprint the token stream and exit")
	fmt.Fprintln(w, "-ast\tprint the parsed AST and exit")
	fmt.Fprintln(w, "-vb\tlog stage timings to stderr")
	fmt.Fprintln(w, "-h, -help\tprint this message and exit")
	fmt.Fprintln(w, "-v, -version\tprint the compiler version and exit")
	w.Flush()
}

// PrintVersion writes the compiler's version string to stdout.
func PrintVersion() {
	fmt.Println(version)
}
