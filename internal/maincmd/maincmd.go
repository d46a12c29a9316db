// Package maincmd implements the rlox command-line front end: argument
// parsing, the REPL loop, file-mode execution, and wiring the scanner,
// parser, resolver and interpreter stages together.
package maincmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/anthony-major/rlox/internal/replhist"
	"github.com/anthony-major/rlox/lang/interp"
	"github.com/anthony-major/rlox/lang/parser"
	"github.com/anthony-major/rlox/lang/resolver"
	"github.com/mna/mainer"
)

const binName = "rlox"

var (
	shortUsage = fmt.Sprintf("Usage: %s [script]\n", binName)

	longUsage = fmt.Sprintf(`usage: %s [script]
       %[1]s -h|--help
       %[1]s -v|--version

A tree-walking interpreter for a small, dynamically typed scripting
language.

With no arguments, %[1]s starts an interactive REPL, reading one line at a
time from standard input and running it as a complete program fragment.
With one argument, %[1]s reads that file as UTF-8 source and runs it.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -V --verbose              On REPL exit, report how many lines were
                                 read and replay the most recently entered
                                 ones.
`, binName)
)

// Cmd is the rlox command, parsed and run by mainer.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`
	Verbose bool `flag:"V,verbose"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(map[string]bool) {}

// Validate enforces the ≥2-args case as a CLI-misuse error: the positional
// arguments (after flags) are either empty (REPL) or a single script path.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) >= 2 {
		return fmt.Errorf("too many arguments")
	}
	return nil
}

// Main implements the CLI contract: 0 args run the REPL, 1 arg runs a
// script file. A ≥2-args invocation is rejected by Validate, which
// p.Parse below invokes on c's behalf and surfaces as a parse error, so
// that case never reaches the body of Main.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprint(stdio.Stdout, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	if len(c.args) == 1 {
		return runFile(stdio, c.args[0])
	}
	return runRepl(stdio, c.Verbose)
}

// runFile reads path as UTF-8 source and runs it as a single program. Parse
// and resolver errors, and a failure to read the file, set a failure exit
// code; runtime errors also set a failure exit code in file mode.
func runFile(stdio mainer.Stdio, path string) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stdout, "%s\n", err)
		return mainer.Failure
	}

	it := interp.New(stdio.Stdout)
	if ok := run(it, string(src), stdio); !ok {
		return mainer.Failure
	}
	return mainer.Success
}

// runRepl reads lines from stdin until EOF, running each as a complete
// program fragment against a persistent interpreter (so variables and
// functions defined on one line survive to the next). Errors are printed
// but never terminate the loop, and EOF always exits 0 regardless of
// whether the last line ran cleanly. In verbose mode, once stdin is
// exhausted it reports the total number of lines read and replays the
// most recently entered ones, from the session's replhist.History.
func runRepl(stdio mainer.Stdio, verbose bool) mainer.ExitCode {
	it := interp.New(stdio.Stdout)
	hist := replhist.New(256)

	scanner := bufio.NewScanner(stdio.Stdin)
	fmt.Fprint(stdio.Stdout, ">")
	for scanner.Scan() {
		line := scanner.Text()
		hist.Add(line)
		run(it, line, stdio)
		fmt.Fprint(stdio.Stdout, ">")
	}

	if verbose {
		fmt.Fprintf(stdio.Stdout, "\n(%d lines read)\n", hist.Total())
		for _, line := range hist.Recent() {
			fmt.Fprintf(stdio.Stdout, "  %s\n", line)
		}
	}
	return mainer.Success
}

// run parses, resolves and (if both succeed without error) evaluates src,
// printing any diagnostics to stdout in the "Line <n> at '<token>': <msg>"
// shape. It reports whether the run completed with no errors of any kind.
func run(it *interp.Interp, src string, stdio mainer.Stdio) bool {
	program, err := parser.Parse(src)
	if err != nil {
		for _, line := range parser.ErrorLines(err) {
			fmt.Fprintln(stdio.Stdout, line)
		}
		return false
	}

	locals, rerr := resolver.Resolve(program)
	if rerr != nil {
		for _, e := range rerr.(resolver.ErrorList) {
			fmt.Fprintln(stdio.Stdout, e.Error())
		}
		return false
	}

	if err := it.Run(program, locals); err != nil {
		fmt.Fprintln(stdio.Stdout, err.Error())
		return false
	}
	return true
}
