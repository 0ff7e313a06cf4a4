// Command m3lc runs lambda-calculus programs: it parses a file of named
// definitions plus a main term, unrolls the definitions into one closed term,
// reduces it to beta-normal form with normal-order reduction, and prints the
// result, optionally with every intermediate step and with what familiar
// value (Church numeral, boolean) the normal form encodes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/samber/lo"

	m3lc "github.com/nihilistkitten/m3lc"
)

const (
	appName     = "m3lc"
	historyFile = ".m3lc_history"
	promptMain  = "==> "
	promptCont  = "... "

	// Default REPL step bound. The calculus is untyped, so an entry may have
	// no normal form; interactive use should not hang on a typo'd Omega.
	defaultREPLSteps = 100_000
)

var (
	banner = fmt.Sprintf("m3lc %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", m3lc.Version)

	helpText = `
REPL input:
  name := term   Add a definition to the session.
  term           Unroll the session definitions around the term, reduce, print.

REPL commands:
  :help          Show this help
  :list          List the session definitions
  :reset         Drop all session definitions
  :steps N       Set the reduction step bound (0 = unbounded)
  :quit          Exit the REPL
`

	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(m3lc.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`m3lc %s — an ML-flavored lambda calculus

Usage:
  %s run [-verbose] [-steps N] <file.m3lc>   Reduce a program to normal form.
  %s repl                                    Start the REPL.
  %s version                                 Print the version.

Flags for run:
  -verbose   Print every intermediate reduction step.
  -steps N   Give up after N reduction steps (0 = no bound; beware that a
             term without a normal form then reduces forever).

`, m3lc.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "print each beta-reduction step")
	steps := fs.Int("steps", 0, "maximum number of reduction steps (0 = unbounded)")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run [-verbose] [-steps N] <file.m3lc>\n", appName)
		return 2
	}
	path := fs.Arg(0)

	srcBytes, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
		return 1
	}
	src := string(srcBytes)

	file, err := m3lc.ParseFile(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, m3lc.WrapErrorWithName(err, filepath.Base(path), src).Error())
		return 1
	}

	term := file.Unroll()
	result, done := reduceBounded(term, *steps, *verbose, os.Stdout)
	if !done {
		fmt.Fprintln(os.Stderr, red(fmt.Sprintf("no normal form within %d steps", *steps)))
		return 1
	}

	fmt.Println(result)
	printMatches(os.Stdout, result)
	return 0
}

// reduceBounded drives a reduction, printing each intermediate term to w when
// verbose. max <= 0 means no bound. The second result is false when the bound
// was hit before reaching a normal form.
func reduceBounded(t m3lc.Term, max int, verbose bool, w io.Writer) (m3lc.Term, bool) {
	run := m3lc.NewReduction(t)
	if verbose {
		fmt.Fprintln(w, run.Term())
	}
	for n := 0; ; n++ {
		if max > 0 && n >= max {
			return run.Term(), false
		}
		next, ok := run.Next()
		if !ok {
			return run.Term(), true
		}
		if verbose {
			fmt.Fprintln(w, next)
		}
	}
}

// printMatches prints the classifier's verdicts: inline when there is one,
// as a list when the encoding is ambiguous (zero and false coincide).
func printMatches(w io.Writer, t m3lc.Term) {
	matches := m3lc.Classify(t)
	if len(matches) == 0 {
		return
	}
	fmt.Fprintln(w)
	if len(matches) == 1 {
		fmt.Fprintf(w, "Alpha-equivalent to: %s\n", green(matches[0]))
		return
	}
	fmt.Fprintln(w, "Alpha-equivalent to:")
	for _, line := range lo.Map(matches, func(m string, _ int) string { return " - " + green(m) }) {
		fmt.Fprintln(w, line)
	}
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	var defns []m3lc.Defn
	stepCap := defaultREPLSteps

	for {
		entry, ok := readEntry(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(entry)

		if strings.HasPrefix(trimmed, ":") {
			if quit := replCommand(trimmed, &defns, &stepCap); quit {
				return 0
			}
			continue
		}

		defn, term, err := m3lc.ParseInput(entry)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(m3lc.WrapErrorWithSource(err, entry).Error()))
			continue
		}

		if defn != nil {
			// Redefinition is allowed; the later entry shadows, like the
			// sequential-let semantics of a file.
			defns = append(defns, *defn)
			continue
		}

		file := &m3lc.File{Defns: defns, Main: term}
		result, done := reduceBounded(file.Unroll(), stepCap, false, os.Stdout)
		if !done {
			fmt.Fprintln(os.Stderr, red(fmt.Sprintf(
				"no normal form within %d steps (use :steps to change the bound)", stepCap)))
			continue
		}
		fmt.Println(result)
		printMatches(os.Stdout, result)
	}
}

// readEntry reads one logical entry, prompting for continuation lines while
// the parser reports the input as merely incomplete (unclosed paren, dangling
// ":=" and so on). Returns false on EOF.
func readEntry(ln *liner.State) (string, bool) {
	buf, err := ln.Prompt(promptMain)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", true
	}
	if err != nil {
		return "", false // io.EOF: Ctrl+D
	}

	for {
		if strings.HasPrefix(strings.TrimSpace(buf), ":") || strings.TrimSpace(buf) == "" {
			return buf, true
		}
		_, _, perr := m3lc.ParseInput(buf)
		if perr == nil || !m3lc.IsIncomplete(perr) {
			return buf, true
		}
		more, err := ln.Prompt(promptCont)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return buf, true // EOF mid-entry: hand back what we have
		}
		buf += "\n" + more
	}
}

// replCommand handles a ":" command. Returns true to quit.
func replCommand(cmd string, defns *[]m3lc.Defn, stepCap *int) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Print(helpText)
	case ":list":
		if len(*defns) == 0 {
			fmt.Println("no definitions")
			break
		}
		for _, d := range *defns {
			fmt.Println(d)
		}
	case ":reset":
		*defns = nil
		fmt.Println("definitions cleared")
	case ":steps":
		if len(fields) != 2 {
			fmt.Fprintf(os.Stderr, "usage: :steps N (currently %d)\n", *stepCap)
			break
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			fmt.Fprintln(os.Stderr, red("expected a non-negative integer"))
			break
		}
		*stepCap = n
	default:
		fmt.Fprintln(os.Stderr, red(fmt.Sprintf("unknown command %s (try :help)", fields[0])))
	}
	return false
}
