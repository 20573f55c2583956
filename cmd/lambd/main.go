package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"lambd/interpreter-go/pkg/ast"
	"lambd/interpreter-go/pkg/driver"
	"lambd/interpreter-go/pkg/lexer"
	"lambd/interpreter-go/pkg/parser"
	"lambd/interpreter-go/pkg/runtime"
)

const cliToolVersion = "lambd 0.1.0-dev"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	expr       string
	hasExpr    bool
	dumpTokens bool
	dumpAST    bool
	verbose    bool
	file       string
}

type cli struct {
	stdout io.Writer
	stderr io.Writer
	errFmt *color.Color
	valFmt *color.Color
}

// run takes the full argv, program name included.
func run(argv []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	opts, code, ok := parseOptions(argv, stdout, stderr)
	if !ok {
		return code
	}

	cfg, err := driver.ResolveConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	c.configureColor(cfg.Color)

	var logger *log.Logger
	if opts.verbose {
		logger = log.New(stderr, "lambd: ", 0)
	}
	session := driver.NewSession(cfg, logger)

	switch {
	case opts.hasExpr:
		return c.execute(session, opts, opts.expr)
	case opts.file != "":
		source, err := os.ReadFile(opts.file)
		if err != nil {
			fmt.Fprintf(stderr, "failed to read %s: %v\n", opts.file, err)
			return 1
		}
		return c.execute(session, opts, string(source))
	default:
		return c.repl(session, cfg)
	}
}

func parseOptions(argv []string, stdout, stderr io.Writer) (options, int, bool) {
	var opts options
	parsed, optind, err := getopt.Getopts(argv, "c:e:tavhV")
	if err != nil {
		fmt.Fprintln(stderr, err)
		printUsage(stderr)
		return opts, 2, false
	}
	for _, opt := range parsed {
		switch opt.Option {
		case 'c':
			opts.configPath = opt.Value
		case 'e':
			opts.expr = opt.Value
			opts.hasExpr = true
		case 't':
			opts.dumpTokens = true
		case 'a':
			opts.dumpAST = true
		case 'v':
			opts.verbose = true
		case 'h':
			printUsage(stderr)
			return opts, 0, false
		case 'V':
			fmt.Fprintln(stdout, cliToolVersion)
			return opts, 0, false
		}
	}
	rest := argv[optind:]
	switch {
	case len(rest) > 1:
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(rest[1:], " "))
		return opts, 2, false
	case len(rest) == 1 && opts.hasExpr:
		fmt.Fprintln(stderr, "-e cannot be combined with a source file")
		return opts, 2, false
	case len(rest) == 1:
		opts.file = rest[0]
	}
	return opts, 0, true
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  lambd [-c config] [-t] [-a] [-v] <file>")
	fmt.Fprintln(w, "  lambd [-c config] [-t] [-a] [-v] -e <expression>")
	fmt.Fprintln(w, "  lambd [-c config] [-v]              start the REPL")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  -t  print tokens before evaluating")
	fmt.Fprintln(w, "  -a  print the syntax tree as YAML before evaluating")
	fmt.Fprintln(w, "  -v  log pipeline stages and function calls")
	fmt.Fprintln(w, "  -h  show this help")
	fmt.Fprintln(w, "  -V  show the version")
}

func (c *cli) configureColor(mode driver.ColorMode) {
	c.errFmt = color.New(color.FgRed)
	c.valFmt = color.New(color.FgCyan)
	switch mode {
	case driver.ColorAlways:
		c.errFmt.EnableColor()
		c.valFmt.EnableColor()
	case driver.ColorNever:
		c.errFmt.DisableColor()
		c.valFmt.DisableColor()
	}
}

// execute runs a whole program and prints its final value. Each stage runs
// once; the dumps reuse the tokens and tree that get evaluated.
func (c *cli) execute(session *driver.Session, opts options, source string) int {
	tokens := session.Tokenize(source)
	if opts.dumpTokens {
		for _, tok := range tokens {
			fmt.Fprintln(c.stdout, tok.String())
		}
	}
	program, err := session.ParseTokens(tokens)
	if err != nil {
		c.reportError(err)
		return 1
	}
	if opts.dumpAST {
		if err := dumpProgram(c.stdout, program); err != nil {
			fmt.Fprintf(c.stderr, "failed to encode syntax tree: %v\n", err)
			return 1
		}
	}
	val, err := session.Interpret(program)
	if err != nil {
		c.reportError(err)
		return 1
	}
	c.printValue(val)
	return 0
}

func dumpProgram(w io.Writer, program *ast.Program) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(program); err != nil {
		return err
	}
	return enc.Close()
}

func (c *cli) reportError(err error) {
	c.errFmt.Fprintln(c.stderr, err.Error())
}

func (c *cli) printValue(val runtime.Value) {
	if val == nil {
		return
	}
	c.valFmt.Fprintln(c.stdout, runtime.Format(val))
}

func (c *cli) repl(session *driver.Session, cfg *driver.Config) int {
	fmt.Fprintf(c.stdout, "%s (type :quit to exit)\n", cliToolVersion)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		source, ok := readStatement(ln, cfg.Prompt, cfg.ContinuationPrompt)
		if !ok {
			fmt.Fprintln(c.stdout)
			return 0
		}
		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))
		if done := c.replCommand(session, trimmed); done {
			return 0
		}
	}
}

// replCommand handles one complete REPL entry and reports whether the
// session should end.
func (c *cli) replCommand(session *driver.Session, input string) bool {
	switch input {
	case "exit", "quit", ":quit":
		return true
	case ":env":
		for _, binding := range session.Bindings() {
			fmt.Fprintf(c.stdout, "%s = %s\n", binding.Name, binding.Value)
		}
		return false
	}
	if strings.HasPrefix(input, ":") {
		fmt.Fprintln(c.stdout, "unknown command. Type :env or :quit.")
		return false
	}
	val, err := session.Run(input)
	if err != nil {
		c.reportError(err)
		return false
	}
	c.printValue(val)
	return false
}

type prompter interface {
	Prompt(prompt string) (string, error)
}

// readStatement keeps prompting while the buffered text fails to parse only
// because input ended early.
func readStatement(ln prompter, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := parser.Parse(lexer.Tokenize(src)); parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
