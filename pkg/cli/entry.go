// Package cli implements the plc command driver: it picks a mode, feeds
// the source through the pipeline, and reports the first failure with its
// offset.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/plclang/plc/internal/analyzer"
	"github.com/plclang/plc/internal/diagnostics"
	"github.com/plclang/plc/internal/emitter"
	"github.com/plclang/plc/internal/evaluator"
	"github.com/plclang/plc/internal/lexer"
	"github.com/plclang/plc/internal/parser"
	"github.com/plclang/plc/internal/pipeline"
	"github.com/plclang/plc/internal/prettyprinter"
	"github.com/plclang/plc/internal/project"
)

const usage = `usage: plc <mode> [flags] [file]

modes:
  lex      print the token stream
  parse    parse and print the canonical source
  analyze  run semantic analysis
  run      execute the program
  emit     generate target-language source

A file of - (or none, with no plc.yaml entry) reads standard input.

flags:
  -o file  write emitter output to file
`

// Entry runs the driver and returns the process exit code: non-zero on
// any pass failure.
func Entry(args []string) int {
	cfg, err := project.Load(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	mode := cfg.Mode
	if len(args) > 0 {
		mode = args[0]
		args = args[1:]
	}
	if mode == "" || mode == "help" || mode == "-h" || mode == "--help" {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	flags := flag.NewFlagSet("plc", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	out := flags.String("o", "", "output file for emit mode")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	path := cfg.Entry
	if flags.NArg() > 0 {
		path = flags.Arg(0)
	}
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch mode {
	case "lex":
		return runLex(source, path)
	case "parse":
		return runParse(source, path)
	case "analyze":
		return runAnalyze(source, path)
	case "run":
		return runProgram(source, path)
	case "emit":
		return runEmit(source, path, cfg, *out)
	default:
		fmt.Fprintf(os.Stderr, "plc: unknown mode %q\n", mode)
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
}

func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newContext(source, path string) *pipeline.Context {
	return &pipeline.Context{SourceCode: source, FilePath: path, Out: os.Stdout}
}

// report prints the first diagnostic, colored when stderr is a terminal,
// and returns the exit code.
func report(ctx *pipeline.Context) int {
	err := ctx.FirstError()
	if err == nil {
		return 0
	}
	printError(err)
	return 1
}

func printError(err *diagnostics.DiagnosticError) {
	msg := err.Error()
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(os.Stderr, msg)
}

func runLex(source, path string) int {
	ctx := pipeline.New(&lexer.LexerProcessor{}).Run(newContext(source, path))
	if code := report(ctx); code != 0 {
		return code
	}
	for _, tok := range ctx.Tokens {
		fmt.Println(tok)
	}
	return 0
}

func runParse(source, path string) int {
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	).Run(newContext(source, path))
	if code := report(ctx); code != 0 {
		return code
	}
	fmt.Print(prettyprinter.NewCodePrinter().Print(ctx.AstRoot))
	return 0
}

func runAnalyze(source, path string) int {
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
	).Run(newContext(source, path))
	return report(ctx)
}

func runProgram(source, path string) int {
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
		&evaluator.EvaluatorProcessor{},
	).Run(newContext(source, path))
	return report(ctx)
}

func runEmit(source, path string, cfg *project.Config, outPath string) int {
	if outPath == "" {
		outPath = cfg.Emit.Out
	}

	ctx := newContext(source, path)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		ctx.Out = f
	}

	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
		&emitter.EmitterProcessor{ClassName: cfg.Emit.Class},
	).Run(ctx)
	return report(ctx)
}
