// Program talc embeds the talc interpreter behind a small command line:
// evaluate one expression, run script files, or start an interactive
// session.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"talc/engine/expr"
	"talc/engine/parser"
	"talc/engine/stdlib"
	"talc/lib/errs"
)

type talcArgs struct {
	Eval    string   `arg:"-e,--eval" help:"evaluate the given expression and exit"`
	Scripts []string `arg:"positional" help:"script files to run"`
	Verbose bool     `arg:"-v,--verbose" help:"enable debug logging"`
}

func main() {
	var flags talcArgs
	arg.MustParse(&flags)

	logger := buildLogger(flags.Verbose)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	registry := expr.NewRegistry()
	if err := stdlib.Register(registry, stdlib.Options{Log: logger}); err != nil {
		logger.Fatal("standard library bootstrap failed", zap.Error(err))
	}
	env := expr.NewEnv(expr.NewGlobals(), registry)

	switch {
	case flags.Eval != "":
		exitOn(runSource(flags.Eval, env, true))
	case len(flags.Scripts) > 0:
		for _, script := range flags.Scripts {
			data, err := os.ReadFile(script)
			if err != nil {
				logger.Fatal("cannot read script", zap.String("path", script), zap.Error(err))
			}
			exitOn(runSource(string(data), env, false))
		}
	default:
		repl(env)
	}
}

func buildLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return logger
}

// runSource evaluates a stream of expressions by re-entering the parser
// at each stop position until the input is exhausted.
func runSource(src string, env *expr.Env, print bool) error {
	rest := src
	for strings.TrimSpace(rest) != "" {
		res, err := parser.Parse(rest)
		if err != nil {
			return err
		}
		value, err := res.Expr.Eval(env)
		if err != nil {
			return err
		}
		if print {
			fmt.Println(value)
		}
		rest = rest[res.Stop:]
	}
	return nil
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, render(err))
		os.Exit(1)
	}
}

// render prefixes coded failures with their category so an escaped
// break/end is recognizable at the top level.
func render(err error) string {
	if code := errs.CodeOf(err); code != 0 {
		return fmt.Sprintf("%s error: %v", code.Category(), err)
	}
	return err.Error()
}

func repl(env *expr.Env) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := historyPath()
	if f, err := os.Open(history); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		input, err := line.Prompt("talc> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if err := runSource(input, env, true); err != nil {
			fmt.Println(render(err))
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".talc_history"
	}
	return filepath.Join(home, ".talc_history")
}
