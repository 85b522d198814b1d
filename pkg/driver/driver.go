// Package driver orchestrates the tokenize, parse, and interpret phases and
// owns the pipeline configuration. It is the single entry point the CLI and
// the fixture tests run programs through.
package driver

import (
	"fmt"
	"io"
	"strings"

	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

// Phase tags which pipeline stage produced a result's diagnostics.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseSyntax
	PhaseGrammar
	PhaseRuntime
)

// Header returns the banner printed above this phase's diagnostics.
func (p Phase) Header() string {
	switch p {
	case PhaseSyntax:
		return "LOX: SYNTAX ERROR"
	case PhaseGrammar:
		return "LOX: GRAMMAR ERROR"
	case PhaseRuntime:
		return "LOX: RUNTIME ERROR"
	default:
		return ""
	}
}

// Result is the outcome of one pipeline run. Env is the live global scope,
// returned so interactive drivers can carry bindings into the next run.
type Result struct {
	Status      int
	Phase       Phase
	Diagnostics []string
	Env         *runtime.Environment
}

// Failed reports whether the run produced diagnostics.
func (r Result) Failed() bool {
	return r.Status != 0
}

// Run executes src through the full pipeline. stdout receives print output;
// debugOut receives token, tree, and environment dumps when cfg asks for
// them. A nil env starts a fresh global scope.
func Run(src string, cfg Config, stdout, debugOut io.Writer, env *runtime.Environment) Result {
	if env == nil {
		env = runtime.NewEnvironment(nil)
	}
	if debugOut == nil {
		debugOut = io.Discard
	}
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}

	tokens, lexErrs := lexer.Scan(src)
	if cfg.TokenDebug {
		for _, tok := range tokens {
			fmt.Fprintln(debugOut, tok)
		}
	}
	if lexErrs.HasErrors() {
		return Result{Status: 1, Phase: PhaseSyntax, Diagnostics: lexErrs.Messages(), Env: env}
	}

	// A lone end marker means blank input; the parser would only make
	// looser assertions if it had to tolerate that.
	if tokens[0].Type == token.EOF {
		return Result{Env: env}
	}

	program, parseErrs := parser.Parse(tokens, cfg.ParserErrorLimit)
	if cfg.ParseDebug && program != nil {
		for _, stmt := range program {
			fmt.Fprintln(debugOut, stmt)
		}
	}
	if parseErrs.HasErrors() {
		return Result{Status: 1, Phase: PhaseGrammar, Diagnostics: parseErrs.Messages(), Env: env}
	}

	interp := interpreter.New(env)
	interp.SetOutput(stdout)
	status, runErrs, env := interp.Interpret(program)

	if cfg.EnvDebug {
		for _, key := range env.Keys() {
			val, _ := env.Get(key)
			fmt.Fprintf(debugOut, "%s = %s\n", key, runtime.Format(val))
		}
	}

	if status != 0 {
		return Result{Status: status, Phase: PhaseRuntime, Diagnostics: runErrs.Messages(), Env: env}
	}
	return Result{Env: env}
}
