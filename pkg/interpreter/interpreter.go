// Package interpreter executes a parsed program by depth-first post-order
// tree walking. Runtime failures are fail-fast: the first one aborts the
// remainder of the program and surfaces through a single-slot diagnostic
// queue.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/runtime"
)

// RuntimeErrorLimit caps the per-run diagnostic queue. Evaluation stops at
// the first failure, so one slot is all a run can ever use.
const RuntimeErrorLimit = 1

// FailureKind categorizes a runtime failure.
type FailureKind int

const (
	// UndefinedVariable: a read of a name bound nowhere on the scope chain.
	UndefinedVariable FailureKind = iota
	// UndeclaredAssignment: an assignment whose target was never declared.
	UndeclaredAssignment
	// TypeError: an operator applied to operands it does not accept.
	TypeError
	// InternalError: a node variant reached evaluation with no handling.
	InternalError
)

// RuntimeError is the categorized failure produced by evaluation. Line is
// diag.SuppressLine when no source position applies.
type RuntimeError struct {
	Kind    FailureKind
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func typeError(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: TypeError, Line: line, Message: fmt.Sprintf(format, args...)}
}

func internalError(node ast.Node) *RuntimeError {
	return &RuntimeError{
		Kind:    InternalError,
		Line:    diag.SuppressLine,
		Message: fmt.Sprintf("no evaluation rule for %s node", node.NodeType()),
	}
}

// Interpreter walks statement and expression nodes against a live
// environment tree. The environment survives across runs so a REPL can keep
// its global bindings.
type Interpreter struct {
	env    *runtime.Environment
	stdout io.Writer
}

// New creates an interpreter over the given global environment; a nil env
// starts a fresh one.
func New(env *runtime.Environment) *Interpreter {
	if env == nil {
		env = runtime.NewEnvironment(nil)
	}
	return &Interpreter{env: env, stdout: os.Stdout}
}

// SetOutput redirects the print statement's sink.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.stdout = w
}

// GlobalEnvironment exposes the root scope (for tooling and tests).
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.env
}

// Interpret runs the top-level statement sequence in order. The first
// runtime failure stops execution; status is 0 on success, 1 on failure.
// The returned environment is the (possibly mutated) global scope.
func (i *Interpreter) Interpret(program []ast.Statement) (int, *diag.Handler, *runtime.Environment) {
	errs := diag.New(RuntimeErrorLimit)

	for _, stmt := range program {
		if err := i.executeStatement(stmt, i.env); err != nil {
			pushRuntimeError(errs, err)
			return 1, errs, i.env
		}
	}
	return 0, errs, i.env
}

func pushRuntimeError(errs *diag.Handler, err error) {
	if rerr, ok := err.(*RuntimeError); ok {
		errs.Push(rerr.Line, rerr.Message)
		return
	}
	errs.Push(diag.SuppressLine, err.Error())
}
