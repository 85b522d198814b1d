package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expr, env)
		return err
	case *ast.Print:
		return i.executePrint(n, env)
	case *ast.VariableDeclaration:
		return i.executeVariableDeclaration(n, env)
	case *ast.Block:
		return i.executeBlock(n, env)
	case *ast.Branch:
		return i.executeBranch(n, env)
	case *ast.Loop:
		return i.executeLoop(n, env)
	default:
		return internalError(node)
	}
}

func (i *Interpreter) executePrint(n *ast.Print, env *runtime.Environment) error {
	val, err := i.evaluateExpression(n.Expr, env)
	if err != nil {
		return err
	}
	fmt.Fprintln(i.stdout, runtime.Format(val))
	return nil
}

func (i *Interpreter) executeVariableDeclaration(n *ast.VariableDeclaration, env *runtime.Environment) error {
	val, err := i.evaluateExpression(n.Initializer, env)
	if err != nil {
		return err
	}
	env.Define(n.Name.Lexeme, val)
	return nil
}

// executeBlock runs the contained statements against a fresh child scope.
// The scope is unreachable once the block exits, on the error path included,
// so inner declarations never leak outward.
func (i *Interpreter) executeBlock(n *ast.Block, env *runtime.Environment) error {
	scope := runtime.NewEnvironment(env)
	for _, stmt := range n.Statements {
		if err := i.executeStatement(stmt, scope); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeBranch(n *ast.Branch, env *runtime.Environment) error {
	cond, err := i.evaluateExpression(n.Condition, env)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		return i.executeStatement(n.Then, env)
	}
	if n.Else != nil {
		return i.executeStatement(n.Else, env)
	}
	return nil
}

// executeLoop re-evaluates the condition before every iteration. There is no
// iteration cap; a runaway loop runs until its condition turns falsy.
func (i *Interpreter) executeLoop(n *ast.Loop, env *runtime.Environment) error {
	for {
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
		if err := i.executeStatement(n.Body, env); err != nil {
			return err
		}
	}
}
