package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return i.evaluateLiteral(n)
	case *ast.Variable:
		val, err := env.Get(n.Name.Lexeme)
		if err != nil {
			return nil, &RuntimeError{Kind: UndefinedVariable, Line: n.Name.Line, Message: err.Error()}
		}
		return val, nil
	case *ast.Grouping:
		return i.evaluateExpression(n.Inner, env)
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Logical:
		return i.evaluateLogical(n, env)
	case *ast.Assignment:
		return i.evaluateAssignment(n, env)
	default:
		return nil, internalError(node)
	}
}

func (i *Interpreter) evaluateLiteral(lit *ast.Literal) (runtime.Value, error) {
	tok := lit.Value
	switch tok.Type {
	case token.Number:
		num, ok := tok.Literal.(float64)
		if !ok {
			return nil, internalError(lit)
		}
		return runtime.FloatValue{Val: num}, nil
	case token.String:
		str, ok := tok.Literal.(string)
		if !ok {
			return nil, internalError(lit)
		}
		return runtime.StringValue{Val: str}, nil
	case token.True:
		return runtime.BoolValue{Val: true}, nil
	case token.False:
		return runtime.BoolValue{Val: false}, nil
	case token.Nil:
		return runtime.NilValue{}, nil
	default:
		return nil, internalError(lit)
	}
}

func (i *Interpreter) evaluateUnary(n *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Type {
	case token.Minus:
		num, ok := right.(runtime.FloatValue)
		if !ok {
			return nil, typeError(n.Operator.Line,
				"bad operand type for unary '-': %s", operandRepr(right))
		}
		return runtime.FloatValue{Val: -num.Val}, nil
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.Truthy(right)}, nil
	default:
		return nil, internalError(n)
	}
}

func (i *Interpreter) evaluateBinary(n *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}

	op := n.Operator
	switch op.Type {
	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equals(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equals(left, right)}, nil
	case token.Plus:
		if ls, ok := left.(runtime.StringValue); ok {
			if rs, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: ls.Val + rs.Val}, nil
			}
		}
	}

	// Everything below is float-only arithmetic or ordering.
	lnum, lok := left.(runtime.FloatValue)
	rnum, rok := right.(runtime.FloatValue)
	if !lok || !rok {
		return nil, typeError(op.Line, "unsupported operand types for '%s': %s and %s",
			op.Lexeme, operandRepr(left), operandRepr(right))
	}

	switch op.Type {
	case token.Plus:
		return runtime.FloatValue{Val: lnum.Val + rnum.Val}, nil
	case token.Minus:
		return runtime.FloatValue{Val: lnum.Val - rnum.Val}, nil
	case token.Star:
		return runtime.FloatValue{Val: lnum.Val * rnum.Val}, nil
	case token.Slash:
		// IEEE float semantics; division by zero yields an infinity.
		return runtime.FloatValue{Val: lnum.Val / rnum.Val}, nil
	case token.Greater:
		return runtime.BoolValue{Val: lnum.Val > rnum.Val}, nil
	case token.GreaterEqual:
		return runtime.BoolValue{Val: lnum.Val >= rnum.Val}, nil
	case token.Less:
		return runtime.BoolValue{Val: lnum.Val < rnum.Val}, nil
	case token.LessEqual:
		return runtime.BoolValue{Val: lnum.Val <= rnum.Val}, nil
	default:
		return nil, internalError(n)
	}
}

// evaluateLogical short-circuits and returns the deciding operand's actual
// value, not a coerced boolean.
func (i *Interpreter) evaluateLogical(n *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Type {
	case token.Or:
		if runtime.Truthy(left) {
			return left, nil
		}
	case token.And:
		if !runtime.Truthy(left) {
			return left, nil
		}
	default:
		return nil, internalError(n)
	}
	return i.evaluateExpression(n.Right, env)
}

func (i *Interpreter) evaluateAssignment(n *ast.Assignment, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(n.Name.Lexeme, val); err != nil {
		return nil, &RuntimeError{Kind: UndeclaredAssignment, Line: n.Name.Line, Message: err.Error()}
	}
	return val, nil
}

// operandRepr renders an operand for a type error message; strings are
// quoted so "1" and 1 stay distinguishable.
func operandRepr(val runtime.Value) string {
	if s, ok := val.(runtime.StringValue); ok {
		return fmt.Sprintf("'%s'", s.Val)
	}
	return runtime.Format(val)
}
