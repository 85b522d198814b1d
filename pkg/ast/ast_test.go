package ast

import (
	"testing"

	"lox/interpreter-go/pkg/token"
)

func num(lexeme string, value float64) *Literal {
	return NewLiteral(token.New(token.Number, 1, lexeme, value))
}

func ident(name string) token.Token {
	return token.New(token.Identifier, 1, name, nil)
}

func TestRenderBinaryPrefixForm(t *testing.T) {
	expr := NewBinary(num("1", 1), token.New(token.Plus, 1, "+", nil), num("2", 2))
	if got := expr.String(); got != "(+ 1 2)" {
		t.Fatalf("got %q, want %q", got, "(+ 1 2)")
	}
}

func TestRenderNestedExpression(t *testing.T) {
	// 1 + 2 * 3 parsed with standard precedence.
	inner := NewBinary(num("2", 2), token.New(token.Star, 1, "*", nil), num("3", 3))
	expr := NewBinary(num("1", 1), token.New(token.Plus, 1, "+", nil), inner)
	if got := expr.String(); got != "(+ 1 (* 2 3))" {
		t.Fatalf("got %q, want %q", got, "(+ 1 (* 2 3))")
	}
}

func TestRenderUnaryAndGrouping(t *testing.T) {
	expr := NewUnary(token.New(token.Minus, 1, "-", nil), NewGrouping(num("4", 4)))
	if got := expr.String(); got != "(- (group 4))" {
		t.Fatalf("got %q, want %q", got, "(- (group 4))")
	}
}

func TestRenderAssignmentAndLogical(t *testing.T) {
	assign := NewAssignment(ident("x"), NewLogical(
		NewVariable(ident("a")),
		token.New(token.Or, 1, "or", nil),
		NewVariable(ident("b")),
	))
	if got := assign.String(); got != "(= x (or a b))" {
		t.Fatalf("got %q, want %q", got, "(= x (or a b))")
	}
}

func TestRenderStatements(t *testing.T) {
	decl := NewVariableDeclaration(ident("x"), num("1", 1))
	if got := decl.String(); got != "(var x 1)" {
		t.Fatalf("got %q", got)
	}

	block := NewBlock([]Statement{decl, NewPrint(NewVariable(ident("x")))})
	if got := block.String(); got != "(block (var x 1) (print x))" {
		t.Fatalf("got %q", got)
	}

	branch := NewBranch(NewVariable(ident("c")), NewExpressionStatement(num("1", 1)), nil)
	if got := branch.String(); got != "(if c (expr 1))" {
		t.Fatalf("got %q", got)
	}

	branchElse := NewBranch(NewVariable(ident("c")),
		NewExpressionStatement(num("1", 1)),
		NewExpressionStatement(num("2", 2)))
	if got := branchElse.String(); got != "(if c (expr 1) (expr 2))" {
		t.Fatalf("got %q", got)
	}

	loop := NewLoop(NewVariable(ident("c")), NewPrint(num("1", 1)))
	if got := loop.String(); got != "(while c (print 1))" {
		t.Fatalf("got %q", got)
	}
}

func TestNodeTypesAreDistinct(t *testing.T) {
	nodes := []Node{
		num("1", 1),
		NewVariable(ident("x")),
		NewUnary(token.New(token.Bang, 1, "!", nil), num("1", 1)),
		NewBinary(num("1", 1), token.New(token.Plus, 1, "+", nil), num("2", 2)),
		NewLogical(num("1", 1), token.New(token.And, 1, "and", nil), num("2", 2)),
		NewGrouping(num("1", 1)),
		NewAssignment(ident("x"), num("1", 1)),
		NewExpressionStatement(num("1", 1)),
		NewPrint(num("1", 1)),
		NewVariableDeclaration(ident("x"), num("1", 1)),
		NewBlock(nil),
		NewBranch(num("1", 1), NewPrint(num("1", 1)), nil),
		NewLoop(num("1", 1), NewPrint(num("1", 1))),
	}
	seen := map[NodeType]bool{}
	for _, n := range nodes {
		if seen[n.NodeType()] {
			t.Fatalf("duplicate node type %s", n.NodeType())
		}
		seen[n.NodeType()] = true
	}
}
