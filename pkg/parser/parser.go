// Package parser builds the syntax tree from a token stream by recursive
// descent. Grammar violations are reported through a bounded diagnostic
// queue and recovered in panic mode: the parser discards tokens until the
// next statement boundary, so one bad statement never poisons the rest of
// the program.
package parser

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/token"
)

// DefaultErrorLimit is the diagnostic capacity used when callers pass a
// non-positive limit to Parse.
const DefaultErrorLimit = 10

var (
	// errSync unwinds a single statement after panic-mode recovery found a
	// statement boundary.
	errSync = errors.New("parser: synchronized")

	// errEndOfInput unwinds the whole parse; recovery hit the end marker.
	errEndOfInput = errors.New("parser: end of input")
)

// synchronization set: tokens that can begin a declaration or statement.
var boundaryTokens = map[token.Type]bool{
	token.Class:  true,
	token.Fun:    true,
	token.Var:    true,
	token.For:    true,
	token.If:     true,
	token.While:  true,
	token.Print:  true,
	token.Return: true,
}

type parser struct {
	tokens    []token.Token
	pos       int
	errs      *diag.Handler
	saturated bool
}

// Parse converts a finite, EOF-terminated token sequence into an ordered
// statement list. Recovered statements are returned even when diagnostics
// were queued; callers must treat a non-empty handler as a failed parse. A
// nil statement list means recovery ran off the end of the stream.
func Parse(tokens []token.Token, limit int) ([]ast.Statement, *diag.Handler) {
	if limit <= 0 {
		limit = DefaultErrorLimit
	}
	p := &parser{tokens: tokens, errs: diag.New(limit)}

	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		p.errs.Push(diag.SuppressLine, "token stream is missing its end marker")
		return nil, p.errs
	}

	program, err := p.program()
	if err != nil {
		return nil, p.errs
	}
	return program, p.errs
}

// Token handling.

func (p *parser) curToken() token.Token {
	return p.tokens[p.pos]
}

func (p *parser) curType() token.Type {
	return p.tokens[p.pos].Type
}

func (p *parser) prevToken() token.Token {
	return p.tokens[p.pos-1]
}

func (p *parser) advance() {
	if p.pos+1 < len(p.tokens) {
		p.pos++
	}
}

// report queues a diagnostic without abandoning the current production. Once
// the queue saturates, a single hidden-errors sentinel is appended and all
// further reports are dropped.
func (p *parser) report(line int, msg string) {
	if p.saturated {
		return
	}
	if !p.errs.Push(line, msg) {
		p.errs.Grow(1)
		p.errs.Push(line, "additional errors found (hidden)")
		p.saturated = true
	}
}

// trap reports a grammar violation at the current token, then enters panic
// mode: tokens are discarded until one that can start a new statement.
// Returns errEndOfInput when recovery exhausts the stream, errSync otherwise.
func (p *parser) trap(msg string) error {
	p.report(p.curToken().Line, msg)
	for {
		switch {
		case p.curType() == token.EOF:
			return errEndOfInput
		case boundaryTokens[p.curType()]:
			return errSync
		}
		p.advance()
	}
}

// checkSemicolon consumes the statement terminator or traps.
func (p *parser) checkSemicolon() error {
	if p.curType() == token.Semicolon {
		p.advance()
		return nil
	}
	if p.curType() == token.EOF {
		return p.trap("expected ';' at end of file")
	}
	return p.trap(fmt.Sprintf("expected ';' before %s", p.curToken().Lexeme))
}

// Statement grammar.

// program := declaration* EOF
func (p *parser) program() ([]ast.Statement, error) {
	program := make([]ast.Statement, 0)

	for p.curType() != token.EOF {
		stmt, err := p.declaration()
		switch {
		case errors.Is(err, errEndOfInput):
			return nil, err
		case errors.Is(err, errSync):
			// Recovery landed on a statement boundary; the abandoned
			// statement is simply not part of the program.
			continue
		}
		program = append(program, stmt)
	}
	return program, nil
}

// declaration := "var" varDecl | statement
func (p *parser) declaration() (ast.Statement, error) {
	if p.curType() == token.Var {
		p.advance()
		return p.varDeclaration()
	}
	return p.statement()
}

// varDecl := IDENTIFIER ("=" expression)? ";"
// An omitted initializer declares the variable to nil.
func (p *parser) varDeclaration() (ast.Statement, error) {
	if p.curType() != token.Identifier {
		return nil, p.trap("missing variable identifier")
	}
	name := p.curToken()
	p.advance()

	var initializer ast.Expression = ast.NewLiteral(token.New(token.Nil, diag.SuppressLine, "nil", nil))
	if p.curType() == token.Equal {
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		initializer = expr
	}
	if err := p.checkSemicolon(); err != nil {
		return nil, err
	}
	return ast.NewVariableDeclaration(name, initializer), nil
}

// statement := printStmt | block | ifStmt | whileStmt | exprStmt
func (p *parser) statement() (ast.Statement, error) {
	switch p.curType() {
	case token.Print:
		p.advance()
		return p.printStatement()
	case token.LeftBrace:
		p.advance()
		statements, err := p.blockStatements()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(statements), nil
	case token.If:
		p.advance()
		return p.branchStatement()
	case token.While:
		p.advance()
		return p.loopStatement()
	default:
		return p.expressionStatement()
	}
}

// printStmt := "print" expression ";"
func (p *parser) printStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.checkSemicolon(); err != nil {
		return nil, err
	}
	return ast.NewPrint(expr), nil
}

// block := "{" declaration* "}"
// Returns the bare statement list; the caller wraps it in a Block node.
func (p *parser) blockStatements() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)

	for p.curType() != token.RightBrace {
		if p.curType() == token.EOF {
			return nil, p.trap("expected '}' at end of file")
		}
		stmt, err := p.declaration()
		switch {
		case errors.Is(err, errEndOfInput):
			return nil, err
		case errors.Is(err, errSync):
			continue
		}
		statements = append(statements, stmt)
	}
	p.advance()
	return statements, nil
}

// ifStmt := "if" "(" expression ")" statement ("else" statement)?
func (p *parser) branchStatement() (ast.Statement, error) {
	if p.curType() != token.LeftParen {
		return nil, p.trap("expected open parenthesis after 'if'")
	}
	p.advance()

	condition, err := p.expression()
	if err != nil {
		return nil, err
	}

	if p.curType() != token.RightParen {
		return nil, p.trap("expected close parenthesis after condition")
	}
	p.advance()

	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	var alt ast.Statement
	if p.curType() == token.Else {
		p.advance()
		alt, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewBranch(condition, then, alt), nil
}

// whileStmt := "while" "(" expression ")" statement
func (p *parser) loopStatement() (ast.Statement, error) {
	if p.curType() != token.LeftParen {
		return nil, p.trap("expected open parenthesis after 'while'")
	}
	p.advance()

	condition, err := p.expression()
	if err != nil {
		return nil, err
	}

	if p.curType() != token.RightParen {
		return nil, p.trap("expected close parenthesis after condition")
	}
	p.advance()

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewLoop(condition, body), nil
}

// exprStmt := expression ";"
func (p *parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.checkSemicolon(); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}

// Expression grammar, highest binding at the bottom.

// expression := assignment
func (p *parser) expression() (ast.Expression, error) {
	return p.assignment()
}

// assignment := (IDENTIFIER "=" assignment) | logic_or
func (p *parser) assignment() (ast.Expression, error) {
	lval, err := p.logicalOr()
	if err != nil {
		return nil, err
	}

	if p.curType() == token.Equal {
		equals := p.curToken()
		p.advance()
		rval, err := p.assignment()
		if err != nil {
			return nil, err
		}

		if variable, ok := lval.(*ast.Variable); ok {
			return ast.NewAssignment(variable.Name, rval), nil
		}

		// Report without panicking; the right-hand expression is handed
		// back so statement-level parsing continues uninterrupted.
		p.report(equals.Line, "assignment target is not an l-value")
		return rval, nil
	}
	return lval, nil
}

// logic_or := logic_and ("or" logic_and)*
func (p *parser) logicalOr() (ast.Expression, error) {
	expr, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}

	for p.curType() == token.Or {
		p.advance()
		operator := p.prevToken()
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(expr, operator, right)
	}
	return expr, nil
}

// logic_and := equality ("and" equality)*
func (p *parser) logicalAnd() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.curType() == token.And {
		p.advance()
		operator := p.prevToken()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(expr, operator, right)
	}
	return expr, nil
}

// equality := comparison (("==" | "!=") comparison)*
func (p *parser) equality() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for p.curType() == token.EqualEqual || p.curType() == token.BangEqual {
		p.advance()
		operator := p.prevToken()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, operator, right)
	}
	return expr, nil
}

// comparison := term ((">" | ">=" | "<" | "<=") term)*
func (p *parser) comparison() (ast.Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.curType() == token.Greater || p.curType() == token.GreaterEqual ||
		p.curType() == token.Less || p.curType() == token.LessEqual {
		p.advance()
		operator := p.prevToken()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, operator, right)
	}
	return expr, nil
}

// term := factor (("+" | "-") factor)*
func (p *parser) term() (ast.Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}

	for p.curType() == token.Plus || p.curType() == token.Minus {
		p.advance()
		operator := p.prevToken()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, operator, right)
	}
	return expr, nil
}

// factor := unary (("*" | "/") unary)*
func (p *parser) factor() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.curType() == token.Star || p.curType() == token.Slash {
		p.advance()
		operator := p.prevToken()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, operator, right)
	}
	return expr, nil
}

// unary := ("!" | "-") unary | primary
func (p *parser) unary() (ast.Expression, error) {
	if p.curType() == token.Bang || p.curType() == token.Minus {
		p.advance()
		operator := p.prevToken()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(operator, right), nil
	}
	return p.primary()
}

// primary := NUMBER | STRING | "true" | "false" | "nil"
//          | IDENTIFIER | "(" expression ")"
func (p *parser) primary() (ast.Expression, error) {
	switch p.curType() {
	case token.Number, token.String, token.True, token.False, token.Nil:
		expr := ast.NewLiteral(p.curToken())
		p.advance()
		return expr, nil
	case token.Identifier:
		expr := ast.NewVariable(p.curToken())
		p.advance()
		return expr, nil
	case token.LeftParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if p.curType() != token.RightParen {
			return nil, p.trap("missing right parenthesis for grouped expression")
		}
		p.advance()
		return ast.NewGrouping(inner), nil
	case token.EOF:
		// A dangling operator at end of file, e.g. "3 -". Reporting the
		// previous lexeme beats showing the user an empty end marker.
		return nil, p.trap(fmt.Sprintf("misplaced symbol '%s' at end of file", p.prevToken().Lexeme))
	default:
		return nil, p.trap(fmt.Sprintf("misplaced symbol '%s'", p.curToken().Lexeme))
	}
}
