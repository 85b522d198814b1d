package ast

import (
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/token"
)

type NodeType string

const (
	NodeLiteral             NodeType = "Literal"
	NodeVariable            NodeType = "Variable"
	NodeUnary               NodeType = "Unary"
	NodeBinary              NodeType = "Binary"
	NodeLogical             NodeType = "Logical"
	NodeGrouping            NodeType = "Grouping"
	NodeAssignment          NodeType = "Assignment"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodePrint               NodeType = "Print"
	NodeVariableDeclaration NodeType = "VariableDeclaration"
	NodeBlock               NodeType = "Block"
	NodeBranch              NodeType = "Branch"
	NodeLoop                NodeType = "Loop"
)

// Node is the closed set of syntax tree nodes. Nodes are immutable once the
// parser builds them; String renders the fully parenthesized prefix form
// used in debug traces.
type Node interface {
	NodeType() NodeType
	String() string
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expressions

// Literal wraps a NUMBER, STRING, true, false, or nil token. The decoded
// runtime value travels on the token itself.
type Literal struct {
	nodeImpl
	expressionMarker

	Value token.Token `json:"value"`
}

func NewLiteral(value token.Token) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

func (l *Literal) String() string { return l.Value.Lexeme }

// Variable is a bare identifier reference.
type Variable struct {
	nodeImpl
	expressionMarker

	Name token.Token `json:"name"`
}

func NewVariable(name token.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

func (v *Variable) String() string { return v.Name.Lexeme }

type Unary struct {
	nodeImpl
	expressionMarker

	Operator token.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewUnary(operator token.Token, right Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Right: right}
}

func (u *Unary) String() string {
	return fmt.Sprintf("(%s %s)", u.Operator.Lexeme, u.Right)
}

type Binary struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewBinary(left Expression, operator token.Token, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Left: left, Operator: operator, Right: right}
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Operator.Lexeme, b.Left, b.Right)
}

// Logical is the short-circuiting and/or form. It keeps its own variant so
// the evaluator never confuses it with strict Binary evaluation.
type Logical struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewLogical(left Expression, operator token.Token, right Expression) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical), Left: left, Operator: operator, Right: right}
}

func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Operator.Lexeme, l.Left, l.Right)
}

type Grouping struct {
	nodeImpl
	expressionMarker

	Inner Expression `json:"inner"`
}

func NewGrouping(inner Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Inner: inner}
}

func (g *Grouping) String() string {
	return fmt.Sprintf("(group %s)", g.Inner)
}

// Assignment targets an existing binding; the parser guarantees Name came
// from a bare Variable reference.
type Assignment struct {
	nodeImpl
	expressionMarker

	Name  token.Token `json:"name"`
	Value Expression  `json:"value"`
}

func NewAssignment(name token.Token, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Value: value}
}

func (a *Assignment) String() string {
	return fmt.Sprintf("(= %s %s)", a.Name.Lexeme, a.Value)
}

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expr"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expr: expr}
}

func (s *ExpressionStatement) String() string {
	return fmt.Sprintf("(expr %s)", s.Expr)
}

type Print struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expr"`
}

func NewPrint(expr Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Expr: expr}
}

func (s *Print) String() string {
	return fmt.Sprintf("(print %s)", s.Expr)
}

// VariableDeclaration always carries an initializer; the parser substitutes
// a nil literal when the source omitted one.
type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Name        token.Token `json:"name"`
	Initializer Expression  `json:"initializer"`
}

func NewVariableDeclaration(name token.Token, initializer Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, Initializer: initializer}
}

func (s *VariableDeclaration) String() string {
	return fmt.Sprintf("(var %s %s)", s.Name.Lexeme, s.Initializer)
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

func (s *Block) String() string {
	var sb strings.Builder
	sb.WriteString("(block")
	for _, stmt := range s.Statements {
		sb.WriteByte(' ')
		sb.WriteString(stmt.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Branch is if/else; Else is nil when the source has no else clause.
type Branch struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewBranch(condition Expression, then, alt Statement) *Branch {
	return &Branch{nodeImpl: newNodeImpl(NodeBranch), Condition: condition, Then: then, Else: alt}
}

func (s *Branch) String() string {
	if s.Else != nil {
		return fmt.Sprintf("(if %s %s %s)", s.Condition, s.Then, s.Else)
	}
	return fmt.Sprintf("(if %s %s)", s.Condition, s.Then)
}

type Loop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewLoop(condition Expression, body Statement) *Loop {
	return &Loop{nodeImpl: newNodeImpl(NodeLoop), Condition: condition, Body: body}
}

func (s *Loop) String() string {
	return fmt.Sprintf("(while %s %s)", s.Condition, s.Body)
}
