package token

import "fmt"

// Type identifies the lexical category of a token.
type Type string

const (
	// Single character tokens.
	LeftParen  Type = "LEFT_PAREN"  // (
	RightParen Type = "RIGHT_PAREN" // )
	LeftBrace  Type = "LEFT_BRACE"  // {
	RightBrace Type = "RIGHT_BRACE" // }
	Comma      Type = "COMMA"       // ,
	Dot        Type = "DOT"         // .
	Minus      Type = "MINUS"       // -
	Plus       Type = "PLUS"        // +
	Semicolon  Type = "SEMICOLON"   // ;
	Slash      Type = "SLASH"       // /
	Star       Type = "STAR"        // *

	// One or two character tokens.
	Bang         Type = "BANG"          // !
	BangEqual    Type = "BANG_EQUAL"    // !=
	Equal        Type = "EQUAL"         // =
	EqualEqual   Type = "EQUAL_EQUAL"   // ==
	Greater      Type = "GREATER"       // >
	GreaterEqual Type = "GREATER_EQUAL" // >=
	Less         Type = "LESS"          // <
	LessEqual    Type = "LESS_EQUAL"    // <=

	// Keywords.
	And    Type = "AND"
	Class  Type = "CLASS"
	Else   Type = "ELSE"
	False  Type = "FALSE"
	Fun    Type = "FUN"
	For    Type = "FOR"
	If     Type = "IF"
	Nil    Type = "NIL"
	Or     Type = "OR"
	Print  Type = "PRINT"
	Return Type = "RETURN"
	Super  Type = "SUPER"
	This   Type = "THIS"
	True   Type = "TRUE"
	Var    Type = "VAR"
	While  Type = "WHILE"

	// Literals and identifiers.
	Identifier Type = "IDENTIFIER"
	String     Type = "STRING"
	Number     Type = "NUMBER"

	// End marker, always the final token of a healthy stream.
	EOF Type = "EOF"
)

// Token is one element of the stream handed to the parser. Literal carries
// the decoded float64, string, or bool for NUMBER/STRING/TRUE/FALSE tokens
// and is nil for every other kind.
type Token struct {
	Type    Type
	Line    int
	Lexeme  string
	Literal any
}

func New(kind Type, line int, lexeme string, literal any) Token {
	return Token{Type: kind, Line: line, Lexeme: lexeme, Literal: literal}
}

func (t Token) String() string {
	return fmt.Sprintf("line %d: %s (%s,%v)", t.Line, t.Type, t.Lexeme, t.Literal)
}
