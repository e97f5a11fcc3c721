// Package token defines the lexical tokens of the Orion expression language
package token

type TokenType string

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Literals
	NUMBER = "NUMBER"

	// Operators
	PLUS  = "+"
	MINUS = "-"
	STAR  = "*"
	SLASH = "/"

	BANG = "!"
	INCR = "++"
	DECR = "--"

	AND = "&&"
	OR  = "||"
	XOR = "^"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	LE     = "<="
	GT     = ">"
	GE     = ">="

	// Delimiters
	LPAREN = "("
	RPAREN = ")"

	// Keywords
	TRUE  = "TRUE"
	FALSE = "FALSE"
	NIL   = "NIL"
)

var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
	"nil":   NIL,
}

// LookupIdent returns the keyword type for ident, or ILLEGAL if the
// identifier is not a keyword (the language has no variables).
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return ILLEGAL
}
