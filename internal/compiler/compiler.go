// Package compiler is the Orion front end: it scans source text and
// emits a bytecode chunk in a single pass. The engine never sees source;
// every error produced here is a CompileError, raised before execution.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/orion-lang/orion/internal/lexer"
	"github.com/orion-lang/orion/internal/token"
	"github.com/orion-lang/orion/internal/vm"
)

// CompileError is a front-end error with source position info
type CompileError struct {
	Message string
	Line    int
	Column  int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d:%d] %s", e.Line, e.Column, e.Message)
}

// Operator precedence, lowest to highest
type precedence int

const (
	precNone precedence = iota
	precOr              // ||
	precAnd             // &&
	precXor             // ^
	precEquality        // == !=
	precComparison      // < <= > >=
	precTerm            // + -
	precFactor          // * /
	precUnary           // - ! ++ --
)

type parseRule struct {
	prefix func(c *Compiler)
	infix  func(c *Compiler)
	prec   precedence
}

// Compiler compiles a token stream into a chunk, Pratt-style: one token
// of lookahead, no AST.
type Compiler struct {
	l        *lexer.Lexer
	previous token.Token
	current  token.Token

	chunk *vm.Chunk
	err   *CompileError
}

// Compile scans and compiles source into an executable chunk. The chunk
// always ends with the return instruction on the last source line.
func Compile(source string) (*vm.Chunk, error) {
	c := &Compiler{
		l:     lexer.New(source),
		chunk: vm.NewChunk(),
	}

	c.advance()
	c.expression()
	c.consume(token.EOF, "expected end of expression")

	if c.err != nil {
		return nil, c.err
	}

	c.emitOp(vm.OP_RETURN)
	return c.chunk, nil
}

var rules map[token.TokenType]parseRule

// The rule table references parse functions that reference the table;
// populate it in init to break the cycle.
func init() {
	rules = map[token.TokenType]parseRule{
		token.NUMBER: {prefix: (*Compiler).number},
		token.TRUE:   {prefix: (*Compiler).literal},
		token.FALSE:  {prefix: (*Compiler).literal},
		token.NIL:    {prefix: (*Compiler).literal},
		token.LPAREN: {prefix: (*Compiler).grouping},

		token.MINUS: {prefix: (*Compiler).unary, infix: (*Compiler).binary, prec: precTerm},
		token.BANG:  {prefix: (*Compiler).unary},
		token.INCR:  {prefix: (*Compiler).unary},
		token.DECR:  {prefix: (*Compiler).unary},

		token.PLUS:  {infix: (*Compiler).binary, prec: precTerm},
		token.STAR:  {infix: (*Compiler).binary, prec: precFactor},
		token.SLASH: {infix: (*Compiler).binary, prec: precFactor},

		token.EQ:     {infix: (*Compiler).binary, prec: precEquality},
		token.NOT_EQ: {infix: (*Compiler).binary, prec: precEquality},
		token.LT:     {infix: (*Compiler).binary, prec: precComparison},
		token.LE:     {infix: (*Compiler).binary, prec: precComparison},
		token.GT:     {infix: (*Compiler).binary, prec: precComparison},
		token.GE:     {infix: (*Compiler).binary, prec: precComparison},

		token.AND: {infix: (*Compiler).binary, prec: precAnd},
		token.OR:  {infix: (*Compiler).binary, prec: precOr},
		token.XOR: {infix: (*Compiler).binary, prec: precXor},
	}
}

func (c *Compiler) advance() {
	c.previous = c.current
	c.current = c.l.NextToken()
	if c.current.Type == token.ILLEGAL {
		c.errorAt(c.current, fmt.Sprintf("unexpected input %q", c.current.Literal))
	}
}

func (c *Compiler) consume(t token.TokenType, message string) {
	if c.current.Type == t {
		c.advance()
		return
	}
	c.errorAt(c.current, message)
}

// errorAt records the first error; later ones are noise from the same
// cause and are dropped.
func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.err != nil {
		return
	}
	c.err = &CompileError{Message: message, Line: tok.Line, Column: tok.Column}
}

func (c *Compiler) expression() {
	c.parsePrecedence(precOr)
}

func (c *Compiler) parsePrecedence(prec precedence) {
	if c.err != nil {
		return
	}

	c.advance()
	rule, ok := rules[c.previous.Type]
	if !ok || rule.prefix == nil {
		c.errorAt(c.previous, "expected expression")
		return
	}
	rule.prefix(c)

	for c.err == nil {
		infixRule, ok := rules[c.current.Type]
		if !ok || infixRule.infix == nil || prec > infixRule.prec {
			break
		}
		c.advance()
		infixRule.infix(c)
	}
}

func (c *Compiler) number() {
	value, err := strconv.ParseFloat(c.previous.Literal, 64)
	if err != nil {
		c.errorAt(c.previous, fmt.Sprintf("malformed number literal %q", c.previous.Literal))
		return
	}
	if err := c.chunk.WriteConstant(vm.NumberVal(value), c.previous.Line); err != nil {
		c.errorAt(c.previous, err.Error())
	}
}

func (c *Compiler) literal() {
	switch c.previous.Type {
	case token.TRUE:
		c.emitOp(vm.OP_TRUE)
	case token.FALSE:
		c.emitOp(vm.OP_FALSE)
	case token.NIL:
		c.emitOp(vm.OP_NIL)
	}
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RPAREN, "expected ')' after expression")
}

func (c *Compiler) unary() {
	op := c.previous.Type
	line := c.previous.Line

	// Compile the operand first, then the operator works in place on
	// the stack top.
	c.parsePrecedence(precUnary)

	switch op {
	case token.MINUS:
		c.chunk.WriteOp(vm.OP_NEG, line)
	case token.BANG:
		c.chunk.WriteOp(vm.OP_NOT, line)
	case token.INCR:
		c.chunk.WriteOp(vm.OP_INC, line)
	case token.DECR:
		c.chunk.WriteOp(vm.OP_DEC, line)
	}
}

// binary compiles the right operand then emits the operator, so at run
// time the right value sits on top and pops first.
func (c *Compiler) binary() {
	op := c.previous.Type
	line := c.previous.Line

	rule := rules[op]
	c.parsePrecedence(rule.prec + 1)

	switch op {
	case token.PLUS:
		c.chunk.WriteOp(vm.OP_ADD, line)
	case token.MINUS:
		c.chunk.WriteOp(vm.OP_SUB, line)
	case token.STAR:
		c.chunk.WriteOp(vm.OP_MUL, line)
	case token.SLASH:
		c.chunk.WriteOp(vm.OP_DIV, line)
	case token.EQ:
		c.chunk.WriteOp(vm.OP_EQ, line)
	case token.NOT_EQ:
		c.chunk.WriteOp(vm.OP_NE, line)
	case token.LT:
		c.chunk.WriteOp(vm.OP_LT, line)
	case token.LE:
		c.chunk.WriteOp(vm.OP_LE, line)
	case token.GT:
		c.chunk.WriteOp(vm.OP_GT, line)
	case token.GE:
		c.chunk.WriteOp(vm.OP_GE, line)
	case token.AND:
		c.chunk.WriteOp(vm.OP_AND, line)
	case token.OR:
		c.chunk.WriteOp(vm.OP_OR, line)
	case token.XOR:
		c.chunk.WriteOp(vm.OP_XOR, line)
	}
}

func (c *Compiler) emitOp(op vm.Opcode) {
	c.chunk.WriteOp(op, c.previous.Line)
}
