// Package parser implements a recursive-descent parser over the Lox
// grammar, one method per nonterminal, following the teacher's
// pkgs/parser/parser.go shape: a Parser struct holding the token slice
// and a position index, single-token lookahead, and error-collection
// rather than abort-on-first-error (spec.md §4.2/§7).
package parser

import (
	"github.com/aledsdavies/golox/pkgs/ast"
	"github.com/aledsdavies/golox/pkgs/lexer"
	"github.com/aledsdavies/golox/pkgs/token"
)

// ErrorReporter receives syntax diagnostics. diagnostics.Sink
// implements this.
type ErrorReporter interface {
	ReportSyntax(line int, where, message string)
	ReportAtEnd(line int, message string)
}

// Parser consumes a token slice and produces a slice of top-level
// statements.
type Parser struct {
	tokens []token.Token
	pos    int
	errs   ErrorReporter
}

// New creates a Parser over an already-scanned token slice.
func New(tokens []token.Token, errs ErrorReporter) *Parser {
	return &Parser{tokens: tokens, errs: errs}
}

// ParseSource scans with lx (which must itself report into the same
// sink) and parses the resulting tokens. lx already holds the text it
// scans; the source argument is not read.
func ParseSource(source string, lx *lexer.Lexer, errs ErrorReporter) []ast.Stmt {
	tokens := lx.ScanTokens()
	return New(tokens, errs).ParseProgram()
}

// ParseProgram implements: program → declaration* EOF
func (p *Parser) ParseProgram() []ast.Stmt {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// --- declarations ---

// declaration → varDecl | statement
// On a parse error, synchronizes to the next statement boundary and
// returns nil so the caller simply skips this declaration.
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	if p.match(token.VAR) {
		return p.varDecl()
	}
	return p.statement()
}

// varDecl → "var" IDENTIFIER ( "=" expression )? ";"
func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}

	p.consume(token.SEMI_COLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

// statement → exprStmt | printStmt | ifStmt | whileStmt | forStmt | block
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.LEFT_BRACE):
		return &ast.BlockStmt{Statements: p.block()}
	default:
		return p.exprStmt()
	}
}

// printStmt → "print" comma ";"
func (p *Parser) printStmt() ast.Stmt {
	expr := p.comma()
	p.consume(token.SEMI_COLON, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: expr}
}

// exprStmt → comma ";"
func (p *Parser) exprStmt() ast.Stmt {
	expr := p.comma()
	p.consume(token.SEMI_COLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

// ifStmt → "if" "(" expression ")" statement ( "else" statement )?
func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}

	// spec.md §9 Q2 fix: Else is the branch actually parsed, never
	// aliased to Then.
	return &ast.IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}
}

// whileStmt → "while" "(" expression ")" statement
func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Condition: condition, Body: body}
}

// forStmt → "for" "(" ( varDecl | exprStmt | ";" )
//                    expression? ";" expression? ")" statement
//
// Desugared at parse time into:
//
//	{ init; while (cond) { body; inc; } }
//
// with the wrapping block omitted when init is absent and cond
// defaulting to `true` when absent (spec.md §4.2).
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMI_COLON):
		initializer = nil
	case p.check(token.VAR):
		p.advance()
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition ast.Expr
	if !p.check(token.SEMI_COLON) {
		condition = p.expression()
	}
	p.consume(token.SEMI_COLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}}}
	}

	if condition == nil {
		condition = &ast.Literal{Value: token.Bool(true)}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}

	return body
}

// block → "{" declaration* "}"
func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return statements
}

// --- expressions ---

// comma → expression ( "," expression )*
// Left-associative, evaluates to the rightmost operand.
func (p *Parser) comma() ast.Expr {
	expr := p.expression()
	for p.match(token.COMMA) {
		operator := p.previous()
		right := p.expression()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// expression → assignment
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment → IDENTIFIER "=" assignment | logic_or
// Right-associative: the LHS is parsed as logic_or first; if '=' then
// follows, the LHS must already be a Variable node.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if variable, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: variable.Name, Value: value}
		}

		// Invalid target: report and continue parsing with the LHS
		// as-is, per spec.md §4.2.
		p.reportToken(equals, "Invalid assignment target.")
		return expr
	}

	return expr
}

// logic_or → logic_and ( "or" logic_and )*
func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		operator := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// logic_and → equality ( "and" equality )*
func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		operator := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// equality → comparison ( ( "!=" | "==" ) comparison )*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// comparison → addition ( ( ">" | ">=" | "<" | "<=" ) addition )*
func (p *Parser) comparison() ast.Expr {
	expr := p.addition()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		operator := p.previous()
		right := p.addition()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// addition → multiplication ( ( "-" | "+" ) multiplication )*
func (p *Parser) addition() ast.Expr {
	expr := p.multiplication()
	for p.match(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.multiplication()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// multiplication → unary ( ( "/" | "*" ) unary )*
func (p *Parser) multiplication() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		operator := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// unary → ( "!" | "-" ) unary | primary
func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		operator := p.previous()
		operand := p.unary()
		return &ast.Unary{Operator: operator, Operand: operand}
	}
	return p.primary()
}

// primary → NUMBER | STRING | "true" | "false" | "nil"
//
//	| "(" expression ")" | IDENTIFIER
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Value: token.Bool(false)}
	case p.match(token.TRUE):
		return &ast.Literal{Value: token.Bool(true)}
	case p.match(token.NIL):
		return &ast.Literal{Value: token.Nil}
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	}

	panic(p.errorAt(p.current(), "Expect expression."))
}

// --- token-stream helpers ---

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.current().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.current().Type == token.END_OF_FILE
}

// current returns the next unconsumed token, clamped to the final
// token (always EOF) so a parser bug can never index past the slice.
func (p *Parser) current() token.Token {
	idx := p.pos
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.errorAt(p.current(), message))
}

// parseError is the panic payload used to unwind to declaration()'s
// recover, mirroring the source's throw/catch panic-and-synchronize
// recovery without needing Go error returns threaded through every
// grammar method.
type parseError struct{}

func (p *Parser) errorAt(tok token.Token, message string) parseError {
	p.reportToken(tok, message)
	return parseError{}
}

func (p *Parser) reportToken(tok token.Token, message string) {
	if p.errs == nil {
		return
	}
	if tok.Type == token.END_OF_FILE {
		p.errs.ReportAtEnd(tok.Line, message)
	} else {
		p.errs.ReportSyntax(tok.Line, tok.Lexeme, message)
	}
}

// synchronize discards tokens until a likely statement boundary: just
// past a ';', or just before a statement-starting keyword.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMI_COLON {
			return
		}

		switch p.current().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR,
			token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}

		p.advance()
	}
}
