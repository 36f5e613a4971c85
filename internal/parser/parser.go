// Package parser builds a MiniC AST from a token stream by recursive
// descent with precedence climbing, following spec.md §4.2's grammar.
//
// Unlike the teacher's DWScript parser — a Pratt parser with a
// prefix/infix function table, backtracking support, and panic-mode
// error recovery across dozens of statement and expression forms —
// this parser has a fixed, shallow grammar and no recovery: it returns
// the first ParseError it hits (spec.md §7). The curToken/peekToken
// and expectPeek naming follows the teacher's parser regardless.
package parser

import (
	"strconv"

	"github.com/xjarifx/minic/internal/ast"
	"github.com/xjarifx/minic/internal/lexer"
	"github.com/xjarifx/minic/pkg/token"
)

// Parser consumes tokens from a Lexer and builds an *ast.Program.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token
}

// New creates a Parser over l, priming the first two tokens.
func New(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{l: l}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse is a convenience entry point: lex and parse source in one call.
func Parse(source string) (*ast.Program, error) {
	p, err := New(lexer.New(source))
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

func (p *Parser) advance() error {
	p.curToken = p.peekToken
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.peekToken = tok
	return nil
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek advances past peekToken if it matches t, else returns a
// ParseError describing the mismatch.
func (p *Parser) expectPeek(t token.Type) error {
	if !p.peekTokenIs(t) {
		return newError(p.peekToken.Pos, "expected %s, got %s", t, p.peekToken.Type)
	}
	return p.advance()
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return program, nil
}

// parseStatement dispatches on the current token to the statement
// production it starts (spec.md §4.2: statement → varDecl | assignment
// | if | while | print | block).
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curToken.Type {
	case token.INT, token.BOOL:
		return p.parseVarDecl()
	case token.IDENT:
		return p.parseAssign()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.PRINT:
		return p.parsePrint()
	case token.LBRACE:
		return p.parseBlockStatement()
	default:
		return nil, newError(p.curToken.Pos, "unexpected token %s", p.curToken.Type)
	}
}

// parseVarDecl parses `('int'|'bool') IDENT ';'`.
func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	decl := &ast.VarDecl{Token: p.curToken}
	if p.curTokenIs(token.INT) {
		decl.Type = ast.Int
	} else {
		decl.Type = ast.Bool
	}

	if err := p.expectPeek(token.IDENT); err != nil {
		return nil, err
	}
	decl.Name = p.curToken.Literal

	if err := p.expectPeek(token.SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseAssign parses `IDENT '=' expr ';'`.
func (p *Parser) parseAssign() (*ast.Assign, error) {
	assign := &ast.Assign{Token: p.curToken, Name: p.curToken.Literal}

	if err := p.expectPeek(token.ASSIGN); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil { // move to first token of expr
		return nil, err
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	assign.Value = expr

	if err := p.expectPeek(token.SEMICOLON); err != nil {
		return nil, err
	}
	return assign, nil
}

// parseIf parses `'if' '(' expr ')' block ('else' block)?`.
func (p *Parser) parseIf() (*ast.If, error) {
	stmt := &ast.If{Token: p.curToken}

	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt.Cond = cond

	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.LBRACE); err != nil {
		return nil, err
	}
	then, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	stmt.Then = then

	if p.peekTokenIs(token.ELSE) {
		if err := p.advance(); err != nil { // consume 'else'
			return nil, err
		}
		if err := p.expectPeek(token.LBRACE); err != nil {
			return nil, err
		}
		elseBody, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
	}
	return stmt, nil
}

// parseWhile parses `'while' '(' expr ')' block`.
func (p *Parser) parseWhile() (*ast.While, error) {
	stmt := &ast.While{Token: p.curToken}

	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt.Cond = cond

	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

// parsePrint parses `'print' '(' expr ')' ';'`.
func (p *Parser) parsePrint() (*ast.Print, error) {
	stmt := &ast.Print{Token: p.curToken}

	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt.Value = expr

	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseBlockStatement parses a bare `{ statement* }` used directly as a
// statement (as opposed to an if/while body, which unwraps it).
func (p *Parser) parseBlockStatement() (*ast.Block, error) {
	tok := p.curToken
	stmts, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Token: tok, Statements: stmts}, nil
}

// parseBlockBody parses the statement list of a `{ ... }` block.
// PRE: curToken is '{'. POST: curToken is the matching '}'.
func (p *Parser) parseBlockBody() ([]ast.Statement, error) {
	var stmts []ast.Statement
	if err := p.advance(); err != nil { // move past '{'
		return nil, err
	}
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			return nil, newError(p.curToken.Pos, "expected %s, got %s", token.RBRACE, token.EOF)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return stmts, nil
}

// ---------------------------------------------------------------------
// Expressions: precedence-climbing per spec.md §4.2's layered grammar.
// Each level's PRE/POST: curToken is the first/last token of the
// sub-expression it parses.
// ---------------------------------------------------------------------

func (p *Parser) parseExpr() (ast.Expression, error) { return p.parseOrExpr() }

func (p *Parser) parseOrExpr() (ast.Expression, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	for p.peekTokenIs(token.OR) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		opTok := p.curToken
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: opTok, Op: opTok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAndExpr() (ast.Expression, error) {
	left, err := p.parseEqExpr()
	if err != nil {
		return nil, err
	}
	for p.peekTokenIs(token.AND) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		opTok := p.curToken
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseEqExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: opTok, Op: opTok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEqExpr() (ast.Expression, error) {
	left, err := p.parseRelExpr()
	if err != nil {
		return nil, err
	}
	for p.peekTokenIs(token.EQ) || p.peekTokenIs(token.NEQ) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		opTok := p.curToken
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRelExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: opTok, Op: opTok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseRelExpr() (ast.Expression, error) {
	left, err := p.parseAddExpr()
	if err != nil {
		return nil, err
	}
	for p.peekTokenIs(token.LT) || p.peekTokenIs(token.GT) || p.peekTokenIs(token.LE) || p.peekTokenIs(token.GE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		opTok := p.curToken
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAddExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: opTok, Op: opTok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAddExpr() (ast.Expression, error) {
	left, err := p.parseMulExpr()
	if err != nil {
		return nil, err
	}
	for p.peekTokenIs(token.PLUS) || p.peekTokenIs(token.MINUS) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		opTok := p.curToken
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMulExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: opTok, Op: opTok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMulExpr() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peekTokenIs(token.ASTERISK) || p.peekTokenIs(token.SLASH) || p.peekTokenIs(token.PERCENT) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		opTok := p.curToken
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: opTok, Op: opTok.Literal, Left: left, Right: right}
	}
	return left, nil
}

// parseUnary parses `('!'|'-') unary | primary`; unary operators are
// right-associative by recursing on parseUnary.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.curTokenIs(token.NOT) || p.curTokenIs(token.MINUS) {
		opTok := p.curToken
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Token: opTok, Op: opTok.Literal, Operand: operand}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses `NUMBER | 'true' | 'false' | IDENT | '(' expr ')'`.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.curToken.Type {
	case token.NUMBER:
		v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil {
			return nil, newError(p.curToken.Pos, "invalid integer literal %q: %s", p.curToken.Literal, err)
		}
		return &ast.IntLiteral{Token: p.curToken, Value: v}, nil
	case token.TRUE:
		return &ast.BoolLiteral{Token: p.curToken, Value: true}, nil
	case token.FALSE:
		return &ast.BoolLiteral{Token: p.curToken, Value: false}, nil
	case token.IDENT:
		return &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}, nil
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, newError(p.curToken.Pos, "unexpected token %s in expression", p.curToken.Type)
	}
}
