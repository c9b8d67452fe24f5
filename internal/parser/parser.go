// Package parser turns a token stream into the typed AST defined by
// package ast.
//
// The grammar is expression-oriented: recursive descent over a
// precedence chain bottoms out at a factor, and statements are nothing
// but expressions threaded together by block rules, with
// peek/consume/expect as the shared plumbing underneath it.
package parser

import (
	"strconv"

	"mvslc/internal/ast"
	"mvslc/internal/sourceerr"
	"mvslc/internal/token"
)

type parser struct {
	tokens []token.Token
	pos    int
	file   string
}

// Parse consumes the entire token stream and returns the root node: a
// Module if the input defines any function, otherwise the implicit
// top-level block (possibly empty). Leftover tokens after a would-be
// root expression cannot occur here, since the top-level loop only
// stops at end of input -- any token it cannot fit into a statement is
// reported as a syntax error where it is encountered.
func Parse(tokens []token.Token, file string) (*ast.Node, error) {
	p := &parser{tokens: tokens, file: file}
	return p.parseTopLevel()
}

func (p *parser) parseTopLevel() (*ast.Node, error) {
	loc := p.peek().Loc
	stmts, funcDefs, err := p.parseStatementSeq(true)
	if err != nil {
		return nil, err
	}
	if len(funcDefs) == 0 {
		return ast.NewBlock(loc, stmts), nil
	}
	decls := funcDefs
	if len(stmts) > 0 {
		decls = append(decls, ast.NewBlock(loc, stmts))
	}
	return ast.NewModule(loc, decls), nil
}

// parseStatementSeq parses a sequence of statements, stopping at a
// closing brace (isTopLevel == false) or end of input (isTopLevel ==
// true). Function definitions are only recognized at the top level.
func (p *parser) parseStatementSeq(isTopLevel bool) (stmts, funcDefs []*ast.Node, err error) {
	atTerm := func() bool {
		if isTopLevel {
			return p.atEnd()
		}
		return p.check(token.Punctuation, "}")
	}

	for !atTerm() {
		if isTopLevel && p.checkKind(token.Function) {
			fd, err := p.parseFuncDef()
			if err != nil {
				return nil, nil, err
			}
			funcDefs = append(funcDefs, fd)
			continue
		}

		var stmt *ast.Node
		if p.checkKind(token.Declaration) {
			if !p.declPositionOK() {
				return nil, nil, sourceerr.Syntax(p.peek().Loc, "variable declaration not allowed here")
			}
			stmt, err = p.parseDeclaration()
		} else {
			stmt, err = p.parseExpression()
		}
		if err != nil {
			return nil, nil, err
		}
		stmts = append(stmts, stmt)

		if p.check(token.Punctuation, ";") {
			p.advance()
			if atTerm() {
				stmts = append(stmts, ast.NoneLiteral(p.peek().Loc))
				break
			}
			continue
		}

		if atTerm() {
			break
		}

		if !p.prevTextIs("}") {
			return nil, nil, sourceerr.Syntax(p.peek().Loc, "expected ';' before %q", p.peek().Text)
		}
	}
	return stmts, funcDefs, nil
}

// declPositionOK implements the rule that a declaration is legal only at
// the start of input or directly after '{', '}' or ';'.
func (p *parser) declPositionOK() bool {
	if p.pos == 0 {
		return true
	}
	return p.prevTextIs("{") || p.prevTextIs("}") || p.prevTextIs(";")
}

func (p *parser) prevTextIs(s string) bool {
	return p.pos > 0 && p.tokens[p.pos-1].Text == s
}

// --- token cursor helpers ---

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() token.Token {
	if p.atEnd() {
		loc := p.eofLoc()
		return token.EndToken(loc)
	}
	return p.tokens[p.pos]
}

func (p *parser) eofLoc() token.Location {
	if len(p.tokens) == 0 {
		return token.Location{File: p.file, Line: 1, Column: 1}
	}
	return p.tokens[len(p.tokens)-1].Loc
}

func (p *parser) advance() token.Token {
	t := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *parser) check(kind token.Kind, text string) bool {
	return !p.atEnd() && p.peek().Kind == kind && p.peek().Text == text
}

func (p *parser) checkKind(kind token.Kind) bool {
	return !p.atEnd() && p.peek().Kind == kind
}

func (p *parser) checkText(text string) bool {
	return !p.atEnd() && p.peek().Text == text
}

func (p *parser) expect(kind token.Kind, text, what string) (token.Token, error) {
	if !p.check(kind, text) {
		return token.Token{}, sourceerr.Syntax(p.peek().Loc, "expected %s, found %q", what, p.peek().Text)
	}
	return p.advance(), nil
}

func (p *parser) expectKind(kind token.Kind, what string) (token.Token, error) {
	if !p.checkKind(kind) {
		return token.Token{}, sourceerr.Syntax(p.peek().Loc, "expected %s, found %q", what, p.peek().Text)
	}
	return p.advance(), nil
}

func (p *parser) expectText(text, what string) (token.Token, error) {
	if !p.checkText(text) {
		return token.Token{}, sourceerr.Syntax(p.peek().Loc, "expected %s, found %q", what, p.peek().Text)
	}
	return p.advance(), nil
}

// --- precedence chain: assignment -> or -> and -> equality -> relational
// -> additive -> multiplicative -> unary -> factor ---

func (p *parser) parseExpression() (*ast.Node, error) {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() (*ast.Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.check(token.Operator, "=") {
		eq := p.advance()
		if left.Kind != ast.Identifier {
			return nil, sourceerr.Syntax(eq.Loc, "left side of assignment must be an identifier")
		}
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOp(eq.Loc, left, "=", right), nil
	}
	return left, nil
}

func (p *parser) parseOr() (*ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.Operator, "or") {
		op := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op.Loc, left, "or", right)
	}
	return left, nil
}

func (p *parser) parseAnd() (*ast.Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(token.Operator, "and") {
		op := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op.Loc, left, "and", right)
	}
	return left, nil
}

func (p *parser) parseEquality() (*ast.Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.check(token.Operator, "==") || p.check(token.Operator, "!=") {
		op := p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op.Loc, left, op.Text, right)
	}
	return left, nil
}

func (p *parser) parseRelational() (*ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.check(token.Operator, "<") || p.check(token.Operator, "<=") ||
		p.check(token.Operator, ">") || p.check(token.Operator, ">=") {
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op.Loc, left, op.Text, right)
	}
	return left, nil
}

func (p *parser) parseAdditive() (*ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.check(token.Operator, "+") || p.check(token.Operator, "-") {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op.Loc, left, op.Text, right)
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (*ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.Operator, "*") || p.check(token.Operator, "/") || p.check(token.Operator, "%") {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op.Loc, left, op.Text, right)
	}
	return left, nil
}

func (p *parser) parseUnary() (*ast.Node, error) {
	if p.check(token.Operator, "-") || p.check(token.Operator, "not") {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(op.Loc, op.Text, operand), nil
	}
	return p.parseFactor()
}

// parseFactor handles every factor except variable declarations, which
// the statement loop recognizes up front since a declaration is never
// legal in a non-statement-start position anyway (see declPositionOK).
func (p *parser) parseFactor() (*ast.Node, error) {
	t := p.peek()
	switch {
	case p.check(token.Punctuation, "("):
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectText(")", "')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case p.checkKind(token.Conditional) && t.Text == "if":
		return p.parseIf()

	case p.checkKind(token.WhileLoop) && t.Text == "while":
		return p.parseWhile()

	case p.checkKind(token.BreakContinue):
		p.advance()
		if t.Text == "break" {
			return ast.NewBreak(t.Loc), nil
		}
		return ast.NewContinue(t.Loc), nil

	case p.checkKind(token.Return):
		return p.parseReturn()

	case p.checkKind(token.IntLiteral):
		p.advance()
		v, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, sourceerr.Syntax(t.Loc, "integer literal out of range: %s", t.Text)
		}
		return ast.IntLiteral(t.Loc, v), nil

	case p.checkKind(token.BoolLiteral):
		p.advance()
		return ast.BoolLiteral(t.Loc, t.Text == "true"), nil

	case p.check(token.Punctuation, "{"):
		return p.parseBlock()

	case p.checkKind(token.Identifier):
		p.advance()
		if p.check(token.Punctuation, "(") {
			return p.parseCall(t)
		}
		return ast.NewIdentifier(t.Loc, t.Text), nil

	default:
		return nil, sourceerr.Syntax(t.Loc, "unexpected token %q", t.Text)
	}
}

func (p *parser) parseBlock() (*ast.Node, error) {
	brace, err := p.expectText("{", "'{'")
	if err != nil {
		return nil, err
	}
	stmts, _, err := p.parseStatementSeq(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectText("}", "'}'"); err != nil {
		return nil, err
	}
	return ast.NewBlock(brace.Loc, stmts), nil
}

func (p *parser) parseDeclaration() (*ast.Node, error) {
	kw := p.advance() // 'var'
	name, err := p.expectKind(token.Identifier, "variable name")
	if err != nil {
		return nil, err
	}
	var typeAnno *ast.Node
	if p.check(token.Punctuation, ":") {
		p.advance()
		tn, err := p.expectKind(token.Identifier, "type name")
		if err != nil {
			return nil, err
		}
		typeAnno = ast.NewTypeExpr(tn.Loc, tn.Text)
	}
	if _, err := p.expectText("=", "'='"); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewDeclaration(kw.Loc, name.Text, init, typeAnno), nil
}

func (p *parser) parseIf() (*ast.Node, error) {
	kw := p.advance() // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectText("then", "'then'"); err != nil {
		return nil, err
	}
	thenBranch, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var elseBranch *ast.Node
	if p.checkText("else") {
		p.advance()
		elseBranch, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(kw.Loc, cond, thenBranch, elseBranch), nil
}

func (p *parser) parseWhile() (*ast.Node, error) {
	kw := p.advance() // 'while'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectText("do", "'do'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(kw.Loc, cond, body), nil
}

func (p *parser) parseReturn() (*ast.Node, error) {
	kw := p.advance() // 'return'
	if p.atEnd() || p.check(token.Punctuation, ";") || p.check(token.Punctuation, "}") {
		return ast.NewReturn(kw.Loc, nil), nil
	}
	result, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewReturn(kw.Loc, result), nil
}

func (p *parser) parseCall(name token.Token) (*ast.Node, error) {
	p.advance() // '('
	var args []*ast.Node
	if !p.check(token.Punctuation, ")") {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.check(token.Punctuation, ",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectText(")", "')'"); err != nil {
		return nil, err
	}
	return ast.NewCall(name.Loc, name.Text, args), nil
}

func (p *parser) parseFuncDef() (*ast.Node, error) {
	kw := p.advance() // 'fun'
	name, err := p.expectKind(token.Identifier, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectText("(", "'('"); err != nil {
		return nil, err
	}
	var params []*ast.Node
	if !p.check(token.Punctuation, ")") {
		for {
			pname, err := p.expectKind(token.Identifier, "parameter name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expectText(":", "':'"); err != nil {
				return nil, err
			}
			ptype, err := p.expectKind(token.Identifier, "parameter type")
			if err != nil {
				return nil, err
			}
			params = append(params, ast.NewFuncParam(pname.Loc, pname.Text, ast.NewTypeExpr(ptype.Loc, ptype.Text)))
			if p.check(token.Punctuation, ",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectText(")", "')'"); err != nil {
		return nil, err
	}
	var retType *ast.Node
	if p.check(token.Punctuation, ":") {
		p.advance()
		rt, err := p.expectKind(token.Identifier, "return type")
		if err != nil {
			return nil, err
		}
		retType = ast.NewTypeExpr(rt.Loc, rt.Text)
	}
	if !p.check(token.Punctuation, "{") {
		return nil, sourceerr.Syntax(p.peek().Loc, "expected function body")
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFuncDef(kw.Loc, name.Text, params, retType, body), nil
}
