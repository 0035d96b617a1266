// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/veinlang/vein/vein/arena"
	"github.com/veinlang/vein/vein/ast"
	"github.com/veinlang/vein/vein/token"
)

// isOperatorLexeme reports whether an IDENT token's spelling reads as
// a symbolic operator (leading rune neither a letter, digit, nor '_')
// rather than a name. The grammar binds operators as identifiers (§6:
// "Operators are bound as identifiers"); this is how InfixExpr tells
// an operator apart from the next juxtaposed application argument,
// since the token stream doesn't carry a separate OPERATOR kind.
func isOperatorLexeme(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	return true
}

func (p *Parser) startsAtomicExpr() bool {
	switch p.tok {
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.CHAR, token.BYTE,
		token.LPAREN, token.LBRACK, token.LBRACE:
		if p.tok == token.IDENT && isOperatorLexeme(p.lit) {
			return false
		}
		return true
	}
	return false
}

// parseAtomicExpr handles AtomicExpr: Ident, Literal, Projection,
// Tuple, Array, Record.
func (p *Parser) parseAtomicExpr() ast.Expr {
	if p.trace {
		defer un(trace(p, "AtomicExpr"))
	}
	start := p.pos
	var x ast.Expr
	switch {
	case p.tok == token.IDENT:
		id := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
		p.next()
		x = &ast.ExprIdent{Span: id.Span, Name: id.Name}

	case p.tok == token.INT, p.tok == token.FLOAT, p.tok == token.STRING, p.tok == token.CHAR, p.tok == token.BYTE:
		lit := &ast.BasicLit{Span: ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), Kind: p.tok, Value: p.lit}
		p.next()
		x = &ast.ExprLiteral{Span: lit.Span, Lit: lit}

	case p.tok == token.LPAREN:
		p.next()
		mark := p.exprStack.Start()
		for p.tok != token.RPAREN && p.tok != token.EOF {
			p.exprStack.Push(p.parseExpr())
			if !p.atComma("tuple", token.RPAREN) {
				break
			}
			if p.tok == token.COMMA {
				p.next()
			}
		}
		elems := p.exprStack.Drain(mark)
		end := p.expectClosing(token.RPAREN, "parenthesized expression")
		if len(elems) == 1 {
			x = elems[0]
		} else {
			x = &ast.ExprTuple{Span: ast.NewSpan(start, end), Elems: arena.AllocExtend(p.arena, elems)}
		}

	case p.tok == token.LBRACK:
		p.next()
		mark := p.exprStack.Start()
		for p.tok != token.RBRACK && p.tok != token.EOF {
			p.exprStack.Push(p.parseExpr())
			if !p.atComma("array", token.RBRACK) {
				break
			}
			if p.tok == token.COMMA {
				p.next()
			}
		}
		elems := p.exprStack.Drain(mark)
		end := p.expectClosing(token.RBRACK, "array")
		x = &ast.ExprArray{Span: ast.NewSpan(start, end), Elems: arena.AllocExtend(p.arena, elems)}

	case p.tok == token.LBRACE:
		x = p.parseRecordExpr(start)

	default:
		p.errorExpected(start, "expression")
		p.next()
		return &ast.ExprError{Span: ast.NewSpan(start, start)}
	}

	for p.tok == token.PERIOD {
		p.next()
		if p.tok != token.IDENT {
			field := p.env.EmptyId()
			p.errorExpected(p.pos, "identifier")
			x = &ast.ExprProjection{Span: ast.NewSpan(x.Pos(), p.pos), X: x, Field: field}
			continue
		}
		fend := p.pos + token.Pos(len(p.lit))
		name := p.env.FromStr(p.lit)
		p.next()
		x = &ast.ExprProjection{Span: ast.NewSpan(x.Pos(), fend), X: x, Field: name}
	}
	return x
}

// parseRecordExpr handles "{" FieldExpr,* (".." e)? "}", splitting
// fields into Types/Exprs buckets by leading case while preserving
// each bucket's own insertion order. Plain local slices are used
// rather than the shared temp stacks since two independent buckets
// are being built concurrently from one comma list; per the arena
// design notes a per-rule local vector is an accepted equivalent.
func (p *Parser) parseRecordExpr(start token.Pos) ast.Expr {
	p.next() // consume '{'

	var types, exprs []ast.RecordField
	for p.tok != token.RBRACE && p.tok != token.ELLIPSIS && p.tok != token.EOF {
		fstart := p.pos
		meta := p.parseMetadata()
		if p.tok != token.IDENT {
			p.errorExpected(p.pos, "identifier")
			p.sync(token.COMMA, token.RBRACE)
			if p.tok == token.COMMA {
				p.next()
			}
			continue
		}
		name := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
		p.next()
		p.expect(token.BIND)
		val := p.parseExpr()
		field := ast.RecordField{Span: ast.NewSpan(fstart, val.End()), Metadata: meta, Name: name.Name, Value: val}
		if name.Upper {
			types = append(types, field)
		} else {
			exprs = append(exprs, field)
		}
		if !p.atComma("record", token.RBRACE, token.ELLIPSIS) {
			break
		}
		if p.tok == token.COMMA {
			p.next()
		}
	}

	var base ast.Expr
	if p.tok == token.ELLIPSIS {
		p.next()
		base = p.parseExpr()
	}
	end := p.expectClosing(token.RBRACE, "record")
	return &ast.ExprRecord{
		Span:  ast.NewSpan(start, end),
		Types: arena.AllocExtend(p.arena, types),
		Exprs: arena.AllocExtend(p.arena, exprs),
		Base:  base,
	}
}

// parseAppExpr handles AppExpr: head AtomicExpr optionally followed by
// implicit ("?" AtomicExpr) and/or positional AtomicExpr arguments. At
// least one of the two lists is non-empty for an App to result.
func (p *Parser) parseAppExpr() ast.Expr {
	if p.trace {
		defer un(trace(p, "AppExpr"))
	}
	head := p.parseAtomicExpr()

	var implicit []ast.Expr
	if p.tok == token.QUESTION {
		mark := p.exprStack.Start()
		for p.tok == token.QUESTION {
			p.next()
			p.exprStack.Push(p.parseAtomicExpr())
		}
		implicit = p.exprStack.Drain(mark)
	}

	var args []ast.Expr
	if p.startsAtomicExpr() {
		mark := p.exprStack.Start()
		for p.startsAtomicExpr() {
			p.exprStack.Push(p.parseAtomicExpr())
		}
		args = p.exprStack.Drain(mark)
	}

	if len(implicit) == 0 && len(args) == 0 {
		return head
	}
	end := head.End()
	if n := len(args); n > 0 {
		end = args[n-1].End()
	} else if n := len(implicit); n > 0 {
		end = implicit[n-1].End()
	}
	return &ast.ExprApp{
		Span:         ast.NewSpan(head.Pos(), end),
		Func:         head,
		ImplicitArgs: arena.AllocExtend(p.arena, implicit),
		Args:         arena.AllocExtend(p.arena, args),
	}
}

// parseLambdaArgument handles one "?pat" or "pat" lambda parameter.
func (p *Parser) parseLambdaArgument() ast.LambdaArgument {
	start := p.pos
	implicit := false
	if p.tok == token.QUESTION {
		p.next()
		implicit = true
	}
	pat := p.parseAtomicPattern()
	return ast.LambdaArgument{Span: ast.NewSpan(start, pat.End()), Pat: pat, Implicit: implicit}
}

func (p *Parser) startsLambdaArgument() bool {
	return p.tok == token.QUESTION || p.startsAtomicPattern()
}

// parseInfixExpr handles InfixExpr: AppExpr | lambda | binary operator
// application. The open question on lambda precedence is resolved per
// spec: lambda sits at this level, so "\x -> e + 1" parses the body as
// "e + 1".
func (p *Parser) parseInfixExpr() ast.Expr {
	if p.trace {
		defer un(trace(p, "InfixExpr"))
	}
	start := p.pos
	if p.tok == token.BACKSLASH {
		p.next()
		mark := p.lambdaArgStack.Start()
		for p.startsLambdaArgument() {
			p.lambdaArgStack.Push(p.parseLambdaArgument())
		}
		args := p.lambdaArgStack.Drain(mark)
		if len(args) == 0 {
			p.errorExpected(p.pos, "pattern")
		}
		p.expect(token.ARROW)
		body := p.parseInfixExpr()
		return &ast.ExprLambda{
			Span: ast.NewSpan(start, body.End()),
			Id:   p.env.EmptyId(),
			Args: arena.AllocExtend(p.arena, args),
			Body: body,
		}
	}

	lhs := p.parseAppExpr()
	if p.tok != token.IDENT || !isOperatorLexeme(p.lit) {
		return lhs
	}
	op := p.env.FromStr(p.lit)
	p.next()

	var implicit []ast.Expr
	if p.tok == token.QUESTION {
		mark := p.exprStack.Start()
		for p.tok == token.QUESTION {
			p.next()
			p.exprStack.Push(p.parseAtomicExpr())
		}
		implicit = p.exprStack.Drain(mark)
	}
	rhs := p.parseInfixExpr()
	return &ast.ExprInfix{
		Span:         ast.NewSpan(lhs.Pos(), rhs.End()),
		Lhs:          lhs,
		Op:           op,
		Rhs:          rhs,
		ImplicitArgs: arena.AllocExtend(p.arena, implicit),
	}
}

// parseExpr handles Expr_, the top-level expression production: the
// keyword-led forms dispatch to their own parsers; everything else
// falls through to InfixExpr. An unrecognized lookahead synchronizes
// to a likely follow token and yields an ExprError placeholder.
func (p *Parser) parseExpr() ast.Expr {
	if p.trace {
		defer un(trace(p, "Expr"))
	}
	start := p.pos
	switch p.tok {
	case token.IF:
		return p.parseIfElse(start)
	case token.MATCH:
		return p.parseMatch(start)
	case token.LET:
		return p.parseLet(start)
	case token.TYPE:
		return p.parseTypeBindingsExpr(start)
	case token.REC:
		return p.parseRec(start)
	case token.DO:
		return p.parseDo(start)
	case token.SEQ:
		return p.parseSeq(start)
	case token.BLOCK_OPEN:
		return p.parseBlock()
	}
	if p.tok == token.BACKSLASH || p.startsAtomicExpr() {
		return p.parseInfixExpr()
	}
	p.errorExpected(start, "expression")
	p.sync(token.IN, token.BLOCK_SEPARATOR, token.BLOCK_CLOSE, token.RPAREN, token.RBRACK, token.RBRACE)
	return &ast.ExprError{Span: ast.NewSpan(start, p.pos)}
}

// parseIfElse handles "if cond then t else f"; both branches are
// always ExprBlock per §4.5.
func (p *Parser) parseIfElse(start token.Pos) ast.Expr {
	p.next() // consume 'if'
	cond := p.parseExpr()
	p.expect(token.THEN)
	then := p.parseBlockBody()
	p.expect(token.ELSE)
	els := p.parseBlockBody()
	return &ast.ExprIfElse{Span: ast.NewSpan(start, els.End()), Cond: cond, Then: then, Else: els}
}

// asBlock wraps a single expression as a one-element ExprBlock, the
// shape "then"/"else" branches and match-arm bodies always carry.
func asBlock(e ast.Expr) *ast.ExprBlock {
	if b, ok := e.(*ast.ExprBlock); ok {
		return b
	}
	return &ast.ExprBlock{Span: ast.NewSpan(e.Pos(), e.End()), Exprs: []ast.Expr{e}}
}

// parseBlockBody parses a layout-delimited block if one opens here,
// otherwise a single expression promoted to a one-element block.
func (p *Parser) parseBlockBody() ast.Expr {
	if p.tok == token.BLOCK_OPEN {
		return p.parseBlock()
	}
	return asBlock(p.parseExpr())
}

// parseBlock handles "{ blockopen sep-list blockclose }": a sequence
// of expressions separated by layout-synthesized separators.
func (p *Parser) parseBlock() ast.Expr {
	if p.trace {
		defer un(trace(p, "Block"))
	}
	start := p.pos
	p.expect(token.BLOCK_OPEN)
	mark := p.exprStack.Start()
	for p.tok != token.BLOCK_CLOSE && p.tok != token.EOF {
		p.exprStack.Push(p.parseExpr())
		if p.tok != token.BLOCK_SEPARATOR {
			break
		}
		p.next()
	}
	exprs := p.exprStack.Drain(mark)
	end := p.expectClosing(token.BLOCK_CLOSE, "block")
	return &ast.ExprBlock{Span: ast.NewSpan(start, end), Exprs: arena.AllocExtend(p.arena, exprs)}
}

// parseMatch handles "match e with | p -> block ...".
func (p *Parser) parseMatch(start token.Pos) ast.Expr {
	if p.trace {
		defer un(trace(p, "Match"))
	}
	p.next() // consume 'match'
	scrutinee := p.parseExpr()
	p.expect(token.WITH)

	mark := p.matchArmStack.Start()
	for p.tok == token.PIPE {
		mark2 := p.pos
		p.next()
		p.matchArmStack.Push(p.parseMatchArm(mark2))
	}
	arms := p.matchArmStack.Drain(mark)
	end := scrutinee.End()
	if len(arms) > 0 {
		end = arms[len(arms)-1].End()
	}
	return &ast.ExprMatch{Span: ast.NewSpan(start, end), Scrutinee: scrutinee, Arms: arena.AllocExtend(p.arena, arms)}
}

// parseMatchArm handles the three recovery shapes named in §4.5 and
// §4.7: well-formed "p -> e"; "p <err>" yielding (p, Error); and
// "<err>" yielding (Error, Error). The body is always an ExprBlock.
func (p *Parser) parseMatchArm(start token.Pos) ast.MatchArm {
	if !p.startsAtomicPattern() {
		p.errorExpected(p.pos, "pattern")
		errPat := &ast.PatternError{Span: ast.NewSpan(start, p.pos)}
		p.sync(token.PIPE, token.ARROW, token.BLOCK_CLOSE, token.IN)
		return ast.MatchArm{Span: errPat.Span, Pat: errPat, Body: asBlock(&ast.ExprError{Span: errPat.Span})}
	}
	pat := p.parsePattern()
	if p.tok != token.ARROW {
		p.errorExpected(p.pos, "'->'")
		return ast.MatchArm{Span: ast.NewSpan(start, pat.End()), Pat: pat, Body: asBlock(&ast.ExprError{Span: ast.NewSpan(pat.End(), pat.End())})}
	}
	p.next()
	body := p.parseBlockBody()
	return ast.MatchArm{Span: ast.NewSpan(start, body.End()), Pat: pat, Body: body}
}

// parseValueBindingBody parses the shared tail every value binding
// shares regardless of whether it's introduced by "let" or gathered
// inside a "rec" block: a name pattern, zero or more arguments (a
// recursive nullary binding has none, matching the spec's allowance),
// an optional type annotation, "=" and a body expression.
func (p *Parser) parseValueBindingBody(start token.Pos, meta ast.Metadata) *ast.ValueBinding {
	name := p.parseAtomicPattern()

	var args []ast.ValueArgument
	if _, isIdent := name.(*ast.PatternIdent); isIdent {
		mark := p.valueArgStack.Start()
		for p.tok == token.QUESTION || p.startsAtomicPattern() {
			astart := p.pos
			implicit := false
			if p.tok == token.QUESTION {
				p.next()
				implicit = true
			}
			pat := p.parseAtomicPattern()
			p.valueArgStack.Push(ast.ValueArgument{Span: ast.NewSpan(astart, pat.End()), Pat: pat, Implicit: implicit})
		}
		args = p.valueArgStack.Drain(mark)
	}

	var typeAnn ast.Type
	if p.tok == token.COLON {
		p.next()
		typeAnn = p.parseType()
	}

	if p.tok != token.BIND {
		p.errorExpected(p.pos, "'='", "':'")
		end := name.End()
		if len(args) > 0 {
			end = args[len(args)-1].Pat.End()
		}
		return &ast.ValueBinding{
			Span: ast.NewSpan(start, end), Metadata: meta, Name: name,
			Args: arena.AllocExtend(p.arena, args), TypeAnnotation: typeAnn,
			Body: &ast.ExprError{Span: ast.NewSpan(end, end)},
		}
	}
	p.next()
	body := p.parseExpr()
	return &ast.ValueBinding{
		Span: ast.NewSpan(start, body.End()), Metadata: meta, Name: name,
		Args: arena.AllocExtend(p.arena, args), TypeAnnotation: typeAnn, Body: body,
	}
}

// parseLet handles "let binding in body".
func (p *Parser) parseLet(start token.Pos) ast.Expr {
	p.next() // consume 'let'
	meta := p.parseMetadata()
	binding := p.parseValueBindingBody(start, meta)
	p.expect(token.IN)
	body := p.parseExpr()
	return &ast.ExprLetBindings{
		Span:     ast.NewSpan(start, body.End()),
		Kind:     ast.LetPlain,
		Bindings: []*ast.ValueBinding{binding},
		Body:     body,
	}
}

// parseRec handles "rec Many1<RecursiveValueBinding> in body" and
// "rec Many1<TypeBinding> in body", disambiguated by whether the
// bindings are introduced with "type".
func (p *Parser) parseRec(start token.Pos) ast.Expr {
	p.next() // consume 'rec'

	// A multi-line "rec" lays out its binding list the same way a
	// block does, so the reference lexer brackets it with the same
	// BLOCK_OPEN/BLOCK_SEPARATOR/BLOCK_CLOSE triple parseBlock
	// consumes, opened before the first binding's own leading tokens
	// (including any doc comment), mirroring ReplLine's plain-binding
	// case. A single-line "rec x = e in body" never sees layout tokens
	// at all, so the bracketing is optional here.
	opened := p.tok == token.BLOCK_OPEN
	if opened {
		p.next()
	}
	meta := p.parseMetadata()

	if p.tok == token.TYPE {
		mark := p.typeBindStack.Start()
		first := true
		for p.tok == token.TYPE {
			bstart := p.pos
			p.next()
			var m ast.Metadata
			if first {
				m = meta
				first = false
			}
			p.typeBindStack.Push(p.parseTypeBindingBody(bstart, m))
			if p.tok != token.BLOCK_SEPARATOR {
				break
			}
			p.next()
		}
		bindings := p.typeBindStack.Drain(mark)
		if opened {
			p.expectClosing(token.BLOCK_CLOSE, "rec")
		}
		p.expect(token.IN)
		body := p.parseExpr()
		return &ast.ExprTypeBindings{Span: ast.NewSpan(start, body.End()), Bindings: arena.AllocExtend(p.arena, bindings), Body: body}
	}

	mark := p.valueBindStack.Start()
	first := true
	for p.startsAtomicPattern() {
		bstart := p.pos
		var m ast.Metadata
		if first {
			m = meta
			first = false
		}
		p.valueBindStack.Push(p.parseValueBindingBody(bstart, m))
		if p.tok != token.BLOCK_SEPARATOR {
			break
		}
		p.next()
	}
	bindings := p.valueBindStack.Drain(mark)
	if opened {
		p.expectClosing(token.BLOCK_CLOSE, "rec")
	}
	p.expect(token.IN)
	body := p.parseExpr()
	return &ast.ExprLetBindings{
		Span: ast.NewSpan(start, body.End()), Kind: ast.LetRecursive,
		Bindings: arena.AllocExtend(p.arena, bindings), Body: body,
	}
}

// parseTypeBindingsExpr handles "type-binding in body" outside rec.
func (p *Parser) parseTypeBindingsExpr(start token.Pos) ast.Expr {
	p.next() // consume 'type'
	meta := p.parseMetadata()
	binding := p.parseTypeBindingBody(start, meta)
	p.expect(token.IN)
	body := p.parseExpr()
	return &ast.ExprTypeBindings{
		Span: ast.NewSpan(start, body.End()), Bindings: []*ast.TypeBinding{binding}, Body: body,
	}
}

// parseTypeBindingBody parses "Name params = alias" where alias is
// either a plain type or a (possibly forall-quantified) variant row.
func (p *Parser) parseTypeBindingBody(start token.Pos, meta ast.Metadata) *ast.TypeBinding {
	if p.tok != token.IDENT || !ast.StartsUpper(p.lit) {
		p.errorExpected(p.pos, "type name")
	}
	name := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
	p.next()

	mark := p.identStack.Start()
	for p.tok == token.IDENT {
		param := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
		p.next()
		p.identStack.Push(param)
	}
	params := p.identStack.Drain(mark)

	p.expect(token.BIND)

	var body ast.Type
	var quant []*ast.Ident
	if p.tok == token.PIPE || p.tok == token.FORALL {
		body, quant = p.parseVariantType(p.pos)
		if len(quant) > 0 {
			body = p.build.Forall(ast.NewSpan(quant[0].Pos(), body.End()), arena.AllocExtend(p.arena, quant), body)
		}
	} else {
		body = p.parseType()
	}

	alias := ast.AliasData{Name: name, Params: arena.AllocExtend(p.arena, params), Body: body}
	return &ast.TypeBinding{
		Span: ast.NewSpan(start, body.End()), Metadata: meta,
		Name: name, Params: arena.AllocExtend(p.arena, params), Alias: alias,
	}
}

// parseDo handles "do p = m in body".
func (p *Parser) parseDo(start token.Pos) ast.Expr {
	p.next() // consume 'do'
	pat := p.parseAtomicPattern()
	id, _ := pat.(*ast.PatternIdent)
	var ident *ast.Ident
	if id != nil {
		ident = &ast.Ident{Span: id.Span, Name: id.Name, Upper: false}
	}

	if p.tok != token.BIND {
		p.errorExpected(p.pos, "'='")
		errBody := &ast.ExprError{Span: ast.NewSpan(pat.End(), pat.End())}
		p.expect(token.IN)
		body := p.parseExpr()
		return &ast.ExprDo{Span: ast.NewSpan(start, body.End()), Id: ident, Bound: errBody, Body: body}
	}
	p.next()
	bound := p.parseExpr()
	p.expect(token.IN)
	body := p.parseExpr()
	return &ast.ExprDo{Span: ast.NewSpan(start, body.End()), Id: ident, Bound: bound, Body: body}
}

// parseSeq handles "seq e in body", the identifier-less form of do.
func (p *Parser) parseSeq(start token.Pos) ast.Expr {
	p.next() // consume 'seq'
	bound := p.parseExpr()
	p.expect(token.IN)
	body := p.parseExpr()
	return &ast.ExprDo{Span: ast.NewSpan(start, body.End()), Id: nil, Bound: bound, Body: body}
}
