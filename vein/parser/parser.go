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

// Package parser turns a pre-layout-resolved token stream into a typed
// AST. It never aborts: every syntax error is appended to an error
// sink and a placeholder node takes the broken production's place, so
// callers always get back a structurally complete tree.
package parser

import (
	"fmt"

	"github.com/veinlang/vein/vein/arena"
	"github.com/veinlang/vein/vein/ast"
	"github.com/veinlang/vein/vein/errors"
	"github.com/veinlang/vein/vein/intern"
	"github.com/veinlang/vein/vein/token"
)

// TokenSource is the external lexer/layout-filter collaborator: a
// stream of already layout-resolved lexemes. Scan must return
// token.EOF forever once the stream is exhausted.
type TokenSource interface {
	Scan() token.Lexeme
}

// Source additionally exposes the raw source text the tokens were cut
// from, indexable by byte position. The parser uses it only to capture
// an attribute's argument text byte-for-byte.
type Source interface {
	TokenSource
	Slice(start, end token.Pos) string
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// Trace enables production-entry tracing to stdout, in the spirit of
// a hand-written recursive-descent parser's p.trace switch: useful
// when developing the grammar, never enabled by default.
func Trace(p *Parser) { p.trace = true }

// Parser holds all per-parse state: every field here is exclusive to
// one Parse call and must not be shared across concurrent parses.
type Parser struct {
	src   Source
	env   *intern.Environment
	arena *arena.Arena
	build *ast.Builder
	kinds ast.KindCache

	errors errors.List

	// Scratch stacks for list-producing productions, one per element
	// type, exclusive to this parse per the concurrency model (§5): two
	// parses running in parallel never share a Parser and so never
	// share these.
	typeStack      arena.Stack[ast.Type]
	identStack     arena.Stack[*ast.Ident]
	typeRowStack   arena.Stack[ast.RowField]
	fieldRowStack  arena.Stack[ast.RowField]
	exprStack      arena.Stack[ast.Expr]
	patternStack   arena.Stack[ast.Pattern]
	recFieldStack  arena.Stack[ast.RecordField]
	matchArmStack  arena.Stack[ast.MatchArm]
	valueBindStack arena.Stack[*ast.ValueBinding]
	typeBindStack  arena.Stack[*ast.TypeBinding]
	valueArgStack  arena.Stack[ast.ValueArgument]
	lambdaArgStack arena.Stack[ast.LambdaArgument]
	patFieldStack  arena.Stack[ast.PatternField]
	attrStack      arena.Stack[*ast.Attribute]

	trace  bool
	indent int

	// one-token lookahead, refreshed by next()
	pos token.Pos
	tok token.Token
	lit string

	// buffered is a single pushed-back lexeme, used to disambiguate "["
	// as the start of an effect row ("[|") from "[" as the implicit-
	// argument-type marker (peekIsPipe), and an effect row's closing "|"
	// from its rest-clause "|" (peekAfterPipeIsRBrack): each needs one
	// extra token of lookahead beyond what the rest of the grammar
	// requires.
	buffered *token.Lexeme

	// error-recovery progress guard, mirroring the teacher parser's
	// syncPos/syncCnt pair: without it a production that both fails to
	// advance and keeps calling its own sync routine could loop forever.
	syncPos token.Pos
	syncCnt int
}

// New constructs a Parser reading from src, interning through env, and
// allocating into a. kinds is normally ast.NewSimpleKindCache().
func New(src Source, env *intern.Environment, a *arena.Arena, kinds ast.KindCache, opts ...Option) *Parser {
	p := &Parser{
		src:   src,
		env:   env,
		arena: a,
		build: &ast.Builder{Arena: a, Kinds: kinds},
		kinds: kinds,
	}
	for _, o := range opts {
		o(p)
	}
	p.next()
	return p
}

// Errors returns the accumulated diagnostic list. A parse that
// produced no errors returns an empty (non-nil-checked) list.
func (p *Parser) Errors() errors.List { return p.errors }

func (p *Parser) next() {
	var lx token.Lexeme
	if p.buffered != nil {
		lx, p.buffered = *p.buffered, nil
	} else {
		lx = p.src.Scan()
	}
	p.pos, p.tok, p.lit = lx.Start, lx.Kind, lx.Lit
	if p.trace {
		p.printTrace()
	}
}

// peekIsPipe reports whether the token after the current LBRACK
// lookahead is PIPE, without losing either token.
func (p *Parser) peekIsPipe() bool {
	if p.buffered == nil {
		lx := p.src.Scan()
		p.buffered = &lx
	}
	return p.buffered.Kind == token.PIPE
}

// peekAfterPipeIsRBrack reports whether the token after the current
// PIPE lookahead is RBRACK, without losing either token. Only valid to
// call when p.tok == token.PIPE: it tells an effect row's mandatory
// closing "|" (immediately followed by "]") apart from the "|" that
// opens its optional "(| Type)?" rest clause.
func (p *Parser) peekAfterPipeIsRBrack() bool {
	if p.buffered == nil {
		lx := p.src.Scan()
		p.buffered = &lx
	}
	return p.buffered.Kind == token.RBRACK
}

func (p *Parser) printTrace() {
	const dots = ". . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . "
	i := 2 * p.indent
	for i > len(dots) {
		fmt.Print(dots)
		i -= len(dots)
	}
	fmt.Print(dots[:i])
	fmt.Printf("%d: %s %q\n", p.pos, p.tok, p.lit)
}

func trace(p *Parser, msg string) *Parser {
	if p.trace {
		p.printTrace()
		fmt.Println(msg, "(")
	}
	p.indent++
	return p
}

func un(p *Parser) {
	p.indent--
	if p.trace {
		fmt.Println(")")
	}
}

func (p *Parser) errf(pos token.Pos, msg string, args ...interface{}) {
	p.errors.AddNewf(pos, msg, args...)
}

func (p *Parser) errorExpected(pos token.Pos, expected ...string) {
	found := p.tok.String()
	if p.tok.IsLiteral() {
		found = fmt.Sprintf("%s %q", p.tok, p.lit)
	}
	p.errors.Add(errors.Unexpected(pos, p.pos, found, expected))
}

// expect consumes tok, recording an error if the lookahead isn't tok.
// It always advances, so callers make progress even after a mismatch.
func (p *Parser) expect(tok token.Token) token.Pos {
	pos := p.pos
	if p.tok != tok {
		p.errorExpected(pos, "'"+tok.String()+"'")
	}
	p.next()
	return pos
}

// expectClosing is expect specialized for a closing delimiter, naming
// the open construct in the diagnostic when it's missing.
func (p *Parser) expectClosing(tok token.Token, context string) token.Pos {
	if p.tok != tok {
		p.errf(p.pos, "expected '%s' to close %s, found %s", tok, context, p.tok)
		p.next()
		return p.pos
	}
	pos := p.pos
	p.next()
	return pos
}

// atComma reports whether the lookahead is a separator appropriate at
// this point in a comma-list; if not, and the lookahead isn't one of
// follow (a legitimate close token), it records a missing-separator
// error and still reports true so the caller treats the list as
// continuing — recovery never discards an already-parsed element.
func (p *Parser) atComma(context string, follow ...token.Token) bool {
	if p.tok == token.COMMA {
		return true
	}
	for _, t := range follow {
		if p.tok == t {
			return false
		}
	}
	p.errf(p.pos, "missing ',' in %s", context)
	return true
}

// sync advances the lookahead until it reaches one of the stop tokens
// or EOF, guarding against a no-progress loop the way the teacher
// parser's syncExpr guards syncCnt against repeated synchronization at
// the same position.
func (p *Parser) sync(stop ...token.Token) {
	for {
		for _, t := range stop {
			if p.tok == t {
				return
			}
		}
		if p.tok == token.EOF {
			return
		}
		if p.pos == p.syncPos {
			p.syncCnt++
			if p.syncCnt > 10 {
				p.next()
				p.syncCnt = 0
				continue
			}
		} else {
			p.syncPos = p.pos
			p.syncCnt = 0
		}
		p.next()
	}
}

// emptyIdent is the sentinel identifier used for a recovered
// projection field and for an anonymous lambda's Id: it is never a
// name a user could have written.
func (p *Parser) emptyIdent(span ast.Span) *ast.Ident {
	return &ast.Ident{Span: span, Name: p.env.EmptyId(), Upper: false}
}

// identAt interns name and records whether it reads as upper-leading
// at this occurrence.
func (p *Parser) identAt(span ast.Span, name string) *ast.Ident {
	return &ast.Ident{Span: span, Name: p.env.FromStr(name), Upper: ast.StartsUpper(name)}
}
