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

// Package token defines the closed set of lexical tokens the parser
// consumes. Tokenizing and layout resolution happen upstream of this
// package: every token already carries the byte span the layout filter
// assigned it, plus any block-open/block-close/separator markers it
// synthesized.
package token

import "strconv"

// Pos is a byte offset into the source a parse was given. It carries no
// file identity of its own; callers that need line/column information
// resolve it against the Source they fed the parser.
type Pos int32

// NoPos marks the absence of a position; it never refers to a valid byte.
const NoPos Pos = -1

// IsValid reports whether p represents a real byte offset.
func (p Pos) IsValid() bool { return p >= 0 }

// Before reports whether p precedes q.
func (p Pos) Before(q Pos) bool { return p < q }

// Token is a lexical category. The set is closed: the grammar never
// needs to recognize a token kind it wasn't told about up front.
type Token int

const (
	ILLEGAL Token = iota
	EOF
	SHEBANG

	literalBeg
	IDENT
	INT
	FLOAT
	STRING
	CHAR
	BYTE
	DOC_COMMENT
	COMMENT
	literalEnd

	operatorBeg
	AT       // @
	COLON    // :
	COMMA    // ,
	PERIOD   // .
	ELLIPSIS // ..
	BIND     // =
	BACKSLASH
	PIPE      // |
	ARROW     // ->
	QUESTION  // ?
	LBRACE    // {
	LBRACK    // [
	LPAREN    // (
	RBRACE    // }
	RBRACK    // ]
	RPAREN    // )
	ATTRIBUTE // #[
	operatorEnd

	keywordBeg
	REC
	ELSE
	FORALL
	IF
	IN
	LET
	DO
	SEQ
	MATCH
	THEN
	TYPE
	WITH
	keywordEnd

	layoutBeg
	BLOCK_OPEN
	BLOCK_CLOSE
	BLOCK_SEPARATOR
	layoutEnd
)

var tokenNames = map[Token]string{
	ILLEGAL:         "ILLEGAL",
	EOF:             "EOF",
	SHEBANG:         "SHEBANG",
	IDENT:           "IDENT",
	INT:             "INT",
	FLOAT:           "FLOAT",
	STRING:          "STRING",
	CHAR:            "CHAR",
	BYTE:            "BYTE",
	DOC_COMMENT:     "DOC_COMMENT",
	COMMENT:         "COMMENT",
	AT:              "@",
	COLON:           ":",
	COMMA:           ",",
	PERIOD:          ".",
	ELLIPSIS:        "..",
	BIND:            "=",
	BACKSLASH:       "\\",
	PIPE:            "|",
	ARROW:           "->",
	QUESTION:        "?",
	LBRACE:          "{",
	LBRACK:          "[",
	LPAREN:          "(",
	RBRACE:          "}",
	RBRACK:          "]",
	RPAREN:          ")",
	ATTRIBUTE:       "#[",
	REC:             "rec",
	ELSE:            "else",
	FORALL:          "forall",
	IF:              "if",
	IN:              "in",
	LET:             "let",
	DO:              "do",
	SEQ:             "seq",
	MATCH:           "match",
	THEN:            "then",
	TYPE:            "type",
	WITH:            "with",
	BLOCK_OPEN:      "<blockopen>",
	BLOCK_CLOSE:     "<blockclose>",
	BLOCK_SEPARATOR: "<sep>",
}

func (tok Token) String() string {
	if s, ok := tokenNames[tok]; ok {
		return s
	}
	return "token(" + strconv.Itoa(int(tok)) + ")"
}

// IsLiteral reports whether tok is a literal or comment category.
func (tok Token) IsLiteral() bool { return literalBeg < tok && tok < literalEnd }

// IsOperator reports whether tok is punctuation.
func (tok Token) IsOperator() bool { return operatorBeg < tok && tok < operatorEnd }

// IsKeyword reports whether tok is a reserved word.
func (tok Token) IsKeyword() bool { return keywordBeg < tok && tok < keywordEnd }

// IsLayout reports whether tok was synthesized by the layout filter
// rather than scanned directly from source text.
func (tok Token) IsLayout() bool { return layoutBeg < tok && tok < layoutEnd }

var keywords = map[string]Token{
	"rec":    REC,
	"else":   ELSE,
	"forall": FORALL,
	"if":     IF,
	"in":     IN,
	"let":    LET,
	"do":     DO,
	"seq":    SEQ,
	"match":  MATCH,
	"then":   THEN,
	"type":   TYPE,
	"with":   WITH,
}

// Lookup reports the keyword token for ident, or IDENT if ident is not
// reserved.
func Lookup(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Lexeme is a single lexical item as produced by the external lexer /
// layout filter: a byte span plus the category and literal text that
// span covers.
type Lexeme struct {
	Start Pos
	Kind  Token
	End   Pos
	Lit   string
}
