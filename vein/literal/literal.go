// Copyright 2020 CUE Authors
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

// Package literal converts between the raw source text a STRING, CHAR,
// or BYTE token carries and its Go-side value, and parses INT/FLOAT
// token text into exact numeric values. None of this runs during
// parsing itself: the parser keeps BasicLit.Value as raw source text so
// that a malformed escape in a literal nobody ever evaluates costs
// nothing, and these conversions happen lazily wherever a later pass
// actually needs the value.
package literal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v2"
)

// Form defines how to quote a string, char, or bytes literal.
type Form struct {
	quote       byte
	exact       bool
	asciiOnly   bool
	graphicOnly bool
}

var (
	// String is the form used for STRING token text: a double-quoted,
	// lossy-on-reencode literal.
	String = Form{quote: '"'}

	// Char is the form used for CHAR token text: a single-quoted
	// literal that denotes exactly one rune.
	Char = Form{quote: '\''}

	// Bytes is the form used for BYTE token text: a backtick-quoted,
	// byte-exact literal. Bytes that don't round-trip as valid UTF-8
	// are escaped with \xHH rather than substituted with U+FFFD.
	Bytes = Form{quote: '`', exact: true}
)

// WithASCIIOnly ensures the quoted output consists solely of ASCII.
func (f Form) WithASCIIOnly() Form { f.asciiOnly = true; return f }

// WithGraphicOnly ensures the quoted output consists solely of
// printable (in the broad, Unicode-graphic sense) characters.
func (f Form) WithGraphicOnly() Form { f.graphicOnly = true; return f }

const lowerhex = "0123456789abcdef"

// Quote returns a quoted literal denoting s in form f.
func (f Form) Quote(s string) string {
	return string(f.Append(make([]byte, 0, 3*len(s)/2), s))
}

// Append appends a quoted literal denoting s, including its quote
// bytes, to buf.
func (f Form) Append(buf []byte, s string) []byte {
	buf = append(buf, f.quote)
	buf = f.appendEscaped(buf, s)
	buf = append(buf, f.quote)
	return buf
}

func (f Form) appendEscaped(buf []byte, s string) []byte {
	for width := 0; len(s) > 0; s = s[width:] {
		r := rune(s[0])
		width = 1
		if r >= utf8.RuneSelf {
			r, width = utf8.DecodeRuneInString(s)
		}
		if f.exact && width == 1 && r == utf8.RuneError {
			buf = append(buf, `\x`...)
			buf = append(buf, lowerhex[s[0]>>4])
			buf = append(buf, lowerhex[s[0]&0xF])
			continue
		}
		buf = f.appendEscapedRune(buf, r)
	}
	return buf
}

func (f Form) appendEscapedRune(buf []byte, r rune) []byte {
	var runeTmp [utf8.UTFMax]byte
	if r == rune(f.quote) || r == '\\' {
		buf = append(buf, '\\')
		buf = append(buf, byte(r))
		return buf
	}
	if f.asciiOnly {
		if r < utf8.RuneSelf && strconv.IsPrint(r) {
			return append(buf, byte(r))
		}
	} else if strconv.IsPrint(r) {
		n := utf8.EncodeRune(runeTmp[:], r)
		return append(buf, runeTmp[:n]...)
	}
	switch r {
	case '\a':
		return append(buf, `\a`...)
	case '\b':
		return append(buf, `\b`...)
	case '\f':
		return append(buf, `\f`...)
	case '\n':
		return append(buf, `\n`...)
	case '\r':
		return append(buf, `\r`...)
	case '\t':
		return append(buf, `\t`...)
	case '\v':
		return append(buf, `\v`...)
	}
	switch {
	case r < ' ' && f.exact:
		buf = append(buf, `\x`...)
		buf = append(buf, lowerhex[byte(r)>>4])
		buf = append(buf, lowerhex[byte(r)&0xF])
	case r > utf8.MaxRune:
		r = 0xFFFD
		fallthrough
	case r < 0x10000:
		buf = append(buf, `\u`...)
		for s := 12; s >= 0; s -= 4 {
			buf = append(buf, lowerhex[r>>uint(s)&0xF])
		}
	default:
		buf = append(buf, `\U`...)
		for s := 28; s >= 0; s -= 4 {
			buf = append(buf, lowerhex[r>>uint(s)&0xF])
		}
	}
	return buf
}

// Unquote reverses Quote: it strips lit's surrounding quote bytes and
// resolves every escape sequence, returning the literal's Go-side
// string value. It is the inverse appendEscapedRune never had a
// counterpart for in the quoting-only original.
func (f Form) Unquote(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != f.quote || lit[len(lit)-1] != f.quote {
		return "", fmt.Errorf("literal: missing closing %c", f.quote)
	}
	body := lit[1 : len(lit)-1]

	var buf strings.Builder
	buf.Grow(len(body))
	for len(body) > 0 {
		if body[0] != '\\' {
			r, width := utf8.DecodeRuneInString(body)
			buf.WriteRune(r)
			body = body[width:]
			continue
		}
		r, multibyte, rest, err := strconv.UnquoteChar(body, f.quote)
		if err != nil {
			return "", fmt.Errorf("literal: invalid escape in %s", lit)
		}
		if r < 0 {
			// UnquoteChar never returns this case for our quote set;
			// guarded for completeness rather than reachability.
			return "", fmt.Errorf("literal: invalid escape in %s", lit)
		}
		if multibyte || r < utf8.RuneSelf {
			buf.WriteRune(r)
		} else {
			buf.WriteByte(byte(r))
		}
		body = rest
	}
	return buf.String(), nil
}

// ParseInt parses INT token text (decimal, or 0x/0o/0b prefixed, with
// optional '_' digit separators) into an exact decimal value.
func ParseInt(text string) (*apd.Decimal, error) {
	clean := strings.ReplaceAll(text, "_", "")
	d := new(apd.Decimal)
	if strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X") ||
		strings.HasPrefix(clean, "0o") || strings.HasPrefix(clean, "0O") ||
		strings.HasPrefix(clean, "0b") || strings.HasPrefix(clean, "0B") {
		n, err := strconv.ParseInt(clean, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("literal: invalid integer %q: %w", text, err)
		}
		d.SetInt64(n)
		return d, nil
	}
	_, _, err := d.SetString(clean)
	if err != nil {
		return nil, fmt.Errorf("literal: invalid integer %q: %w", text, err)
	}
	return d, nil
}

// ParseFloat parses FLOAT token text (with optional '_' digit
// separators) into an exact decimal value, preserving precision a
// float64 conversion would lose.
func ParseFloat(text string) (*apd.Decimal, error) {
	clean := strings.ReplaceAll(text, "_", "")
	d := new(apd.Decimal)
	_, _, err := d.SetString(clean)
	if err != nil {
		return nil, fmt.Errorf("literal: invalid float %q: %w", text, err)
	}
	return d, nil
}
