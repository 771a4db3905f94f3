// Package lexer turns a source string into a token stream in a single
// forward pass. Errors carry the zero-based offset at which lexing
// stopped; on failure no partial token list is returned.
package lexer

import (
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/plclang/plc/internal/diagnostics"
	"github.com/plclang/plc/internal/token"
)

// Single-character regex fragments used by peek and match. Each fragment
// must match exactly one character.
const (
	whitespace = `[ \x08\n\r\t]`
	letter     = `[A-Za-z_]`
	identRest  = `[A-Za-z0-9_-]`
	digit      = `[0-9]`
	sign       = `[+\-]`
	escapeBody = `[bnrt'"\\]`
	charBody   = `[^'\n\r\\]`
	stringBody = `[^"\n\r\\]`
	anyChar    = `[^ \x08\n\r\t]`
)

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

func pattern(fragment string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	re, ok := patternCache[fragment]
	if !ok {
		re = regexp.MustCompile(`^(?:` + fragment + `)$`)
		patternCache[fragment] = re
	}
	return re
}

type Lexer struct {
	input string
	index int // byte offset of the next unconsumed character
	start int // byte offset where the current token began
}

func New(input string) *Lexer {
	return &Lexer{input: input}
}

// has reports whether a character exists offset runes past the cursor.
func (l *Lexer) has(offset int) bool {
	i := l.index
	for ; offset > 0 && i < len(l.input); offset-- {
		_, w := utf8.DecodeRuneInString(l.input[i:])
		i += w
	}
	return offset == 0 && i < len(l.input)
}

// get returns the character offset runes past the cursor.
func (l *Lexer) get(offset int) rune {
	i := l.index
	for ; offset > 0; offset-- {
		_, w := utf8.DecodeRuneInString(l.input[i:])
		i += w
	}
	r, _ := utf8.DecodeRuneInString(l.input[i:])
	return r
}

func (l *Lexer) advance() {
	_, w := utf8.DecodeRuneInString(l.input[l.index:])
	l.index += w
}

// skip discards the characters consumed so far without emitting a token.
func (l *Lexer) skip() {
	l.start = l.index
}

func (l *Lexer) emit(t token.Type) token.Token {
	tok := token.Token{Type: t, Literal: l.input[l.start:l.index], Offset: l.start}
	l.skip()
	return tok
}

// peek reports whether the next characters match the given regex
// fragments, one character per fragment, without consuming.
func (l *Lexer) peek(patterns ...string) bool {
	for i, p := range patterns {
		if !l.has(i) || !pattern(p).MatchString(string(l.get(i))) {
			return false
		}
	}
	return true
}

// match behaves like peek but advances past the matched characters when
// they all match.
func (l *Lexer) match(patterns ...string) bool {
	if !l.peek(patterns...) {
		return false
	}
	for range patterns {
		l.advance()
	}
	return true
}

func (l *Lexer) errorf(code diagnostics.ErrorCode, format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.NewError(code, l.index, format, args...)
}

// Lex tokenizes the whole input. Whitespace is skipped between tokens but
// never permitted inside one.
func (l *Lexer) Lex() ([]token.Token, *diagnostics.DiagnosticError) {
	var tokens []token.Token
	for l.has(0) {
		if l.match(whitespace) {
			l.skip()
			continue
		}
		tok, err := l.lexToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// lexToken dispatches on the first character without consuming it.
func (l *Lexer) lexToken() (token.Token, *diagnostics.DiagnosticError) {
	switch {
	case l.peek(letter):
		return l.lexIdentifier(), nil
	case l.peek(digit), l.peek(sign, digit):
		return l.lexNumber(), nil
	case l.peek(`'`):
		return l.lexCharacter()
	case l.peek(`"`):
		return l.lexString()
	default:
		return l.lexOperator(), nil
	}
}

func (l *Lexer) lexIdentifier() token.Token {
	l.match(letter)
	for l.match(identRest) {
	}
	return l.emit(token.IDENTIFIER)
}

// lexNumber consumes an optional sign (the dispatcher guarantees a digit
// follows it), the integer part, and a fractional part when a dot with a
// digit after it is present. A leading zero is never followed by more
// digits, so "01" lexes as two integer tokens.
func (l *Lexer) lexNumber() token.Token {
	l.match(sign)
	if !l.match(`0`) {
		for l.match(digit) {
		}
	}
	if l.peek(`\.`, digit) {
		l.match(`\.`)
		for l.match(digit) {
		}
		return l.emit(token.DECIMAL)
	}
	return l.emit(token.INTEGER)
}

func (l *Lexer) lexCharacter() (token.Token, *diagnostics.DiagnosticError) {
	l.match(`'`)
	if l.match(`\\`) {
		if !l.match(escapeBody) {
			return token.Token{}, l.errorf(diagnostics.ErrL003, "invalid escape sequence in character literal")
		}
	} else if !l.match(charBody) {
		return token.Token{}, l.errorf(diagnostics.ErrL001, "illegal character literal")
	}
	if !l.match(`'`) {
		return token.Token{}, l.errorf(diagnostics.ErrL001, "unterminated character literal")
	}
	return l.emit(token.CHARACTER), nil
}

func (l *Lexer) lexString() (token.Token, *diagnostics.DiagnosticError) {
	l.match(`"`)
	for {
		switch {
		case l.match(`"`):
			return l.emit(token.STRING), nil
		case !l.has(0):
			return token.Token{}, l.errorf(diagnostics.ErrL002, "unterminated string literal")
		case l.match(`\\`):
			if !l.match(escapeBody) {
				return token.Token{}, l.errorf(diagnostics.ErrL003, "invalid escape sequence in string literal")
			}
		case l.match(stringBody):
		default:
			return token.Token{}, l.errorf(diagnostics.ErrL002, "illegal character in string literal")
		}
	}
}

// lexOperator consumes one of the two-character comparisons or logicals,
// or any single non-whitespace character.
func (l *Lexer) lexOperator() token.Token {
	switch {
	case l.match(`[<>=!]`, `=`):
	case l.match(`&`, `&`):
	case l.match(`\|`, `\|`):
	default:
		l.match(anyChar)
	}
	return l.emit(token.OPERATOR)
}
