package lexer

import (
	"testing"

	"github.com/plclang/plc/internal/token"
)

type tok struct {
	typ     token.Type
	literal string
	offset  int
}

func lexAll(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := New(input).Lex()
	if err != nil {
		t.Fatalf("lex %q: unexpected error: %v", input, err)
	}
	return tokens
}

func expectTokens(t *testing.T, input string, want []tok) {
	t.Helper()
	tokens := lexAll(t, input)
	if len(tokens) != len(want) {
		t.Fatalf("lex %q: expected %d tokens, got %d: %v", input, len(want), len(tokens), tokens)
	}
	for i, w := range want {
		got := tokens[i]
		if got.Type != w.typ || got.Literal != w.literal || got.Offset != w.offset {
			t.Errorf("lex %q token %d: expected %s %q @%d, got %v", input, i, w.typ, w.literal, w.offset, got)
		}
	}
}

func expectLexError(t *testing.T, input string, offset int) {
	t.Helper()
	tokens, err := New(input).Lex()
	if err == nil {
		t.Fatalf("lex %q: expected error, got tokens %v", input, tokens)
	}
	if tokens != nil {
		t.Errorf("lex %q: partial token list returned alongside error", input)
	}
	if err.Offset != offset {
		t.Errorf("lex %q: expected error at offset %d, got %d (%s)", input, offset, err.Offset, err.Message)
	}
}

func TestIdentifiers(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []tok
	}{
		{"simple", "foo", []tok{{token.IDENTIFIER, "foo", 0}}},
		{"underscore", "_bar", []tok{{token.IDENTIFIER, "_bar", 0}}},
		{"hyphenated", "foo-bar", []tok{{token.IDENTIFIER, "foo-bar", 0}}},
		{"digits_inside", "f12", []tok{{token.IDENTIFIER, "f12", 0}}},
		{"keyword_shape", "LET", []tok{{token.IDENTIFIER, "LET", 0}}},
		{"leading_whitespace", "  foo", []tok{{token.IDENTIFIER, "foo", 2}}},
		{"leading_digit", "1fish", []tok{
			{token.INTEGER, "1", 0},
			{token.IDENTIFIER, "fish", 1},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expectTokens(t, tc.input, tc.want)
		})
	}
}

func TestNumbers(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []tok
	}{
		{"single_digit", "1", []tok{{token.INTEGER, "1", 0}}},
		{"multiple_digits", "12345", []tok{{token.INTEGER, "12345", 0}}},
		{"zero", "0", []tok{{token.INTEGER, "0", 0}}},
		{"positive_sign", "+1", []tok{{token.INTEGER, "+1", 0}}},
		{"negative_sign", "-1", []tok{{token.INTEGER, "-1", 0}}},
		{"signed_zero_positive", "+0", []tok{{token.INTEGER, "+0", 0}}},
		{"signed_zero_negative", "-0", []tok{{token.INTEGER, "-0", 0}}},
		{"decimal", "123.456", []tok{{token.DECIMAL, "123.456", 0}}},
		{"signed_decimal", "-1.0", []tok{{token.DECIMAL, "-1.0", 0}}},
		{"zero_point", "0.5", []tok{{token.DECIMAL, "0.5", 0}}},
		// A leading zero is never followed by more digits.
		{"leading_zero", "01", []tok{
			{token.INTEGER, "0", 0},
			{token.INTEGER, "1", 1},
		}},
		// A dot without digits on both sides is an operator.
		{"trailing_dot", "1.", []tok{
			{token.INTEGER, "1", 0},
			{token.OPERATOR, ".", 1},
		}},
		{"leading_dot", ".5", []tok{
			{token.OPERATOR, ".", 0},
			{token.INTEGER, "5", 1},
		}},
		{"double_dot", "1..2", []tok{
			{token.INTEGER, "1", 0},
			{token.OPERATOR, ".", 1},
			{token.OPERATOR, ".", 2},
			{token.INTEGER, "2", 3},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expectTokens(t, tc.input, tc.want)
		})
	}
}

func TestCharacters(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []tok
	}{
		{"letter", "'a'", []tok{{token.CHARACTER, "'a'", 0}}},
		{"digit", "'1'", []tok{{token.CHARACTER, "'1'", 0}}},
		{"space", "' '", []tok{{token.CHARACTER, "' '", 0}}},
		{"newline_escape", `'\n'`, []tok{{token.CHARACTER, `'\n'`, 0}}},
		{"backslash_escape", `'\\'`, []tok{{token.CHARACTER, `'\\'`, 0}}},
		{"quote_escape", `'\''`, []tok{{token.CHARACTER, `'\''`, 0}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expectTokens(t, tc.input, tc.want)
		})
	}
}

func TestCharacterErrors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		offset int
	}{
		{"empty", "''", 1},
		{"multiple", "'ab'", 2},
		{"unterminated", "'a", 2},
		{"raw_newline", "'\n'", 1},
		{"bad_escape", `'\q'`, 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expectLexError(t, tc.input, tc.offset)
		})
	}
}

func TestStrings(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []tok
	}{
		{"empty", `""`, []tok{{token.STRING, `""`, 0}}},
		{"simple", `"abc"`, []tok{{token.STRING, `"abc"`, 0}}},
		{"escapes", `"a\nb"`, []tok{{token.STRING, `"a\nb"`, 0}}},
		{"escaped_quote", `"say \"hi\""`, []tok{{token.STRING, `"say \"hi\""`, 0}}},
		{"symbols", `"!@#$%"`, []tok{{token.STRING, `"!@#$%"`, 0}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expectTokens(t, tc.input, tc.want)
		})
	}
}

func TestStringErrors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		offset int
	}{
		// An unterminated string fails at the position past the last
		// consumed character.
		{"unterminated", `"unterminated`, 13},
		{"unterminated_empty", `"`, 1},
		{"raw_newline", "\"ab\ncd\"", 3},
		{"bad_escape", `"a\qb"`, 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expectLexError(t, tc.input, tc.offset)
		})
	}
}

func TestOperators(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []tok
	}{
		{"single", "(", []tok{{token.OPERATOR, "(", 0}}},
		{"less_equal", "<=", []tok{{token.OPERATOR, "<=", 0}}},
		{"greater_equal", ">=", []tok{{token.OPERATOR, ">=", 0}}},
		{"equal", "==", []tok{{token.OPERATOR, "==", 0}}},
		{"not_equal", "!=", []tok{{token.OPERATOR, "!=", 0}}},
		{"and", "&&", []tok{{token.OPERATOR, "&&", 0}}},
		{"or", "||", []tok{{token.OPERATOR, "||", 0}}},
		{"bare_ampersand", "&", []tok{{token.OPERATOR, "&", 0}}},
		{"assign_then_equal", "= ==", []tok{
			{token.OPERATOR, "=", 0},
			{token.OPERATOR, "==", 2},
		}},
		{"plus_no_digit", "+x", []tok{
			{token.OPERATOR, "+", 0},
			{token.IDENTIFIER, "x", 1},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expectTokens(t, tc.input, tc.want)
		})
	}
}

func TestWhitespaceHandling(t *testing.T) {
	expectTokens(t, "a \t\r\n b", []tok{
		{token.IDENTIFIER, "a", 0},
		{token.IDENTIFIER, "b", 6},
	})
	if tokens := lexAll(t, " \t\n"); len(tokens) != 0 {
		t.Errorf("whitespace-only input produced tokens: %v", tokens)
	}
}

func TestStatementTokens(t *testing.T) {
	expectTokens(t, `LET x = 5;`, []tok{
		{token.IDENTIFIER, "LET", 0},
		{token.IDENTIFIER, "x", 4},
		{token.OPERATOR, "=", 6},
		{token.INTEGER, "5", 8},
		{token.OPERATOR, ";", 9},
	})
	expectTokens(t, `print("Hello, World!");`, []tok{
		{token.IDENTIFIER, "print", 0},
		{token.OPERATOR, "(", 5},
		{token.STRING, `"Hello, World!"`, 6},
		{token.OPERATOR, ")", 21},
		{token.OPERATOR, ";", 22},
	})
}
