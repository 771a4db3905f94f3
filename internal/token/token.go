package token

import "fmt"

// Type identifies the lexical class of a token.
type Type string

const (
	IDENTIFIER Type = "IDENTIFIER"
	INTEGER    Type = "INTEGER"
	DECIMAL    Type = "DECIMAL"
	CHARACTER  Type = "CHARACTER"
	STRING     Type = "STRING"
	OPERATOR   Type = "OPERATOR"
)

// Token is a single lexeme. Literal is the exact source substring, sign
// included for numbers and quotes included for characters and strings.
// Offset is the zero-based byte position of the first character in the
// original input; it never shifts, and downstream errors reference it.
type Token struct {
	Type    Type
	Literal string
	Offset  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d", t.Type, t.Literal, t.Offset)
}

// End returns the offset just past the token's last character.
func (t Token) End() int {
	return t.Offset + len(t.Literal)
}
