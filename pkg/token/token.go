// Package token defines the lexical token model shared by all analyzers.
package token

// Kind classifies a lexical token.
type Kind string

const (
	Keyword     Kind = "keyword"
	Identifier  Kind = "identifier"
	Number      Kind = "number"
	String      Kind = "string"
	Template    Kind = "template"
	Regex       Kind = "regex"
	Operator    Kind = "operator"
	Punctuation Kind = "punctuation"
	Comment     Kind = "comment"
	Unknown     Kind = "unknown"
)

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}

// Token is a single lexical unit. Line and Column are 1-based and point at
// the token's first character. Text is the exact source slice, so
// concatenating Text over a token sequence reconstructs the input modulo
// discarded whitespace.
type Token struct {
	Kind   Kind   `json:"kind" toon:"kind"`
	Text   string `json:"text" toon:"text"`
	Line   int    `json:"line" toon:"line"`
	Column int    `json:"column" toon:"column"`
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(name string) bool {
	return t.Kind == Keyword && t.Text == name
}

// IsPunct reports whether the token is the given punctuation character.
func (t Token) IsPunct(text string) bool {
	return t.Kind == Punctuation && t.Text == text
}

// Significant filters out comment tokens. Complexity, reachability, and
// import parsing all operate on the significant stream.
func Significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != Comment {
			out = append(out, t)
		}
	}
	return out
}
