package lexer

// Character predicates are explicit functions rather than regex classes so
// the scanner never backtracks.

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isBinaryDigit(r rune) bool {
	return r == '0' || r == '1'
}

func isOctalDigit(r rune) bool {
	return r >= '0' && r <= '7'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// keywords covers the reserved words the analyzers care about plus the
// common contextual ones. "from" and "require" deliberately stay plain
// identifiers; the dependency mapper matches them by text.
var keywords = map[string]bool{
	"async": true, "await": true, "break": true, "case": true,
	"catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true,
	"if": true, "import": true, "in": true, "instanceof": true,
	"let": true, "new": true, "null": true, "of": true,
	"return": true, "static": true, "super": true, "switch": true,
	"this": true, "throw": true, "true": true, "try": true,
	"typeof": true, "undefined": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true,
}

// valueKeywords produce a value, so a slash after one of them is division,
// not the start of a regex literal.
var valueKeywords = map[string]bool{
	"this": true, "true": true, "false": true, "null": true, "undefined": true,
}

// operators is ordered longest-first so a three-character operator is never
// split into a two-character operator plus a leftover.
var operators = []string{
	">>>=",
	"...", "===", "!==", "**=", "<<=", ">>=", "&&=", "||=", "??=", ">>>",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "&", "|", "^", "~", "?",
}

func isPunctuation(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', ',', ';', ':', '.':
		return true
	}
	return false
}

// regexCapablePunctuation lists the punctuation tokens a regex literal may
// directly follow: openers and statement/expression separators, never
// closers.
var regexCapablePunctuation = map[string]bool{
	"(": true, "[": true, "{": true, ",": true, ";": true, ":": true,
}
