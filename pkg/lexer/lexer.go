// Package lexer converts raw source text into an ordered token sequence.
//
// The scanner is a hand-rolled state machine: it holds an explicit cursor
// (offset, line, column) plus the most recent significant token, which is
// the state needed to disambiguate a slash between division and the start
// of a regex literal. It never fails: malformed literals degrade to
// best-effort tokens and unrecognized characters become Unknown tokens, so
// downstream analyzers always receive a sequence they can work with.
package lexer

import (
	"github.com/panbanda/auspex/pkg/token"
)

// Lexer scans a single source text. The zero value is not usable; create
// one with New.
type Lexer struct {
	src    []rune
	pos    int
	line   int
	col    int
	last   *token.Token // last significant (non-comment) token emitted
	tokens []token.Token
}

// New creates a lexer over src.
func New(src string) *Lexer {
	return &Lexer{
		src:  []rune(src),
		line: 1,
		col:  1,
	}
}

// Tokenize scans src and returns its token sequence.
func Tokenize(src string) []token.Token {
	return New(src).Scan()
}

// Scan consumes the whole input and returns all tokens in source order.
// Whitespace is discarded; comments are kept as Comment tokens.
func (l *Lexer) Scan() []token.Token {
	for l.pos < len(l.src) {
		r := l.src[l.pos]

		if isWhitespace(r) {
			l.advance()
			continue
		}

		switch {
		case r == '/' && l.peekAt(1) == '/':
			l.scanLineComment()
		case r == '/' && l.peekAt(1) == '*':
			l.scanBlockComment()
		case r == '/' && l.regexAllowed():
			l.scanRegex()
		case r == '\'' || r == '"':
			l.scanString(r)
		case r == '`':
			l.scanTemplate()
		case isDigit(r) || (r == '.' && isDigit(l.peekAt(1))):
			l.scanNumber()
		case isIdentStart(r):
			l.scanIdentifier()
		default:
			if !l.scanOperator() {
				if isPunctuation(r) {
					l.emitFrom(token.Punctuation, l.mark())
				} else {
					// Stray character; keep going so analysis can
					// proceed past anomalies.
					start := l.mark()
					l.advance()
					l.emit(token.Unknown, start)
				}
			}
		}
	}
	return l.tokens
}

// mark records the cursor before a token is consumed.
type mark struct {
	pos, line, col int
}

func (l *Lexer) mark() mark {
	return mark{pos: l.pos, line: l.line, col: l.col}
}

// advance consumes one rune, tracking line and column.
func (l *Lexer) advance() {
	if l.pos >= len(l.src) {
		return
	}
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

// emit appends a token spanning from m to the current cursor and updates
// the last-significant state for everything except comments.
func (l *Lexer) emit(kind token.Kind, m mark) {
	t := token.Token{
		Kind:   kind,
		Text:   string(l.src[m.pos:l.pos]),
		Line:   m.line,
		Column: m.col,
	}
	l.tokens = append(l.tokens, t)
	if kind != token.Comment {
		l.last = &l.tokens[len(l.tokens)-1]
	}
}

// emitFrom consumes a single rune starting at m and emits it.
func (l *Lexer) emitFrom(kind token.Kind, m mark) {
	l.advance()
	l.emit(kind, m)
}

// regexAllowed decides whether a slash at the cursor starts a regex
// literal. It does when the last significant token cannot end an
// expression: start of input, an operator, an opener or separator, or a
// keyword outside the value-producing set.
func (l *Lexer) regexAllowed() bool {
	if l.last == nil {
		return true
	}
	switch l.last.Kind {
	case token.Operator:
		return true
	case token.Punctuation:
		return regexCapablePunctuation[l.last.Text]
	case token.Keyword:
		return !valueKeywords[l.last.Text]
	}
	return false
}

func (l *Lexer) scanLineComment() {
	start := l.mark()
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.advance()
	}
	l.emit(token.Comment, start)
}

func (l *Lexer) scanBlockComment() {
	start := l.mark()
	l.advance() // '/'
	l.advance() // '*'
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			l.emit(token.Comment, start)
			return
		}
		l.advance()
	}
	// Unterminated block comment runs to end of input.
	l.emit(token.Comment, start)
}

// scanString consumes a quoted literal. A backslash escape always spans two
// characters, so an escaped quote never terminates the literal. An
// unterminated string closes at end of line or end of input.
func (l *Lexer) scanString(quote rune) {
	start := l.mark()
	l.advance() // opening quote
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r == '\\' {
			l.advance()
			if l.pos < len(l.src) {
				l.advance()
			}
			continue
		}
		if r == '\n' {
			break
		}
		l.advance()
		if r == quote {
			break
		}
	}
	l.emit(token.String, start)
}

// scanTemplate consumes a backtick literal. Embedded ${…} regions are
// tracked with a depth counter: entering one increments it, a closing brace
// at depth > 0 decrements it, and the backtick only terminates the literal
// at depth zero. Nested templates recurse naturally through the same
// counter.
func (l *Lexer) scanTemplate() {
	start := l.mark()
	l.advance() // opening backtick
	depth := 0
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case r == '\\':
			l.advance()
			if l.pos < len(l.src) {
				l.advance()
			}
		case r == '$' && l.peekAt(1) == '{':
			depth++
			l.advance()
			l.advance()
		case r == '}' && depth > 0:
			depth--
			l.advance()
		case r == '`' && depth == 0:
			l.advance()
			l.emit(token.Template, start)
			return
		default:
			l.advance()
		}
	}
	// Unterminated template runs to end of input.
	l.emit(token.Template, start)
}

// scanRegex consumes a regex literal, honoring escapes and character
// classes (a slash inside […] does not close the literal). Unterminated
// literals close at end of line or end of input.
func (l *Lexer) scanRegex() {
	start := l.mark()
	l.advance() // opening slash
	inClass := false
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r == '\\' {
			l.advance()
			if l.pos < len(l.src) {
				l.advance()
			}
			continue
		}
		if r == '\n' {
			l.emit(token.Regex, start)
			return
		}
		l.advance()
		switch r {
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				// Flags.
				for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
					l.advance()
				}
				l.emit(token.Regex, start)
				return
			}
		}
	}
	l.emit(token.Regex, start)
}

func (l *Lexer) scanNumber() {
	start := l.mark()

	if l.src[l.pos] == '0' {
		switch l.peekAt(1) {
		case 'x', 'X':
			l.advance()
			l.advance()
			l.consumeDigits(isHexDigit)
			l.consumeBigIntSuffix()
			l.emit(token.Number, start)
			return
		case 'b', 'B':
			l.advance()
			l.advance()
			l.consumeDigits(isBinaryDigit)
			l.consumeBigIntSuffix()
			l.emit(token.Number, start)
			return
		case 'o', 'O':
			l.advance()
			l.advance()
			l.consumeDigits(isOctalDigit)
			l.consumeBigIntSuffix()
			l.emit(token.Number, start)
			return
		}
	}

	l.consumeDigits(isDigit)
	if l.pos < len(l.src) && l.src[l.pos] == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		l.consumeDigits(isDigit)
	} else if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos > start.pos {
		// Trailing-dot form like "1." is still one number.
		l.advance()
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			l.advance()
			if l.src[l.pos] == '+' || l.src[l.pos] == '-' {
				l.advance()
			}
			l.consumeDigits(isDigit)
		}
	}
	l.consumeBigIntSuffix()
	l.emit(token.Number, start)
}

// consumeDigits eats digits matched by pred plus numeric separators.
func (l *Lexer) consumeDigits(pred func(rune) bool) {
	for l.pos < len(l.src) && (pred(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.advance()
	}
}

func (l *Lexer) consumeBigIntSuffix() {
	if l.pos < len(l.src) && l.src[l.pos] == 'n' {
		l.advance()
	}
}

func (l *Lexer) scanIdentifier() {
	start := l.mark()
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.advance()
	}
	text := string(l.src[start.pos:l.pos])
	if keywords[text] {
		l.emit(token.Keyword, start)
	} else {
		l.emit(token.Identifier, start)
	}
}

// scanOperator matches the longest operator at the cursor. Returns false
// when no operator matches.
func (l *Lexer) scanOperator() bool {
	rest := l.src[l.pos:]
	for _, op := range operators {
		if len(op) > len(rest) {
			continue
		}
		if string(rest[:len(op)]) == op {
			start := l.mark()
			for range op {
				l.advance()
			}
			l.emit(token.Operator, start)
			return true
		}
	}
	return false
}
