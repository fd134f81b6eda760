// Package deadcode finds statements that can never execute because they
// immediately follow an unconditional control transfer at the same
// brace-nesting depth.
//
// The analysis is token-based: it precomputes the brace depth before every
// significant token, then inspects each return/throw/break/continue. A
// transfer guarded by a braceless conditional (`if (x) return;`) is skipped
// entirely; a standalone transfer has its statement end located with a
// delimiter counter so operand expressions containing braces, brackets, or
// parentheses never cut the statement short.
package deadcode

import (
	"fmt"
	"strings"

	"github.com/panbanda/auspex/pkg/token"
)

// transferKeywords unconditionally leave the current block.
var transferKeywords = map[string]bool{
	"return": true, "throw": true, "break": true, "continue": true,
}

// bracelessControl are the keywords whose parenthesized head can guard a
// single unbraced statement.
var bracelessControl = map[string]bool{
	"if": true, "for": true, "while": true,
}

// Analyze returns the unreachable-statement issues for one file. src is the
// original source text, used for line snippets. The function is total: any
// token sequence yields a (possibly empty) result.
func Analyze(tokens []token.Token, src string) []Issue {
	sig := token.Significant(tokens)
	depths := braceDepths(sig)
	lines := strings.Split(src, "\n")

	var issues []Issue
	for i := 0; i < len(sig); i++ {
		t := sig[i]
		if t.Kind != token.Keyword || !transferKeywords[t.Text] {
			continue
		}
		if isConditional(sig, i) {
			continue
		}

		next := endOfStatement(sig, i+1)
		if next >= len(sig) {
			continue
		}
		if sig[next].IsPunct("}") {
			// Nothing follows inside the enclosing block.
			continue
		}
		if depths[next] != depths[i] {
			// Belongs to an outer scope.
			continue
		}

		issues = append(issues, Issue{
			Line:    sig[next].Line,
			Column:  sig[next].Column,
			Message: fmt.Sprintf("unreachable code after '%s' on line %d", t.Text, t.Line),
			Snippet: lineAt(lines, sig[next].Line),
		})

		// Resume past the reported statement so one dead region yields
		// exactly one finding.
		i = endOfStatement(sig, next) - 1
	}
	return issues
}

// braceDepths returns, for every significant token, the brace-nesting depth
// before that token, floored at zero.
func braceDepths(sig []token.Token) []int {
	depths := make([]int, len(sig))
	depth := 0
	for i, t := range sig {
		depths[i] = depth
		switch {
		case t.IsPunct("{"):
			depth++
		case t.IsPunct("}"):
			if depth > 0 {
				depth--
			}
		}
	}
	return depths
}

// isConditional reports whether the transfer at index i is the body of a
// braceless control construct, in which case later statements remain
// reachable.
func isConditional(sig []token.Token, i int) bool {
	if i == 0 {
		return false
	}
	prev := sig[i-1]
	if prev.IsKeyword("else") || prev.IsKeyword("do") {
		return true
	}
	if !prev.IsPunct(")") {
		return false
	}
	open := matchParenBackward(sig, i-1)
	if open <= 0 {
		return false
	}
	head := sig[open-1]
	return head.Kind == token.Keyword && bracelessControl[head.Text]
}

// endOfStatement returns the index of the first significant token after the
// statement starting at index start. The operand may open braces, brackets,
// or parentheses (an object literal being returned, say); only a semicolon
// or an unmatched closing brace at delimiter depth zero ends the statement.
func endOfStatement(sig []token.Token, start int) int {
	depth := 0
	for i := start; i < len(sig); i++ {
		t := sig[i]
		if t.Kind != token.Punctuation {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]":
			if depth > 0 {
				depth--
			}
		case "}":
			if depth > 0 {
				depth--
			} else {
				return i
			}
		case ";":
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(sig)
}

// matchParenBackward returns the index of the opening parenthesis matching
// the closing one at index close, or -1 when unbalanced.
func matchParenBackward(sig []token.Token, close int) int {
	depth := 0
	for i := close; i >= 0; i-- {
		switch {
		case sig[i].IsPunct(")"):
			depth++
		case sig[i].IsPunct("("):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// lineAt returns the raw source line (1-based), trimmed of a trailing
// carriage return.
func lineAt(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[line-1], "\r")
}
