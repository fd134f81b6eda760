// Package style applies configurable surface-level rules to raw source
// lines and the token stream. It shares the analyzers' token model but
// carries its own independent rule set.
package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/panbanda/auspex/pkg/token"
)

// Rule identifiers, as referenced by configuration.
const (
	RuleMaxLineLength      = "max-line-length"
	RuleTrailingWhitespace = "trailing-whitespace"
	RuleTabIndentation     = "tab-indentation"
	RuleIdentifierNaming   = "identifier-naming"
	RuleBannedIdentifier   = "banned-identifier"
)

// Analyzer checks source against the enabled rules.
type Analyzer struct {
	maxLineLength      int
	trailingWhitespace bool
	tabIndentation     bool
	identifierPattern  *regexp.Regexp
	banned             map[string]bool
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithMaxLineLength sets the line-length threshold (0 disables the rule).
func WithMaxLineLength(n int) Option {
	return func(a *Analyzer) {
		a.maxLineLength = n
	}
}

// WithTrailingWhitespace toggles the trailing-whitespace rule.
func WithTrailingWhitespace(enabled bool) Option {
	return func(a *Analyzer) {
		a.trailingWhitespace = enabled
	}
}

// WithTabIndentation toggles the tab-indentation rule.
func WithTabIndentation(enabled bool) Option {
	return func(a *Analyzer) {
		a.tabIndentation = enabled
	}
}

// WithIdentifierPattern enables the naming rule: identifier tokens that do
// not match pattern are reported. A nil pattern disables the rule.
func WithIdentifierPattern(pattern *regexp.Regexp) Option {
	return func(a *Analyzer) {
		a.identifierPattern = pattern
	}
}

// WithBannedIdentifiers enables the banned-identifier rule for the given
// names.
func WithBannedIdentifiers(names []string) Option {
	return func(a *Analyzer) {
		a.banned = make(map[string]bool, len(names))
		for _, n := range names {
			a.banned[n] = true
		}
	}
}

// New creates a style analyzer with default options: 120-column lines,
// trailing whitespace and tab indentation flagged, no naming or ban rules.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		maxLineLength:      120,
		trailingWhitespace: true,
		tabIndentation:     true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns the style issues for one file, line rules first in line
// order, then token rules in source order.
func (a *Analyzer) Analyze(tokens []token.Token, src string) []Issue {
	var issues []Issue
	issues = append(issues, a.checkLines(src)...)
	issues = append(issues, a.checkTokens(tokens)...)
	return issues
}

func (a *Analyzer) checkLines(src string) []Issue {
	var issues []Issue
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSuffix(line, "\r")
		lineNo := i + 1

		if a.maxLineLength > 0 {
			if width := len([]rune(line)); width > a.maxLineLength {
				issues = append(issues, Issue{
					Rule:    RuleMaxLineLength,
					Line:    lineNo,
					Column:  a.maxLineLength + 1,
					Message: fmt.Sprintf("line is %d characters, limit is %d", width, a.maxLineLength),
				})
			}
		}
		if a.trailingWhitespace && line != "" {
			if trimmed := strings.TrimRight(line, " \t"); len(trimmed) < len(line) {
				issues = append(issues, Issue{
					Rule:    RuleTrailingWhitespace,
					Line:    lineNo,
					Column:  len([]rune(trimmed)) + 1,
					Message: "trailing whitespace",
				})
			}
		}
		if a.tabIndentation && strings.HasPrefix(line, "\t") {
			issues = append(issues, Issue{
				Rule:    RuleTabIndentation,
				Line:    lineNo,
				Column:  1,
				Message: "tab used for indentation",
			})
		}
	}
	return issues
}

func (a *Analyzer) checkTokens(tokens []token.Token) []Issue {
	if a.identifierPattern == nil && len(a.banned) == 0 {
		return nil
	}
	var issues []Issue
	for _, t := range token.Significant(tokens) {
		if t.Kind != token.Identifier {
			continue
		}
		if a.banned[t.Text] {
			issues = append(issues, Issue{
				Rule:    RuleBannedIdentifier,
				Line:    t.Line,
				Column:  t.Column,
				Message: fmt.Sprintf("identifier %q is banned", t.Text),
			})
			continue
		}
		if a.identifierPattern != nil && !a.identifierPattern.MatchString(t.Text) {
			issues = append(issues, Issue{
				Rule:    RuleIdentifierNaming,
				Line:    t.Line,
				Column:  t.Column,
				Message: fmt.Sprintf("identifier %q does not match %s", t.Text, a.identifierPattern),
			})
		}
	}
	return issues
}
