package style

import (
	"regexp"
	"strings"
	"testing"

	"github.com/panbanda/auspex/pkg/lexer"
)

func analyzeSrc(t *testing.T, a *Analyzer, src string) []Issue {
	t.Helper()
	return a.Analyze(lexer.Tokenize(src), src)
}

func rules(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Rule)
	}
	return out
}

func TestAnalyze_CleanSource(t *testing.T) {
	issues := analyzeSrc(t, New(), "const x = 1;\nfunction f() {\n  return x;\n}\n")
	if len(issues) != 0 {
		t.Errorf("issues = %+v, want none", issues)
	}
}

func TestAnalyze_MaxLineLength(t *testing.T) {
	a := New(WithMaxLineLength(20))
	issues := analyzeSrc(t, a, "const short = 1;\nconst muchLongerName = \"padding padding\";\n")
	if len(issues) != 1 || issues[0].Rule != RuleMaxLineLength {
		t.Fatalf("issues = %+v, want one max-line-length", issues)
	}
	if issues[0].Line != 2 || issues[0].Column != 21 {
		t.Errorf("position = %d:%d, want 2:21", issues[0].Line, issues[0].Column)
	}
}

func TestAnalyze_MaxLineLengthDisabled(t *testing.T) {
	a := New(WithMaxLineLength(0))
	long := "const x = \"" + strings.Repeat("a", 300) + "\";"
	if issues := analyzeSrc(t, a, long); len(issues) != 0 {
		t.Errorf("issues = %+v, want none with the rule disabled", issues)
	}
}

func TestAnalyze_TrailingWhitespace(t *testing.T) {
	issues := analyzeSrc(t, New(), "const x = 1;  \nconst y = 2;\t\n")
	if len(issues) != 2 {
		t.Fatalf("issues = %+v, want 2", issues)
	}
	if issues[0].Line != 1 || issues[0].Column != 13 {
		t.Errorf("first position = %d:%d, want 1:13", issues[0].Line, issues[0].Column)
	}
}

func TestAnalyze_TabIndentation(t *testing.T) {
	issues := analyzeSrc(t, New(), "function f() {\n\treturn 1;\n}\n")
	if len(issues) != 1 || issues[0].Rule != RuleTabIndentation || issues[0].Line != 2 {
		t.Errorf("issues = %+v, want one tab-indentation on line 2", issues)
	}
}

func TestAnalyze_IdentifierNaming(t *testing.T) {
	a := New(WithIdentifierPattern(regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`)))
	issues := analyzeSrc(t, a, "const goodName = 1;\nconst bad_name = 2;\n")
	if len(issues) != 1 || issues[0].Rule != RuleIdentifierNaming {
		t.Fatalf("issues = %+v, want one identifier-naming", issues)
	}
	if issues[0].Line != 2 {
		t.Errorf("line = %d, want 2", issues[0].Line)
	}
}

func TestAnalyze_BannedIdentifier(t *testing.T) {
	a := New(WithBannedIdentifiers([]string{"eval"}))
	issues := analyzeSrc(t, a, "const out = eval(code);\n")
	if got := rules(issues); len(got) != 1 || got[0] != RuleBannedIdentifier {
		t.Errorf("rules = %v, want [banned-identifier]", got)
	}
}

func TestAnalyze_IdentifierRulesSkipComments(t *testing.T) {
	a := New(WithBannedIdentifiers([]string{"eval"}))
	if issues := analyzeSrc(t, a, "// eval is mentioned here\n"); len(issues) != 0 {
		t.Errorf("issues = %+v, want none for a comment", issues)
	}
}

func TestBuildAnalysis(t *testing.T) {
	files := []FileResult{
		{Path: "a.js", Issues: []Issue{{Rule: RuleTabIndentation}, {Rule: RuleMaxLineLength}}},
		{Path: "b.js", Issues: []Issue{{Rule: RuleTabIndentation}}},
	}
	analysis := BuildAnalysis(files)
	if analysis.Summary.TotalIssues != 3 {
		t.Errorf("total = %d, want 3", analysis.Summary.TotalIssues)
	}
	if analysis.Summary.ByRule[RuleTabIndentation] != 2 {
		t.Errorf("by-rule = %v", analysis.Summary.ByRule)
	}
}
