// Package complexity computes per-function cyclomatic complexity from a
// token stream, without building a syntax tree.
//
// Discovery runs in two phases. Phase one locates function sites (the
// function keyword or an arrow marker) and pins down the true body-opening
// brace: for keyword functions it first matches the parameter list's
// parentheses by depth, so a default-parameter object literal never passes
// for the body. Phase two walks each verified body span and counts branch
// indicators, skipping nested function bodies so their branches are scored
// only against their own record.
package complexity

import (
	"sort"

	"github.com/panbanda/auspex/pkg/token"
)

const anonymousName = "(anonymous)"

// branchKeywords are the keywords that add one linearly independent path.
// "default" is deliberately absent: it represents the fall-through path
// already accounted for by the absence of a matching case.
var branchKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "do": true,
	"case": true, "catch": true,
}

// branchOperators are the short-circuit and conditional operators that add
// a path. "?." never appears here; the lexer keeps it a single token.
var branchOperators = map[string]bool{
	"&&": true, "||": true, "??": true, "?": true,
}

// Analyze returns one Result per function found in tokens, in source order.
// It is total: any token sequence yields a (possibly empty) result.
func Analyze(tokens []token.Token) []Result {
	sig := token.Significant(tokens)
	records := findFunctions(sig)

	results := make([]Result, 0, len(records))
	for _, rec := range records {
		results = append(results, Result{
			Name:  rec.Name,
			Line:  rec.DeclLine,
			Score: scoreBody(sig, rec.BodyStart, rec.BodyEnd),
		})
	}
	return results
}

// Functions exposes phase-one discovery: the function records found in
// tokens, with body indices into the significant-token stream.
func Functions(tokens []token.Token) []FunctionRecord {
	return findFunctions(token.Significant(tokens))
}

// findFunctions scans the significant stream for function sites. Every
// site, nested or not, yields its own record.
func findFunctions(sig []token.Token) []FunctionRecord {
	var records []FunctionRecord
	for i := range sig {
		switch {
		case sig[i].IsKeyword("function"):
			if rec, ok := keywordFunctionAt(sig, i); ok {
				records = append(records, rec)
			}
		case sig[i].Is(token.Operator, "=>"):
			if rec, ok := arrowFunctionAt(sig, i); ok {
				records = append(records, rec)
			}
		}
	}
	return records
}

// keywordFunctionAt resolves a site introduced by the function keyword at
// index i. It returns false when no block body can be located.
func keywordFunctionAt(sig []token.Token, i int) (FunctionRecord, bool) {
	name := anonymousName
	j := i + 1
	if j < len(sig) && sig[j].Is(token.Operator, "*") { // generator
		j++
	}
	if j < len(sig) && sig[j].Kind == token.Identifier {
		name = sig[j].Text
		j++
	} else if inferred, ok := assignmentTarget(sig, i); ok {
		name = inferred
	}

	if j >= len(sig) || !sig[j].IsPunct("(") {
		return FunctionRecord{}, false
	}
	closeParen := matchForward(sig, j, "(", ")")
	if closeParen < 0 {
		return FunctionRecord{}, false
	}

	// The body brace is the next opening brace after the parameter list,
	// never one buried inside it.
	for k := closeParen + 1; k < len(sig); k++ {
		if sig[k].IsPunct("{") {
			end := matchForward(sig, k, "{", "}")
			if end < 0 {
				return FunctionRecord{}, false
			}
			return FunctionRecord{Name: name, DeclLine: sig[i].Line, BodyStart: k, BodyEnd: end}, true
		}
		if sig[k].IsPunct(";") || sig[k].IsPunct(")") || sig[k].IsPunct("}") {
			break
		}
	}
	return FunctionRecord{}, false
}

// arrowFunctionAt resolves an arrow site. Expression-bodied arrows are
// skipped: their complexity is fixed at 1 and adds no information.
func arrowFunctionAt(sig []token.Token, i int) (FunctionRecord, bool) {
	if i+1 >= len(sig) || !sig[i+1].IsPunct("{") {
		return FunctionRecord{}, false
	}
	end := matchForward(sig, i+1, "{", "}")
	if end < 0 {
		return FunctionRecord{}, false
	}
	return FunctionRecord{
		Name:      arrowName(sig, i),
		DeclLine:  sig[i].Line,
		BodyStart: i + 1,
		BodyEnd:   end,
	}, true
}

// arrowName walks back over the arrow's parameter list and infers a name
// from a preceding assignment target, if any.
func arrowName(sig []token.Token, arrow int) string {
	start := arrow - 1
	if start < 0 {
		return anonymousName
	}
	if sig[start].IsPunct(")") {
		open := matchBackward(sig, start, "(", ")")
		if open < 0 {
			return anonymousName
		}
		start = open
	} else if sig[start].Kind != token.Identifier {
		return anonymousName
	}
	if start > 0 && sig[start-1].IsKeyword("async") {
		start--
	}
	if name, ok := assignmentTarget(sig, start); ok {
		return name
	}
	return anonymousName
}

// assignmentTarget reports the identifier (or property key) being assigned
// at the position just before index i: `name = …` or `name: …`.
func assignmentTarget(sig []token.Token, i int) (string, bool) {
	if i < 2 {
		return "", false
	}
	prev := sig[i-1]
	target := sig[i-2]
	if prev.Is(token.Operator, "=") && target.Kind == token.Identifier {
		return target.Text, true
	}
	if prev.IsPunct(":") && (target.Kind == token.Identifier || target.Kind == token.String) {
		return target.Text, true
	}
	return "", false
}

// scoreBody counts branch indicators between the body braces. Nested
// function bodies are skipped; they score independently.
func scoreBody(sig []token.Token, start, end int) int {
	score := 1
	for i := start + 1; i < end; i++ {
		t := sig[i]

		if t.IsKeyword("function") {
			if rec, ok := keywordFunctionAt(sig, i); ok {
				i = rec.BodyEnd
				continue
			}
		}
		if t.Is(token.Operator, "=>") {
			if rec, ok := arrowFunctionAt(sig, i); ok {
				i = rec.BodyEnd
				continue
			}
		}

		switch t.Kind {
		case token.Keyword:
			if branchKeywords[t.Text] {
				score++
			} else if t.Text == "else" {
				// A bare else is a branch; "else if" is not counted here
				// because the if that follows counts itself.
				if i+1 >= end || !sig[i+1].IsKeyword("if") {
					score++
				}
			}
		case token.Operator:
			if branchOperators[t.Text] {
				score++
			}
		}
	}
	return score
}

// matchForward returns the index of the token closing the delimiter opened
// at index open, or -1 when unbalanced.
func matchForward(sig []token.Token, open int, openText, closeText string) int {
	depth := 0
	for i := open; i < len(sig); i++ {
		switch {
		case sig[i].IsPunct(openText):
			depth++
		case sig[i].IsPunct(closeText):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchBackward returns the index of the token opening the delimiter closed
// at index close, or -1 when unbalanced.
func matchBackward(sig []token.Token, close int, openText, closeText string) int {
	depth := 0
	for i := close; i >= 0; i-- {
		switch {
		case sig[i].IsPunct(closeText):
			depth++
		case sig[i].IsPunct(openText):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// BuildAnalysis aggregates per-file results into a project report with
// percentile summaries.
func BuildAnalysis(files []FileResult) *Analysis {
	analysis := &Analysis{Files: files}

	var scores []int
	total := 0
	for _, fr := range files {
		for _, fn := range fr.Functions {
			scores = append(scores, fn.Score)
			total += fn.Score
			if fn.Score > analysis.Summary.Max {
				analysis.Summary.Max = fn.Score
			}
		}
		analysis.Summary.TotalFunctions += len(fr.Functions)
	}
	analysis.Summary.TotalFiles = len(files)

	if len(scores) > 0 {
		analysis.Summary.Average = float64(total) / float64(len(scores))
		sort.Ints(scores)
		analysis.Summary.P50 = percentile(scores, 50)
		analysis.Summary.P90 = percentile(scores, 90)
	}
	return analysis
}

// NewFileResult wraps per-function results with file-level totals.
func NewFileResult(path string, functions []Result) FileResult {
	fr := FileResult{Path: path, Functions: functions}
	for _, fn := range functions {
		fr.Total += fn.Score
	}
	if len(functions) > 0 {
		fr.Average = float64(fr.Total) / float64(len(functions))
	}
	return fr
}

// percentile returns the p-th percentile of a sorted slice.
func percentile(sorted []int, p int) int {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
