package complexity

import (
	"testing"

	"github.com/panbanda/auspex/pkg/lexer"
)

func analyzeSrc(t *testing.T, src string) []Result {
	t.Helper()
	return Analyze(lexer.Tokenize(src))
}

func single(t *testing.T, src string) Result {
	t.Helper()
	results := analyzeSrc(t, src)
	if len(results) != 1 {
		t.Fatalf("functions = %d, want 1 (%+v)", len(results), results)
	}
	return results[0]
}

func TestAnalyze_StraightLine(t *testing.T) {
	r := single(t, `function f() { return 1; }`)
	if r.Name != "f" || r.Score != 1 {
		t.Errorf("got %+v, want f with score 1", r)
	}
}

func TestAnalyze_DefaultParameterObject(t *testing.T) {
	// The default-parameter object literal must not be mistaken for the body.
	r := single(t, `function f(opts = {}) { return 1; }`)
	if r.Score != 1 {
		t.Errorf("score = %d, want 1", r.Score)
	}
}

func TestAnalyze_DefaultParameterWithBranches(t *testing.T) {
	r := single(t, `function f(opts = { a: 1 }) { if (opts.a) { return 1; } return 2; }`)
	if r.Score != 2 {
		t.Errorf("score = %d, want 2", r.Score)
	}
}

func TestAnalyze_IfAddsOne(t *testing.T) {
	r := single(t, `function f() { if (x) { return 1; } return 2; }`)
	if r.Score != 2 {
		t.Errorf("score = %d, want 2", r.Score)
	}
}

func TestAnalyze_ElseIfNotDoubleCounted(t *testing.T) {
	// if + else-if's if + bare else = 1 + 2 + 1
	r := single(t, `function f(x) {
		if (x === 1) { return 1; }
		else if (x === 2) { return 2; }
		else { return 3; }
	}`)
	if r.Score != 4 {
		t.Errorf("score = %d, want 4", r.Score)
	}
}

func TestAnalyze_SwitchDefaultNotCounted(t *testing.T) {
	r := single(t, `function f(x) {
		switch (x) {
		case 1: return "a";
		case 2: return "b";
		default: return "c";
		}
	}`)
	if r.Score != 3 {
		t.Errorf("score = %d, want 3 (1 + 2 cases, default free)", r.Score)
	}
}

func TestAnalyze_LogicalOperators(t *testing.T) {
	r := single(t, `function f(a, b, c) { return a && b || c ?? a ? b : c; }`)
	// && + || + ?? + ternary ? = 4 branches
	if r.Score != 5 {
		t.Errorf("score = %d, want 5", r.Score)
	}
}

func TestAnalyze_OptionalChainingNotCounted(t *testing.T) {
	r := single(t, `function f(a) { return a?.b?.c; }`)
	if r.Score != 1 {
		t.Errorf("score = %d, want 1", r.Score)
	}
}

func TestAnalyze_LoopsAndCatch(t *testing.T) {
	r := single(t, `function f(xs) {
		for (const x of xs) {
			while (x.busy) { spin(); }
		}
		do { tick(); } while (more());
		try { run(); } catch (e) { log(e); }
	}`)
	// for + inner while + do + do's trailing while + catch = 5
	if r.Score != 6 {
		t.Errorf("score = %d, want 6", r.Score)
	}
}

func TestAnalyze_NestedFunctionScoredIndependently(t *testing.T) {
	results := analyzeSrc(t, `function outer() {
		if (a) { go(); }
		function inner(x) {
			if (x) { return 1; }
			if (!x) { return 2; }
			return 3;
		}
		return inner;
	}`)
	if len(results) != 2 {
		t.Fatalf("functions = %d, want 2 (%+v)", len(results), results)
	}
	byName := map[string]int{}
	for _, r := range results {
		byName[r.Name] = r.Score
	}
	if byName["outer"] != 2 {
		t.Errorf("outer score = %d, want 2 (must not absorb inner's branches)", byName["outer"])
	}
	if byName["inner"] != 3 {
		t.Errorf("inner score = %d, want 3", byName["inner"])
	}
}

func TestAnalyze_ArrowFunctions(t *testing.T) {
	results := analyzeSrc(t, `const handler = (req, res) => {
		if (req.ok) { res.send(1); }
	};
	const short = (x) => x + 1;`)

	// Expression-bodied arrows are skipped.
	if len(results) != 1 {
		t.Fatalf("functions = %d, want 1 (%+v)", len(results), results)
	}
	if results[0].Name != "handler" {
		t.Errorf("name = %q, want handler (inferred from assignment)", results[0].Name)
	}
	if results[0].Score != 2 {
		t.Errorf("score = %d, want 2", results[0].Score)
	}
}

func TestAnalyze_InferredNames(t *testing.T) {
	results := analyzeSrc(t, `const a = function () { return 1; };
	const obj = { run: function () { return 2; }, go: () => { return 3; } };
	items.map(() => { return 4; });`)

	if len(results) != 4 {
		t.Fatalf("functions = %d, want 4 (%+v)", len(results), results)
	}
	want := []string{"a", "run", "go", "(anonymous)"}
	for i, name := range want {
		if results[i].Name != name {
			t.Errorf("results[%d].Name = %q, want %q", i, results[i].Name, name)
		}
	}
}

func TestAnalyze_AsyncArrow(t *testing.T) {
	r := single(t, `const load = async (id) => { if (!id) { throw new Error(); } return fetch(id); };`)
	if r.Name != "load" {
		t.Errorf("name = %q, want load", r.Name)
	}
	if r.Score != 2 {
		t.Errorf("score = %d, want 2", r.Score)
	}
}

func TestAnalyze_GeneratorFunction(t *testing.T) {
	r := single(t, `function* gen() { if (x) { yield 1; } }`)
	if r.Name != "gen" || r.Score != 2 {
		t.Errorf("got %+v, want gen with score 2", r)
	}
}

func TestAnalyze_NoFunctions(t *testing.T) {
	if results := analyzeSrc(t, `const x = 1; if (x) { log(x); }`); len(results) != 0 {
		t.Errorf("functions = %d, want 0", len(results))
	}
}

func TestAnalyze_BranchInCommentIgnored(t *testing.T) {
	r := single(t, `function f() {
		// if (x) { while (y) {} }
		/* case 1: && || */
		return 1;
	}`)
	if r.Score != 1 {
		t.Errorf("score = %d, want 1", r.Score)
	}
}

func TestFunctions_Records(t *testing.T) {
	recs := Functions(lexer.Tokenize(`function f(a = {}) { return a; }`))
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	rec := recs[0]
	if rec.BodyStart >= rec.BodyEnd {
		t.Errorf("BodyStart %d not before BodyEnd %d", rec.BodyStart, rec.BodyEnd)
	}
	if rec.DeclLine != 1 {
		t.Errorf("DeclLine = %d, want 1", rec.DeclLine)
	}
}

func TestBuildAnalysis(t *testing.T) {
	files := []FileResult{
		NewFileResult("a.js", []Result{{Name: "f", Line: 1, Score: 1}, {Name: "g", Line: 5, Score: 7}}),
		NewFileResult("b.js", []Result{{Name: "h", Line: 2, Score: 3}}),
	}
	analysis := BuildAnalysis(files)

	if analysis.Summary.TotalFiles != 2 || analysis.Summary.TotalFunctions != 3 {
		t.Errorf("summary = %+v, want 2 files / 3 functions", analysis.Summary)
	}
	if analysis.Summary.Max != 7 {
		t.Errorf("max = %d, want 7", analysis.Summary.Max)
	}
	if analysis.Files[0].Total != 8 || analysis.Files[0].Average != 4.0 {
		t.Errorf("file totals = %+v", analysis.Files[0])
	}
}
