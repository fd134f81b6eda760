package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/panbanda/auspex/pkg/analyzer/complexity"
	"github.com/panbanda/auspex/pkg/analyzer/deadcode"
	"github.com/panbanda/auspex/pkg/analyzer/deps"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"text", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"toon", FormatTOON},
		{"", FormatText},
		{"bogus", FormatText},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewFormatterDefaults(t *testing.T) {
	f, err := NewFormatter(FormatText, "", true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	defer f.Close()

	if f.Format() != FormatText {
		t.Errorf("Format() = %q, want text", f.Format())
	}
	if !f.Colored() {
		t.Error("Colored() = false, want true")
	}
	if f.Writer() != os.Stdout {
		t.Error("Writer() should default to stdout")
	}
}

func TestNewFormatterToFileDisablesColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	f, err := NewFormatter(FormatText, path, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	if f.Colored() {
		t.Error("file output should disable color")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestNewFormatterInvalidPath(t *testing.T) {
	if _, err := NewFormatter(FormatText, filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt"), false); err == nil {
		t.Error("NewFormatter() should fail for an uncreatable path")
	}
}

// complexityAnalysis builds the report two scored files produce.
func complexityAnalysis() *complexity.Analysis {
	return complexity.BuildAnalysis([]complexity.FileResult{
		complexity.NewFileResult("src/app.js", []complexity.Result{
			{Name: "handleRequest", Line: 3, Score: 12},
		}),
		complexity.NewFileResult("src/util.js", []complexity.Result{
			{Name: "clamp", Line: 1, Score: 2},
		}),
	})
}

// complexityTable mirrors how the complexity command lays out its report.
func complexityTable(report *complexity.Analysis) *Table {
	var rows [][]string
	for _, fr := range report.Files {
		for _, fn := range fr.Functions {
			rows = append(rows, []string{
				fr.Path, fn.Name,
				fmt.Sprintf("%d", fn.Line),
				fmt.Sprintf("%d", fn.Score),
			})
		}
	}
	return NewTable(
		"Complexity Analysis",
		[]string{"File", "Function", "Line", "Complexity"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", report.Summary.TotalFiles),
			fmt.Sprintf("Functions: %d", report.Summary.TotalFunctions),
			fmt.Sprintf("Avg: %.1f", report.Summary.Average),
			fmt.Sprintf("Max: %d / P90: %d", report.Summary.Max, report.Summary.P90),
		},
		report,
	)
}

func TestComplexityTableText(t *testing.T) {
	var buf bytes.Buffer
	if err := complexityTable(complexityAnalysis()).Text(&buf, false); err != nil {
		t.Fatalf("Text() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Complexity Analysis",
		strings.Repeat("-", len("Complexity Analysis")),
		"src/app.js",
		"handleRequest",
		"12",
		"Functions: 2",
		"Max: 12 / P90: 12",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestComplexityTableTextColored(t *testing.T) {
	var buf bytes.Buffer
	if err := complexityTable(complexityAnalysis()).Text(&buf, true); err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	if !strings.Contains(buf.String(), "handleRequest") {
		t.Errorf("colored output missing rows:\n%s", buf.String())
	}
}

func TestComplexityTableMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := complexityTable(complexityAnalysis()).Markdown(&buf); err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"## Complexity Analysis",
		"| File | Function | Line | Complexity |",
		"| --- | --- | --- | --- |",
		"| src/app.js | handleRequest | 3 | 12 |",
		"| Files: 2 | Functions: 2 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestComplexityTableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	f, err := NewFormatter(FormatJSON, path, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if err := f.Output(complexityTable(complexityAnalysis())); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	f.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	var got complexity.Analysis
	if err := json.Unmarshal(content, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got.Summary.TotalFunctions != 2 {
		t.Errorf("total_functions = %d, want 2", got.Summary.TotalFunctions)
	}
	if len(got.Files) != 2 || got.Files[0].Path != "src/app.js" {
		t.Errorf("files = %+v, want the analysis payload, not the rendered rows", got.Files)
	}
}

func TestDeadCodeTableTOON(t *testing.T) {
	report := deadcode.BuildAnalysis([]deadcode.FileResult{
		{Path: "src/app.js", Issues: []deadcode.Issue{
			{Line: 5, Column: 3, Message: "unreachable code after return on line 4", Snippet: "const x = 2;"},
		}},
	})

	path := filepath.Join(t.TempDir(), "report.toon")
	f, err := NewFormatter(FormatTOON, path, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	table := NewTable("Dead Code Analysis", []string{"Location", "Message", "Snippet"}, nil, nil, report)
	if err := f.Output(table); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	f.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	out := string(content)
	for _, want := range []string{"total_issues", "unreachable code after return on line 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("toon output missing %q:\n%s", want, out)
		}
	}
}

func TestGraphTableText(t *testing.T) {
	report := &deps.Analysis{
		Nodes: []string{"a.js", "b.js"},
		Edges: []deps.Edge{{From: "a.js", To: "b.js", Kind: "static-import"}},
		Cycles: []deps.Cycle{
			{"a.js", "b.js", "a.js"},
		},
	}

	table := NewTable(
		"Import Graph",
		[]string{"From", "Kind", "To"},
		[][]string{{"a.js", "static-import", "b.js"}},
		[]string{"Nodes: 2", "Edges: 1", "Cycles: 1"},
		report,
	)

	var buf bytes.Buffer
	if err := table.Text(&buf, false); err != nil {
		t.Fatalf("Text() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Import Graph", "static-import", "Cycles: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestSectionText(t *testing.T) {
	s := &Section{
		Title:   "Dead Code (1)",
		Content: "src/app.js:5:3 unreachable code after return on line 4",
	}

	var buf bytes.Buffer
	if err := s.Text(&buf, false); err != nil {
		t.Fatalf("Text() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Dead Code (1)") {
		t.Errorf("output missing title:\n%s", out)
	}
	if !strings.Contains(out, "src/app.js:5:3") {
		t.Errorf("output missing content:\n%s", out)
	}
}

func TestSectionBodyFallback(t *testing.T) {
	s := &Section{Title: "Style (0)", Content: "no style issues found"}
	data, err := json.Marshal(s.Body())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"title":"Style (0)"`) {
		t.Errorf("Body() without Data should marshal the section itself: %s", data)
	}

	s.Data = map[string]int{"total": 0}
	if _, ok := s.Body().(map[string]int); !ok {
		t.Errorf("Body() = %T, want the attached data", s.Body())
	}
}

func TestTableBodyFallback(t *testing.T) {
	rows := [][]string{{"a", "b"}}
	table := NewTable("", []string{"X", "Y"}, rows, nil, nil)
	if got, ok := table.Body().([][]string); !ok || len(got) != 1 {
		t.Errorf("Body() = %v, want the rows", table.Body())
	}
}

// combinedReport mirrors the analyze command's output shape.
func combinedReport() *Report {
	cx := complexityAnalysis()
	return &Report{
		Title: "Auspex Analysis",
		Sections: []Renderable{
			&Section{
				Title:   "Complexity",
				Content: "2 functions in 2 files, avg 7.0, max 12 (p90 12)",
				Data:    cx,
			},
			&Section{
				Title:   "Dead Code (0)",
				Content: "no unreachable code found",
			},
		},
	}
}

func TestCombinedReportText(t *testing.T) {
	var buf bytes.Buffer
	if err := combinedReport().Text(&buf, false); err != nil {
		t.Fatalf("Text() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Auspex Analysis",
		strings.Repeat("=", len("Auspex Analysis")),
		"Complexity",
		"max 12 (p90 12)",
		"Dead Code (0)",
		"no unreachable code found",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "Complexity") > strings.Index(out, "Dead Code (0)") {
		t.Error("sections should render in order")
	}
}

func TestCombinedReportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := combinedReport().Markdown(&buf); err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"# Auspex Analysis", "## Complexity", "## Dead Code (0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestReportBodyPrefersData(t *testing.T) {
	r := combinedReport()
	r.Data = map[string]string{"kind": "aggregate"}

	data, err := json.Marshal(r.Body())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"kind":"aggregate"}` {
		t.Errorf("Body() with Data = %s, want the aggregate payload", data)
	}

	r.Data = nil
	parts, ok := r.Body().([]any)
	if !ok || len(parts) != 2 {
		t.Errorf("Body() without Data = %v, want one entry per section", r.Body())
	}
}

func TestRawDataFallsBackToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := NewFormatter(FormatText, path, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	// Non-Renderable values (cache stats) have no text shape.
	if err := f.Output(map[string]int{"entries": 3}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	f.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(content), `"entries": 3`) {
		t.Errorf("output = %s, want JSON fallback", content)
	}
}

func TestRawDataMarkdownFenced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	f, err := NewFormatter(FormatMarkdown, path, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if err := f.Output(map[string]int{"entries": 3}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	f.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	out := string(content)
	if !strings.HasPrefix(out, "```json\n") || !strings.Contains(out, "```\n") {
		t.Errorf("output = %s, want a fenced json block", out)
	}
}

func TestMessagesPlainPrefixes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := NewFormatter(FormatText, path, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	f.Success("No unreachable code found")
	f.Warning("%d files could not be analyzed", 2)
	f.Error("Import cycles (%d):", 1)
	f.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	out := string(content)
	for _, want := range []string{
		"No unreachable code found\n",
		"WARNING: 2 files could not be analyzed\n",
		"ERROR: Import cycles (1):\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
