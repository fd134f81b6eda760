package deadcode

// Issue reports a statement that can never execute. Line and Column point
// at the first unreachable token; Snippet is the raw source line it sits
// on; Message names the control transfer that makes it unreachable.
type Issue struct {
	Line    int    `json:"line" toon:"line"`
	Column  int    `json:"column" toon:"column"`
	Message string `json:"message" toon:"message"`
	Snippet string `json:"snippet" toon:"snippet"`
}

// FileResult holds the issues found in one file.
type FileResult struct {
	Path   string  `json:"path" toon:"path"`
	Issues []Issue `json:"issues" toon:"issues"`
}

// Summary provides project-wide totals.
type Summary struct {
	TotalFiles  int `json:"total_files" toon:"total_files"`
	TotalIssues int `json:"total_issues" toon:"total_issues"`
}

// Analysis is the project-level dead-code report.
type Analysis struct {
	Files   []FileResult `json:"files" toon:"files"`
	Summary Summary      `json:"summary" toon:"summary"`
}

// BuildAnalysis aggregates per-file results.
func BuildAnalysis(files []FileResult) *Analysis {
	analysis := &Analysis{Files: files}
	analysis.Summary.TotalFiles = len(files)
	for _, fr := range files {
		analysis.Summary.TotalIssues += len(fr.Issues)
	}
	return analysis
}
