package style

// Issue is one style violation. Rule is the stable rule identifier the
// configuration toggles refer to.
type Issue struct {
	Rule    string `json:"rule" toon:"rule"`
	Line    int    `json:"line" toon:"line"`
	Column  int    `json:"column" toon:"column"`
	Message string `json:"message" toon:"message"`
}

// FileResult holds the issues found in one file.
type FileResult struct {
	Path   string  `json:"path" toon:"path"`
	Issues []Issue `json:"issues" toon:"issues"`
}

// Summary provides project-wide totals, broken down per rule.
type Summary struct {
	TotalFiles  int            `json:"total_files" toon:"total_files"`
	TotalIssues int            `json:"total_issues" toon:"total_issues"`
	ByRule      map[string]int `json:"by_rule" toon:"by_rule"`
}

// Analysis is the project-level style report.
type Analysis struct {
	Files   []FileResult `json:"files" toon:"files"`
	Summary Summary      `json:"summary" toon:"summary"`
}

// BuildAnalysis aggregates per-file results.
func BuildAnalysis(files []FileResult) *Analysis {
	analysis := &Analysis{Files: files}
	analysis.Summary.TotalFiles = len(files)
	analysis.Summary.ByRule = make(map[string]int)
	for _, fr := range files {
		analysis.Summary.TotalIssues += len(fr.Issues)
		for _, issue := range fr.Issues {
			analysis.Summary.ByRule[issue.Rule]++
		}
	}
	return analysis
}
