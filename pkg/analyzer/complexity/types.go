package complexity

// FunctionRecord locates a function's body inside the significant-token
// stream. BodyStart and BodyEnd index the opening and matching closing
// brace of the body, never a brace inside the parameter list. BodyStart is
// always less than BodyEnd; nested functions produce independent,
// correctly nested records.
type FunctionRecord struct {
	Name      string `json:"name" toon:"name"`
	DeclLine  int    `json:"decl_line" toon:"decl_line"`
	BodyStart int    `json:"body_start" toon:"body_start"`
	BodyEnd   int    `json:"body_end" toon:"body_end"`
}

// Result is the cyclomatic complexity of one function. Score is always at
// least 1: a straight-line function has baseline complexity 1.
type Result struct {
	Name  string `json:"name" toon:"name"`
	Line  int    `json:"line" toon:"line"`
	Score int    `json:"score" toon:"score"`
}

// FileResult aggregates per-function results for a single file.
type FileResult struct {
	Path      string   `json:"path" toon:"path"`
	Functions []Result `json:"functions" toon:"functions"`
	Total     int      `json:"total" toon:"total"`
	Average   float64  `json:"average" toon:"average"`
}

// Summary provides project-wide aggregates.
type Summary struct {
	TotalFiles     int     `json:"total_files" toon:"total_files"`
	TotalFunctions int     `json:"total_functions" toon:"total_functions"`
	Average        float64 `json:"average" toon:"average"`
	Max            int     `json:"max" toon:"max"`
	P50            int     `json:"p50" toon:"p50"`
	P90            int     `json:"p90" toon:"p90"`
}

// Analysis is the project-level complexity report.
type Analysis struct {
	Files   []FileResult `json:"files" toon:"files"`
	Summary Summary      `json:"summary" toon:"summary"`
}
