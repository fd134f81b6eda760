package deps

// Kind classifies how a file references a module.
type Kind string

const (
	KindStaticImport  Kind = "static-import"
	KindExportFrom    Kind = "export-from"
	KindDynamicImport Kind = "dynamic-import"
	KindModuleRequire Kind = "module-require"
)

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}

// ImportRecord is one module reference declared by a file. Specifier is the
// raw quoted text with the quotes stripped, before any resolution.
type ImportRecord struct {
	Specifier string `json:"specifier" toon:"specifier"`
	Kind      Kind   `json:"kind" toon:"kind"`
	Line      int    `json:"line" toon:"line"`
}

// FileImports pairs a file identifier with the references it declares.
type FileImports struct {
	Path    string         `json:"path" toon:"path"`
	Imports []ImportRecord `json:"imports" toon:"imports"`
}

// Edge is one resolved file-to-file reference.
type Edge struct {
	From string `json:"from" toon:"from"`
	To   string `json:"to" toon:"to"`
	Kind Kind   `json:"kind" toon:"kind"`
}

// Cycle is a closed chain of file identifiers: the first element repeats as
// the last. A self-import is a two-element cycle.
type Cycle []string

// Graph is the merged file dependency graph. Neighbor sets deduplicate
// parallel references; all accessors return sorted slices so identical
// input produces identical output.
type Graph struct {
	adj   map[string]map[string]bool
	edges []Edge
}

// Metrics holds gonum-derived centrality and connectivity figures for the
// dependency graph.
type Metrics struct {
	Nodes   []NodeMetric   `json:"nodes" toon:"nodes"`
	Summary MetricsSummary `json:"summary" toon:"summary"`
}

// NodeMetric is the per-file slice of Metrics.
type NodeMetric struct {
	ID        string  `json:"id" toon:"id"`
	PageRank  float64 `json:"pagerank" toon:"pagerank"`
	InDegree  int     `json:"in_degree" toon:"in_degree"`
	OutDegree int     `json:"out_degree" toon:"out_degree"`
}

// MetricsSummary aggregates graph-level statistics.
type MetricsSummary struct {
	TotalNodes                  int     `json:"total_nodes" toon:"total_nodes"`
	TotalEdges                  int     `json:"total_edges" toon:"total_edges"`
	AvgDegree                   float64 `json:"avg_degree" toon:"avg_degree"`
	Density                     float64 `json:"density" toon:"density"`
	Components                  int     `json:"components" toon:"components"`
	StronglyConnectedComponents int     `json:"strongly_connected_components" toon:"strongly_connected_components"`
	IsCyclic                    bool    `json:"is_cyclic" toon:"is_cyclic"`
}

// Analysis is the project-level dependency report.
type Analysis struct {
	Files   []FileImports `json:"files" toon:"files"`
	Nodes   []string      `json:"nodes" toon:"nodes"`
	Edges   []Edge        `json:"edges" toon:"edges"`
	Cycles  []Cycle       `json:"cycles" toon:"cycles"`
	Metrics *Metrics      `json:"metrics,omitempty" toon:"metrics,omitempty"`
}
