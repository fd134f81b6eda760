// Package deps extracts module references from a token stream, merges them
// into a file dependency graph, and finds reference cycles.
//
// Extraction recognizes four shapes: static imports (including bare
// `import "x"`), re-exports with a from-clause, call-style dynamic imports,
// and synchronous require calls. Relative specifiers resolve against the
// declaring file with plain segment navigation; anything else is an
// external package and becomes an edge-less node.
package deps

import (
	"path"
	"sort"
	"strings"

	"github.com/panbanda/auspex/pkg/token"
)

// defaultExtension is appended to a resolved relative specifier that
// carries no extension of its own.
const defaultExtension = ".js"

// Extract returns the module references declared in one file's tokens, in
// source order.
func Extract(tokens []token.Token) []ImportRecord {
	sig := token.Significant(tokens)

	var records []ImportRecord
	for i := 0; i < len(sig); i++ {
		t := sig[i]
		switch {
		case t.IsKeyword("import"):
			if rec, ok := importAt(sig, i); ok {
				records = append(records, rec)
			}
		case t.IsKeyword("export"):
			if spec, ok := fromClause(sig, i+1); ok {
				records = append(records, ImportRecord{
					Specifier: spec,
					Kind:      KindExportFrom,
					Line:      t.Line,
				})
			}
		case t.Is(token.Identifier, "require"):
			if spec, ok := callArgument(sig, i+1, false); ok {
				records = append(records, ImportRecord{
					Specifier: spec,
					Kind:      KindModuleRequire,
					Line:      t.Line,
				})
			}
		}
	}
	return records
}

// importAt resolves the import keyword at index i into a record, if the
// statement carries a specifier.
func importAt(sig []token.Token, i int) (ImportRecord, bool) {
	line := sig[i].Line
	if i+1 >= len(sig) {
		return ImportRecord{}, false
	}
	next := sig[i+1]

	// Bare side-effect import: import "x";
	if next.Kind == token.String {
		return ImportRecord{Specifier: unquote(next.Text), Kind: KindStaticImport, Line: line}, true
	}

	// Dynamic import: import("x")
	if next.IsPunct("(") {
		if spec, ok := callArgument(sig, i+1, true); ok {
			return ImportRecord{Specifier: spec, Kind: KindDynamicImport, Line: line}, true
		}
		return ImportRecord{}, false
	}

	if spec, ok := fromClause(sig, i+1); ok {
		return ImportRecord{Specifier: spec, Kind: KindStaticImport, Line: line}, true
	}
	return ImportRecord{}, false
}

// fromClause scans forward from start for a `from "x"` tail. The scan stays
// within the clause: any keyword or semicolon means the statement declares
// something locally instead (export function, export const, import.meta)
// and carries no specifier.
func fromClause(sig []token.Token, start int) (string, bool) {
	for i := start; i < len(sig); i++ {
		t := sig[i]
		if t.Kind == token.Keyword || t.IsPunct(";") {
			return "", false
		}
		if t.Is(token.Identifier, "from") && i+1 < len(sig) && sig[i+1].Kind == token.String {
			return unquote(sig[i+1].Text), true
		}
	}
	return "", false
}

// callArgument matches `( "x" )` starting at the opening parenthesis and
// returns the unquoted specifier. When allowTemplate is set, a template
// literal without embedded expressions is accepted too.
func callArgument(sig []token.Token, open int, allowTemplate bool) (string, bool) {
	if open+2 >= len(sig) || !sig[open].IsPunct("(") || !sig[open+2].IsPunct(")") {
		return "", false
	}
	arg := sig[open+1]
	switch arg.Kind {
	case token.String:
		return unquote(arg.Text), true
	case token.Template:
		if !allowTemplate || strings.Contains(arg.Text, "${") {
			return "", false
		}
		return unquote(arg.Text), true
	}
	return "", false
}

// unquote strips the surrounding delimiters from a string or template
// token's text. Unterminated literals may lack the closing delimiter.
func unquote(text string) string {
	if len(text) < 2 {
		return ""
	}
	runes := []rune(text)
	last := len(runes) - 1
	if runes[last] == runes[0] {
		return string(runes[1:last])
	}
	return string(runes[1:])
}

// Resolve maps a specifier declared in fromPath to a graph node identifier.
// Relative specifiers navigate from the declaring file's directory and take
// the default source extension when extensionless; anything else is treated
// as an external package and returned unchanged.
func Resolve(fromPath, specifier string) string {
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return specifier
	}
	resolved := path.Join(path.Dir(fromPath), specifier)
	if path.Ext(resolved) == "" {
		resolved += defaultExtension
	}
	return resolved
}

// BuildGraph merges per-file import lists into one graph. Every analyzed
// file and every resolved target becomes a node, so an import pointing at a
// file never supplied still appears as a dependency-free node.
func BuildGraph(files []FileImports) *Graph {
	g := &Graph{adj: make(map[string]map[string]bool)}
	for _, f := range files {
		g.ensure(f.Path)
		for _, imp := range f.Imports {
			target := Resolve(f.Path, imp.Specifier)
			g.ensure(target)
			if !g.adj[f.Path][target] {
				g.adj[f.Path][target] = true
				g.edges = append(g.edges, Edge{From: f.Path, To: target, Kind: imp.Kind})
			}
		}
	}
	return g
}

func (g *Graph) ensure(id string) {
	if g.adj[id] == nil {
		g.adj[id] = make(map[string]bool)
	}
}

// Nodes returns every node identifier in sorted order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.adj))
	for id := range g.adj {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

// Neighbors returns the sorted set of nodes that id references.
func (g *Graph) Neighbors(id string) []string {
	targets := make([]string, 0, len(g.adj[id]))
	for t := range g.adj[id] {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// Edges returns the deduplicated edges sorted by source then target.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Cycles finds reference cycles with an iterative depth-first traversal.
// Nodes are visited in sorted order and each DFS keeps an explicit stack,
// so the result is deterministic and pathological import chains cannot
// exhaust the call stack. A revisit of a node still on the exploration
// path closes a cycle; the reported chain runs from that node's first
// occurrence on the path through the repeat, inclusive.
func (g *Graph) Cycles() []Cycle {
	neighbors := make(map[string][]string, len(g.adj))
	nodes := g.Nodes()
	for _, id := range nodes {
		neighbors[id] = g.Neighbors(id)
	}

	type frame struct {
		node string
		next int
	}

	visited := make(map[string]bool, len(nodes))
	var cycles []Cycle

	for _, start := range nodes {
		if visited[start] {
			continue
		}
		stack := []frame{{node: start}}
		chain := []string{start}
		onChain := map[string]int{start: 0}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			ns := neighbors[top.node]
			if top.next < len(ns) {
				n := ns[top.next]
				top.next++
				if at, ok := onChain[n]; ok {
					cycle := make(Cycle, 0, len(chain)-at+1)
					cycle = append(cycle, chain[at:]...)
					cycle = append(cycle, n)
					cycles = append(cycles, cycle)
					continue
				}
				if visited[n] {
					continue
				}
				stack = append(stack, frame{node: n})
				onChain[n] = len(chain)
				chain = append(chain, n)
				continue
			}
			visited[top.node] = true
			delete(onChain, top.node)
			chain = chain[:len(chain)-1]
			stack = stack[:len(stack)-1]
		}
	}
	return cycles
}

// BuildAnalysis runs the fan-in step: merge per-file imports, detect
// cycles, and attach graph metrics.
func BuildAnalysis(files []FileImports, withMetrics bool) *Analysis {
	g := BuildGraph(files)
	analysis := &Analysis{
		Files:  files,
		Nodes:  g.Nodes(),
		Edges:  g.Edges(),
		Cycles: g.Cycles(),
	}
	if withMetrics {
		analysis.Metrics = CalculateMetrics(g)
	}
	return analysis
}
