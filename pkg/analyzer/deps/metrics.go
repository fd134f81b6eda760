package deps

import (
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// gonumGraph pairs directed and undirected projections of a Graph with the
// id mapping between string identifiers and gonum node ids.
type gonumGraph struct {
	directed   *simple.DirectedGraph
	undirected *simple.UndirectedGraph
	ids        map[string]int64
	names      map[int64]string
	selfLoop   bool
}

// toGonumGraph converts a Graph. Self-loops are tracked separately because
// simple graphs reject self-edges.
func toGonumGraph(g *Graph) *gonumGraph {
	gg := &gonumGraph{
		directed:   simple.NewDirectedGraph(),
		undirected: simple.NewUndirectedGraph(),
		ids:        make(map[string]int64),
		names:      make(map[int64]string),
	}
	for i, node := range g.Nodes() {
		id := int64(i)
		gg.ids[node] = id
		gg.names[id] = node
		gg.directed.AddNode(simple.Node(id))
		gg.undirected.AddNode(simple.Node(id))
	}
	for _, e := range g.Edges() {
		from, to := gg.ids[e.From], gg.ids[e.To]
		if from == to {
			gg.selfLoop = true
			continue
		}
		gg.directed.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		gg.undirected.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}
	return gg
}

// CalculateMetrics computes per-node PageRank and degrees plus graph-level
// connectivity figures.
func CalculateMetrics(g *Graph) *Metrics {
	nodes := g.Nodes()
	metrics := &Metrics{}
	metrics.Summary.TotalNodes = len(nodes)
	if len(nodes) == 0 {
		return metrics
	}

	edges := g.Edges()
	metrics.Summary.TotalEdges = len(edges)
	metrics.Summary.AvgDegree = float64(len(edges)) / float64(len(nodes))
	if len(nodes) > 1 {
		metrics.Summary.Density = float64(len(edges)) / float64(len(nodes)*(len(nodes)-1))
	}

	inDegree := make(map[string]int, len(nodes))
	for _, e := range edges {
		inDegree[e.To]++
	}

	gg := toGonumGraph(g)
	pageRank := network.PageRank(gg.directed, 0.85, 1e-6)

	metrics.Nodes = make([]NodeMetric, 0, len(nodes))
	for _, id := range nodes {
		metrics.Nodes = append(metrics.Nodes, NodeMetric{
			ID:        id,
			PageRank:  pageRank[gg.ids[id]],
			InDegree:  inDegree[id],
			OutDegree: len(g.adj[id]),
		})
	}

	metrics.Summary.Components = len(topo.ConnectedComponents(gg.undirected))
	sccs := topo.TarjanSCC(gg.directed)
	metrics.Summary.StronglyConnectedComponents = len(sccs)
	metrics.Summary.IsCyclic = gg.selfLoop
	for _, scc := range sccs {
		if len(scc) > 1 {
			metrics.Summary.IsCyclic = true
			break
		}
	}
	return metrics
}
