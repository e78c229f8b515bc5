package datastructure

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Edge directed road edge, Weight = haversine distance (meter).
type Edge struct {
	From   int64
	To     int64
	Weight float64
}

// Graph road/pedestrian graph. Read-only after build, safe to share between concurrent queries.
// Every edge endpoint is a key in Nodes.
type Graph struct {
	Nodes map[int64]Coordinate
	Adj   map[int64][]Edge
}

func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[int64]Coordinate),
		Adj:   make(map[int64][]Edge),
	}
}

func (g *Graph) AddNode(id int64, coord Coordinate) {
	g.Nodes[id] = coord
}

// AddEdge appends a directed edge. Returns false (and adds nothing) when an endpoint is not a node.
func (g *Graph) AddEdge(from, to int64, weight float64) bool {
	if _, ok := g.Nodes[from]; !ok {
		return false
	}
	if _, ok := g.Nodes[to]; !ok {
		return false
	}
	g.Adj[from] = append(g.Adj[from], Edge{From: from, To: to, Weight: weight})
	return true
}

func (g *Graph) GetNode(id int64) (Coordinate, bool) {
	c, ok := g.Nodes[id]
	return c, ok
}

func (g *Graph) GetOutEdges(id int64) []Edge {
	return g.Adj[id]
}

// HasEdge reports whether a directed edge from -> to with the given weight exists.
func (g *Graph) HasEdge(from, to int64, weight float64) bool {
	for _, e := range g.Adj[from] {
		if e.To == to && e.Weight == weight {
			return true
		}
	}
	return false
}

func (g *Graph) GetNumNodes() int {
	return len(g.Nodes)
}

func (g *Graph) GetNumEdges() int {
	count := 0
	for _, edges := range g.Adj {
		count += len(edges)
	}
	return count
}

// NodeIDs ascending.
func (g *Graph) NodeIDs() []int64 {
	ids := maps.Keys(g.Nodes)
	slices.Sort(ids)
	return ids
}
