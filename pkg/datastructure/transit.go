package datastructure

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Stop struct {
	ID    string
	Name  string
	Coord Coordinate
}

// Route fare dalam mata uang lokal (VND), Headway dalam detik.
type Route struct {
	ID        string
	BusNumber string
	Fare      float64
	Headway   float64
	Name      string
}

// TransitEdge one hop of a route between two consecutive stops. Several edges may connect the
// same stop pair under different routes.
type TransitEdge struct {
	From     string
	To       string
	Distance float64
	RouteID  string
}

// TransitGraph multi-edge directed graph of stops.
type TransitGraph struct {
	StopIDs map[string]struct{}
	Adj     map[string][]TransitEdge
}

func NewTransitGraph() *TransitGraph {
	return &TransitGraph{
		StopIDs: make(map[string]struct{}),
		Adj:     make(map[string][]TransitEdge),
	}
}

func (tg *TransitGraph) AddStop(id string) {
	tg.StopIDs[id] = struct{}{}
}

// AddEdge appends a parallel-safe edge, both endpoints become nodes.
func (tg *TransitGraph) AddEdge(e TransitEdge) {
	tg.AddStop(e.From)
	tg.AddStop(e.To)
	tg.Adj[e.From] = append(tg.Adj[e.From], e)
}

func (tg *TransitGraph) HasStop(id string) bool {
	_, ok := tg.StopIDs[id]
	return ok
}

func (tg *TransitGraph) GetOutEdges(id string) []TransitEdge {
	return tg.Adj[id]
}

func (tg *TransitGraph) GetNumStops() int {
	return len(tg.StopIDs)
}

func (tg *TransitGraph) GetNumEdges() int {
	count := 0
	for _, edges := range tg.Adj {
		count += len(edges)
	}
	return count
}

func (tg *TransitGraph) SortedStopIDs() []string {
	ids := maps.Keys(tg.StopIDs)
	slices.Sort(ids)
	return ids
}

// TransitNetwork everything the multi-modal search and the itinerary builder need.
type TransitNetwork struct {
	Graph  *TransitGraph
	Stops  map[string]Stop
	Routes map[string]Route
}

func (n *TransitNetwork) GetStop(id string) (Stop, bool) {
	s, ok := n.Stops[id]
	return s, ok
}

func (n *TransitNetwork) GetRoute(id string) (Route, bool) {
	r, ok := n.Routes[id]
	return r, ok
}

// StopList stops sorted by id.
func (n *TransitNetwork) StopList() []Stop {
	ids := maps.Keys(n.Stops)
	slices.Sort(ids)
	stops := make([]Stop, 0, len(ids))
	for _, id := range ids {
		stops = append(stops, n.Stops[id])
	}
	return stops
}
