package transit

import (
	"errors"
	"fmt"

	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/util"
)

var (
	ErrNoRouteFound  = errors.New("no route found")
	ErrInvalidParams = errors.New("invalid search parameters")
)

// Heuristic estimasi detik dari stop ke tujuan.
type Heuristic func(stopID string) float64

// Params konstanta pencarian. Speed dalam m/s, FareWeight (c) detik per satuan fare,
// WaitMultiplier (p) pengali headway waktu naik/ganti bus.
type Params struct {
	CruisingSpeed  float64
	WalkSpeed      float64
	FareWeight     float64
	WaitMultiplier float64
}

func DefaultParams() Params {
	return Params{
		CruisingSpeed:  7.0,
		WalkSpeed:      1.5,
		FareWeight:     100,
		WaitMultiplier: 10000,
	}
}

func (p Params) Validate() error {
	if p.CruisingSpeed <= 0 || p.WalkSpeed <= 0 {
		return fmt.Errorf("speeds must be positive: %w", ErrInvalidParams)
	}
	if p.FareWeight < 0 {
		return fmt.Errorf("fare weight must not be negative: %w", ErrInvalidParams)
	}
	if p.WaitMultiplier < 1 {
		return fmt.Errorf("wait multiplier must be at least 1: %w", ErrInvalidParams)
	}
	return nil
}

// State posisi pencarian. Route kosong = masih jalan kaki (belum naik bus).
type State struct {
	Stop  string
	Route string
}

// stateLess secondary key heap: stop id lalu route id.
func stateLess(a, b State) bool {
	if a.Stop != b.Stop {
		return a.Stop < b.Stop
	}
	return a.Route < b.Route
}

type Searcher struct {
	graph  *datastructure.TransitGraph
	routes map[string]datastructure.Route
	params Params
}

func NewSearcher(network *datastructure.TransitNetwork, params Params) *Searcher {
	return &Searcher{
		graph:  network.Graph,
		routes: network.Routes,
		params: params,
	}
}

func (s *Searcher) Params() Params {
	return s.params
}

type searchSpace struct {
	gScore   map[State]float64
	fare     map[State]float64
	wait     map[State]float64
	cameFrom map[State]State
	closed   map[State]struct{}
	open     *datastructure.MinHeap[State]
}

func newSearchSpace() *searchSpace {
	return &searchSpace{
		gScore:   make(map[State]float64),
		fare:     make(map[State]float64),
		wait:     make(map[State]float64),
		cameFrom: make(map[State]State),
		closed:   make(map[State]struct{}),
		open:     datastructure.NewMinHeap[State](stateLess),
	}
}

// Search weighted a* di atas state (stop, route). Cost pindah ke route lain (atau naik pertama kali)
// = jarak/cruising speed + headway*p + fare*c, di route yang sama cuma jarak/cruising speed.
// Return ErrNoRouteFound kalau frontier habis sebelum sampai di salah satu destination.
func (s *Searcher) Search(origins []datastructure.StopCandidate, destinations []string, h Heuristic) (datastructure.TransitPathResult, error) {
	if err := s.params.Validate(); err != nil {
		return datastructure.TransitPathResult{}, err
	}

	destSet := make(map[string]struct{}, len(destinations))
	for _, d := range destinations {
		destSet[d] = struct{}{}
	}

	sp := newSearchSpace()
	for _, o := range origins {
		st := State{Stop: o.StopID}
		g := o.WalkDistance / s.params.WalkSpeed
		if old, ok := sp.gScore[st]; ok && old <= g {
			continue
		}
		sp.gScore[st] = g
		sp.fare[st] = 0
		sp.wait[st] = 0
		sp.open.Upsert(datastructure.PriorityQueueNode[State]{Rank: g + h(o.StopID), Item: st})
	}

	for sp.open.Size() > 0 {
		currentNode, _ := sp.open.ExtractMin()
		current := currentNode.Item

		if _, isDest := destSet[current.Stop]; isDest {
			// key = rank yang baru di-pop (g terakhir + h), jadi selama heap konsisten cek ini selalu lolos.
			// Tetap dicek karena h dari caller bisa berubah antar panggilan.
			if noBetterInFrontier(sp.open, sp.gScore[current]+h(current.Stop)) {
				return s.buildResult(sp, current, h), nil
			}
		}
		sp.closed[current] = struct{}{}

		for _, edge := range s.graph.GetOutEdges(current.Stop) {
			route, ok := s.routes[edge.RouteID]
			if !ok {
				continue
			}
			next := State{Stop: edge.To, Route: edge.RouteID}
			if _, done := sp.closed[next]; done {
				continue
			}

			fareAdd, waitAdd := 0.0, 0.0
			if current.Route != edge.RouteID {
				fareAdd = route.Fare
				waitAdd = route.Headway
			}
			tentative := sp.gScore[current] + edge.Distance/s.params.CruisingSpeed +
				waitAdd*s.params.WaitMultiplier + s.params.FareWeight*fareAdd

			if old, seen := sp.gScore[next]; seen && tentative >= old {
				continue
			}
			sp.gScore[next] = tentative
			sp.fare[next] = sp.fare[current] + fareAdd
			sp.wait[next] = sp.wait[current] + waitAdd
			sp.cameFrom[next] = current
			sp.open.Upsert(datastructure.PriorityQueueNode[State]{Rank: tentative + h(edge.To), Item: next})
		}
	}

	return datastructure.TransitPathResult{}, ErrNoRouteFound
}

// noBetterInFrontier frontier kosong juga dianggap gak ada yang lebih baik.
func noBetterInFrontier(open *datastructure.MinHeap[State], key float64) bool {
	min, err := open.GetMin()
	if err != nil {
		return true
	}
	return min.Rank >= key
}

// lookAhead dari state kedatangan terus ikut edge pertama dengan route yang sama selama stop berikutnya
// lebih dekat ke tujuan (h turun). Tidak mengubah g.
func (s *Searcher) lookAhead(arrival State, h Heuristic) ([]State, float64) {
	hResidual := h(arrival.Stop)
	if arrival.Route == "" {
		return nil, hResidual
	}

	extension := []State{}
	visited := map[string]struct{}{arrival.Stop: {}}
	curr := arrival.Stop
	for {
		edges := s.graph.GetOutEdges(curr)
		idx := -1
		for i := range edges {
			if edges[i].RouteID == arrival.Route {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}
		nextStop := edges[idx].To
		nextH := h(nextStop)
		if nextH >= hResidual {
			break
		}
		if _, seen := visited[nextStop]; seen {
			break
		}
		visited[nextStop] = struct{}{}
		extension = append(extension, State{Stop: nextStop, Route: arrival.Route})
		hResidual = nextH
		curr = nextStop
	}
	return extension, hResidual
}

func (s *Searcher) buildResult(sp *searchSpace, arrival State, h Heuristic) datastructure.TransitPathResult {
	states := []State{arrival}
	for curr := arrival; ; {
		prev, ok := sp.cameFrom[curr]
		if !ok {
			break
		}
		states = append(states, prev)
		curr = prev
	}
	util.ReverseG(states)

	extension, hResidual := s.lookAhead(arrival, h)
	states = append(states, extension...)

	stops := make([]string, 0, len(states))
	routes := make([]string, 0, len(states))
	for _, st := range states {
		stops = append(stops, st.Stop)
		if st.Route != "" {
			routes = append(routes, st.Route)
		}
	}

	totalFare := sp.fare[arrival]
	totalWait := sp.wait[arrival]
	worst := sp.gScore[arrival] - s.params.FareWeight*totalFare - (s.params.WaitMultiplier-1)*totalWait +
		hResidual*s.params.WalkSpeed

	return datastructure.TransitPathResult{
		Stops:            stops,
		Routes:           routes,
		TotalFare:        totalFare,
		WorstCaseSeconds: worst,
		BestCaseSeconds:  worst - totalWait,
		WaitSeconds:      totalWait,
		Transfers:        datastructure.CountTransfers(routes),
	}
}
