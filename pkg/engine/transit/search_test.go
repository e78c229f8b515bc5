package transit_test

import (
	"testing"

	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/engine/transit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stopCoords = map[string]datastructure.Coordinate{
	"S1": datastructure.NewCoordinate(10.0, 106.00),
	"S2": datastructure.NewCoordinate(10.0, 106.01),
	"S3": datastructure.NewCoordinate(10.0, 106.02),
	"S4": datastructure.NewCoordinate(10.0, 106.03),
	"S5": datastructure.NewCoordinate(10.01, 106.02),
	"S9": datastructure.NewCoordinate(10.5, 106.5),
}

func newNetwork(routes map[string]datastructure.Route, edges ...datastructure.TransitEdge) *datastructure.TransitNetwork {
	stops := make(map[string]datastructure.Stop)
	for id, c := range stopCoords {
		stops[id] = datastructure.Stop{ID: id, Name: id, Coord: c}
	}
	tg := datastructure.NewTransitGraph()
	for id := range stops {
		tg.AddStop(id)
	}
	for _, e := range edges {
		if e.Distance == 0 {
			e.Distance = stops[e.From].Coord.DistanceTo(stops[e.To].Coord)
		}
		tg.AddEdge(e)
	}
	return &datastructure.TransitNetwork{Graph: tg, Stops: stops, Routes: routes}
}

// singleRouteNetwork R1: S1 -> S2 -> S3 -> S4, fare 6000, headway 300s.
func singleRouteNetwork() *datastructure.TransitNetwork {
	return newNetwork(
		map[string]datastructure.Route{
			"R1": {ID: "R1", BusNumber: "01", Fare: 6000, Headway: 300, Name: "S1 → S4"},
		},
		datastructure.TransitEdge{From: "S1", To: "S2", RouteID: "R1"},
		datastructure.TransitEdge{From: "S2", To: "S3", RouteID: "R1"},
		datastructure.TransitEdge{From: "S3", To: "S4", RouteID: "R1"},
	)
}

func heuristicTo(network *datastructure.TransitNetwork, stopID string, params transit.Params) transit.Heuristic {
	return transit.MakeHeuristic(network.Stops, network.Stops[stopID].Coord, params.CruisingSpeed)
}

func TestSearchSingleRoute(t *testing.T) {
	network := singleRouteNetwork()
	params := transit.DefaultParams()
	searcher := transit.NewSearcher(network, params)

	res, err := searcher.Search(
		[]datastructure.StopCandidate{{StopID: "S1", WalkDistance: 50}},
		[]string{"S4"},
		heuristicTo(network, "S4", params),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"S1", "S2", "S3", "S4"}, res.Stops)
	assert.Equal(t, []string{"R1", "R1", "R1"}, res.Routes)
	assert.Equal(t, 0, res.Transfers)
	// fare cuma dihitung sekali walau lewat 4 stop
	assert.Equal(t, 6000.0, res.TotalFare)
	assert.Equal(t, 300.0, res.WaitSeconds)
	assert.LessOrEqual(t, res.BestCaseSeconds, res.WorstCaseSeconds)

	ride := 0.0
	for _, e := range []string{"S1", "S2", "S3"} {
		ride += network.Graph.GetOutEdges(e)[0].Distance / params.CruisingSpeed
	}
	assert.InDelta(t, 50/params.WalkSpeed+ride+300, res.WorstCaseSeconds, 1e-6)
	assert.InDelta(t, 50/params.WalkSpeed+ride, res.BestCaseSeconds, 1e-6)
	assert.InDelta(t, res.WorstCaseSeconds/60, res.WorstCaseMinutes(), 1e-9)
}

func TestSearchStopInBothCandidateSets(t *testing.T) {
	network := singleRouteNetwork()
	params := transit.DefaultParams()
	searcher := transit.NewSearcher(network, params)

	res, err := searcher.Search(
		[]datastructure.StopCandidate{{StopID: "S2", WalkDistance: 0}},
		[]string{"S2"},
		heuristicTo(network, "S2", params),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"S2"}, res.Stops)
	assert.Empty(t, res.Routes)
	assert.Equal(t, 0.0, res.TotalFare)
	assert.Equal(t, 0, res.Transfers)
	assert.Equal(t, 0.0, res.WorstCaseSeconds)
}

func TestSearchNoRoute(t *testing.T) {
	network := singleRouteNetwork()
	params := transit.DefaultParams()
	searcher := transit.NewSearcher(network, params)

	t.Run("destination unreachable", func(t *testing.T) {
		_, err := searcher.Search(
			[]datastructure.StopCandidate{{StopID: "S1"}},
			[]string{"S9"},
			heuristicTo(network, "S9", params),
		)
		assert.ErrorIs(t, err, transit.ErrNoRouteFound)
	})

	t.Run("against direction of route", func(t *testing.T) {
		_, err := searcher.Search(
			[]datastructure.StopCandidate{{StopID: "S4"}},
			[]string{"S1"},
			heuristicTo(network, "S1", params),
		)
		assert.ErrorIs(t, err, transit.ErrNoRouteFound)
	})

	t.Run("no origins", func(t *testing.T) {
		_, err := searcher.Search(nil, []string{"S4"}, heuristicTo(network, "S4", params))
		assert.ErrorIs(t, err, transit.ErrNoRouteFound)
	})
}

func TestSearchTransfer(t *testing.T) {
	network := newNetwork(
		map[string]datastructure.Route{
			"R1": {ID: "R1", Fare: 6000, Headway: 300},
			"R2": {ID: "R2", Fare: 7000, Headway: 600},
		},
		datastructure.TransitEdge{From: "S1", To: "S2", RouteID: "R1"},
		datastructure.TransitEdge{From: "S2", To: "S3", RouteID: "R1"},
		datastructure.TransitEdge{From: "S3", To: "S5", RouteID: "R2"},
	)
	params := transit.DefaultParams()
	res, err := transit.NewSearcher(network, params).Search(
		[]datastructure.StopCandidate{{StopID: "S1"}},
		[]string{"S5"},
		heuristicTo(network, "S5", params),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"S1", "S2", "S3", "S5"}, res.Stops)
	assert.Equal(t, []string{"R1", "R1", "R2"}, res.Routes)
	assert.Equal(t, 1, res.Transfers)
	assert.Equal(t, 13000.0, res.TotalFare)
	assert.Equal(t, 900.0, res.WaitSeconds)
	assert.InDelta(t, res.WorstCaseSeconds-900, res.BestCaseSeconds, 1e-9)
}

func TestSearchPrefersSingleRouteOverTransfer(t *testing.T) {
	network := newNetwork(
		map[string]datastructure.Route{
			"R1": {ID: "R1", Fare: 6000, Headway: 300},
			"R2": {ID: "R2", Fare: 5000, Headway: 300},
			"R3": {ID: "R3", Fare: 5000, Headway: 300},
		},
		datastructure.TransitEdge{From: "S1", To: "S2", RouteID: "R1"},
		datastructure.TransitEdge{From: "S2", To: "S3", RouteID: "R1"},
		datastructure.TransitEdge{From: "S1", To: "S2", RouteID: "R2"},
		datastructure.TransitEdge{From: "S2", To: "S3", RouteID: "R3"},
	)
	params := transit.DefaultParams()
	res, err := transit.NewSearcher(network, params).Search(
		[]datastructure.StopCandidate{{StopID: "S1"}},
		[]string{"S3"},
		heuristicTo(network, "S3", params),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "R1"}, res.Routes)
	assert.Equal(t, 0, res.Transfers)
	assert.Equal(t, 6000.0, res.TotalFare)
}

func TestSearchLookAhead(t *testing.T) {
	network := singleRouteNetwork()
	params := transit.DefaultParams()

	// tujuan sebenarnya di S4, tapi kandidat destination cuma S3
	h := heuristicTo(network, "S4", params)
	res, err := transit.NewSearcher(network, params).Search(
		[]datastructure.StopCandidate{{StopID: "S1"}},
		[]string{"S3"},
		h,
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2", "S3", "S4"}, res.Stops)
	assert.Equal(t, []string{"R1", "R1", "R1"}, res.Routes)
	assert.Equal(t, 6000.0, res.TotalFare)
	assert.LessOrEqual(t, res.BestCaseSeconds, res.WorstCaseSeconds)
}

func TestSearchLookAheadTieBreak(t *testing.T) {
	fixed := func(hs map[string]float64) transit.Heuristic {
		return func(stop string) float64 { return hs[stop] }
	}
	// tiap panggilan lebih kecil dari sebelumnya, jadi look-ahead cuma berhenti karena stop sudah dikunjungi
	shrinking := func() transit.Heuristic {
		next := 1000.0
		return func(string) float64 {
			next--
			return next
		}
	}
	routes := map[string]datastructure.Route{
		"R1": {ID: "R1", BusNumber: "01", Fare: 6000, Headway: 300},
		"R2": {ID: "R2", BusNumber: "02", Fare: 6000, Headway: 300},
	}

	tests := []struct {
		name       string
		edges      []datastructure.TransitEdge
		h          transit.Heuristic
		wantStops  []string
		wantRoutes []string
	}{
		{
			name: "first same-route edge in adjacency order",
			edges: []datastructure.TransitEdge{
				{From: "S1", To: "S2", RouteID: "R1"},
				{From: "S2", To: "S3", RouteID: "R1"},
				{From: "S2", To: "S5", RouteID: "R1"},
			},
			// S5 lebih dekat ke tujuan tapi S2 -> S3 duluan
			h:          fixed(map[string]float64{"S1": 30, "S2": 20, "S3": 10, "S5": 5}),
			wantStops:  []string{"S1", "S2", "S3"},
			wantRoutes: []string{"R1", "R1"},
		},
		{
			name: "edges of other routes are passed over",
			edges: []datastructure.TransitEdge{
				{From: "S1", To: "S2", RouteID: "R1"},
				{From: "S2", To: "S3", RouteID: "R2"},
				{From: "S2", To: "S5", RouteID: "R1"},
			},
			h:          fixed(map[string]float64{"S1": 30, "S2": 20, "S3": 10, "S5": 5}),
			wantStops:  []string{"S1", "S2", "S5"},
			wantRoutes: []string{"R1", "R1"},
		},
		{
			name: "first same-route edge not closer stops the extension",
			edges: []datastructure.TransitEdge{
				{From: "S1", To: "S2", RouteID: "R1"},
				{From: "S2", To: "S3", RouteID: "R1"},
				{From: "S2", To: "S5", RouteID: "R1"},
			},
			h:          fixed(map[string]float64{"S1": 30, "S2": 20, "S3": 25, "S5": 5}),
			wantStops:  []string{"S1", "S2"},
			wantRoutes: []string{"R1"},
		},
		{
			name: "same-route loop",
			edges: []datastructure.TransitEdge{
				{From: "S1", To: "S2", RouteID: "R1"},
				{From: "S2", To: "S3", RouteID: "R1"},
				{From: "S3", To: "S1", RouteID: "R1"},
			},
			h:          shrinking(),
			wantStops:  []string{"S1", "S2", "S3", "S1"},
			wantRoutes: []string{"R1", "R1", "R1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network := newNetwork(routes, tt.edges...)
			res, err := transit.NewSearcher(network, transit.DefaultParams()).Search(
				[]datastructure.StopCandidate{{StopID: "S1"}},
				[]string{"S2"},
				tt.h,
			)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStops, res.Stops)
			assert.Equal(t, tt.wantRoutes, res.Routes)
			// look-ahead gak nambah fare
			assert.Equal(t, 6000.0, res.TotalFare)
		})
	}
}

func TestSearchSkipsRoutesWithoutMetadata(t *testing.T) {
	network := newNetwork(
		map[string]datastructure.Route{},
		datastructure.TransitEdge{From: "S1", To: "S2", RouteID: "GHOST"},
	)
	params := transit.DefaultParams()
	_, err := transit.NewSearcher(network, params).Search(
		[]datastructure.StopCandidate{{StopID: "S1"}},
		[]string{"S2"},
		heuristicTo(network, "S2", params),
	)
	assert.ErrorIs(t, err, transit.ErrNoRouteFound)
}

func TestSearchInvalidParams(t *testing.T) {
	params := transit.DefaultParams()
	params.WalkSpeed = 0
	_, err := transit.NewSearcher(singleRouteNetwork(), params).Search(
		[]datastructure.StopCandidate{{StopID: "S1"}}, []string{"S2"}, func(string) float64 { return 0 })
	assert.ErrorIs(t, err, transit.ErrInvalidParams)
}

func TestNearbyStops(t *testing.T) {
	network := singleRouteNetwork()
	origin := datastructure.NewCoordinate(10.0, 106.0049)

	got := transit.NearbyStops(origin, network.StopList(), 1200)
	require.Len(t, got, 2)
	assert.Equal(t, "S1", got[0].StopID)
	assert.Equal(t, "S2", got[1].StopID)
	assert.LessOrEqual(t, got[0].WalkDistance, got[1].WalkDistance)
	assert.Equal(t, []string{"S1", "S2"}, transit.CandidateIDs(got))

	assert.Empty(t, transit.NearbyStops(origin, network.StopList(), 10))
}

func TestMakeHeuristic(t *testing.T) {
	network := singleRouteNetwork()
	h := transit.MakeHeuristic(network.Stops, network.Stops["S4"].Coord, 7.0)

	assert.Equal(t, 0.0, h("S4"))
	assert.Equal(t, 0.0, h("unknown"))
	assert.InDelta(t, network.Stops["S1"].Coord.DistanceTo(network.Stops["S4"].Coord)/7.0, h("S1"), 1e-9)
	assert.Greater(t, h("S1"), h("S2"))
}
