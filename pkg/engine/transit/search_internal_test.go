package transit

import (
	"testing"

	"lintang/busnavigator/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoBetterInFrontier(t *testing.T) {
	open := datastructure.NewMinHeap[State](stateLess)
	assert.True(t, noBetterInFrontier(open, 100))

	open.Insert(datastructure.PriorityQueueNode[State]{Rank: 50, Item: State{Stop: "S2", Route: "R1"}})
	assert.False(t, noBetterInFrontier(open, 100))
	assert.True(t, noBetterInFrontier(open, 50))
	assert.True(t, noBetterInFrontier(open, 10))
}

func TestSearchExpandsArrivalWhenFrontierHasSmallerKey(t *testing.T) {
	stops := map[string]datastructure.Stop{
		"S1": {ID: "S1", Coord: datastructure.NewCoordinate(10.0, 106.00)},
		"S2": {ID: "S2", Coord: datastructure.NewCoordinate(10.0, 106.01)},
		"S3": {ID: "S3", Coord: datastructure.NewCoordinate(10.0, 106.02)},
	}
	tg := datastructure.NewTransitGraph()
	tg.AddEdge(datastructure.TransitEdge{From: "S1", To: "S3", Distance: 700, RouteID: "R1"})
	tg.AddEdge(datastructure.TransitEdge{From: "S2", To: "S3", Distance: 700, RouteID: "R1"})
	network := &datastructure.TransitNetwork{
		Graph:  tg,
		Stops:  stops,
		Routes: map[string]datastructure.Route{"R1": {ID: "R1", Fare: 1, Headway: 1}},
	}

	// h S1 naik setelah dipush, jadi saat S1 (destination) di-pop key-nya lebih besar dari S2 di frontier
	calls := 0
	h := func(stop string) float64 {
		if stop == "S1" {
			calls++
			if calls > 1 {
				return 1000
			}
		}
		return 0
	}

	s := NewSearcher(network, DefaultParams())
	res, err := s.Search(
		[]datastructure.StopCandidate{{StopID: "S1"}, {StopID: "S2", WalkDistance: 15}},
		[]string{"S1", "S3"},
		h,
	)
	require.NoError(t, err)
	// S1 ditolak sebagai arrival, dilanjut ekspansi sampai S3
	assert.Equal(t, []string{"S1", "S3"}, res.Stops)
	assert.Equal(t, []string{"R1"}, res.Routes)
}
