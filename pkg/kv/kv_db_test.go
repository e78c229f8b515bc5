package kv_test

import (
	"math/rand"
	"testing"

	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/engine/transit"
	"lintang/busnavigator/pkg/kv"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) *kv.KVDB {
	t.Helper()
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	k := kv.NewKVDB(db)
	t.Cleanup(func() { k.Close() })
	return k
}

func TestRoadGraphRoundTrip(t *testing.T) {
	k := newTestKV(t)

	g := datastructure.NewGraph()
	g.AddNode(1, datastructure.NewCoordinate(10.77, 106.70))
	g.AddNode(2, datastructure.NewCoordinate(10.78, 106.70))
	g.AddEdge(1, 2, 1111.9)
	g.AddEdge(2, 1, 1111.9)

	require.NoError(t, k.SaveRoadGraph("car", g))

	loaded, err := k.LoadRoadGraph("car")
	require.NoError(t, err)
	assert.Equal(t, g.Nodes, loaded.Nodes)
	assert.Equal(t, g.Adj, loaded.Adj)

	_, err = k.LoadRoadGraph("walk")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestTransitNetworkRoundTrip(t *testing.T) {
	k := newTestKV(t)

	_, err := k.LoadTransitNetwork()
	assert.ErrorIs(t, err, kv.ErrNotFound)

	tg := datastructure.NewTransitGraph()
	tg.AddEdge(datastructure.TransitEdge{From: "S1", To: "S2", Distance: 1000, RouteID: "R1"})
	tg.AddEdge(datastructure.TransitEdge{From: "S1", To: "S2", Distance: 1000, RouteID: "R2"})
	tg.AddEdge(datastructure.TransitEdge{From: "S2", To: "S3", Distance: 700, RouteID: "R1"})
	tg.AddStop("S4")
	network := &datastructure.TransitNetwork{
		Graph: tg,
		Stops: map[string]datastructure.Stop{
			"S1": {ID: "S1", Name: "Ben Thanh", Coord: datastructure.NewCoordinate(10.77, 106.69)},
			"S2": {ID: "S2", Name: "Ham Nghi", Coord: datastructure.NewCoordinate(10.77, 106.70)},
		},
		Routes: map[string]datastructure.Route{
			"R1": {ID: "R1", BusNumber: "01", Fare: 6000, Headway: 300, Name: "Ben Thanh → Cho Lon"},
			"R2": {ID: "R2", BusNumber: "19", Fare: 7000, Headway: 600, Name: "Unknown"},
		},
	}
	require.NoError(t, k.SaveTransitNetwork(network))

	loaded, err := k.LoadTransitNetwork()
	require.NoError(t, err)
	assert.Equal(t, network.Stops, loaded.Stops)
	assert.Equal(t, network.Routes, loaded.Routes)
	assert.Equal(t, tg.SortedStopIDs(), loaded.Graph.SortedStopIDs())
	for _, id := range tg.SortedStopIDs() {
		assert.Equal(t, tg.GetOutEdges(id), loaded.Graph.GetOutEdges(id))
	}
}

func TestNearbyStopsFromStopKV(t *testing.T) {
	k := newTestKV(t)

	r := rand.New(rand.NewSource(3))
	stops := []datastructure.Stop{}
	for i := 0; i < 300; i++ {
		id := string(rune('A'+i%26)) + string(rune('a'+i/26))
		stops = append(stops, datastructure.Stop{
			ID:    id,
			Coord: datastructure.NewCoordinate(10.75+r.Float64()*0.05, 106.65+r.Float64()*0.05),
		})
	}
	require.NoError(t, k.CreateStopKV(stops, false))

	for i := 0; i < 20; i++ {
		q := datastructure.NewCoordinate(10.75+r.Float64()*0.05, 106.65+r.Float64()*0.05)
		got, err := k.GetNearbyStopsFromPointCoord(q.Lat, q.Lon, 300)
		require.NoError(t, err)
		assert.Equal(t, transit.NearbyStops(q, stops, 300), got)
	}
}
