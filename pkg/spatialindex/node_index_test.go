package spatialindex_test

import (
	"math/rand"
	"testing"

	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/engine/routingalgorithm"
	"lintang/busnavigator/pkg/spatialindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomGraph(n int, seed int64) *datastructure.Graph {
	r := rand.New(rand.NewSource(seed))
	g := datastructure.NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(int64(i+1), datastructure.NewCoordinate(10.70+r.Float64()*0.1, 106.60+r.Float64()*0.1))
	}
	return g
}

func TestNearestMatchesLinearScan(t *testing.T) {
	g := randomGraph(500, 42)
	idx := spatialindex.NewNodeIndex(g)
	assert.Equal(t, 500, idx.Size())

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		q := datastructure.NewCoordinate(10.65+r.Float64()*0.2, 106.55+r.Float64()*0.2)

		want, err := routingalgorithm.NearestNode(q, g)
		require.NoError(t, err)
		got, err := idx.Nearest(q)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNearestFarAwayQuery(t *testing.T) {
	g := randomGraph(20, 1)
	idx := spatialindex.NewNodeIndex(g)

	q := datastructure.NewCoordinate(-33.86, 151.2)
	want, err := routingalgorithm.NearestNode(q, g)
	require.NoError(t, err)
	got, err := idx.Nearest(q)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNearestTieBreak(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(9, datastructure.NewCoordinate(0, 0.001))
	g.AddNode(4, datastructure.NewCoordinate(0, -0.001))
	idx := spatialindex.NewNodeIndex(g)

	got, err := idx.Nearest(datastructure.NewCoordinate(0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
}

func TestNearestEmptyIndex(t *testing.T) {
	idx := spatialindex.NewNodeIndex(datastructure.NewGraph())
	_, err := idx.Nearest(datastructure.NewCoordinate(0, 0))
	assert.ErrorIs(t, err, routingalgorithm.ErrNoNodesAvailable)
}

func TestSearchWithinRadius(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(1, datastructure.NewCoordinate(10.0, 106.000))
	g.AddNode(2, datastructure.NewCoordinate(10.0, 106.002))
	g.AddNode(3, datastructure.NewCoordinate(10.0, 106.010))
	idx := spatialindex.NewNodeIndex(g)

	got := idx.SearchWithinRadius(datastructure.NewCoordinate(10.0, 106.0005), 300)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Less(t, got[0].Distance, got[1].Distance)
}
