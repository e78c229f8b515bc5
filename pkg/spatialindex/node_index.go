package spatialindex

import (
	"math"

	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/engine/routingalgorithm"
	"lintang/busnavigator/pkg/geo"

	"github.com/dhconnelly/rtreego"
	"golang.org/x/exp/slices"
)

var tol = 0.0000001

const (
	initialSearchRadius = 50.0                        // meter
	maxSearchRadius     = math.Pi * geo.EarthRadiusM // setengah keliling bumi
)

type nodeRect struct {
	ID       int64
	Coord    datastructure.Coordinate
	Location rtreego.Point
}

func (n *nodeRect) Bounds() rtreego.Rect {
	return n.Location.ToRect(tol)
}

type NodeCandidate struct {
	ID       int64
	Distance float64
}

// NodeIndex rtree (lat, lon) berisi node road graph, dipakai buat snapping koordinat ke node terdekat.
type NodeIndex struct {
	tree *rtreego.Rtree
	size int
}

func NewNodeIndex(g routingalgorithm.RoadGraph) *NodeIndex {
	ids := g.NodeIDs()
	objs := make([]rtreego.Spatial, 0, len(ids))
	for _, id := range ids {
		c, _ := g.GetNode(id)
		objs = append(objs, &nodeRect{ID: id, Coord: c, Location: rtreego.Point{c.Lat, c.Lon}})
	}
	return &NodeIndex{
		tree: rtreego.NewTree(2, 25, 50, objs...), // 2 dimension, 25 min entries dan 50 max entries
		size: len(objs),
	}
}

func (idx *NodeIndex) Size() int {
	return idx.size
}

// SearchWithinRadius node dengan jarak haversine <= radiusM, urut jarak lalu id.
func (idx *NodeIndex) SearchWithinRadius(coord datastructure.Coordinate, radiusM float64) []NodeCandidate {
	minLat, minLon, maxLat, maxLon := geo.BoundingRect(coord.Lat, coord.Lon, radiusM)
	if maxLon < minLon {
		// rect nyebrang antimeridian
		minLon, maxLon = -180, 180
	}
	rect, err := rtreego.NewRect(rtreego.Point{minLat, minLon}, []float64{
		math.Max(maxLat-minLat, tol),
		math.Max(maxLon-minLon, tol),
	})
	if err != nil {
		return nil
	}

	res := []NodeCandidate{}
	for _, item := range idx.tree.SearchIntersect(rect) {
		n := item.(*nodeRect)
		d := coord.DistanceTo(n.Coord)
		if d <= radiusM {
			res = append(res, NodeCandidate{ID: n.ID, Distance: d})
		}
	}
	slices.SortFunc(res, func(a, b NodeCandidate) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return res
}

// Nearest radius pencarian dilipatgandakan sampai ada node di dalam lingkaran. Hasilnya sama dengan
// routingalgorithm.NearestNode (tie-break id terkecil).
func (idx *NodeIndex) Nearest(coord datastructure.Coordinate) (int64, error) {
	if idx.size == 0 {
		return 0, routingalgorithm.ErrNoNodesAvailable
	}
	for radius := initialSearchRadius; ; radius *= 2 {
		if radius > maxSearchRadius {
			radius = maxSearchRadius
		}
		if candidates := idx.SearchWithinRadius(coord, radius); len(candidates) > 0 {
			return candidates[0].ID, nil
		}
		if radius == maxSearchRadius {
			return 0, routingalgorithm.ErrNoNodesAvailable
		}
	}
}
