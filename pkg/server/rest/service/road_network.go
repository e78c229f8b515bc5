package service

import (
	"errors"
	"math"

	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/engine/routingalgorithm"
	"lintang/busnavigator/pkg/spatialindex"

	"github.com/twpayne/go-polyline"
)

var ErrNoPath = errors.New("no path between the two nodes")

// RoadNetwork road graph satu mode (mobil / jalan kaki) + a* + rtree buat snapping.
type RoadNetwork struct {
	graph   *datastructure.Graph
	routing *routingalgorithm.RouteAlgorithm
	index   *spatialindex.NodeIndex
	speed   float64 // m/s, buat ETA
}

func NewRoadNetwork(g *datastructure.Graph, speed float64) *RoadNetwork {
	return &RoadNetwork{
		graph:   g,
		routing: routingalgorithm.NewRouteAlgorithm(g),
		index:   spatialindex.NewNodeIndex(g),
		speed:   speed,
	}
}

func (rn *RoadNetwork) Graph() *datastructure.Graph {
	return rn.graph
}

// Snap node terdekat dari coord. Pakai rtree, fallback linear scan kalau rtree gagal.
func (rn *RoadNetwork) Snap(coord datastructure.Coordinate) (int64, error) {
	id, err := rn.index.Nearest(coord)
	if err == nil {
		return id, nil
	}
	return rn.routing.NearestNode(coord)
}

// Route snap kedua titik lalu a*. Return koordinat node sepanjang path dan jarak (meter).
func (rn *RoadNetwork) Route(from, to datastructure.Coordinate) ([]datastructure.Coordinate, float64, error) {
	fromID, err := rn.Snap(from)
	if err != nil {
		return nil, 0, err
	}
	toID, err := rn.Snap(to)
	if err != nil {
		return nil, 0, err
	}

	dist, path := rn.routing.ShortestPathAStar(fromID, toID)
	if math.IsInf(dist, 1) {
		return nil, 0, ErrNoPath
	}

	coords := make([]datastructure.Coordinate, 0, len(path))
	for _, id := range path {
		c, _ := rn.graph.GetNode(id)
		coords = append(coords, c)
	}
	return coords, dist, nil
}

func RenderPolyline(coords []datastructure.Coordinate) string {
	pts := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pts = append(pts, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(pts))
}
