package routingalgorithm

import (
	"errors"
	"math"

	"lintang/busnavigator/pkg/datastructure"
)

var ErrNoNodesAvailable = errors.New("no nodes available in graph")

// NearestNode linear scan semua node, return id node dengan jarak haversine terkecil ke coord.
// Kalau jaraknya sama, id terkecil yang menang.
func NearestNode(coord datastructure.Coordinate, g RoadGraph) (int64, error) {
	bestID := int64(0)
	bestDist := math.Inf(1)
	found := false
	for _, id := range g.NodeIDs() {
		c, _ := g.GetNode(id)
		d := coord.DistanceTo(c)
		if !found || d < bestDist || (d == bestDist && id < bestID) {
			bestID, bestDist, found = id, d, true
		}
	}
	if !found {
		return 0, ErrNoNodesAvailable
	}
	return bestID, nil
}

// NearestNode snap coordinate ke graph milik route algorithm ini.
func (rt *RouteAlgorithm) NearestNode(coord datastructure.Coordinate) (int64, error) {
	return NearestNode(coord, rt.g)
}
