package transit

import (
	"lintang/busnavigator/pkg/datastructure"

	"golang.org/x/exp/slices"
)

// NearbyStops semua stop dengan jarak haversine <= maxDist meter dari coord, urut jarak lalu stop id.
func NearbyStops(coord datastructure.Coordinate, stops []datastructure.Stop, maxDist float64) []datastructure.StopCandidate {
	res := []datastructure.StopCandidate{}
	for _, stop := range stops {
		d := coord.DistanceTo(stop.Coord)
		if d <= maxDist {
			res = append(res, datastructure.StopCandidate{StopID: stop.ID, WalkDistance: d})
		}
	}
	slices.SortFunc(res, func(a, b datastructure.StopCandidate) int {
		switch {
		case a.WalkDistance < b.WalkDistance:
			return -1
		case a.WalkDistance > b.WalkDistance:
			return 1
		case a.StopID < b.StopID:
			return -1
		case a.StopID > b.StopID:
			return 1
		}
		return 0
	})
	return res
}

// MakeHeuristic h(stop) = haversine(stop, dest) / speed. Stop yang gak dikenal dapat 0.
func MakeHeuristic(stops map[string]datastructure.Stop, dest datastructure.Coordinate, speed float64) Heuristic {
	return func(stopID string) float64 {
		stop, ok := stops[stopID]
		if !ok || speed <= 0 {
			return 0
		}
		return stop.Coord.DistanceTo(dest) / speed
	}
}

func CandidateIDs(candidates []datastructure.StopCandidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.StopID)
	}
	return ids
}
