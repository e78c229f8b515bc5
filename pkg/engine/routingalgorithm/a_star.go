package routingalgorithm

import (
	"math"

	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/util"
)

type RoadGraph interface {
	GetNode(id int64) (datastructure.Coordinate, bool)
	GetOutEdges(id int64) []datastructure.Edge
	NodeIDs() []int64
}

type RouteAlgorithm struct {
	g RoadGraph
}

func NewRouteAlgorithm(g RoadGraph) *RouteAlgorithm {
	return &RouteAlgorithm{g: g}
}

func nodeIDLess(a, b int64) bool {
	return a < b
}

// ShortestPathAStar a* dari from ke to. heuristic = haversine ke node tujuan (meter), admissible karena
// bobot edge juga haversine. Kalau node tujuan gak reachable (atau from/to bukan node graph) return (+Inf, nil).
// Node dengan f sama di-pop berdasarkan id terkecil.
func (rt *RouteAlgorithm) ShortestPathAStar(from, to int64) (float64, []int64) {
	if _, ok := rt.g.GetNode(from); !ok {
		return math.Inf(1), nil
	}
	toCoord, ok := rt.g.GetNode(to)
	if !ok {
		return math.Inf(1), nil
	}

	heuristic := func(id int64) float64 {
		c, _ := rt.g.GetNode(id)
		return c.DistanceTo(toCoord)
	}

	heap := datastructure.NewMinHeap[int64](nodeIDLess)
	heap.Insert(datastructure.PriorityQueueNode[int64]{Rank: heuristic(from), Item: from})

	costSoFar := make(map[int64]float64)
	costSoFar[from] = 0.0
	cameFrom := make(map[int64]int64)
	closed := make(map[int64]struct{})

	for heap.Size() > 0 {
		current, _ := heap.ExtractMin()
		if current.Item == to {
			path := []int64{to}
			for curr := to; curr != from; {
				curr = cameFrom[curr]
				path = append(path, curr)
			}
			util.ReverseG(path)
			return costSoFar[to], path
		}
		closed[current.Item] = struct{}{}

		for _, edge := range rt.g.GetOutEdges(current.Item) {
			if _, done := closed[edge.To]; done {
				continue
			}
			newCost := costSoFar[current.Item] + edge.Weight
			oldCost, seen := costSoFar[edge.To]
			if seen && newCost >= oldCost {
				continue
			}
			costSoFar[edge.To] = newCost
			cameFrom[edge.To] = current.Item
			heap.Upsert(datastructure.PriorityQueueNode[int64]{Rank: newCost + heuristic(edge.To), Item: edge.To})
		}
	}

	return math.Inf(1), nil
}
