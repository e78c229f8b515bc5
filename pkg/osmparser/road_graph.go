package osmparser

import (
	"lintang/busnavigator/pkg/datastructure"
)

// OneWayYes satu-satunya nilai tag oneway yang bikin way cuma punya edge searah.
const OneWayYes = "yes"

type PointElement struct {
	ID  int64
	Lat float64
	Lon float64
}

type WayElement struct {
	ID      int64
	NodeIDs []int64
	OneWay  string
}

// BuildRoadGraph bikin directed graph dari osm node & way. Tiap pasangan node berurutan di way jadi
// edge forward, plus edge reverse kalau oneway != "yes". Segment yang salah satu node-nya gak ada di
// points di-skip, segment lain di way yang sama tetap masuk.
func BuildRoadGraph(points []PointElement, ways []WayElement) *datastructure.Graph {
	g := datastructure.NewGraph()
	for _, p := range points {
		g.AddNode(p.ID, datastructure.NewCoordinate(p.Lat, p.Lon))
	}

	for _, way := range ways {
		oneWay := way.OneWay == OneWayYes
		for i := 0; i+1 < len(way.NodeIDs); i++ {
			fromID, toID := way.NodeIDs[i], way.NodeIDs[i+1]
			from, okFrom := g.GetNode(fromID)
			to, okTo := g.GetNode(toID)
			if !okFrom || !okTo {
				continue
			}

			dist := from.DistanceTo(to)
			g.AddEdge(fromID, toID, dist)
			if !oneWay {
				g.AddEdge(toID, fromID, dist)
			}
		}
	}
	return g
}
