package service

import (
	"runtime"

	"lintang/busnavigator/pkg/concurrent"
	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/geo"
	"lintang/busnavigator/pkg/util"
)

const (
	SegmentWalk = "walk"
	SegmentBus  = "bus"
)

type Segment struct {
	Mode      string
	RouteID   string
	BusNumber string
	FromStop  string
	ToStop    string
	Polyline  string
	Distance  float64
	// Approximate true kalau a* gak nemu path dan segment diganti garis lurus.
	Approximate bool
}

type LegendEntry struct {
	RouteID   string
	BusNumber string
	Name      string
}

type TransitItinerary struct {
	Stops            []datastructure.Stop
	Segments         []Segment
	Legend           []LegendEntry
	TotalFare        float64
	WorstCaseMinutes float64
	BestCaseMinutes  float64
	WaitMinutes      float64
	Transfers        int
	Center           datastructure.Coordinate
}

type segmentResult struct {
	index       int
	coords      []datastructure.Coordinate
	dist        float64
	approximate bool
}

// routeOrStraightLine a* di rn, kalau gagal pakai garis lurus from->to.
func routeOrStraightLine(rn *RoadNetwork, from, to datastructure.Coordinate) ([]datastructure.Coordinate, float64, bool) {
	if rn != nil {
		coords, dist, err := rn.Route(from, to)
		if err == nil && len(coords) > 0 {
			return coords, dist, false
		}
	}
	return []datastructure.Coordinate{from, to}, from.DistanceTo(to), true
}

func (uc *NavigationService) buildItinerary(src, dst datastructure.Coordinate, res datastructure.TransitPathResult) TransitItinerary {
	// stop yang gak ada di tabel stop (cuma muncul di trips) pakai koordinat stop sebelumnya
	stops := make([]datastructure.Stop, 0, len(res.Stops))
	for i, id := range res.Stops {
		s, ok := uc.network.GetStop(id)
		if !ok {
			s = datastructure.Stop{ID: id, Name: id}
			if i > 0 {
				s.Coord = stops[i-1].Coord
			}
		}
		stops = append(stops, s)
	}

	segments := make([]Segment, 0, len(stops)+1)

	// jalan kaki ke stop pertama
	first := stops[0]
	coords, dist, approx := routeOrStraightLine(uc.walk, src, first.Coord)
	segments = append(segments, Segment{
		Mode:        SegmentWalk,
		ToStop:      first.ID,
		Polyline:    RenderPolyline(coords),
		Distance:    util.RoundFloat(dist, 2),
		Approximate: approx,
	})

	// segment bus dirouting paralel di road graph mobil
	busSegments := uc.fillBusSegments(stops)
	for i, seg := range busSegments {
		routeID := ""
		if i < len(res.Routes) {
			routeID = res.Routes[i]
		}
		route, _ := uc.network.GetRoute(routeID)
		segments = append(segments, Segment{
			Mode:        SegmentBus,
			RouteID:     routeID,
			BusNumber:   route.BusNumber,
			FromStop:    stops[i].ID,
			ToStop:      stops[i+1].ID,
			Polyline:    RenderPolyline(seg.coords),
			Distance:    util.RoundFloat(seg.dist, 2),
			Approximate: seg.approximate,
		})
	}

	last := stops[len(stops)-1]
	coords, dist, approx = routeOrStraightLine(uc.walk, last.Coord, dst)
	segments = append(segments, Segment{
		Mode:        SegmentWalk,
		FromStop:    last.ID,
		Polyline:    RenderPolyline(coords),
		Distance:    util.RoundFloat(dist, 2),
		Approximate: approx,
	})

	centerLat, centerLon := geo.MidPoint(src.Lat, src.Lon, dst.Lat, dst.Lon)

	return TransitItinerary{
		Stops:            stops,
		Segments:         segments,
		Legend:           uc.legend(res.Routes),
		TotalFare:        res.TotalFare,
		WorstCaseMinutes: util.RoundFloat(res.WorstCaseMinutes(), 2),
		BestCaseMinutes:  util.RoundFloat(res.BestCaseMinutes(), 2),
		WaitMinutes:      util.RoundFloat(res.WaitMinutes(), 2),
		Transfers:        res.Transfers,
		Center:           datastructure.NewCoordinate(centerLat, centerLon),
	}
}

// fillBusSegments satu segment per pasangan stop berurutan, hasil urut sesuai index.
func (uc *NavigationService) fillBusSegments(stops []datastructure.Stop) []segmentResult {
	n := len(stops) - 1
	if n <= 0 {
		return nil
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	wp := concurrent.NewWorkerPool[concurrent.SegmentJobItem, segmentResult](workers, n)
	for i := 0; i < n; i++ {
		wp.AddJob(concurrent.SegmentJobItem{
			Index: i,
			From:  stops[i].Coord,
			To:    stops[i+1].Coord,
		})
	}
	wp.Close()

	wp.Start(func(job concurrent.SegmentJobItem) segmentResult {
		coords, dist, approx := routeOrStraightLine(uc.car, job.From, job.To)
		return segmentResult{index: job.Index, coords: coords, dist: dist, approximate: approx}
	})
	wp.Wait()

	out := make([]segmentResult, n)
	for r := range wp.CollectResults() {
		out[r.index] = r
	}
	return out
}

// legend route sesuai urutan pertama kali dipakai.
func (uc *NavigationService) legend(routes []string) []LegendEntry {
	seen := make(map[string]struct{}, len(routes))
	legend := []LegendEntry{}
	for _, id := range routes {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		r, _ := uc.network.GetRoute(id)
		legend = append(legend, LegendEntry{RouteID: id, BusNumber: r.BusNumber, Name: r.Name})
	}
	return legend
}
