package transitparser

import (
	"fmt"

	"lintang/busnavigator/pkg/datastructure"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const UnknownTripName = "Unknown"

func StopsByID(records []StopRecord) map[string]datastructure.Stop {
	stops := make(map[string]datastructure.Stop, len(records))
	for _, rec := range records {
		stops[rec.StopID] = datastructure.Stop{
			ID:    rec.StopID,
			Name:  rec.StopName,
			Coord: datastructure.NewCoordinate(rec.Lat, rec.Lng),
		}
	}
	return stops
}

// groupTripsByRoute trip rows per route, urut stopSequence (stopId kalau sequence sama).
// Semua row ikut, termasuk yang stop-nya gak ada di tabel stop, biar pasangan berurutan tetap sesuai data.
func groupTripsByRoute(trips []TripRecord) map[string][]TripRecord {
	byRoute := make(map[string][]TripRecord)
	for _, trip := range trips {
		byRoute[trip.RouteID] = append(byRoute[trip.RouteID], trip)
	}
	for _, rows := range byRoute {
		slices.SortStableFunc(rows, func(a, b TripRecord) int {
			if a.StopSequence != b.StopSequence {
				return a.StopSequence - b.StopSequence
			}
			switch {
			case a.StopID < b.StopID:
				return -1
			case a.StopID > b.StopID:
				return 1
			}
			return 0
		})
	}
	return byRoute
}

// BuildTransitGraph tiap pasangan row berurutan dalam 1 route jadi satu TransitEdge (routeId ikut disimpan).
// Jarak edge diambil dari distanceToNextStop row asal, kalau kosong pakai haversine antar koordinat stop;
// kalau salah satu koordinat gak ada cuma segment itu yang di-skip. Semua stop yang direferensikan trip
// jadi node, termasuk yang gak ada di tabel stop dan yang terisolasi.
func BuildTransitGraph(trips []TripRecord, stops map[string]datastructure.Stop) *datastructure.TransitGraph {
	tg := datastructure.NewTransitGraph()
	byRoute := groupTripsByRoute(trips)

	routeIDs := maps.Keys(byRoute)
	slices.Sort(routeIDs)
	for _, routeID := range routeIDs {
		rows := byRoute[routeID]
		for _, row := range rows {
			tg.AddStop(row.StopID)
		}
		for i := 0; i+1 < len(rows); i++ {
			u, v := rows[i], rows[i+1]
			dist, ok := segmentDistance(u, v, stops)
			if !ok {
				continue
			}
			tg.AddEdge(datastructure.TransitEdge{
				From:     u.StopID,
				To:       v.StopID,
				Distance: dist,
				RouteID:  routeID,
			})
		}
	}
	return tg
}

func segmentDistance(u, v TripRecord, stops map[string]datastructure.Stop) (float64, bool) {
	if u.DistanceToNextStop != nil {
		return *u.DistanceToNextStop, true
	}
	from, okFrom := stops[u.StopID]
	to, okTo := stops[v.StopID]
	if !okFrom || !okTo {
		return 0, false
	}
	return from.Coord.DistanceTo(to.Coord), true
}

// BuildRouteInfo fare, headway (detik) dan nama trip "stop pertama → stop terakhir" per route.
func BuildRouteInfo(routes []RouteRecord, trips []TripRecord, stops map[string]datastructure.Stop) map[string]datastructure.Route {
	byRoute := groupTripsByRoute(trips)
	info := make(map[string]datastructure.Route, len(routes))
	for _, rec := range routes {
		name := UnknownTripName
		if rows := byRoute[rec.RouteID]; len(rows) > 0 {
			name = fmt.Sprintf("%s → %s", stopName(rows[0].StopID, stops), stopName(rows[len(rows)-1].StopID, stops))
		}
		info[rec.RouteID] = datastructure.Route{
			ID:        rec.RouteID,
			BusNumber: rec.BusNumber,
			Fare:      rec.Fee,
			Headway:   rec.SpacingMinutes * 60,
			Name:      name,
		}
	}
	return info
}

func stopName(id string, stops map[string]datastructure.Stop) string {
	if s, ok := stops[id]; ok && s.Name != "" {
		return s.Name
	}
	return id
}

func BuildTransitNetwork(routes []RouteRecord, stopRecords []StopRecord, trips []TripRecord) *datastructure.TransitNetwork {
	stops := StopsByID(stopRecords)
	return &datastructure.TransitNetwork{
		Graph:  BuildTransitGraph(trips, stops),
		Stops:  stops,
		Routes: BuildRouteInfo(routes, trips, stops),
	}
}

// LoadTransitNetwork baca routes.csv, stops.csv, trips.csv lalu build network-nya.
func LoadTransitNetwork(routesPath, stopsPath, tripsPath string) (*datastructure.TransitNetwork, error) {
	routes, err := LoadRoutes(routesPath)
	if err != nil {
		return nil, err
	}
	stops, err := LoadStops(stopsPath)
	if err != nil {
		return nil, err
	}
	trips, err := LoadTrips(tripsPath)
	if err != nil {
		return nil, err
	}
	return BuildTransitNetwork(routes, stops, trips), nil
}
