package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/engine/routingalgorithm"
	"lintang/busnavigator/pkg/engine/transit"
	"lintang/busnavigator/pkg/server"
	"lintang/busnavigator/pkg/util"

	"github.com/patrickmn/go-cache"
	"golang.org/x/exp/slog"
)

const (
	ModeCar  = "car"
	ModeWalk = "walk"
)

type TransitSearcher interface {
	Search(origins []datastructure.StopCandidate, destinations []string, h transit.Heuristic) (datastructure.TransitPathResult, error)
	Params() transit.Params
}

type KVDB interface {
	GetNearbyStopsFromPointCoord(lat, lon, radiusM float64) ([]datastructure.StopCandidate, error)
}

type NavigationService struct {
	car      *RoadNetwork
	walk     *RoadNetwork
	network  *datastructure.TransitNetwork
	searcher TransitSearcher
	kv       KVDB
	maxWalk  float64
	cache    *cache.Cache
	log      *slog.Logger
}

// NewNavigationService kv boleh nil, nearby stop dicari linear dari network.
func NewNavigationService(car, walk *RoadNetwork, network *datastructure.TransitNetwork, searcher TransitSearcher,
	kv KVDB, maxWalk float64, log *slog.Logger) *NavigationService {
	return &NavigationService{
		car:      car,
		walk:     walk,
		network:  network,
		searcher: searcher,
		kv:       kv,
		maxWalk:  maxWalk,
		cache:    cache.New(5*time.Minute, 10*time.Minute),
		log:      log,
	}
}

type ShortestPathResult struct {
	Path     string
	Distance float64 // meter
	ETA      float64 // detik
	Route    []datastructure.Coordinate
}

func (uc *NavigationService) roadNetwork(mode string) (*RoadNetwork, error) {
	switch mode {
	case "", ModeCar:
		return uc.car, nil
	case ModeWalk:
		return uc.walk, nil
	}
	return nil, server.WrapErrorf(nil, server.ErrBadParamInput, "unknown mode %q, use %q or %q", mode, ModeCar, ModeWalk)
}

func (uc *NavigationService) ShortestPath(ctx context.Context, src, dst datastructure.Coordinate, mode string) (ShortestPathResult, error) {
	if err := ctx.Err(); err != nil {
		return ShortestPathResult{}, err
	}
	rn, err := uc.roadNetwork(mode)
	if err != nil {
		return ShortestPathResult{}, err
	}

	coords, dist, err := rn.Route(src, dst)
	if errors.Is(err, routingalgorithm.ErrNoNodesAvailable) {
		return ShortestPathResult{}, server.WrapErrorf(err, server.ErrNotFound, "sorry!! the %s road network is empty", mode)
	}
	if errors.Is(err, ErrNoPath) {
		return ShortestPathResult{}, server.WrapErrorf(err, server.ErrNotFound, "no %s path between the two locations", mode)
	}
	if err != nil {
		return ShortestPathResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	return ShortestPathResult{
		Path:     RenderPolyline(coords),
		Distance: dist,
		ETA:      dist / rn.speed,
		Route:    coords,
	}, nil
}

type NearbyStop struct {
	StopID       string
	Name         string
	Coord        datastructure.Coordinate
	WalkDistance float64
}

// nearbyCandidates stop dalam radius meter dari coord. Dicache per (coord, radius).
func (uc *NavigationService) nearbyCandidates(coord datastructure.Coordinate, radius float64) []datastructure.StopCandidate {
	key := fmt.Sprintf("%.6f,%.6f,%.1f", coord.Lat, coord.Lon, radius)
	if cached, ok := uc.cache.Get(key); ok {
		return cached.([]datastructure.StopCandidate)
	}

	var candidates []datastructure.StopCandidate
	if uc.kv != nil {
		var err error
		candidates, err = uc.kv.GetNearbyStopsFromPointCoord(coord.Lat, coord.Lon, radius)
		if err != nil {
			uc.log.Warn("stop kv lookup failed, falling back to linear scan", "error", err)
			candidates = nil
		}
	}
	if candidates == nil {
		candidates = transit.NearbyStops(coord, uc.network.StopList(), radius)
	}

	uc.cache.Set(key, candidates, cache.DefaultExpiration)
	return candidates
}

func (uc *NavigationService) NearbyStops(ctx context.Context, coord datastructure.Coordinate, radius float64) ([]NearbyStop, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if radius <= 0 {
		radius = uc.maxWalk
	}

	candidates := uc.nearbyCandidates(coord, radius)
	stops := make([]NearbyStop, 0, len(candidates))
	for _, c := range candidates {
		s, _ := uc.network.GetStop(c.StopID)
		stops = append(stops, NearbyStop{
			StopID:       c.StopID,
			Name:         s.Name,
			Coord:        s.Coord,
			WalkDistance: util.RoundFloat(c.WalkDistance, 2),
		})
	}
	return stops, nil
}

// TransitRoute cari rute bus dari src ke dst lalu isi itinerary (jalan kaki + segment bus di jalan raya).
func (uc *NavigationService) TransitRoute(ctx context.Context, src, dst datastructure.Coordinate) (TransitItinerary, error) {
	if err := ctx.Err(); err != nil {
		return TransitItinerary{}, err
	}

	origins := uc.nearbyCandidates(src, uc.maxWalk)
	if len(origins) == 0 {
		return TransitItinerary{}, server.WrapErrorf(nil, server.ErrNotFound, "no bus stop within %.0f m of the origin", uc.maxWalk)
	}
	dests := uc.nearbyCandidates(dst, uc.maxWalk)
	if len(dests) == 0 {
		return TransitItinerary{}, server.WrapErrorf(nil, server.ErrNotFound, "no bus stop within %.0f m of the destination", uc.maxWalk)
	}

	params := uc.searcher.Params()
	h := transit.MakeHeuristic(uc.network.Stops, dst, params.CruisingSpeed)

	start := time.Now()
	res, err := uc.searcher.Search(origins, transit.CandidateIDs(dests), h)
	if errors.Is(err, transit.ErrNoRouteFound) {
		return TransitItinerary{}, server.WrapErrorf(err, server.ErrNotFound, "no bus route found between the two locations")
	}
	if err != nil {
		return TransitItinerary{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	uc.log.Debug("transit search done",
		"origins", len(origins), "destinations", len(dests),
		"stops", len(res.Stops), "transfers", res.Transfers, "took", time.Since(start))

	if err := ctx.Err(); err != nil {
		return TransitItinerary{}, err
	}
	return uc.buildItinerary(src, dst, res), nil
}
