package kv

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"lintang/busnavigator/pkg/concurrent"
	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/util"

	"github.com/cockroachdb/pebble"
	"github.com/uber/h3-go/v4"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrNotFound = errors.New("key not found")

const (
	h3Resolution      = 9
	roadGraphPrefix   = "graph:road:"
	transitNetworkKey = "graph:transit"
	stopCellPrefix    = "stopcell:"

	RoadGraphCar  = "car"
	RoadGraphWalk = "walk"
)

type KVDB struct {
	db *pebble.DB
}

func NewKVDB(db *pebble.DB) *KVDB {
	return &KVDB{db}
}

func (k *KVDB) set(key string, v any) error {
	val, err := Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := k.db.Set([]byte(key), val, pebble.Sync); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (k *KVDB) get(key string, v any) error {
	val, closer, err := k.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	defer closer.Close()

	if err := Decode(val, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SaveRoadGraph simpan road graph (car / walk) dengan nama name.
func (k *KVDB) SaveRoadGraph(name string, g *datastructure.Graph) error {
	return k.set(roadGraphPrefix+name, g)
}

func (k *KVDB) LoadRoadGraph(name string) (*datastructure.Graph, error) {
	g := datastructure.NewGraph()
	if err := k.get(roadGraphPrefix+name, g); err != nil {
		return nil, err
	}
	return g, nil
}

// transitSnapshot bentuk flat dari TransitNetwork. Urutan Edges = urutan adjacency per stop.
type transitSnapshot struct {
	StopIDs []string
	Stops   []datastructure.Stop
	Routes  []datastructure.Route
	Edges   []datastructure.TransitEdge
}

func (k *KVDB) SaveTransitNetwork(n *datastructure.TransitNetwork) error {
	snap := transitSnapshot{
		StopIDs: n.Graph.SortedStopIDs(),
		Stops:   n.StopList(),
	}
	routeIDs := maps.Keys(n.Routes)
	slices.Sort(routeIDs)
	for _, id := range routeIDs {
		snap.Routes = append(snap.Routes, n.Routes[id])
	}
	for _, id := range snap.StopIDs {
		snap.Edges = append(snap.Edges, n.Graph.GetOutEdges(id)...)
	}
	return k.set(transitNetworkKey, snap)
}

func (k *KVDB) LoadTransitNetwork() (*datastructure.TransitNetwork, error) {
	var snap transitSnapshot
	if err := k.get(transitNetworkKey, &snap); err != nil {
		return nil, err
	}

	n := &datastructure.TransitNetwork{
		Graph:  datastructure.NewTransitGraph(),
		Stops:  make(map[string]datastructure.Stop, len(snap.Stops)),
		Routes: make(map[string]datastructure.Route, len(snap.Routes)),
	}
	for _, id := range snap.StopIDs {
		n.Graph.AddStop(id)
	}
	for _, e := range snap.Edges {
		n.Graph.AddEdge(e)
	}
	for _, s := range snap.Stops {
		n.Stops[s.ID] = s
	}
	for _, r := range snap.Routes {
		n.Routes[r.ID] = r
	}
	return n, nil
}

// CreateStopKV index semua stop per h3 cell (resolusi 9) lalu simpan ke pebble pakai worker pool.
func (k *KVDB) CreateStopKV(stops []datastructure.Stop, showProgress bool) error {
	cells := make(map[string][]concurrent.StopCell)
	for _, s := range stops {
		cell := h3.LatLngToCell(h3.NewLatLng(s.Coord.Lat, s.Coord.Lon), h3Resolution)
		cells[cell.String()] = append(cells[cell.String()], concurrent.StopCell{
			StopID: s.ID,
			Lat:    s.Coord.Lat,
			Lon:    s.Coord.Lon,
		})
	}

	workers := concurrent.NewWorkerPool[concurrent.SaveStopCellJobItem, error](runtime.NumCPU(), len(cells))
	for keyStr, valArr := range cells {
		workers.AddJob(concurrent.SaveStopCellJobItem{KeyStr: keyStr, ValArr: valArr})
	}
	workers.Close()

	workers.Start(k.SaveStopCell)
	workers.Wait()

	var bar interface{ Add(int) error }
	if showProgress {
		bar = util.NewProgressBar(len(cells), "[cyan][3/3][reset] saving h3 indexed bus stop to pebble db...")
	}
	var errs []error
	for err := range workers.CollectResults() {
		if err != nil {
			errs = append(errs, err)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	return errors.Join(errs...)
}

func (k *KVDB) SaveStopCell(item concurrent.SaveStopCellJobItem) error {
	return k.set(stopCellPrefix+item.KeyStr, item.ValArr)
}

func (k *KVDB) getStopCell(cell h3.Cell) ([]concurrent.StopCell, error) {
	var stops []concurrent.StopCell
	err := k.get(stopCellPrefix+cell.String(), &stops)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return stops, err
}

// GetNearbyStopsFromPointCoord stop dengan jarak haversine <= radiusM dari (lat, lon), urut jarak lalu id.
// Yang dibaca cuma h3 cell di sekitar titik.
func (k *KVDB) GetNearbyStopsFromPointCoord(lat, lon, radiusM float64) ([]datastructure.StopCandidate, error) {
	origin := datastructure.NewCoordinate(lat, lon)
	res := []datastructure.StopCandidate{}
	for _, cell := range kRingIndexesArea(lat, lon, radiusM/1000) {
		stops, err := k.getStopCell(cell)
		if err != nil {
			return nil, err
		}
		for _, s := range stops {
			d := origin.DistanceTo(datastructure.NewCoordinate(s.Lat, s.Lon))
			if d <= radiusM {
				res = append(res, datastructure.StopCandidate{StopID: s.StopID, WalkDistance: d})
			}
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
	return res, nil
}

/*
*
  - https://observablehq.com/@nrabinowitz/h3-radius-lookup?collection=@nrabinowitz/h3
    search cell neighbor dari cell dari lat,lon  yang radius nya = searchRadiusKm.
    ditambah 1 ring biar pinggiran lingkaran yang masuk ke cell tetangga ikut ke-cover.
*/
func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	home := h3.NewLatLng(lat, lon)
	origin := h3.LatLngToCell(home, h3Resolution)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea

	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, radius+1)
}

func (k *KVDB) Close() error {
	return k.db.Close()
}
