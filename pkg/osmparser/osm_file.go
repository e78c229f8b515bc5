package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"lintang/busnavigator/pkg/util"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

func newScanner(ctx context.Context, r io.Reader, pbf bool) osm.Scanner {
	if pbf {
		return osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1))
	}
	return osmxml.New(ctx, r)
}

// ParseOSMFile baca file openstreetmap (.osm.pbf atau .osm xml). Cuma way dengan tag highway yang diambil,
// node yang diambil cuma node yang dipakai way tsb. File di-scan 2 kali: way dulu baru node.
func ParseOSMFile(ctx context.Context, path string) ([]PointElement, []WayElement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open osm file %s: %w", path, err)
	}
	defer f.Close()

	pbf := strings.HasSuffix(path, ".pbf")

	ways, wayNodes, err := scanWays(newScanner(ctx, f, pbf))
	if err != nil {
		return nil, nil, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("rewind osm file: %w", err)
	}

	points, err := scanNodes(newScanner(ctx, f, pbf), wayNodes)
	if err != nil {
		return nil, nil, err
	}
	fmt.Println("")
	return points, ways, nil
}

func scanWays(scanner osm.Scanner) ([]WayElement, map[osm.NodeID]struct{}, error) {
	defer scanner.Close()

	bar := util.NewProgressBar(-1, "[cyan][1/2][reset] memproses openstreetmap way...")
	ways := []WayElement{}
	wayNodes := make(map[osm.NodeID]struct{})
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if way.Tags.Find("highway") == "" {
			continue
		}

		nodeIDs := make([]int64, 0, len(way.Nodes))
		for _, n := range way.Nodes {
			nodeIDs = append(nodeIDs, int64(n.ID))
			wayNodes[n.ID] = struct{}{}
		}
		ways = append(ways, WayElement{
			ID:      int64(way.ID),
			NodeIDs: nodeIDs,
			OneWay:  way.Tags.Find("oneway"),
		})
		bar.Add(1)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan osm ways: %w", err)
	}
	return ways, wayNodes, nil
}

func scanNodes(scanner osm.Scanner, wayNodes map[osm.NodeID]struct{}) ([]PointElement, error) {
	defer scanner.Close()

	bar := util.NewProgressBar(len(wayNodes), "[cyan][2/2][reset] memproses openstreetmap node...")
	points := make([]PointElement, 0, len(wayNodes))
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, used := wayNodes[node.ID]; !used {
			continue
		}
		points = append(points, PointElement{ID: int64(node.ID), Lat: node.Lat, Lon: node.Lon})
		bar.Add(1)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan osm nodes: %w", err)
	}
	return points, nil
}
