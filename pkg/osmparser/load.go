package osmparser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"lintang/busnavigator/pkg/datastructure"
)

// LoadRoadGraph bikin road graph dari file map. Format dipilih dari ekstensi: .json = overpass response,
// .osm / .osm.pbf = openstreetmap extract.
func LoadRoadGraph(ctx context.Context, path string) (*datastructure.Graph, error) {
	var (
		points []PointElement
		ways   []WayElement
		err    error
	)

	switch lower := strings.ToLower(path); {
	case strings.HasSuffix(lower, ".json"):
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("open map file %s: %w", path, openErr)
		}
		defer f.Close()
		points, ways, err = ParseOverpassJSON(f)
	case strings.HasSuffix(lower, ".osm"), strings.HasSuffix(lower, ".pbf"):
		points, ways, err = ParseOSMFile(ctx, path)
	default:
		return nil, fmt.Errorf("map file %s: unknown format", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse map file %s: %w", path, err)
	}

	return BuildRoadGraph(points, ways), nil
}
