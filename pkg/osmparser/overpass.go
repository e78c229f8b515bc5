package osmparser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrMissingField = errors.New("missing required field")

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// overpassElement only these paths are read, anything else in the payload is ignored.
type overpassElement struct {
	Type  string            `json:"type"`
	ID    *int64            `json:"id"`
	Lat   *float64          `json:"lat"`
	Lon   *float64          `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

// ParseOverpassJSON baca response overpass api ({"elements": [...]}) jadi node & way.
// relation dan tipe lain diabaikan.
func ParseOverpassJSON(r io.Reader) ([]PointElement, []WayElement, error) {
	var resp overpassResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, nil, fmt.Errorf("decode overpass response: %w", err)
	}

	points := make([]PointElement, 0, len(resp.Elements))
	ways := []WayElement{}
	for i, el := range resp.Elements {
		switch el.Type {
		case "node":
			if el.ID == nil {
				return nil, nil, fmt.Errorf("element %d: node.id: %w", i, ErrMissingField)
			}
			if el.Lat == nil {
				return nil, nil, fmt.Errorf("node %d: lat: %w", *el.ID, ErrMissingField)
			}
			if el.Lon == nil {
				return nil, nil, fmt.Errorf("node %d: lon: %w", *el.ID, ErrMissingField)
			}
			points = append(points, PointElement{ID: *el.ID, Lat: *el.Lat, Lon: *el.Lon})
		case "way":
			if el.ID == nil {
				return nil, nil, fmt.Errorf("element %d: way.id: %w", i, ErrMissingField)
			}
			ways = append(ways, WayElement{
				ID:      *el.ID,
				NodeIDs: el.Nodes,
				OneWay:  el.Tags["oneway"],
			})
		}
	}
	return points, ways, nil
}
