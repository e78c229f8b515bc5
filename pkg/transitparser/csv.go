package transitparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidValue = errors.New("invalid value")
)

const (
	ColRouteID        = "routeId"
	ColBusNumber      = "busNumber"
	ColRouteName      = "routename"
	ColFee            = "fee"
	ColActiveStart    = "activeStartTime"
	ColActiveStop     = "activeStopTime"
	ColBusStopSpacing = "busStopSpacing(time of trip)"

	ColStopID   = "stopId"
	ColStopName = "stopName"
	ColLat      = "lat"
	ColLng      = "lng"

	ColStopSequence       = "stopSequence"
	ColDistanceToNextStop = "distanceToNextStop"
)

var validate = validator.New()

// RouteRecord satu baris routes.csv. SpacingMinutes = jarak waktu antar bus (menit).
type RouteRecord struct {
	RouteID         string  `validate:"required"`
	BusNumber       string
	Name            string
	Fee             float64 `validate:"gte=0"`
	ActiveStartTime string
	ActiveStopTime  string
	SpacingMinutes  float64 `validate:"gte=0"`
}

type StopRecord struct {
	StopID   string  `validate:"required"`
	StopName string
	Lat      float64 `validate:"gte=-90,lte=90"`
	Lng      float64 `validate:"gte=-180,lte=180"`
}

// TripRecord satu baris trips.csv. DistanceToNextStop nil kalau kolomnya kosong (biasanya stop terakhir).
type TripRecord struct {
	RouteID            string `validate:"required"`
	StopSequence       int    `validate:"gte=0"`
	StopID             string `validate:"required"`
	DistanceToNextStop *float64
}

// csvTable header lookup case-insensitive, mirip idx() di loader gtfs.
type csvTable struct {
	name   string
	r      *csv.Reader
	header map[string]int
	line   int
}

func newCSVTable(name string, r io.Reader, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file, header row: %w", name, ErrMissingField)
		}
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}

	t := &csvTable{name: name, r: cr, header: make(map[string]int, len(head)), line: 1}
	for i, h := range head {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.header[strings.ToLower(h)] = i
	}
	for _, col := range required {
		if _, ok := t.header[strings.ToLower(col)]; !ok {
			return nil, fmt.Errorf("%s: header column %q: %w", name, col, ErrMissingField)
		}
	}
	return t, nil
}

// next returns nil, io.EOF at the end of the table.
func (t *csvTable) next() ([]string, error) {
	row, err := t.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%s line %d: %w", t.name, t.line+1, err)
	}
	t.line++
	return row, nil
}

func (t *csvTable) get(row []string, col string) string {
	i, ok := t.header[strings.ToLower(col)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *csvTable) float(row []string, col string) (float64, error) {
	v := t.get(row, col)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, t.errorf(col, ErrInvalidValue, "%q", v)
	}
	return f, nil
}

func (t *csvTable) errorf(col string, sentinel error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if msg != "" {
		msg = " " + msg
	}
	return fmt.Errorf("%s line %d column %s%s: %w", t.name, t.line, col, msg, sentinel)
}

// validateRecord translate validator errors ke ErrMissingField / ErrInvalidValue.
func (t *csvTable) validateRecord(rec any, columns map[string]string) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%s line %d: %w", t.name, t.line, err)
	}
	fe := verrs[0]
	col := columns[fe.Field()]
	if fe.Tag() == "required" {
		return t.errorf(col, ErrMissingField, "")
	}
	return t.errorf(col, ErrInvalidValue, "%v violates %s=%s", fe.Value(), fe.Tag(), fe.Param())
}

// parseSpacing "10" atau range "10-15" (menit). Range diambil rata-ratanya.
func parseSpacing(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	lo, hi, isRange := strings.Cut(v, "-")
	if !isRange {
		return strconv.ParseFloat(v, 64)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return 0, err
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return 0, err
	}
	return (a + b) / 2, nil
}

var routeColumns = map[string]string{"RouteID": ColRouteID, "Fee": ColFee, "SpacingMinutes": ColBusStopSpacing}

func ReadRoutes(name string, r io.Reader) ([]RouteRecord, error) {
	t, err := newCSVTable(name, r, ColRouteID, ColFee, ColBusStopSpacing)
	if err != nil {
		return nil, err
	}

	routes := []RouteRecord{}
	for {
		row, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		fee, err := t.float(row, ColFee)
		if err != nil {
			return nil, err
		}
		spacing, err := parseSpacing(t.get(row, ColBusStopSpacing))
		if err != nil {
			return nil, t.errorf(ColBusStopSpacing, ErrInvalidValue, "%q", t.get(row, ColBusStopSpacing))
		}

		rec := RouteRecord{
			RouteID:         t.get(row, ColRouteID),
			BusNumber:       t.get(row, ColBusNumber),
			Name:            t.get(row, ColRouteName),
			Fee:             fee,
			ActiveStartTime: t.get(row, ColActiveStart),
			ActiveStopTime:  t.get(row, ColActiveStop),
			SpacingMinutes:  spacing,
		}
		if err := t.validateRecord(rec, routeColumns); err != nil {
			return nil, err
		}
		routes = append(routes, rec)
	}
	return routes, nil
}

var stopColumns = map[string]string{"StopID": ColStopID, "Lat": ColLat, "Lng": ColLng}

func ReadStops(name string, r io.Reader) ([]StopRecord, error) {
	t, err := newCSVTable(name, r, ColStopID, ColLat, ColLng)
	if err != nil {
		return nil, err
	}

	stops := []StopRecord{}
	for {
		row, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		for _, col := range []string{ColLat, ColLng} {
			if t.get(row, col) == "" {
				return nil, t.errorf(col, ErrMissingField, "")
			}
		}
		lat, err := t.float(row, ColLat)
		if err != nil {
			return nil, err
		}
		lng, err := t.float(row, ColLng)
		if err != nil {
			return nil, err
		}

		rec := StopRecord{
			StopID:   t.get(row, ColStopID),
			StopName: t.get(row, ColStopName),
			Lat:      lat,
			Lng:      lng,
		}
		if err := t.validateRecord(rec, stopColumns); err != nil {
			return nil, err
		}
		stops = append(stops, rec)
	}
	return stops, nil
}

var tripColumns = map[string]string{"RouteID": ColRouteID, "StopSequence": ColStopSequence, "StopID": ColStopID}

func ReadTrips(name string, r io.Reader) ([]TripRecord, error) {
	t, err := newCSVTable(name, r, ColRouteID, ColStopSequence, ColStopID, ColDistanceToNextStop)
	if err != nil {
		return nil, err
	}

	trips := []TripRecord{}
	for {
		row, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		seqStr := t.get(row, ColStopSequence)
		if seqStr == "" {
			return nil, t.errorf(ColStopSequence, ErrMissingField, "")
		}
		seq, err := strconv.Atoi(seqStr)
		if err != nil {
			return nil, t.errorf(ColStopSequence, ErrInvalidValue, "%q", seqStr)
		}

		rec := TripRecord{
			RouteID:      t.get(row, ColRouteID),
			StopSequence: seq,
			StopID:       t.get(row, ColStopID),
		}
		if v := t.get(row, ColDistanceToNextStop); v != "" {
			d, err := strconv.ParseFloat(v, 64)
			if err != nil || d < 0 {
				return nil, t.errorf(ColDistanceToNextStop, ErrInvalidValue, "%q", v)
			}
			rec.DistanceToNextStop = &d
		}
		if err := t.validateRecord(rec, tripColumns); err != nil {
			return nil, err
		}
		trips = append(trips, rec)
	}
	return trips, nil
}

func readFile[T any](path string, read func(string, io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return read(path, f)
}

func LoadRoutes(path string) ([]RouteRecord, error) {
	return readFile(path, ReadRoutes)
}

func LoadStops(path string) ([]StopRecord, error) {
	return readFile(path, ReadStops)
}

func LoadTrips(path string) ([]TripRecord, error) {
	return readFile(path, ReadTrips)
}
