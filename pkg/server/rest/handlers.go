package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/server"
	"lintang/busnavigator/pkg/server/rest/service"
	"lintang/busnavigator/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NavigationService interface {
	ShortestPath(ctx context.Context, src, dst datastructure.Coordinate, mode string) (service.ShortestPathResult, error)
	TransitRoute(ctx context.Context, src, dst datastructure.Coordinate) (service.TransitItinerary, error)
	NearbyStops(ctx context.Context, coord datastructure.Coordinate, radius float64) ([]service.NearbyStop, error)
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *metrics) {
	handler := &NavigationHandler{svc, m}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
			r.Post("/transit-route", handler.transitRoute)
			r.Get("/nearby-stops", handler.nearbyStops)
			r.Get("/hello", handler.Hello)
		})
	})
}

// validateRequest nil kalau valid, selain itu renderer 400 dengan pesan validasi yang sudah ditranslate.
func validateRequest(s interface{}) render.Renderer {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		return ErrValidation(err, vv)
	}
	return nil
}

// ShortestPathRequest model info
//
//	@Description	request body untuk shortest path query antara 2 tempat, mode car atau walk
type ShortestPathRequest struct {
	SrcLat float64 `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon float64 `json:"src_lon" validate:"required,lt=180,gt=-180"`
	DstLat float64 `json:"dst_lat" validate:"required,lt=90,gt=-90"`
	DstLon float64 `json:"dst_lon" validate:"required,lt=180,gt=-180"`
	Mode   string  `json:"mode" validate:"omitempty,oneof=car walk"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	if s.SrcLat == 0 || s.SrcLon == 0 || s.DstLat == 0 || s.DstLon == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// ShortestPathResponse	model info
//
//	@Description	response body untuk shortest path query antara 2 tempat
type ShortestPathResponse struct {
	Path  string                     `json:"path"`
	Dist  float64                    `json:"distance"`
	ETA   float64                    `json:"ETA"`
	Mode  string                     `json:"mode"`
	Route []datastructure.Coordinate `json:"route,omitempty"`
	Alg   string                     `json:"algorithm"`
}

func NewShortestPathResponse(res service.ShortestPathResult, mode string) *ShortestPathResponse {
	if mode == "" {
		mode = service.ModeCar
	}
	return &ShortestPathResponse{
		Path:  res.Path,
		Dist:  util.RoundFloat(res.Distance, 2),
		ETA:   util.RoundFloat(res.ETA, 2),
		Mode:  mode,
		Route: res.Route,
		Alg:   "A* Algorithm",
	}
}

// shortestPath
//
//	@Summary		shortest path query antara 2 tempat di road network mobil atau jalan kaki.
//	@Description	shortest path query antara 2 tempat. Hanya 1 source dan 1 destination
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body query shortest path antara 2 tempat"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := validateRequest(*data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	mode := data.Mode
	if mode == "" {
		mode = service.ModeCar
	}
	h.promeMetrics.SPQueryCount.WithLabelValues(mode).Inc()

	res, err := h.svc.ShortestPath(r.Context(),
		datastructure.NewCoordinate(data.SrcLat, data.SrcLon),
		datastructure.NewCoordinate(data.DstLat, data.DstLon), mode)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewShortestPathResponse(res, mode))
}

// TransitRouteRequest model info
//
//	@Description	request body untuk rute bus antara 2 tempat (jalan kaki + bus)
type TransitRouteRequest struct {
	SrcLat float64 `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon float64 `json:"src_lon" validate:"required,lt=180,gt=-180"`
	DstLat float64 `json:"dst_lat" validate:"required,lt=90,gt=-90"`
	DstLon float64 `json:"dst_lon" validate:"required,lt=180,gt=-180"`
}

func (s *TransitRouteRequest) Bind(r *http.Request) error {
	if s.SrcLat == 0 || s.SrcLon == 0 || s.DstLat == 0 || s.DstLon == 0 {
		return errors.New("invalid request")
	}
	return nil
}

type StopResponse struct {
	StopID string  `json:"stop_id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

type SegmentResponse struct {
	Mode        string  `json:"mode"`
	RouteID     string  `json:"route_id,omitempty"`
	BusNumber   string  `json:"bus_number,omitempty"`
	FromStop    string  `json:"from_stop,omitempty"`
	ToStop      string  `json:"to_stop,omitempty"`
	Polyline    string  `json:"polyline"`
	Distance    float64 `json:"distance"`
	Approximate bool    `json:"approximate"`
}

type LegendResponse struct {
	RouteID   string `json:"route_id"`
	BusNumber string `json:"bus_number"`
	Name      string `json:"name"`
}

// TransitRouteResponse model info
//
//	@Description	response body rute bus: urutan stop, segment (walk/bus), legend dan ringkasan
type TransitRouteResponse struct {
	Stops            []StopResponse           `json:"stops"`
	Segments         []SegmentResponse        `json:"segments"`
	Legend           []LegendResponse         `json:"legend"`
	TotalFare        float64                  `json:"total_fare"`
	WorstCaseMinutes float64                  `json:"worst_case_minutes"`
	BestCaseMinutes  float64                  `json:"best_case_minutes"`
	WaitMinutes      float64                  `json:"wait_minutes"`
	Transfers        int                      `json:"transfers"`
	Center           datastructure.Coordinate `json:"center"`
}

func NewTransitRouteResponse(it service.TransitItinerary) *TransitRouteResponse {
	resp := &TransitRouteResponse{
		Stops:            make([]StopResponse, 0, len(it.Stops)),
		Segments:         make([]SegmentResponse, 0, len(it.Segments)),
		Legend:           make([]LegendResponse, 0, len(it.Legend)),
		TotalFare:        it.TotalFare,
		WorstCaseMinutes: it.WorstCaseMinutes,
		BestCaseMinutes:  it.BestCaseMinutes,
		WaitMinutes:      it.WaitMinutes,
		Transfers:        it.Transfers,
		Center:           it.Center,
	}
	for _, s := range it.Stops {
		resp.Stops = append(resp.Stops, StopResponse{StopID: s.ID, Name: s.Name, Lat: s.Coord.Lat, Lon: s.Coord.Lon})
	}
	for _, seg := range it.Segments {
		resp.Segments = append(resp.Segments, SegmentResponse(seg))
	}
	for _, l := range it.Legend {
		resp.Legend = append(resp.Legend, LegendResponse(l))
	}
	return resp
}

// transitRoute
//
//	@Summary		rute bus kota antara 2 tempat.
//	@Description	cari stop terdekat dari asal dan tujuan lalu rute bus dengan biaya waktu + tarif + waktu tunggu paling kecil.
//	@Tags			navigations
//	@Param			body	body	TransitRouteRequest	true	"request body query rute bus antara 2 tempat"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/transit-route [post]
//	@Success		200	{object}	TransitRouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) transitRoute(w http.ResponseWriter, r *http.Request) {
	data := &TransitRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := validateRequest(*data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	it, err := h.svc.TransitRoute(r.Context(),
		datastructure.NewCoordinate(data.SrcLat, data.SrcLon),
		datastructure.NewCoordinate(data.DstLat, data.DstLon))
	if err != nil {
		h.promeMetrics.TransitQueryCount.WithLabelValues("false").Inc()
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.TransitQueryCount.WithLabelValues("true").Inc()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewTransitRouteResponse(it))
}

type NearbyStopsRequest struct {
	Lat    float64 `validate:"required,lt=90,gt=-90"`
	Lon    float64 `validate:"required,lt=180,gt=-180"`
	Radius float64 `validate:"gte=0,lte=5000"`
}

type NearbyStopResponse struct {
	StopResponse
	WalkDistance float64 `json:"walk_distance"`
}

type NearbyStopsResponse struct {
	Stops []NearbyStopResponse `json:"stops"`
}

func parseQueryFloat(r *http.Request, key string, required bool) (float64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		if required {
			return 0, fmt.Errorf("query param %s is required", key)
		}
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("query param %s: %w", key, err)
	}
	return f, nil
}

// nearbyStops
//
//	@Summary		stop bus di sekitar satu titik.
//	@Description	stop bus dalam radius (meter) dari titik, urut jarak. radius kosong = max walk distance dari config.
//	@Tags			navigations
//	@Param			lat		query	number	true	"latitude"
//	@Param			lon		query	number	true	"longitude"
//	@Param			radius	query	number	false	"radius dalam meter"
//	@Produce		application/json
//	@Router			/navigations/nearby-stops [get]
//	@Success		200	{object}	NearbyStopsResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) nearbyStops(w http.ResponseWriter, r *http.Request) {
	data := NearbyStopsRequest{}
	var err error
	if data.Lat, err = parseQueryFloat(r, "lat", true); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if data.Lon, err = parseQueryFloat(r, "lon", true); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if data.Radius, err = parseQueryFloat(r, "radius", false); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := validateRequest(data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	stops, err := h.svc.NearbyStops(r.Context(), datastructure.NewCoordinate(data.Lat, data.Lon), data.Radius)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	resp := NearbyStopsResponse{Stops: make([]NearbyStopResponse, 0, len(stops))}
	for _, s := range stops {
		resp.Stops = append(resp.Stops, NearbyStopResponse{
			StopResponse: StopResponse{StopID: s.StopID, Name: s.Name, Lat: s.Coord.Lat, Lon: s.Coord.Lon},
			WalkDistance: s.WalkDistance,
		})
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *NavigationHandler) Hello(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, "Hello, World!")
}

// ErrResponse model info
//
//	@Description	model untuk error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	switch getStatusCode(err) {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusConflict:
		statusText = "Resource conflict."
	case http.StatusBadRequest:
		statusText = "Bad request."
	case http.StatusRequestTimeout:
		statusText = "Request cancelled."
	default:
		statusText = "Error."
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: getStatusCode(err),
		StatusText:     statusText,
		ErrorText:      err.Error(),
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusRequestTimeout
	}
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}
	switch ierr.Code() {
	case server.ErrInternalServerError:
		return http.StatusInternalServerError
	case server.ErrNotFound:
		return http.StatusNotFound
	case server.ErrConflict:
		return http.StatusConflict
	case server.ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
