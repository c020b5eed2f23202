package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"campusnav/indoornav/pkg/datastructure"
	"campusnav/indoornav/pkg/engine/routingalgorithm"
	"campusnav/indoornav/pkg/guidance"
	"campusnav/indoornav/pkg/server"
	"campusnav/indoornav/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NavigationService interface {
	FindPath(ctx context.Context, waypoints []datastructure.Waypoint, pref routingalgorithm.Preference) (datastructure.RecommendedPath, error)
	FloorNeighbors(ctx context.Context, floorID string) ([]string, error)
	Health(ctx context.Context) error
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
	validate     *validator.Validate
	trans        ut.Translator
}

func NavigatorRouter(r chi.Router, svc NavigationService, m *metrics) {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &NavigationHandler{svc: svc, promeMetrics: m, validate: validate, trans: trans}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/find-path", handler.findPath)
			r.Get("/floors/{floorID}/neighbors", handler.floorNeighbors)
			r.Get("/health", handler.health)
		})
	})
}

// WaypointRequest one endpoint of a route. type decides which fields are required.
type WaypointRequest struct {
	Type    string  `json:"type" validate:"required,oneof=room building position"`
	ID      string  `json:"id" validate:"required_if=Type room"`
	Code    string  `json:"code" validate:"required_if=Type building"`
	FloorID string  `json:"floor_id" validate:"required_unless=Type position"`
	Lat     float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon     float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (w WaypointRequest) toWaypoint() datastructure.Waypoint {
	switch datastructure.WaypointKind(w.Type) {
	case datastructure.WaypointRoom:
		return datastructure.NewRoomWaypoint(w.ID, w.FloorID)
	case datastructure.WaypointBuilding:
		return datastructure.NewBuildingWaypoint(w.Code, w.FloorID)
	default:
		return datastructure.NewPositionWaypoint(datastructure.NewCoordinate(w.Lat, w.Lon))
	}
}

// FindPathRequest request body, exactly two waypoints: start then end.
type FindPathRequest struct {
	Rooms      []WaypointRequest `json:"rooms" validate:"required,len=2,dive"`
	Preference string            `json:"preference" validate:"omitempty,oneof=balanced indoor outdoor"`
}

func (s *FindPathRequest) Bind(r *http.Request) error {
	if len(s.Rooms) != 2 {
		return fmt.Errorf("exactly two waypoints are required, got %d", len(s.Rooms))
	}
	return nil
}

// RouteResponse either a route or an error message.
type RouteResponse struct {
	Path       []datastructure.Node   `json:"path,omitempty"`
	Distance   *float64               `json:"distance,omitempty"`
	GeoLength  float64                `json:"geo_length,omitempty"`
	Polyline   string                 `json:"polyline,omitempty"`
	Directions []guidance.Instruction `json:"directions,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

type FindPathResponse struct {
	Fastest     RouteResponse `json:"Fastest"`
	Alternative RouteResponse `json:"Alternative"`
}

func NewRouteResponse(res datastructure.RouteResult) RouteResponse {
	if !res.Found() {
		return RouteResponse{Error: res.Error}
	}
	dist := util.RoundFloat(res.Route.Distance, 2)
	return RouteResponse{
		Path:       res.Route.Path,
		Distance:   &dist,
		GeoLength:  util.RoundFloat(guidance.GeoLength(res.Route.Path), 2),
		Polyline:   guidance.RenderPath(res.Route.Path),
		Directions: guidance.GetDirections(res.Route.Path),
	}
}

func NewFindPathResponse(p datastructure.RecommendedPath) *FindPathResponse {
	return &FindPathResponse{
		Fastest:     NewRouteResponse(p.Fastest),
		Alternative: NewRouteResponse(p.Alternative),
	}
}

// findPath
//
//	@Summary		fastest and alternative indoor route between two waypoints.
//	@Tags			navigations
//	@Param			body	body	FindPathRequest	true	"start and end waypoint"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/find-path [post]
//	@Success		200	{object}	FindPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) findPath(w http.ResponseWriter, r *http.Request) {
	data := &FindPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return
	}

	pref, err := routingalgorithm.ParsePreference(data.Preference)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	waypoints := make([]datastructure.Waypoint, len(data.Rooms))
	for i, wp := range data.Rooms {
		waypoints[i] = wp.toWaypoint()
	}

	res, err := h.svc.FindPath(r.Context(), waypoints, pref)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.observeRoute("fastest", res.Fastest)
	h.promeMetrics.observeRoute("alternative", res.Alternative)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewFindPathResponse(res))
}

// FloorNeighborsResponse floors reachable through one stairs/elevator/outside transition.
type FloorNeighborsResponse struct {
	Floor     string   `json:"floor"`
	Neighbors []string `json:"neighbors"`
}

func (h *NavigationHandler) floorNeighbors(w http.ResponseWriter, r *http.Request) {
	floorID := chi.URLParam(r, "floorID")
	neighbors, err := h.svc.FloorNeighbors(r.Context(), floorID)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	if neighbors == nil {
		neighbors = []string{}
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &FloorNeighborsResponse{Floor: floorID, Neighbors: neighbors})
}

func (h *NavigationHandler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Health(r.Context()); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// ErrResponse model info
//
//	@Description	model untuk error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
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
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	code := getStatusCode(err)
	switch code {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusBadRequest:
		statusText = "Bad request."
	case http.StatusServiceUnavailable:
		statusText = "Service unavailable."
	default:
		statusText = "Error."
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: code,
		StatusText:     statusText,
		ErrorText:      err.Error(),
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch server.CodeOf(err) {
	case server.ErrNotFound:
		return http.StatusNotFound
	case server.ErrBadParamInput:
		return http.StatusBadRequest
	case server.ErrUnavailable:
		return http.StatusServiceUnavailable
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
