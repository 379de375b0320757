package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"

	navigator "github.com/UtkershBasnet/CityNavigator"
	"github.com/UtkershBasnet/CityNavigator/internal/service"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.RouteService
}

type routeRequest struct {
	Start     string `json:"start" binding:"required"`
	End       string `json:"end" binding:"required"`
	Algorithm string `json:"algorithm" binding:"omitempty,algorithm"`
}

type routeQuery struct {
	Start     string `form:"start" binding:"required"`
	End       string `form:"end" binding:"required"`
	Algorithm string `form:"algorithm" binding:"omitempty,algorithm"`
}

type compareRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type nearestQuery struct {
	Lat *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lng *float64 `form:"lng" binding:"required,min=-180,max=180"`
	K   int      `form:"k" binding:"omitempty,min=1,max=100"`
}

type routeResponse struct {
	Result  navigator.SearchResult `json:"result"`
	Summary navigator.RouteSummary `json:"summary"`
	Cached  bool                   `json:"cached"`
}

type compareResponse struct {
	navigator.Comparison
	SameDistance bool `json:"sameDistance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *APIHandlers) health(c *gin.Context) {
	g := h.service.Graph()
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"nodes":       g.Len(),
		"edges":       len(g.Edges()),
		"fingerprint": g.Fingerprint(),
	})
}

func (h *APIHandlers) listNodes(c *gin.Context) {
	nodes, err := h.service.Nodes(c.Query("category"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nodes)
}

func (h *APIHandlers) getNode(c *gin.Context) {
	node, err := h.service.Node(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, node)
}

func (h *APIHandlers) getNeighbors(c *gin.Context) {
	neighbors, err := h.service.Neighbors(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, neighbors)
}

func (h *APIHandlers) listEdges(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Edges())
}

func (h *APIHandlers) nearest(c *gin.Context) {
	var q nearestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if q.K == 0 {
		q.K = 1
	}
	hits, err := h.service.Nearest(*q.Lat, *q.Lng, q.K)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hits)
}

func (h *APIHandlers) listAlgorithms(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Algorithms())
}

func (h *APIHandlers) route(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp, err := h.service.Route(c.Request.Context(), service.RouteRequest{
		Start:     req.Start,
		End:       req.End,
		Algorithm: req.Algorithm,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, routeResponse{
		Result:  resp.Result,
		Summary: resp.Summary,
		Cached:  resp.Cached,
	})
}

func (h *APIHandlers) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmp, err := h.service.Compare(c.Request.Context(), req.Start, req.End)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, compareResponse{Comparison: cmp, SameDistance: cmp.SameDistance()})
}

func (h *APIHandlers) routeGeoJSON(c *gin.Context) {
	var q routeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	fc, err := h.service.RouteGeoJSON(c.Request.Context(), service.RouteRequest{
		Start:     q.Start,
		End:       q.End,
		Algorithm: q.Algorithm,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeGeoJSON(c, fc)
}

func (h *APIHandlers) graphGeoJSON(c *gin.Context) {
	h.writeGeoJSON(c, h.service.GraphGeoJSON())
}

func (h *APIHandlers) writeGeoJSON(c *gin.Context, fc *geojson.FeatureCollection) {
	data, err := fc.MarshalJSON()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

func (h *APIHandlers) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(status, errorResponse{Error: "internal error"})
		return
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, navigator.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, navigator.ErrUnknownAlgorithm),
		errors.Is(err, navigator.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
