package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/engine"
	"github.com/boykefeng/sloperoute/pkg/geo"
	"github.com/boykefeng/sloperoute/pkg/http/usecases"
	"github.com/boykefeng/sloperoute/pkg/routegraph"
	helper "github.com/boykefeng/sloperoute/pkg/http/router/routerhelper"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRouteService struct {
	summary *engine.RouteSummary
	err     error
}

func (s *stubRouteService) Route(threshold, origLat, origLon, dstLat, dstLon float64) (*engine.RouteSummary, error) {
	return s.summary, s.err
}

func (s *stubRouteService) RouteBetweenAddresses(_ context.Context, origin, destination string, threshold float64) (*engine.RouteSummary, error) {
	return s.summary, s.err
}

func (s *stubRouteService) SlopeSummary() dataset.SlopeSummary {
	return dataset.SlopeSummary{Records: 7, MinSlope: 0.5, MaxSlope: 12}
}

func newTestRouter(svc RouteService) http.Handler {
	router := httprouter.New()
	group := helper.NewRouteGroup(router, "/api")
	api := New(svc, zap.NewNop())
	api.Routes(group)
	return router
}

func testSummary() *engine.RouteSummary {
	return &engine.RouteSummary{
		Polyline:        []geo.Coordinate{{Lat: 40.44, Lon: -79.99}, {Lat: 40.45, Lon: -79.98}},
		EncodedPolyline: "encoded",
		Distance:        321.5,
		Origin:          geo.NewCoordinate(40.44, -79.99),
		Destination:     geo.NewCoordinate(40.45, -79.98),
	}
}

func TestRouteHandler(t *testing.T) {
	h := newTestRouter(&stubRouteService{summary: testSummary()})

	req := httptest.NewRequest(http.MethodGet,
		"/api/route?threshold=5&origin_lat=40.44&origin_lon=-79.99&destination_lat=40.45&destination_lon=-79.98", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			Distance  float64      `json:"distance"`
			Path      string       `json:"path"`
			Threshold float64      `json:"threshold"`
			Coords    [][2]float64 `json:"coordinates"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 321.5, body.Data.Distance)
	assert.Equal(t, "encoded", body.Data.Path)
	assert.Equal(t, 5.0, body.Data.Threshold)
	assert.Len(t, body.Data.Coords, 2)
}

func TestRouteHandlerBadInput(t *testing.T) {
	h := newTestRouter(&stubRouteService{summary: testSummary()})

	testCases := []struct {
		name  string
		query string
	}{
		{name: "missing threshold", query: "origin_lat=40&origin_lon=-79&destination_lat=41&destination_lon=-78"},
		{name: "threshold not a number", query: "threshold=steep&origin_lat=40&origin_lon=-79&destination_lat=41&destination_lon=-78"},
		{name: "latitude out of range", query: "threshold=5&origin_lat=91&origin_lon=-79&destination_lat=41&destination_lon=-78"},
		{name: "threshold above limit", query: "threshold=500&origin_lat=40&origin_lon=-79&destination_lat=41&destination_lon=-78"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/route?"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRouteHandlerTypedFailures(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "no route", err: routegraph.ErrNoRoute, want: http.StatusNotFound},
		{name: "empty filter", err: routegraph.ErrEmptyFilter, want: http.StatusNotFound},
		{name: "no geocoder", err: usecases.ErrNoGeocoder, want: http.StatusServiceUnavailable},
		{name: "unknown", err: assert.AnError, want: http.StatusInternalServerError},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(&stubRouteService{err: tt.err})
			req := httptest.NewRequest(http.MethodGet,
				"/api/route?threshold=5&origin_lat=40.44&origin_lon=-79.99&destination_lat=40.45&destination_lon=-79.98", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestThresholdsHandler(t *testing.T) {
	h := newTestRouter(&stubRouteService{})

	req := httptest.NewRequest(http.MethodGet, "/api/thresholds", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data slopeSummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body.Data.Records)
	assert.Equal(t, 12.0, body.Data.MaxSlope)
}
