package controllers

import (
	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/engine"
	"github.com/boykefeng/sloperoute/pkg/geo"
)

type routeRequest struct {
	Threshold      float64 `json:"threshold" validate:"required,gt=0,lte=100"`
	OriginLat      float64 `json:"origin_lat" validate:"required,min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"required,min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"required,min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"required,min=-180,max=180"`
}

type routeAddressRequest struct {
	Threshold   float64 `json:"threshold" validate:"required,gt=0,lte=100"`
	Origin      string  `json:"origin" validate:"required"`
	Destination string  `json:"destination" validate:"required"`
}

type markerResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func newMarker(c geo.Coordinate) markerResponse {
	return markerResponse{Lat: c.Lat, Lon: c.Lon}
}

type routeResponse struct {
	Distance float64 `json:"distance"`
	// Path is the polyline in google encoded polyline format.
	Path        string         `json:"path"`
	Coordinates [][2]float64   `json:"coordinates"`
	Origin      markerResponse `json:"origin"`
	Destination markerResponse `json:"destination"`
	Center      markerResponse `json:"center"`
	Threshold   float64        `json:"threshold"`
}

func NewRouteResponse(threshold float64, summary *engine.RouteSummary) routeResponse {
	coords := make([][2]float64, len(summary.Polyline))
	for i, c := range summary.Polyline {
		coords[i] = [2]float64{c.Lat, c.Lon}
	}
	return routeResponse{
		Distance:    summary.Distance,
		Path:        summary.EncodedPolyline,
		Coordinates: coords,
		Origin:      newMarker(summary.Origin),
		Destination: newMarker(summary.Destination),
		Center:      newMarker(summary.Center),
		Threshold:   threshold,
	}
}

type slopeSummaryResponse struct {
	Records          int     `json:"records"`
	MinSlope         float64 `json:"min_slope"`
	MaxSlope         float64 `json:"max_slope"`
	CountAtThreshold []int   `json:"count_at_threshold"`
}

func NewSlopeSummaryResponse(s dataset.SlopeSummary) slopeSummaryResponse {
	return slopeSummaryResponse{
		Records:          s.Records,
		MinSlope:         s.MinSlope,
		MaxSlope:         s.MaxSlope,
		CountAtThreshold: s.CountAtThreshold,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
