package controllers

import (
	"context"

	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/engine"
)

type RouteService interface {
	Route(threshold, origLat, origLon, dstLat, dstLon float64) (*engine.RouteSummary, error)
	RouteBetweenAddresses(ctx context.Context, origin, destination string, threshold float64) (*engine.RouteSummary, error)
	SlopeSummary() dataset.SlopeSummary
}
