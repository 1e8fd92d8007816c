package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/boykefeng/sloperoute/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routeService RouteService
	log          *zap.Logger
}

func New(routeService RouteService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routeService: routeService,
		log:          log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/route", api.route)
	group.GET("/route/address", api.routeBetweenAddresses)
	group.GET("/thresholds", api.thresholds)
}

func (api *routingAPI) route(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request routeRequest
		err     error
	)

	query := r.URL.Query()

	request.Threshold, err = strconv.ParseFloat(query.Get("threshold"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("threshold is required and must be a valid float"))
		return
	}
	request.OriginLat, err = strconv.ParseFloat(query.Get("origin_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lat is required and must be a valid float"))
		return
	}
	request.OriginLon, err = strconv.ParseFloat(query.Get("origin_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lon is required and must be a valid float"))
		return
	}
	request.DestinationLat, err = strconv.ParseFloat(query.Get("destination_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lat is required and must be a valid float"))
		return
	}
	request.DestinationLon, err = strconv.ParseFloat(query.Get("destination_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lon is required and must be a valid float"))
		return
	}

	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	summary, err := api.routeService.Route(request.Threshold, request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(request.Threshold, summary)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) routeBetweenAddresses(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request routeAddressRequest
		err     error
	)

	query := r.URL.Query()

	request.Threshold, err = strconv.ParseFloat(query.Get("threshold"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("threshold is required and must be a valid float"))
		return
	}
	request.Origin = query.Get("origin")
	request.Destination = query.Get("destination")

	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	summary, err := api.routeService.RouteBetweenAddresses(r.Context(), request.Origin, request.Destination,
		request.Threshold)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(request.Threshold, summary)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) thresholds(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewSlopeSummaryResponse(api.routeService.SlopeSummary())}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) validate(request interface{}) error {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}
