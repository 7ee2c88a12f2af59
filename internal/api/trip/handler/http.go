package tripHandler

import (
	tripService "TravelLedger/internal/api/trip/service"
	"TravelLedger/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TripHandler struct {
	log         *logrus.Logger
	tripService tripService.TripService
	validator   *validator.Validate
	middleware  middleware.Middleware
}

func New(
	log *logrus.Logger,
	ts tripService.TripService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *TripHandler {
	return &TripHandler{
		log:         log,
		tripService: ts,
		validator:   validate,
		middleware:  middleware,
	}
}

func (h *TripHandler) Start(srv fiber.Router) {
	trips := srv.Group("/trips", h.middleware.NewTokenMiddleware)
	trips.Post("", h.HandleCreate)
	trips.Get("", h.HandleList)
	trips.Get("/:id", h.HandleGet)
	trips.Patch("/:id", h.HandleUpdate)
	trips.Delete("/:id", h.HandleDelete)
}
