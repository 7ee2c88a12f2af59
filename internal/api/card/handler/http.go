package cardHandler

import (
	cardService "TravelLedger/internal/api/card/service"
	"TravelLedger/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CardHandler struct {
	log         *logrus.Logger
	cardService cardService.CardService
	validator   *validator.Validate
	middleware  middleware.Middleware
}

func New(
	log *logrus.Logger,
	cs cardService.CardService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *CardHandler {
	return &CardHandler{
		log:         log,
		cardService: cs,
		validator:   validate,
		middleware:  middleware,
	}
}

func (h *CardHandler) Start(srv fiber.Router) {
	cards := srv.Group("/cards", h.middleware.NewTokenMiddleware)
	cards.Post("", h.HandleCreate)
	cards.Get("", h.HandleListMine)
	cards.Get("/trip/:tripId", h.HandleListByTrip)
	cards.Get("/:id", h.HandleGet)
	cards.Patch("/:id", h.HandleUpdate)
	cards.Delete("/:id", h.HandleDelete)
}
