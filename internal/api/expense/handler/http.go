package expenseHandler

import (
	expenseService "TravelLedger/internal/api/expense/service"
	"TravelLedger/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ExpenseHandler struct {
	log            *logrus.Logger
	expenseService expenseService.ExpenseService
	validator      *validator.Validate
	middleware     middleware.Middleware
}

func New(
	log *logrus.Logger,
	es expenseService.ExpenseService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *ExpenseHandler {
	return &ExpenseHandler{
		log:            log,
		expenseService: es,
		validator:      validate,
		middleware:     middleware,
	}
}

func (h *ExpenseHandler) Start(srv fiber.Router) {
	expenses := srv.Group("/expenses", h.middleware.NewTokenMiddleware)
	expenses.Post("", h.HandleCreate)
	expenses.Get("", h.HandleList)
	expenses.Get("/trip/:tripId/summary", h.HandleTripSummary)
	expenses.Get("/trip/:tripId/debts", h.HandleParticipantDebts)
	expenses.Get("/participant/:participantId/balance", h.HandleParticipantBalance)
	expenses.Get("/:id", h.HandleGet)
	expenses.Patch("/:id", h.HandleUpdate)
	expenses.Delete("/:id", h.HandleRemove)
	expenses.Post("/:id/settle", h.HandleSettle)
}
