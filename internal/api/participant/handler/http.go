package participantHandler

import (
	participantService "TravelLedger/internal/api/participant/service"
	"TravelLedger/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ParticipantHandler struct {
	log                *logrus.Logger
	participantService participantService.ParticipantService
	validator          *validator.Validate
	middleware         middleware.Middleware
}

func New(
	log *logrus.Logger,
	ps participantService.ParticipantService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *ParticipantHandler {
	return &ParticipantHandler{
		log:                log,
		participantService: ps,
		validator:          validate,
		middleware:         middleware,
	}
}

func (h *ParticipantHandler) Start(srv fiber.Router) {
	participants := srv.Group("/participants")

	participants.Get("/invitation/:token", h.HandleGetInvitationInfo)
	participants.Post("/invitation/:token/accept", h.middleware.NewOptionalTokenMiddleware, h.HandleAcceptInvitation)

	participants.Post("/invite", h.middleware.NewTokenMiddleware, h.HandleInvite)
	participants.Post("/guest", h.middleware.NewTokenMiddleware, h.HandleAddGuest)
	participants.Post("/guest/:participantId/invite", h.middleware.NewTokenMiddleware, h.HandleSendGuestInvitation)
	participants.Delete("/invitation/:invitationId", h.middleware.NewTokenMiddleware, h.HandleCancelInvitation)
	participants.Get("/trip/:tripId", h.middleware.NewTokenMiddleware, h.HandleListByTrip)
	participants.Get("/trip/:tripId/invitations", h.middleware.NewTokenMiddleware, h.HandlePendingInvitations)
	participants.Delete("/trip/:tripId/participant/:participantId", h.middleware.NewTokenMiddleware, h.HandleRemove)
}
