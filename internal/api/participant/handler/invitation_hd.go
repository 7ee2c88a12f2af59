package participantHandler

import (
	"TravelLedger/internal/api/participant"
	participantService "TravelLedger/internal/api/participant/service"
	contextPkg "TravelLedger/pkg/context"
	"TravelLedger/pkg/handlerUtil"
	jwtPkg "TravelLedger/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *ParticipantHandler) HandleInvite(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req participant.InviteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	inv, err := h.participantService.Invite(c, userData.ID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "invite")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, participantService.MakeInvitationResponse(inv))
	}
}

func (h *ParticipantHandler) HandleSendGuestInvitation(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req participant.SendGuestInvitationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	inv, err := h.participantService.SendInvitationToGuest(c, userData.ID, ctx.Params("participantId"), req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "send_guest_invitation")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, participantService.MakeInvitationResponse(inv))
	}
}

func (h *ParticipantHandler) HandleGetInvitationInfo(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	info, err := h.participantService.GetInvitationInfo(c, ctx.Params("token"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_invitation_info")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, info)
	}
}

func (h *ParticipantHandler) HandleAcceptInvitation(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	// Anonymous callers are allowed; the account is resolved from the invitation.
	var userID string
	if userData, err := jwtPkg.GetUserLoginData(ctx); err == nil {
		userID = userData.ID
	}

	res, err := h.participantService.AcceptInvitation(c, ctx.Params("token"), userID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "accept_invitation")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ParticipantHandler) HandleCancelInvitation(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	inv, err := h.participantService.CancelInvitation(c, userData.ID, ctx.Params("invitationId"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "cancel_invitation")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, participantService.MakeInvitationResponse(inv))
	}
}

func (h *ParticipantHandler) HandlePendingInvitations(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	invs, err := h.participantService.PendingInvitations(c, userData.ID, ctx.Params("tripId"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "pending_invitations")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, participantService.MakeInvitationsResponse(invs))
	}
}
