package expenseHandler

import (
	"TravelLedger/internal/api/expense"
	expenseService "TravelLedger/internal/api/expense/service"
	contextPkg "TravelLedger/pkg/context"
	"TravelLedger/pkg/handlerUtil"
	jwtPkg "TravelLedger/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *ExpenseHandler) HandleTripSummary(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	summary, err := h.expenseService.TripSummary(c, userData.ID, ctx.Params("tripId"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "trip_summary")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, expenseService.MakeSummaryResponse(summary))
	}
}

func (h *ExpenseHandler) HandleParticipantBalance(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	tripID := ctx.Query("tripId")
	if tripID == "" {
		return errHandler.Handle(ctx, requestID, expense.ErrTripIDRequired, ctx.Path(), "participant_balance")
	}

	balance, err := h.expenseService.ParticipantBalance(c, userData.ID, tripID, ctx.Params("participantId"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "participant_balance")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, expenseService.MakeBalanceResponse(balance))
	}
}

func (h *ExpenseHandler) HandleParticipantDebts(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	debts, err := h.expenseService.ParticipantDebts(c, userData.ID, ctx.Params("tripId"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "participant_debts")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, expenseService.MakeDebtsResponse(debts))
	}
}
