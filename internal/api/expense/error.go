package expense

import (
	"TravelLedger/pkg/response"
	"net/http"
)

var (
	ErrExpenseNotFound = response.NewError(http.StatusNotFound, "expense not found")
	ErrPayerNotInTrip  = response.NewError(http.StatusNotFound, "the paying participant does not exist or is not part of this trip")

	ErrTripIDRequired          = response.NewError(http.StatusBadRequest, "tripId is required")
	ErrInvalidAmount           = response.NewError(http.StatusBadRequest, "amount must be at least 0.01")
	ErrEmptyUpdate             = response.NewError(http.StatusBadRequest, "nothing to update")
	ErrPayerRequired           = response.NewError(http.StatusBadRequest, "specify who paid: paidByParticipantId or paidByThirdParty")
	ErrPayerAmbiguous          = response.NewError(http.StatusBadRequest, "paidByParticipantId and paidByThirdParty cannot both be set")
	ErrPendingNeedsThirdParty  = response.NewError(http.StatusBadRequest, "a pending expense must be paid by a third party")
	ErrPaidNeedsParticipant    = response.NewError(http.StatusBadRequest, "a paid expense must be paid by a participant")
	ErrSplitsRequired          = response.NewError(http.StatusBadRequest, "a divisible expense needs a split type and at least one split")
	ErrSplitsNotAllowed        = response.NewError(http.StatusBadRequest, "a non-divisible expense cannot have splits")
	ErrSplitSumMismatch        = response.NewError(http.StatusBadRequest, "the splits must add up to the expense amount")
	ErrSplitParticipantInvalid = response.NewError(http.StatusBadRequest, "every split participant must belong to this trip")
	ErrAlreadyPaid             = response.NewError(http.StatusBadRequest, "this expense is already paid")
	ErrSettleNeedsThirdParty   = response.NewError(http.StatusBadRequest, "only expenses paid by a third party can be settled")
	ErrStatusChange            = response.NewError(http.StatusBadRequest, "status can only change from pending to paid by settling the expense")
	ErrCardNeedsCardPayment    = response.NewError(http.StatusBadRequest, "cardId requires paymentMethod card")
	ErrInvalidExpenseDate      = response.NewError(http.StatusBadRequest, "expenseDate must be an RFC 3339 timestamp or a YYYY-MM-DD date")
)
