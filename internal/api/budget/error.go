package budget

import "TravelLedger/pkg/response"

var (
	ErrBudgetNotFound  = response.NewError(404, "budget not found")
	ErrBudgetWrongTrip = response.NewError(400, "budget does not belong to this trip")
	ErrTripIDRequired  = response.NewError(400, "tripId query parameter is required")
	ErrEmptyUpdate     = response.NewError(400, "nothing to update")
)
