package trip

import (
	"TravelLedger/pkg/response"
	"net/http"
)

var (
	ErrTripNotFound = response.NewError(http.StatusNotFound, "trip not found")
	ErrEmptyUpdate  = response.NewError(http.StatusBadRequest, "nothing to update")
)
