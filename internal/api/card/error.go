package card

import (
	"TravelLedger/pkg/response"
	"net/http"
)

var (
	ErrCardNotFound  = response.NewError(http.StatusNotFound, "card not found")
	ErrCardForbidden = response.NewError(http.StatusForbidden, "card belongs to another user")
	ErrInvalidType   = response.NewError(http.StatusBadRequest, "card type must be one of visa, mastercard, amex, other")
	ErrEmptyUpdate   = response.NewError(http.StatusBadRequest, "nothing to update")
)
