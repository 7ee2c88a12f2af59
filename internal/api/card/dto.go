package card

import "time"

type CreateCardRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	LastFourDigits string `json:"lastFourDigits" validate:"required,len=4,numeric"`
	Type           string `json:"type" validate:"omitempty,oneof=visa mastercard amex other"`
	IsActive       *bool  `json:"isActive"`
	TripID         string `json:"tripId"`
}

// UpdateCardRequest leaves nil fields untouched. An empty TripID detaches
// the card from its trip.
type UpdateCardRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=100"`
	LastFourDigits *string `json:"lastFourDigits" validate:"omitempty,len=4,numeric"`
	Type           *string `json:"type" validate:"omitempty,oneof=visa mastercard amex other"`
	IsActive       *bool   `json:"isActive"`
	TripID         *string `json:"tripId"`
}

type CardResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	TripID         string    `json:"tripId,omitempty"`
	Name           string    `json:"name"`
	LastFourDigits string    `json:"lastFourDigits"`
	Type           string    `json:"type"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
