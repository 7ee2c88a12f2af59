package trip

import "time"

type CreateTripRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	BaseCurrency string `json:"baseCurrency" validate:"omitempty,currency"`
}

type UpdateTripRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=100"`
	BaseCurrency *string `json:"baseCurrency" validate:"omitempty,currency"`
}

type TripResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"baseCurrency"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
