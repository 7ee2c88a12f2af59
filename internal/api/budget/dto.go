package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateBudgetRequest struct {
	TripID   string          `json:"tripId" validate:"required"`
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Amount   decimal.Decimal `json:"amount" validate:"gte=0"`
	Currency string          `json:"currency" validate:"omitempty,currency"`
}

type UpdateBudgetRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=2,max=100"`
	Amount   *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
	Currency *string          `json:"currency" validate:"omitempty,currency"`
}

type BudgetResponse struct {
	ID        string          `json:"id"`
	TripID    string          `json:"tripId"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	CreatedBy string          `json:"createdBy"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ReconcileResponse struct {
	Budget        BudgetResponse  `json:"budget"`
	PreviousSpent decimal.Decimal `json:"previousSpent"`
	Drift         decimal.Decimal `json:"drift"`
}
