package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID        string
	TripID    string
	Name      string
	Amount    decimal.Decimal
	Currency  string
	Spent     decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}
