package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	ExpensePaid    ExpenseStatus = "paid"
	ExpensePending ExpenseStatus = "pending"
)

type SplitType string

const (
	SplitEqual  SplitType = "equal"
	SplitManual SplitType = "manual"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Payer is either a ParticipantPayer or a ThirdPartyPayer.
type Payer interface {
	payer()
}

type ParticipantPayer struct {
	ParticipantID string
}

type ThirdPartyPayer struct {
	Name  string
	Email string
}

func (ParticipantPayer) payer() {}
func (ThirdPartyPayer) payer()  {}

type Split struct {
	ParticipantID string
	Amount        decimal.Decimal
	Percentage    decimal.NullDecimal
}

type Expense struct {
	ID            string
	TripID        string
	BudgetID      string
	Amount        decimal.Decimal
	Currency      string
	Description   string
	MerchantName  string
	Tags          []string
	Category      string
	PaidBy        Payer
	Status        ExpenseStatus
	PaymentMethod PaymentMethod
	CardID        string
	IsDivisible   bool
	SplitType     SplitType
	Splits        []Split
	CreatedBy     string
	ExpenseDate   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PayerParticipantID reports the paying participant, if the payer is one.
func (e Expense) PayerParticipantID() (string, bool) {
	p, ok := e.PaidBy.(ParticipantPayer)
	if !ok {
		return "", false
	}
	return p.ParticipantID, true
}

func (e Expense) ThirdParty() (ThirdPartyPayer, bool) {
	p, ok := e.PaidBy.(ThirdPartyPayer)
	return p, ok
}

func (e Expense) HasBudget() bool {
	return e.BudgetID != ""
}
