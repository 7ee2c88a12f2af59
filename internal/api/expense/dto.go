package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type ThirdPartyPayerRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
}

type SplitRequest struct {
	ParticipantID string           `json:"participantId" validate:"required"`
	Amount        decimal.Decimal  `json:"amount" validate:"gte=0"`
	Percentage    *decimal.Decimal `json:"percentage" validate:"omitempty,gte=0,lte=100"`
}

type CreateExpenseRequest struct {
	TripID              string                  `json:"tripId" validate:"required"`
	BudgetID            string                  `json:"budgetId"`
	Amount              decimal.Decimal         `json:"amount" validate:"gt=0"`
	Currency            string                  `json:"currency" validate:"omitempty,currency"`
	Description         string                  `json:"description" validate:"required,min=3,max=500"`
	MerchantName        string                  `json:"merchantName" validate:"max=100"`
	Tags                []string                `json:"tags"`
	Category            string                  `json:"category" validate:"max=50"`
	PaidByParticipantID string                  `json:"paidByParticipantId"`
	PaidByThirdParty    *ThirdPartyPayerRequest `json:"paidByThirdParty"`
	Status              string                  `json:"status" validate:"omitempty,oneof=paid pending"`
	PaymentMethod       string                  `json:"paymentMethod" validate:"omitempty,oneof=cash card"`
	CardID              string                  `json:"cardId"`
	IsDivisible         bool                    `json:"isDivisible"`
	SplitType           string                  `json:"splitType" validate:"omitempty,oneof=equal manual"`
	Splits              []SplitRequest          `json:"splits" validate:"omitempty,dive"`
	ExpenseDate         string                  `json:"expenseDate"`
}

// UpdateExpenseRequest leaves nil fields untouched. An empty BudgetID or
// CardID detaches the expense from it. Splits are considered supplied
// whenever the key is present, even as an empty list.
type UpdateExpenseRequest struct {
	BudgetID            *string                 `json:"budgetId"`
	Amount              *decimal.Decimal        `json:"amount" validate:"omitempty,gt=0"`
	Currency            *string                 `json:"currency" validate:"omitempty,currency"`
	Description         *string                 `json:"description" validate:"omitempty,min=3,max=500"`
	MerchantName        *string                 `json:"merchantName" validate:"omitempty,max=100"`
	Tags                *[]string               `json:"tags"`
	Category            *string                 `json:"category" validate:"omitempty,max=50"`
	PaidByParticipantID *string                 `json:"paidByParticipantId"`
	PaidByThirdParty    *ThirdPartyPayerRequest `json:"paidByThirdParty"`
	Status              *string                 `json:"status" validate:"omitempty,oneof=paid pending"`
	PaymentMethod       *string                 `json:"paymentMethod" validate:"omitempty,oneof=cash card"`
	CardID              *string                 `json:"cardId"`
	IsDivisible         *bool                   `json:"isDivisible"`
	SplitType           *string                 `json:"splitType" validate:"omitempty,oneof=equal manual"`
	Splits              []SplitRequest          `json:"splits" validate:"omitempty,dive"`
	ExpenseDate         *string                 `json:"expenseDate"`
}

func (r UpdateExpenseRequest) IsEmpty() bool {
	return r.BudgetID == nil && r.Amount == nil && r.Currency == nil && r.Description == nil &&
		r.MerchantName == nil && r.Tags == nil && r.Category == nil && r.PaidByParticipantID == nil &&
		r.PaidByThirdParty == nil && r.Status == nil && r.PaymentMethod == nil && r.CardID == nil &&
		r.IsDivisible == nil && r.SplitType == nil && r.Splits == nil && r.ExpenseDate == nil
}

type ListExpensesQuery struct {
	TripID   string `query:"tripId"`
	BudgetID string `query:"budgetId"`
	Status   string `query:"status" validate:"omitempty,oneof=paid pending"`
}

type ThirdPartyPayerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type SplitResponse struct {
	ParticipantID string           `json:"participantId"`
	Amount        decimal.Decimal  `json:"amount"`
	Percentage    *decimal.Decimal `json:"percentage,omitempty"`
}

type ExpenseResponse struct {
	ID                  string                   `json:"id"`
	TripID              string                   `json:"tripId"`
	BudgetID            string                   `json:"budgetId,omitempty"`
	Amount              decimal.Decimal          `json:"amount"`
	Currency            string                   `json:"currency"`
	Description         string                   `json:"description"`
	MerchantName        string                   `json:"merchantName,omitempty"`
	Tags                []string                 `json:"tags"`
	Category            string                   `json:"category,omitempty"`
	PaidByParticipantID string                   `json:"paidByParticipantId,omitempty"`
	PaidByThirdParty    *ThirdPartyPayerResponse `json:"paidByThirdParty,omitempty"`
	Status              string                   `json:"status"`
	PaymentMethod       string                   `json:"paymentMethod"`
	CardID              string                   `json:"cardId,omitempty"`
	IsDivisible         bool                     `json:"isDivisible"`
	SplitType           string                   `json:"splitType,omitempty"`
	Splits              []SplitResponse          `json:"splits"`
	CreatedBy           string                   `json:"createdBy"`
	ExpenseDate         time.Time                `json:"expenseDate"`
	CreatedAt           time.Time                `json:"createdAt"`
	UpdatedAt           time.Time                `json:"updatedAt"`
}

type BudgetTotalResponse struct {
	BudgetID   string          `json:"budgetId"`
	BudgetName string          `json:"budgetName"`
	Total      decimal.Decimal `json:"total"`
}

type StatusTotalsResponse struct {
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

type BalanceResponse struct {
	ParticipantID   string          `json:"participantId"`
	ParticipantName string          `json:"participantName"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalOwed       decimal.Decimal `json:"totalOwed"`
	Balance         decimal.Decimal `json:"balance"`
}

type SummaryResponse struct {
	TotalExpenses      decimal.Decimal       `json:"totalExpenses"`
	TotalByBudget      []BudgetTotalResponse `json:"totalByBudget"`
	TotalByStatus      StatusTotalsResponse  `json:"totalByStatus"`
	TotalByParticipant []BalanceResponse     `json:"totalByParticipant"`
}

type DebtResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	ToKind string          `json:"toKind"`
	Amount decimal.Decimal `json:"amount"`
}

type DebtsResponse struct {
	Debts []DebtResponse `json:"debts"`
}
