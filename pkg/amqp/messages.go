package amqp

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	ExpenseCreated EventType = "expense.created"
	ExpenseUpdated EventType = "expense.updated"
	ExpenseDeleted EventType = "expense.deleted"
	ExpenseSettled EventType = "expense.settled"
)

// ExpenseEvent is the ledger change notification. Consumers reload the
// expense by id when they need more than the totals carried here.
type ExpenseEvent struct {
	Type       EventType       `json:"type"`
	ExpenseID  string          `json:"expense_id"`
	TripID     string          `json:"trip_id"`
	BudgetID   string          `json:"budget_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
	ActorID    string          `json:"actor_id"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (e ExpenseEvent) ToJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (ExpenseEvent, error) {
	var event ExpenseEvent
	err := jsoniter.Unmarshal(data, &event)
	return event, err
}
