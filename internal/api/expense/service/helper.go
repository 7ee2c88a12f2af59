package expenseService

import (
	"TravelLedger/internal/api/expense"
	"TravelLedger/internal/calculator"
	"TravelLedger/internal/entity"
	"TravelLedger/pkg/amqp"
	contextPkg "TravelLedger/pkg/context"
	"TravelLedger/pkg/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

// announce publishes the committed mutation. Failures are logged and
// counted, never returned.
func (s *expenseService) announce(ctx context.Context, eventType amqp.EventType, e entity.Expense, actorID string) {
	metrics.ExpenseMutations.WithLabelValues(string(eventType)).Inc()

	err := s.publisher.PublishExpenseEvent(ctx, amqp.ExpenseEvent{
		Type:       eventType,
		ExpenseID:  e.ID,
		TripID:     e.TripID,
		BudgetID:   e.BudgetID,
		Amount:     e.Amount,
		Currency:   e.Currency,
		Status:     string(e.Status),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		metrics.EventPublishFailures.Inc()
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"expense_id": e.ID,
			"type":       eventType,
			"error":      err.Error(),
		}).Warn("Failed to publish expense event")
	}
}

// parseExpenseDate accepts an RFC 3339 timestamp or a bare date. An empty
// value means now.
func parseExpenseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, expense.ErrInvalidExpenseDate
}

func MakeExpenseResponse(e entity.Expense) expense.ExpenseResponse {
	res := expense.ExpenseResponse{
		ID:            e.ID,
		TripID:        e.TripID,
		BudgetID:      e.BudgetID,
		Amount:        e.Amount,
		Currency:      e.Currency,
		Description:   e.Description,
		MerchantName:  e.MerchantName,
		Tags:          e.Tags,
		Category:      e.Category,
		Status:        string(e.Status),
		PaymentMethod: string(e.PaymentMethod),
		CardID:        e.CardID,
		IsDivisible:   e.IsDivisible,
		SplitType:     string(e.SplitType),
		Splits:        make([]expense.SplitResponse, 0, len(e.Splits)),
		CreatedBy:     e.CreatedBy,
		ExpenseDate:   e.ExpenseDate,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}

	switch p := e.PaidBy.(type) {
	case entity.ParticipantPayer:
		res.PaidByParticipantID = p.ParticipantID
	case entity.ThirdPartyPayer:
		res.PaidByThirdParty = &expense.ThirdPartyPayerResponse{Name: p.Name, Email: p.Email}
	}

	for _, sp := range e.Splits {
		split := expense.SplitResponse{ParticipantID: sp.ParticipantID, Amount: sp.Amount}
		if sp.Percentage.Valid {
			pct := sp.Percentage.Decimal
			split.Percentage = &pct
		}
		res.Splits = append(res.Splits, split)
	}

	return res
}

func MakeExpensesResponse(es []entity.Expense) []expense.ExpenseResponse {
	res := make([]expense.ExpenseResponse, 0, len(es))
	for _, e := range es {
		res = append(res, MakeExpenseResponse(e))
	}
	return res
}

func MakeBalanceResponse(b calculator.Balance) expense.BalanceResponse {
	return expense.BalanceResponse{
		ParticipantID:   b.ParticipantID,
		ParticipantName: b.ParticipantName,
		TotalPaid:       b.TotalPaid,
		TotalOwed:       b.TotalOwed,
		Balance:         b.Balance,
	}
}

func MakeSummaryResponse(s calculator.Summary) expense.SummaryResponse {
	res := expense.SummaryResponse{
		TotalExpenses:      s.TotalExpenses,
		TotalByBudget:      make([]expense.BudgetTotalResponse, 0, len(s.TotalByBudget)),
		TotalByStatus:      expense.StatusTotalsResponse{Paid: s.TotalByStatus.Paid, Pending: s.TotalByStatus.Pending},
		TotalByParticipant: make([]expense.BalanceResponse, 0, len(s.TotalByParticipant)),
	}
	for _, b := range s.TotalByBudget {
		res.TotalByBudget = append(res.TotalByBudget, expense.BudgetTotalResponse{
			BudgetID:   b.BudgetID,
			BudgetName: b.BudgetName,
			Total:      b.Total,
		})
	}
	for _, b := range s.TotalByParticipant {
		res.TotalByParticipant = append(res.TotalByParticipant, MakeBalanceResponse(b))
	}
	return res
}

func MakeDebtsResponse(debts []calculator.Debt) expense.DebtsResponse {
	res := expense.DebtsResponse{Debts: make([]expense.DebtResponse, 0, len(debts))}
	for _, d := range debts {
		res.Debts = append(res.Debts, expense.DebtResponse{
			From:   d.From,
			To:     d.To,
			ToKind: string(d.ToKind),
			Amount: d.Amount,
		})
	}
	return res
}
