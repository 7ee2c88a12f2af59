package calculator

import (
	"github.com/shopspring/decimal"

	"TravelLedger/internal/entity"
)

const (
	UnassignedBudgetID   = "unassigned"
	UnassignedBudgetName = "Unassigned"

	thirdPartyPrefix = "third-party:"
)

type CreditorKind string

const (
	CreditorParticipant CreditorKind = "participant"
	CreditorThirdParty  CreditorKind = "third_party"
)

// BudgetTotal is the sum of expense amounts assigned to one budget.
type BudgetTotal struct {
	BudgetID   string
	BudgetName string
	Total      decimal.Decimal
}

type StatusTotals struct {
	Paid    decimal.Decimal
	Pending decimal.Decimal
}

// Balance is what a participant paid against what they owe.
// A positive Balance means the participant is owed money.
type Balance struct {
	ParticipantID   string
	ParticipantName string
	TotalPaid       decimal.Decimal
	TotalOwed       decimal.Decimal
	Balance         decimal.Decimal
}

type Summary struct {
	TotalExpenses      decimal.Decimal
	TotalByBudget      []BudgetTotal
	TotalByStatus      StatusTotals
	TotalByParticipant []Balance
}

// Debt is the accumulated amount From owes To across pending expenses.
type Debt struct {
	From   string
	To     string
	ToKind CreditorKind
	Amount decimal.Decimal
}

// Summarize aggregates expenses in one pass.
//
// Budget buckets appear in order of first use; expenses without a budget
// fall into the unassigned bucket. Every participant appears in
// TotalByParticipant, in the order given, even with no activity. Payers and
// split lines that reference no known participant are skipped.
func Summarize(expenses []entity.Expense, budgets []entity.Budget, participants []entity.Participant) Summary {
	budgetNames := make(map[string]string, len(budgets))
	for _, b := range budgets {
		budgetNames[b.ID] = b.Name
	}

	balances := make(map[string]*Balance, len(participants))
	order := make([]string, 0, len(participants))
	for _, p := range participants {
		balances[p.ID] = &Balance{
			ParticipantID:   p.ID,
			ParticipantName: p.DisplayName(),
			TotalPaid:       decimal.Zero,
			TotalOwed:       decimal.Zero,
		}
		order = append(order, p.ID)
	}

	summary := Summary{
		TotalExpenses: decimal.Zero,
		TotalByStatus: StatusTotals{Paid: decimal.Zero, Pending: decimal.Zero},
	}
	buckets := make(map[string]int)

	for _, e := range expenses {
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)

		bucketID, bucketName := UnassignedBudgetID, UnassignedBudgetName
		if e.HasBudget() {
			bucketID = e.BudgetID
			if name, ok := budgetNames[e.BudgetID]; ok {
				bucketName = name
			}
		}
		idx, ok := buckets[bucketID]
		if !ok {
			idx = len(summary.TotalByBudget)
			buckets[bucketID] = idx
			summary.TotalByBudget = append(summary.TotalByBudget, BudgetTotal{
				BudgetID:   bucketID,
				BudgetName: bucketName,
				Total:      decimal.Zero,
			})
		}
		summary.TotalByBudget[idx].Total = summary.TotalByBudget[idx].Total.Add(e.Amount)

		if e.Status == entity.ExpensePaid {
			summary.TotalByStatus.Paid = summary.TotalByStatus.Paid.Add(e.Amount)
		} else {
			summary.TotalByStatus.Pending = summary.TotalByStatus.Pending.Add(e.Amount)
		}

		if payerID, ok := e.PayerParticipantID(); ok {
			if b, ok := balances[payerID]; ok {
				b.TotalPaid = b.TotalPaid.Add(e.Amount)
			}
		}
		for _, s := range e.Splits {
			if b, ok := balances[s.ParticipantID]; ok {
				b.TotalOwed = b.TotalOwed.Add(s.Amount)
			}
		}
	}

	summary.TotalByParticipant = make([]Balance, 0, len(order))
	for _, id := range order {
		b := balances[id]
		b.Balance = b.TotalPaid.Sub(b.TotalOwed)
		summary.TotalByParticipant = append(summary.TotalByParticipant, *b)
	}

	return summary
}

// ParticipantBalance computes the paid/owed triple for one participant
// straight from the expense list.
func ParticipantBalance(participant entity.Participant, expenses []entity.Expense) Balance {
	b := Balance{
		ParticipantID:   participant.ID,
		ParticipantName: participant.DisplayName(),
		TotalPaid:       decimal.Zero,
		TotalOwed:       decimal.Zero,
	}

	for _, e := range expenses {
		if payerID, ok := e.PayerParticipantID(); ok && payerID == participant.ID {
			b.TotalPaid = b.TotalPaid.Add(e.Amount)
		}
		for _, s := range e.Splits {
			if s.ParticipantID == participant.ID {
				b.TotalOwed = b.TotalOwed.Add(s.Amount)
			}
		}
	}

	b.Balance = b.TotalPaid.Sub(b.TotalOwed)
	return b
}

// Debts accumulates debtor -> creditor amounts over pending expenses.
//
// Each split line whose participant is not the payer adds its amount to the
// (participant, payer) pair. Pairs are summed across expenses in order of
// first appearance. Reciprocal pairs are reported as they are; nothing is
// netted or minimised.
func Debts(expenses []entity.Expense) []Debt {
	type key struct {
		from, to string
	}

	index := make(map[key]int)
	var debts []Debt

	for _, e := range expenses {
		if e.Status != entity.ExpensePending {
			continue
		}

		creditor, kind, ok := creditorOf(e)
		if !ok {
			continue
		}

		for _, s := range e.Splits {
			if kind == CreditorParticipant && s.ParticipantID == creditor {
				continue
			}
			k := key{from: s.ParticipantID, to: creditor}
			idx, ok := index[k]
			if !ok {
				idx = len(debts)
				index[k] = idx
				debts = append(debts, Debt{From: s.ParticipantID, To: creditor, ToKind: kind, Amount: decimal.Zero})
			}
			debts[idx].Amount = debts[idx].Amount.Add(s.Amount)
		}
	}

	return debts
}

func creditorOf(e entity.Expense) (string, CreditorKind, bool) {
	switch p := e.PaidBy.(type) {
	case entity.ParticipantPayer:
		return p.ParticipantID, CreditorParticipant, true
	case entity.ThirdPartyPayer:
		return thirdPartyPrefix + p.Name, CreditorThirdParty, true
	default:
		return "", "", false
	}
}
