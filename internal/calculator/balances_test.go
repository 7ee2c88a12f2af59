package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelLedger/internal/entity"
)

func participantsABC() []entity.Participant {
	return []entity.Participant{
		{ID: "A", UserID: "u1", UserFirstName: "Ana", UserLastName: "Diaz"},
		{ID: "B", GuestName: "Bruno"},
		{ID: "C", UserID: "u3", UserFirstName: "Carla", UserLastName: "Ruiz"},
	}
}

func pendingEqual(id, amount, payer string, ids ...string) entity.Expense {
	return entity.Expense{
		ID:          id,
		Amount:      d(amount),
		PaidBy:      entity.ParticipantPayer{ParticipantID: payer},
		Status:      entity.ExpensePending,
		IsDivisible: true,
		SplitType:   entity.SplitEqual,
		Splits:      EqualSplit(d(amount), ids),
	}
}

func TestDebtsAccumulatesWithoutNetting(t *testing.T) {
	expenses := []entity.Expense{
		pendingEqual("e1", "90", "A", "A", "B", "C"),
		pendingEqual("e2", "30", "B", "A", "B"),
	}

	debts := Debts(expenses)

	require.Len(t, debts, 3)
	assert.Equal(t, "B", debts[0].From)
	assert.Equal(t, "A", debts[0].To)
	assert.Equal(t, "30.00", debts[0].Amount.StringFixed(2))
	assert.Equal(t, "C", debts[1].From)
	assert.Equal(t, "A", debts[1].To)
	assert.Equal(t, "30.00", debts[1].Amount.StringFixed(2))
	assert.Equal(t, "A", debts[2].From)
	assert.Equal(t, "B", debts[2].To)
	assert.Equal(t, "15.00", debts[2].Amount.StringFixed(2))
	for _, debt := range debts {
		assert.Equal(t, CreditorParticipant, debt.ToKind)
	}
}

func TestDebtsSumsSamePairAcrossExpenses(t *testing.T) {
	expenses := []entity.Expense{
		pendingEqual("e1", "20", "A", "A", "B"),
		pendingEqual("e2", "40", "A", "A", "B"),
	}

	debts := Debts(expenses)

	require.Len(t, debts, 1)
	assert.Equal(t, "30.00", debts[0].Amount.StringFixed(2))
}

func TestDebtsIgnoresPaidExpenses(t *testing.T) {
	paid := pendingEqual("e1", "90", "A", "A", "B", "C")
	paid.Status = entity.ExpensePaid

	assert.Empty(t, Debts([]entity.Expense{paid}))
}

func TestDebtsThirdPartyCreditor(t *testing.T) {
	e := pendingEqual("e1", "50", "", "A", "B")
	e.PaidBy = entity.ThirdPartyPayer{Name: "Hotel Sol"}

	debts := Debts([]entity.Expense{e})

	require.Len(t, debts, 2)
	for _, debt := range debts {
		assert.Equal(t, "third-party:Hotel Sol", debt.To)
		assert.Equal(t, CreditorThirdParty, debt.ToKind)
		assert.Equal(t, "25.00", debt.Amount.StringFixed(2))
	}
}

func TestSummarize(t *testing.T) {
	budgets := []entity.Budget{{ID: "food", Name: "Food"}}
	expenses := []entity.Expense{
		{
			ID:          "e1",
			BudgetID:    "food",
			Amount:      d("90"),
			PaidBy:      entity.ParticipantPayer{ParticipantID: "A"},
			Status:      entity.ExpensePaid,
			IsDivisible: true,
			Splits:      EqualSplit(d("90"), []string{"A", "B", "C"}),
		},
		{
			ID:     "e2",
			Amount: d("10"),
			PaidBy: entity.ThirdPartyPayer{Name: "Taxi"},
			Status: entity.ExpensePending,
		},
		{
			ID:       "e3",
			BudgetID: "food",
			Amount:   d("5.50"),
			PaidBy:   entity.ParticipantPayer{ParticipantID: "gone"},
			Status:   entity.ExpensePaid,
		},
	}

	summary := Summarize(expenses, budgets, participantsABC())

	assert.Equal(t, "105.50", summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "95.50", summary.TotalByStatus.Paid.StringFixed(2))
	assert.Equal(t, "10.00", summary.TotalByStatus.Pending.StringFixed(2))

	require.Len(t, summary.TotalByBudget, 2)
	assert.Equal(t, "food", summary.TotalByBudget[0].BudgetID)
	assert.Equal(t, "Food", summary.TotalByBudget[0].BudgetName)
	assert.Equal(t, "95.50", summary.TotalByBudget[0].Total.StringFixed(2))
	assert.Equal(t, UnassignedBudgetID, summary.TotalByBudget[1].BudgetID)
	assert.Equal(t, UnassignedBudgetName, summary.TotalByBudget[1].BudgetName)
	assert.Equal(t, "10.00", summary.TotalByBudget[1].Total.StringFixed(2))

	require.Len(t, summary.TotalByParticipant, 3)
	a, b, c := summary.TotalByParticipant[0], summary.TotalByParticipant[1], summary.TotalByParticipant[2]
	assert.Equal(t, "Ana Diaz", a.ParticipantName)
	assert.Equal(t, "90.00", a.TotalPaid.StringFixed(2))
	assert.Equal(t, "30.00", a.TotalOwed.StringFixed(2))
	assert.Equal(t, "60.00", a.Balance.StringFixed(2))
	assert.Equal(t, "Bruno", b.ParticipantName)
	assert.Equal(t, "-30.00", b.Balance.StringFixed(2))
	assert.Equal(t, "Carla Ruiz", c.ParticipantName)
	assert.Equal(t, "-30.00", c.Balance.StringFixed(2))
}

func TestSummarizeEmptyTripListsEveryParticipant(t *testing.T) {
	summary := Summarize(nil, nil, participantsABC())

	assert.True(t, summary.TotalExpenses.IsZero())
	assert.Empty(t, summary.TotalByBudget)
	require.Len(t, summary.TotalByParticipant, 3)
	for _, p := range summary.TotalByParticipant {
		assert.True(t, p.Balance.IsZero())
	}
}

func TestParticipantBalance(t *testing.T) {
	expenses := []entity.Expense{
		pendingEqual("e1", "90", "A", "A", "B", "C"),
		pendingEqual("e2", "30", "B", "A", "B"),
	}

	got := ParticipantBalance(participantsABC()[1], expenses)

	assert.Equal(t, "B", got.ParticipantID)
	assert.Equal(t, "30.00", got.TotalPaid.StringFixed(2))
	assert.Equal(t, "45.00", got.TotalOwed.StringFixed(2))
	assert.Equal(t, "-15.00", got.Balance.StringFixed(2))
}
