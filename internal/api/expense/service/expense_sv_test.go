package expenseService

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"TravelLedger/internal/api/budget"
	budgetRepository "TravelLedger/internal/api/budget/repository"
	cardRepository "TravelLedger/internal/api/card/repository"
	"TravelLedger/internal/api/expense"
	expenseRepository "TravelLedger/internal/api/expense/repository"
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/calculator"
	"TravelLedger/internal/entity"
	"TravelLedger/internal/testkit"
	"TravelLedger/pkg/amqp"
	"TravelLedger/pkg/utils"
)

type fixture struct {
	db        *sqlx.DB
	svc       ExpenseService
	publisher *testkit.Publisher
	budgets   budgetRepository.Budgets

	owner    entity.User
	member   entity.User
	outsider entity.User

	trip        entity.Trip
	ownerP      entity.Participant
	memberP     entity.Participant
	guestP      entity.Participant
	otherTripP  entity.Participant
	otherTripID string
}

func newFixture(t *testing.T) fixture {
	db := testkit.DB(t)
	log := testkit.Logger()
	publisher := &testkit.Publisher{}

	f := fixture{
		db:        db,
		svc:       New(log, expenseRepository.New(db, log), publisher, utils.New()),
		publisher: publisher,
		budgets:   budgetRepository.NewBudgets(db, log),
		owner:     testkit.SeedUser(t, db, "ana@example.com", "Ana", "Diaz"),
		member:    testkit.SeedUser(t, db, "bruno@example.com", "Bruno", "Silva"),
		outsider:  testkit.SeedUser(t, db, "carla@example.com", "Carla", "Ruiz"),
	}
	f.trip, f.ownerP = testkit.SeedTrip(t, db, f.owner.ID, "Lisbon")
	f.memberP = testkit.SeedParticipant(t, db, entity.Participant{TripID: f.trip.ID, UserID: f.member.ID, Role: entity.RoleMember})
	f.guestP = testkit.SeedParticipant(t, db, entity.Participant{TripID: f.trip.ID, GuestName: "Dora", Role: entity.RoleMember})

	otherTrip, otherOwner := testkit.SeedTrip(t, db, f.outsider.ID, "Porto")
	f.otherTripID, f.otherTripP = otherTrip.ID, otherOwner
	return f
}

func (f fixture) seedBudget(t *testing.T, name string) entity.Budget {
	t.Helper()
	b := entity.Budget{
		ID:        testkit.NewID(t),
		TripID:    f.trip.ID,
		Name:      name,
		Amount:    decimal.NewFromInt(500),
		Currency:  "USD",
		CreatedBy: f.owner.ID,
	}
	require.NoError(t, f.budgets.Create(context.Background(), b))
	return b
}

func (f fixture) spent(t *testing.T, budgetID string) string {
	t.Helper()
	b, err := f.budgets.GetByID(context.Background(), budgetID)
	require.NoError(t, err)
	return b.Spent.StringFixed(2)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

func (f fixture) paidBy(p entity.Participant, amount string) expense.CreateExpenseRequest {
	return expense.CreateExpenseRequest{
		TripID:              f.trip.ID,
		Amount:              dec(amount),
		Description:         "Dinner at the harbour",
		PaidByParticipantID: p.ID,
	}
}

func splitsFor(ps ...entity.Participant) []expense.SplitRequest {
	out := make([]expense.SplitRequest, 0, len(ps))
	for _, p := range ps {
		out = append(out, expense.SplitRequest{ParticipantID: p.ID})
	}
	return out
}

func splitAmounts(e entity.Expense) []string {
	out := make([]string, 0, len(e.Splits))
	for _, s := range e.Splits {
		out = append(out, s.Amount.StringFixed(2))
	}
	return out
}

func TestCreateEqualSplitChargesBudget(t *testing.T) {
	f := newFixture(t)
	food := f.seedBudget(t, "Food")

	req := f.paidBy(f.ownerP, "100")
	req.BudgetID = food.ID
	req.Tags = []string{"dinner", "team"}
	req.IsDivisible = true
	req.SplitType = string(entity.SplitEqual)
	req.Splits = splitsFor(f.ownerP, f.memberP, f.guestP)

	created, err := f.svc.Create(context.Background(), f.member.ID, req)
	require.NoError(t, err)

	assert.Equal(t, entity.ExpensePaid, created.Status)
	assert.Equal(t, entity.PaymentCash, created.PaymentMethod)
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, []string{"dinner", "team"}, created.Tags)
	assert.Equal(t, f.member.ID, created.CreatedBy)
	assert.Equal(t, []string{"33.33", "33.33", "33.34"}, splitAmounts(created))
	assert.Equal(t, "100.00", f.spent(t, food.ID))
	assert.Equal(t, []amqp.EventType{amqp.ExpenseCreated}, f.publisher.Types())
}

func TestCreateManualSplitMustAddUp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.paidBy(f.ownerP, "60")
	req.IsDivisible = true
	req.SplitType = string(entity.SplitManual)
	req.Splits = []expense.SplitRequest{
		{ParticipantID: f.ownerP.ID, Amount: dec("20")},
		{ParticipantID: f.memberP.ID, Amount: dec("30")},
	}

	_, err := f.svc.Create(ctx, f.owner.ID, req)
	assert.ErrorIs(t, err, expense.ErrSplitSumMismatch)

	req.Splits[1].Amount = dec("39.99")
	created, err := f.svc.Create(ctx, f.owner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"20.00", "39.99"}, splitAmounts(created))
}

func TestCreateManualSplitChecksRoundedLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.paidBy(f.ownerP, "1.00")
	req.IsDivisible = true
	req.SplitType = string(entity.SplitManual)
	req.Splits = []expense.SplitRequest{
		{ParticipantID: f.ownerP.ID, Amount: dec("0.335")},
		{ParticipantID: f.memberP.ID, Amount: dec("0.335")},
		{ParticipantID: f.guestP.ID, Amount: dec("0.335")},
	}

	_, err := f.svc.Create(ctx, f.owner.ID, req)
	assert.ErrorIs(t, err, expense.ErrSplitSumMismatch, "0.34 x 3 is 1.02 once stored")

	req.Splits[2].Amount = dec("0.3249")
	created, err := f.svc.Create(ctx, f.owner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"0.34", "0.34", "0.32"}, splitAmounts(created))

	stored, err := f.svc.Get(ctx, f.owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"0.34", "0.34", "0.32"}, splitAmounts(stored))
}

func TestAmountMustSurviveRounding(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.owner.ID, f.paidBy(f.ownerP, "0.004"))
	assert.ErrorIs(t, err, expense.ErrInvalidAmount)

	created, err := f.svc.Create(ctx, f.owner.ID, f.paidBy(f.ownerP, "0.005"))
	require.NoError(t, err)
	assert.Equal(t, "0.01", created.Amount.StringFixed(2))

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{Amount: ptr(dec("0.004"))})
	assert.ErrorIs(t, err, expense.ErrInvalidAmount)

	unchanged, err := f.svc.Get(ctx, f.owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.01", unchanged.Amount.StringFixed(2))
}

func TestCreateRejectsBadSplits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	notDivisible := f.paidBy(f.ownerP, "10")
	notDivisible.Splits = splitsFor(f.ownerP)
	_, err := f.svc.Create(ctx, f.owner.ID, notDivisible)
	assert.ErrorIs(t, err, expense.ErrSplitsNotAllowed)

	noSplits := f.paidBy(f.ownerP, "10")
	noSplits.IsDivisible = true
	noSplits.SplitType = string(entity.SplitEqual)
	_, err = f.svc.Create(ctx, f.owner.ID, noSplits)
	assert.ErrorIs(t, err, expense.ErrSplitsRequired)

	stranger := f.paidBy(f.ownerP, "10")
	stranger.IsDivisible = true
	stranger.SplitType = string(entity.SplitEqual)
	stranger.Splits = splitsFor(f.ownerP, f.otherTripP)
	_, err = f.svc.Create(ctx, f.owner.ID, stranger)
	assert.ErrorIs(t, err, expense.ErrSplitParticipantInvalid)
}

func TestCreatePayerRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := &expense.ThirdPartyPayerRequest{Name: "Hotel Sol", Email: "Desk@HotelSol.example"}

	tests := []struct {
		name    string
		mutate  func(r *expense.CreateExpenseRequest)
		wantErr error
	}{
		{
			name:    "no payer",
			mutate:  func(r *expense.CreateExpenseRequest) { r.PaidByParticipantID = "" },
			wantErr: expense.ErrPayerRequired,
		},
		{
			name:    "both payers",
			mutate:  func(r *expense.CreateExpenseRequest) { r.PaidByThirdParty = hotel },
			wantErr: expense.ErrPayerAmbiguous,
		},
		{
			name:    "pending paid by a participant",
			mutate:  func(r *expense.CreateExpenseRequest) { r.Status = string(entity.ExpensePending) },
			wantErr: expense.ErrPendingNeedsThirdParty,
		},
		{
			name: "paid by a third party",
			mutate: func(r *expense.CreateExpenseRequest) {
				r.PaidByParticipantID, r.PaidByThirdParty = "", hotel
				r.Status = string(entity.ExpensePaid)
			},
			wantErr: expense.ErrPaidNeedsParticipant,
		},
		{
			name:    "payer from another trip",
			mutate:  func(r *expense.CreateExpenseRequest) { r.PaidByParticipantID = f.otherTripP.ID },
			wantErr: expense.ErrPayerNotInTrip,
		},
		{
			name:    "unknown payer",
			mutate:  func(r *expense.CreateExpenseRequest) { r.PaidByParticipantID = "missing" },
			wantErr: expense.ErrPayerNotInTrip,
		},
		{
			name:    "unknown budget",
			mutate:  func(r *expense.CreateExpenseRequest) { r.BudgetID = "missing" },
			wantErr: budget.ErrBudgetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.paidBy(f.ownerP, "10")
			tt.mutate(&req)
			_, err := f.svc.Create(ctx, f.owner.ID, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	req := f.paidBy(f.ownerP, "10")
	req.PaidByParticipantID, req.PaidByThirdParty = "", hotel
	created, err := f.svc.Create(ctx, f.owner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, entity.ExpensePending, created.Status)
	tp, ok := created.ThirdParty()
	require.True(t, ok)
	assert.Equal(t, "Hotel Sol", tp.Name)
	assert.Equal(t, "desk@hotelsol.example", tp.Email)
}

func TestCreateWithCard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	card := entity.Card{ID: testkit.NewID(t), UserID: f.owner.ID, Name: "Travel", LastFourDigits: "4242", Type: entity.CardVisa, IsActive: true}
	require.NoError(t, cardRepository.NewCards(f.db, testkit.Logger()).Create(ctx, card))

	req := f.paidBy(f.ownerP, "10")
	req.CardID = card.ID
	_, err := f.svc.Create(ctx, f.owner.ID, req)
	assert.ErrorIs(t, err, expense.ErrCardNeedsCardPayment)

	req.PaymentMethod = string(entity.PaymentCard)
	created, err := f.svc.Create(ctx, f.owner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, card.ID, created.CardID)

	updated, err := f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{PaymentMethod: ptr(string(entity.PaymentCash))})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCash, updated.PaymentMethod)
	assert.Empty(t, updated.CardID)
}

func TestBudgetAccumulatorFollowsExpense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := f.seedBudget(t, "Food")
	fun := f.seedBudget(t, "Fun")

	req := f.paidBy(f.ownerP, "50")
	req.BudgetID = food.ID
	created, err := f.svc.Create(ctx, f.owner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "50.00", f.spent(t, food.ID))

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{Amount: ptr(dec("80"))})
	require.NoError(t, err)
	assert.Equal(t, "80.00", f.spent(t, food.ID))

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{Description: ptr("Dinner and drinks")})
	require.NoError(t, err)
	assert.Equal(t, "80.00", f.spent(t, food.ID))

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{BudgetID: ptr(fun.ID)})
	require.NoError(t, err)
	assert.Equal(t, "0.00", f.spent(t, food.ID))
	assert.Equal(t, "80.00", f.spent(t, fun.ID))

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{BudgetID: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "0.00", f.spent(t, fun.ID))

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{BudgetID: ptr(food.ID)})
	require.NoError(t, err)
	assert.Equal(t, "80.00", f.spent(t, food.ID))

	require.NoError(t, f.svc.Remove(ctx, f.owner.ID, created.ID))
	assert.Equal(t, "0.00", f.spent(t, food.ID))

	_, err = f.svc.Get(ctx, f.owner.ID, created.ID)
	assert.ErrorIs(t, err, expense.ErrExpenseNotFound)

	assert.Equal(t, []amqp.EventType{
		amqp.ExpenseCreated,
		amqp.ExpenseUpdated,
		amqp.ExpenseUpdated,
		amqp.ExpenseUpdated,
		amqp.ExpenseUpdated,
		amqp.ExpenseUpdated,
		amqp.ExpenseDeleted,
	}, f.publisher.Types())
}

func TestUpdateSplits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.paidBy(f.ownerP, "50")
	req.IsDivisible = true
	req.SplitType = string(entity.SplitManual)
	req.Splits = []expense.SplitRequest{
		{ParticipantID: f.ownerP.ID, Amount: dec("20")},
		{ParticipantID: f.memberP.ID, Amount: dec("30")},
	}
	created, err := f.svc.Create(ctx, f.owner.ID, req)
	require.NoError(t, err)

	rescaled, err := f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{Amount: ptr(dec("80"))})
	require.NoError(t, err)
	assert.Equal(t, []string{"32.00", "48.00"}, splitAmounts(rescaled))

	resplit, err := f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{
		SplitType: ptr(string(entity.SplitEqual)),
		Splits:    splitsFor(f.ownerP, f.memberP, f.guestP),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SplitEqual, resplit.SplitType)
	assert.Equal(t, []string{"26.67", "26.67", "26.66"}, splitAmounts(resplit))

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{
		IsDivisible: ptr(false),
		Splits:      splitsFor(f.ownerP),
	})
	assert.ErrorIs(t, err, expense.ErrSplitsNotAllowed)

	whole, err := f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{IsDivisible: ptr(false)})
	require.NoError(t, err)
	assert.False(t, whole.IsDivisible)
	assert.Empty(t, whole.Splits)

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{IsDivisible: ptr(true)})
	assert.ErrorIs(t, err, expense.ErrSplitsRequired)

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{})
	assert.ErrorIs(t, err, expense.ErrEmptyUpdate)
}

func TestUpdateCannotFlipStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.owner.ID, f.paidBy(f.ownerP, "10"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{Status: ptr(string(entity.ExpensePending))})
	assert.ErrorIs(t, err, expense.ErrStatusChange)

	_, err = f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{
		PaidByThirdParty: &expense.ThirdPartyPayerRequest{Name: "Taxi"},
	})
	assert.ErrorIs(t, err, expense.ErrPaidNeedsParticipant)

	moved, err := f.svc.Update(ctx, f.owner.ID, created.ID, expense.UpdateExpenseRequest{PaidByParticipantID: ptr(f.guestP.ID)})
	require.NoError(t, err)
	payerID, ok := moved.PayerParticipantID()
	require.True(t, ok)
	assert.Equal(t, f.guestP.ID, payerID)
}

func TestSettle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.paidBy(f.ownerP, "120")
	req.PaidByParticipantID = ""
	req.PaidByThirdParty = &expense.ThirdPartyPayerRequest{Name: "Hotel Sol"}
	pending, err := f.svc.Create(ctx, f.owner.ID, req)
	require.NoError(t, err)

	_, err = f.svc.Settle(ctx, f.outsider.ID, pending.ID)
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	settled, err := f.svc.Settle(ctx, f.member.ID, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ExpensePaid, settled.Status)

	_, err = f.svc.Settle(ctx, f.member.ID, pending.ID)
	assert.ErrorIs(t, err, expense.ErrAlreadyPaid)

	paid, err := f.svc.Create(ctx, f.owner.ID, f.paidBy(f.ownerP, "10"))
	require.NoError(t, err)
	_, err = f.svc.Settle(ctx, f.owner.ID, paid.ID)
	assert.ErrorIs(t, err, expense.ErrAlreadyPaid)

	_, err = f.svc.Settle(ctx, f.owner.ID, "missing")
	assert.ErrorIs(t, err, expense.ErrExpenseNotFound)

	assert.Equal(t, []amqp.EventType{amqp.ExpenseCreated, amqp.ExpenseSettled, amqp.ExpenseCreated}, f.publisher.Types())
}

func TestOutsidersCannotTouchExpenses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.owner.ID, f.paidBy(f.ownerP, "10"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.outsider.ID, f.paidBy(f.ownerP, "10"))
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = f.svc.Get(ctx, f.outsider.ID, created.ID)
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = f.svc.List(ctx, f.outsider.ID, expense.ListExpensesQuery{TripID: f.trip.ID})
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = f.svc.Update(ctx, f.outsider.ID, created.ID, expense.UpdateExpenseRequest{Description: ptr("Mine now")})
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	assert.ErrorIs(t, f.svc.Remove(ctx, f.outsider.ID, created.ID), participant.ErrNoTripAccess)

	_, err = f.svc.TripSummary(ctx, f.outsider.ID, f.trip.ID)
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = f.svc.ParticipantDebts(ctx, f.outsider.ID, f.trip.ID)
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = f.svc.List(ctx, f.owner.ID, expense.ListExpensesQuery{})
	assert.ErrorIs(t, err, expense.ErrTripIDRequired)
}

func TestListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := f.seedBudget(t, "Food")

	withBudget := f.paidBy(f.ownerP, "10")
	withBudget.BudgetID = food.ID
	_, err := f.svc.Create(ctx, f.owner.ID, withBudget)
	require.NoError(t, err)

	pending := f.paidBy(f.ownerP, "20")
	pending.PaidByParticipantID = ""
	pending.PaidByThirdParty = &expense.ThirdPartyPayerRequest{Name: "Taxi"}
	_, err = f.svc.Create(ctx, f.owner.ID, pending)
	require.NoError(t, err)

	all, err := f.svc.List(ctx, f.member.ID, expense.ListExpensesQuery{TripID: f.trip.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byBudget, err := f.svc.List(ctx, f.member.ID, expense.ListExpensesQuery{TripID: f.trip.ID, BudgetID: food.ID})
	require.NoError(t, err)
	require.Len(t, byBudget, 1)
	assert.Equal(t, "10.00", byBudget[0].Amount.StringFixed(2))

	byStatus, err := f.svc.List(ctx, f.member.ID, expense.ListExpensesQuery{TripID: f.trip.ID, Status: string(entity.ExpensePending)})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "20.00", byStatus[0].Amount.StringFixed(2))
}

func TestTripReports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := f.seedBudget(t, "Food")

	dinner := f.paidBy(f.ownerP, "90")
	dinner.BudgetID = food.ID
	dinner.IsDivisible = true
	dinner.SplitType = string(entity.SplitEqual)
	dinner.Splits = splitsFor(f.ownerP, f.memberP, f.guestP)
	_, err := f.svc.Create(ctx, f.owner.ID, dinner)
	require.NoError(t, err)

	hotel := f.paidBy(f.ownerP, "50")
	hotel.PaidByParticipantID = ""
	hotel.PaidByThirdParty = &expense.ThirdPartyPayerRequest{Name: "Hotel Sol"}
	hotel.IsDivisible = true
	hotel.SplitType = string(entity.SplitEqual)
	hotel.Splits = splitsFor(f.ownerP, f.memberP)
	_, err = f.svc.Create(ctx, f.owner.ID, hotel)
	require.NoError(t, err)

	summary, err := f.svc.TripSummary(ctx, f.member.ID, f.trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "140.00", summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "90.00", summary.TotalByStatus.Paid.StringFixed(2))
	assert.Equal(t, "50.00", summary.TotalByStatus.Pending.StringFixed(2))

	totals := map[string]string{}
	for _, bt := range summary.TotalByBudget {
		totals[bt.BudgetID] = bt.Total.StringFixed(2)
	}
	assert.Equal(t, map[string]string{food.ID: "90.00", calculator.UnassignedBudgetID: "50.00"}, totals)

	require.Len(t, summary.TotalByParticipant, 3)
	balances := map[string]string{}
	for _, b := range summary.TotalByParticipant {
		balances[b.ParticipantID] = b.Balance.StringFixed(2)
	}
	assert.Equal(t, "35.00", balances[f.ownerP.ID])
	assert.Equal(t, "-55.00", balances[f.memberP.ID])
	assert.Equal(t, "-30.00", balances[f.guestP.ID])

	member, err := f.svc.ParticipantBalance(ctx, f.member.ID, f.trip.ID, f.memberP.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bruno Silva", member.ParticipantName)
	assert.Equal(t, "0.00", member.TotalPaid.StringFixed(2))
	assert.Equal(t, "55.00", member.TotalOwed.StringFixed(2))

	_, err = f.svc.ParticipantBalance(ctx, f.member.ID, f.trip.ID, f.otherTripP.ID)
	assert.ErrorIs(t, err, participant.ErrParticipantNotFound)

	debts, err := f.svc.ParticipantDebts(ctx, f.member.ID, f.trip.ID)
	require.NoError(t, err)
	require.Len(t, debts, 2)
	for _, debt := range debts {
		assert.Equal(t, "third-party:Hotel Sol", debt.To)
		assert.Equal(t, calculator.CreditorThirdParty, debt.ToKind)
		assert.Equal(t, "25.00", debt.Amount.StringFixed(2))
	}
}

func TestPublishFailureDoesNotFailTheWrite(t *testing.T) {
	f := newFixture(t)
	f.publisher.Err = errors.New("broker down")

	created, err := f.svc.Create(context.Background(), f.owner.ID, f.paidBy(f.ownerP, "10"))
	require.NoError(t, err)

	stored, err := f.svc.Get(context.Background(), f.member.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
	assert.Empty(t, f.publisher.Types())
}

func TestParseExpenseDate(t *testing.T) {
	got, err := parseExpenseDate("2026-05-01T10:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 13, 30, 0, 0, time.UTC), got)

	got, err = parseExpenseDate("2026-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = parseExpenseDate("01/05/2026")
	assert.ErrorIs(t, err, expense.ErrInvalidExpenseDate)
}
