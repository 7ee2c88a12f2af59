package budgetService

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"TravelLedger/internal/api/budget"
	budgetRepository "TravelLedger/internal/api/budget/repository"
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/entity"
	"TravelLedger/internal/testkit"
	"TravelLedger/pkg/utils"
)

type fixture struct {
	db       *sqlx.DB
	repo     budgetRepository.Repository
	svc      IBudgetService
	owner    entity.User
	member   entity.User
	outsider entity.User
	trip     entity.Trip
}

func newFixture(t *testing.T) fixture {
	db := testkit.DB(t)
	log := testkit.Logger()
	repo := budgetRepository.New(db, log)

	f := fixture{
		db:       db,
		repo:     repo,
		svc:      NewBudgetService(log, repo, utils.New()),
		owner:    testkit.SeedUser(t, db, "ana@example.com", "Ana", "Diaz"),
		member:   testkit.SeedUser(t, db, "bruno@example.com", "Bruno", "Silva"),
		outsider: testkit.SeedUser(t, db, "carla@example.com", "Carla", "Ruiz"),
	}
	f.trip, _ = testkit.SeedTrip(t, db, f.owner.ID, "Lisbon")
	testkit.SeedParticipant(t, db, entity.Participant{TripID: f.trip.ID, UserID: f.member.ID, Role: entity.RoleMember})
	return f
}

func TestCreateDefaultsCurrencyAndStartsEmpty(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.Create(context.Background(), f.member.ID, budget.CreateBudgetRequest{
		TripID: f.trip.ID,
		Name:   "Lodging",
		Amount: decimal.RequireFromString("1200.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", b.Currency)
	assert.Equal(t, "1200.50", b.Amount.StringFixed(2))
	assert.True(t, b.Spent.IsZero())
	assert.Equal(t, f.member.ID, b.CreatedBy)
}

func TestAnyParticipantMayManageBudgets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, f.owner.ID, budget.CreateBudgetRequest{TripID: f.trip.ID, Name: "Food", Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)

	name := "Meals"
	updated, err := f.svc.Update(ctx, f.member.ID, b.ID, budget.UpdateBudgetRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Meals", updated.Name)

	require.NoError(t, f.svc.Delete(ctx, f.member.ID, b.ID))

	_, err = f.svc.Get(ctx, f.owner.ID, b.ID)
	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
}

func TestOutsidersAreForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.outsider.ID, budget.CreateBudgetRequest{TripID: f.trip.ID, Name: "Food"})
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	b, err := f.svc.Create(ctx, f.owner.ID, budget.CreateBudgetRequest{TripID: f.trip.ID, Name: "Food"})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, f.outsider.ID, b.ID)
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = f.svc.List(ctx, f.outsider.ID, f.trip.ID)
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = f.svc.List(ctx, f.owner.ID, "")
	assert.ErrorIs(t, err, budget.ErrTripIDRequired)
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.owner.ID, budget.CreateBudgetRequest{TripID: f.trip.ID, Name: "First"})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, f.owner.ID, budget.CreateBudgetRequest{TripID: f.trip.ID, Name: "Second"})
	require.NoError(t, err)

	budgets, err := f.svc.List(ctx, f.owner.ID, f.trip.ID)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, second.ID, budgets[0].ID)
	assert.Equal(t, first.ID, budgets[1].ID)
}

func TestReconcileCorrectsDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, f.owner.ID, budget.CreateBudgetRequest{TripID: f.trip.ID, Name: "Food", Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)

	owner, err := participantOf(f, f.owner.ID)
	require.NoError(t, err)

	now := time.Now().UTC()
	for _, amount := range []string{"40.10", "59.90"} {
		_, err := f.db.Exec(f.db.Rebind(`
INSERT INTO expenses (id, trip_id, budget_id, amount, currency, description, tags, paid_by_participant_id, status, payment_method, is_divisible, created_by, expense_date, created_at, updated_at)
VALUES (?, ?, ?, ?, 'USD', 'seeded', '[]', ?, 'paid', 'cash', FALSE, ?, ?, ?, ?)`),
			testkit.NewID(t), f.trip.ID, b.ID, amount, owner.ID, f.owner.ID, now, now, now)
		require.NoError(t, err)
	}

	// A stale accumulator left behind by an interrupted write.
	client, err := f.repo.NewClient(false)
	require.NoError(t, err)
	require.NoError(t, client.Ledger.AdjustSpent(ctx, b.ID, decimal.RequireFromString("12.34")))

	res, err := f.svc.Reconcile(ctx, f.member.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.34", res.PreviousSpent.StringFixed(2))
	assert.Equal(t, "87.66", res.Drift.StringFixed(2))
	assert.Equal(t, "100.00", res.Budget.Spent.StringFixed(2))
	assert.Equal(t, "200.00", res.Budget.Remaining.StringFixed(2))

	again, err := f.svc.Reconcile(ctx, f.member.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, again.Drift.IsZero())

	_, err = f.svc.Reconcile(ctx, f.outsider.ID, b.ID)
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)
}

func participantOf(f fixture, userID string) (entity.Participant, error) {
	client, err := f.repo.NewClient(false)
	if err != nil {
		return entity.Participant{}, err
	}
	return client.Participants.GetByTripAndUser(context.Background(), f.trip.ID, userID)
}
