package budgetRepository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"TravelLedger/internal/api/budget"
	"TravelLedger/internal/entity"
	"TravelLedger/internal/testkit"
)

func seedBudget(t *testing.T) (Repository, entity.Budget) {
	t.Helper()

	db := testkit.DB(t)
	log := testkit.Logger()
	owner := testkit.SeedUser(t, db, "ana@example.com", "Ana", "Diaz")
	trip, _ := testkit.SeedTrip(t, db, owner.ID, "Lisbon")

	repo := New(db, log)
	client, err := repo.NewClient(false)
	require.NoError(t, err)

	b := entity.Budget{
		ID:        testkit.NewID(t),
		TripID:    trip.ID,
		Name:      "Food",
		Amount:    decimal.RequireFromString("500"),
		Currency:  "EUR",
		CreatedBy: owner.ID,
	}
	require.NoError(t, client.Budgets.Create(context.Background(), b))

	stored, err := client.Budgets.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	return repo, stored
}

func TestAdjustSpentIsAdditive(t *testing.T) {
	repo, b := seedBudget(t)
	client, err := repo.NewClient(false)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, client.Ledger.AdjustSpent(ctx, b.ID, decimal.RequireFromString("50")))
	require.NoError(t, client.Ledger.AdjustSpent(ctx, b.ID, decimal.RequireFromString("30.25")))
	require.NoError(t, client.Ledger.AdjustSpent(ctx, b.ID, decimal.RequireFromString("-20.10")))

	got, err := client.Budgets.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "60.15", got.Spent.StringFixed(2))
	assert.Equal(t, "439.85", got.Remaining().StringFixed(2))
}

func TestAdjustSpentConcurrentWritersLoseNothing(t *testing.T) {
	repo, b := seedBudget(t)
	ctx := context.Background()

	const writers = 40
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			client, err := repo.NewClient(false)
			if err != nil {
				return err
			}
			return client.Ledger.AdjustSpent(gctx, b.ID, decimal.RequireFromString("1.25"))
		})
	}
	require.NoError(t, g.Wait())

	client, err := repo.NewClient(false)
	require.NoError(t, err)
	got, err := client.Budgets.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "50.00", got.Spent.StringFixed(2))
}

func TestAdjustSpentUnknownBudget(t *testing.T) {
	repo, _ := seedBudget(t)
	client, err := repo.NewClient(false)
	require.NoError(t, err)

	err = client.Ledger.AdjustSpent(context.Background(), "missing", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
}

func TestSumExpensesOfEmptyBudgetIsZero(t *testing.T) {
	repo, b := seedBudget(t)
	client, err := repo.NewClient(false)
	require.NoError(t, err)

	total, err := client.Ledger.SumExpenses(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestUpdateLeavesSpentAlone(t *testing.T) {
	repo, b := seedBudget(t)
	client, err := repo.NewClient(false)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, client.Ledger.AdjustSpent(ctx, b.ID, decimal.NewFromInt(10)))

	b.Name = "Groceries"
	b.Amount = decimal.RequireFromString("750.5")
	require.NoError(t, client.Budgets.Update(ctx, b))

	got, err := client.Budgets.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Name)
	assert.Equal(t, "750.50", got.Amount.StringFixed(2))
	assert.Equal(t, "10.00", got.Spent.StringFixed(2))
}
