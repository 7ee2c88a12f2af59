package cardService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"TravelLedger/internal/api/card"
	cardRepository "TravelLedger/internal/api/card/repository"
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/entity"
	"TravelLedger/internal/testkit"
	"TravelLedger/pkg/utils"
)

func TestCardLifecycle(t *testing.T) {
	db := testkit.DB(t)
	svc := New(testkit.Logger(), cardRepository.New(db, testkit.Logger()), utils.New())
	ctx := context.Background()

	ana := testkit.SeedUser(t, db, "ana@example.com", "Ana", "Diaz")
	trip, _ := testkit.SeedTrip(t, db, ana.ID, "Lisbon")

	created, err := svc.Create(ctx, ana.ID, card.CreateCardRequest{
		Name:           "Travel Visa",
		LastFourDigits: "4242",
		TripID:         trip.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CardOther, created.Type)
	assert.True(t, created.IsActive)
	assert.Equal(t, trip.ID, created.TripID)

	visa, inactive, detach := "visa", false, ""
	updated, err := svc.Update(ctx, ana.ID, created.ID, card.UpdateCardRequest{Type: &visa, IsActive: &inactive, TripID: &detach})
	require.NoError(t, err)
	assert.Equal(t, entity.CardVisa, updated.Type)
	assert.False(t, updated.IsActive)
	assert.Empty(t, updated.TripID)

	mine, err := svc.ListMine(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	byTrip, err := svc.ListByTrip(ctx, ana.ID, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, byTrip)

	require.NoError(t, svc.Delete(ctx, ana.ID, created.ID))
	_, err = svc.Get(ctx, ana.ID, created.ID)
	assert.ErrorIs(t, err, card.ErrCardNotFound)
}

func TestCardOwnershipAndTripAccess(t *testing.T) {
	db := testkit.DB(t)
	svc := New(testkit.Logger(), cardRepository.New(db, testkit.Logger()), utils.New())
	ctx := context.Background()

	ana := testkit.SeedUser(t, db, "ana@example.com", "Ana", "Diaz")
	bruno := testkit.SeedUser(t, db, "bruno@example.com", "Bruno", "Silva")
	trip, _ := testkit.SeedTrip(t, db, ana.ID, "Lisbon")

	_, err := svc.Create(ctx, bruno.ID, card.CreateCardRequest{Name: "Amex", LastFourDigits: "0005", TripID: trip.ID})
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = svc.ListByTrip(ctx, bruno.ID, trip.ID)
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	c, err := svc.Create(ctx, ana.ID, card.CreateCardRequest{Name: "Amex", LastFourDigits: "0005", Type: "amex"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, bruno.ID, c.ID)
	assert.ErrorIs(t, err, card.ErrCardForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, bruno.ID, c.ID), card.ErrCardForbidden)

	_, err = svc.Update(ctx, ana.ID, c.ID, card.UpdateCardRequest{})
	assert.ErrorIs(t, err, card.ErrEmptyUpdate)

	_, err = svc.Create(ctx, ana.ID, card.CreateCardRequest{Name: "Odd", LastFourDigits: "1111", Type: "diners"})
	assert.ErrorIs(t, err, card.ErrInvalidType)
}
