package tripService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/api/trip"
	tripRepository "TravelLedger/internal/api/trip/repository"
	"TravelLedger/internal/entity"
	"TravelLedger/internal/testkit"
	"TravelLedger/pkg/utils"
)

func newTestService(t *testing.T) (TripService, func(email string) entity.User) {
	db := testkit.DB(t)
	log := testkit.Logger()
	svc := New(log, tripRepository.New(db, log), utils.New())
	return svc, func(email string) entity.User {
		return testkit.SeedUser(t, db, email, "Test", "User")
	}
}

func strPtr(s string) *string {
	return &s
}

func TestCreateMakesCallerOwner(t *testing.T) {
	svc, seedUser := newTestService(t)
	ctx := context.Background()
	owner := seedUser("ana@example.com")

	created, err := svc.Create(ctx, owner.ID, trip.CreateTripRequest{Name: " Patagonia "})
	require.NoError(t, err)

	assert.Equal(t, "Patagonia", created.Name)
	assert.Equal(t, "USD", created.BaseCurrency)
	assert.Equal(t, owner.ID, created.CreatedBy)

	// Only the owner may update, so a successful update proves the owner row exists.
	updated, err := svc.Update(ctx, owner.ID, created.ID, trip.UpdateTripRequest{BaseCurrency: strPtr("ARS")})
	require.NoError(t, err)
	assert.Equal(t, "ARS", updated.BaseCurrency)
	assert.Equal(t, "Patagonia", updated.Name)
}

func TestListReturnsNewestFirst(t *testing.T) {
	svc, seedUser := newTestService(t)
	ctx := context.Background()
	owner := seedUser("ana@example.com")
	other := seedUser("bruno@example.com")

	first, err := svc.Create(ctx, owner.ID, trip.CreateTripRequest{Name: "First"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner.ID, trip.CreateTripRequest{Name: "Second"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, other.ID, trip.CreateTripRequest{Name: "Not mine"})
	require.NoError(t, err)

	trips, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, second.ID, trips[0].ID)
	assert.Equal(t, first.ID, trips[1].ID)
}

func TestAccessRules(t *testing.T) {
	svc, seedUser := newTestService(t)
	ctx := context.Background()
	owner := seedUser("ana@example.com")
	outsider := seedUser("carla@example.com")

	created, err := svc.Create(ctx, owner.ID, trip.CreateTripRequest{Name: "Lisbon"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, outsider.ID, created.ID)
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = svc.Get(ctx, outsider.ID, "missing")
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = svc.Update(ctx, outsider.ID, created.ID, trip.UpdateTripRequest{Name: strPtr("Porto")})
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)

	_, err = svc.Update(ctx, owner.ID, created.ID, trip.UpdateTripRequest{})
	assert.ErrorIs(t, err, trip.ErrEmptyUpdate)

	assert.ErrorIs(t, svc.Delete(ctx, outsider.ID, created.ID), participant.ErrNoTripAccess)
}

func TestDeleteCascades(t *testing.T) {
	svc, seedUser := newTestService(t)
	ctx := context.Background()
	owner := seedUser("ana@example.com")

	created, err := svc.Create(ctx, owner.ID, trip.CreateTripRequest{Name: "Lisbon"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner.ID, created.ID))

	trips, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, trips)

	_, err = svc.Get(ctx, owner.ID, created.ID)
	assert.ErrorIs(t, err, participant.ErrNoTripAccess)
}
