// Package testkit opens migrated sqlite databases and provides in-memory
// stand-ins for the redis, smtp and amqp collaborators.
package testkit

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	authRepository "TravelLedger/internal/api/auth/repository"
	participantRepository "TravelLedger/internal/api/participant/repository"
	"TravelLedger/database/migration"
	"TravelLedger/database/sqlite"
	"TravelLedger/internal/entity"
	"TravelLedger/pkg/utils"
)

func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// DB returns a fresh, fully migrated database that lives for the test.
func DB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	require.NoError(t, migration.Up("sqlite", sqlite.DSN(path)))

	db, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func NewID(t *testing.T) string {
	t.Helper()
	id, err := utils.New().NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	return id
}

func SeedUser(t *testing.T, db *sqlx.DB, email string, first string, last string) entity.User {
	t.Helper()

	user := entity.User{
		ID:        NewID(t),
		Email:     email,
		FirstName: first,
		LastName:  last,
		Password:  "$2a$10$placeholderplaceholderplaceholderplaceholderplaceho",
	}
	users := authRepository.NewUsers(db, Logger())
	require.NoError(t, users.CreateUser(context.Background(), user))

	created, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	return created
}

// SeedTrip creates a trip owned by ownerID together with the owner's
// participant record.
func SeedTrip(t *testing.T, db *sqlx.DB, ownerID string, name string) (entity.Trip, entity.Participant) {
	t.Helper()

	now := time.Now().UTC()
	trip := entity.Trip{ID: NewID(t), Name: name, BaseCurrency: "USD", CreatedBy: ownerID}
	_, err := db.Exec(db.Rebind(`INSERT INTO trips (id, name, base_currency, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`),
		trip.ID, trip.Name, trip.BaseCurrency, trip.CreatedBy, now, now)
	require.NoError(t, err)

	owner := SeedParticipant(t, db, entity.Participant{TripID: trip.ID, UserID: ownerID, Role: entity.RoleOwner})
	return trip, owner
}

func SeedParticipant(t *testing.T, db *sqlx.DB, p entity.Participant) entity.Participant {
	t.Helper()

	if p.ID == "" {
		p.ID = NewID(t)
	}
	participants := participantRepository.NewParticipants(db, Logger())
	require.NoError(t, participants.Create(context.Background(), p))

	created, err := participants.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	return created
}
