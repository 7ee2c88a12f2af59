package participantRepository

import (
	authRepository "TravelLedger/internal/api/auth/repository"
	"TravelLedger/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db SQLExecutor
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Participants: NewParticipants(db, r.log),
		Invitations:  &invitationRepository{q: db, log: r.log},
		Trips:        &tripLookup{q: db, log: r.log},
		Users:        authRepository.NewUsers(db, r.log),
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type Participants interface {
	Create(ctx context.Context, p entity.Participant) error
	GetByID(ctx context.Context, id string) (entity.Participant, error)
	GetByTripAndUser(ctx context.Context, tripID string, userID string) (entity.Participant, error)
	GetByTripAndGuestEmail(ctx context.Context, tripID string, email string) (entity.Participant, error)
	GetByTripAndUserEmail(ctx context.Context, tripID string, email string) (entity.Participant, error)
	ListByTrip(ctx context.Context, tripID string) ([]entity.Participant, error)
	UpgradeGuest(ctx context.Context, id string, userID string) error
	SetInvitation(ctx context.Context, id string, invitationID string) error
	Delete(ctx context.Context, id string) error
}

type Invitations interface {
	Create(ctx context.Context, inv entity.Invitation) error
	GetByID(ctx context.Context, id string) (entity.Invitation, error)
	GetByToken(ctx context.Context, token string) (entity.Invitation, error)
	GetPendingByTripAndEmail(ctx context.Context, tripID string, email string) (entity.Invitation, error)
	ListPendingByTrip(ctx context.Context, tripID string) ([]entity.Invitation, error)
	UpdateStatus(ctx context.Context, id string, status entity.InvitationStatus) error
	CancelPendingForParticipant(ctx context.Context, participantID string) error
}

// TripLookup is the narrow view of trips the registry needs for invitations.
type TripLookup interface {
	GetByID(ctx context.Context, id string) (entity.Trip, error)
}

type Client struct {
	Participants Participants
	Invitations  Invitations
	Trips        TripLookup
	Users        authRepository.Users

	Commit   func() error
	Rollback func() error
}

// NewParticipants binds the participant store to an executor. Trips, budgets,
// cards and expenses use it for membership checks inside their own
// transactions.
func NewParticipants(q SQLExecutor, log *logrus.Logger) Participants {
	return &participantRepository{q: q, log: log}
}

type participantRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type invitationRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type tripLookup struct {
	q   SQLExecutor
	log *logrus.Logger
}
