package tripRepository

import (
	participantRepository "TravelLedger/internal/api/participant/repository"
	"TravelLedger/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

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
	var db participantRepository.SQLExecutor
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
		Trips:        &tripRepository{q: db, log: r.log},
		Participants: participantRepository.NewParticipants(db, r.log),
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type Trips interface {
	Create(ctx context.Context, trip entity.Trip) error
	GetByID(ctx context.Context, id string) (entity.Trip, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Trip, error)
	Update(ctx context.Context, trip entity.Trip) error
	Delete(ctx context.Context, id string) error
}

type Client struct {
	Trips        Trips
	Participants participantRepository.Participants

	Commit   func() error
	Rollback func() error
}

type tripRepository struct {
	q   participantRepository.SQLExecutor
	log *logrus.Logger
}
