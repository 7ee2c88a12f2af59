package cardRepository

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
		Cards:        NewCards(db, r.log),
		Participants: participantRepository.NewParticipants(db, r.log),
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type Cards interface {
	Create(ctx context.Context, card entity.Card) error
	GetByID(ctx context.Context, id string) (entity.Card, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Card, error)
	ListByTrip(ctx context.Context, tripID string) ([]entity.Card, error)
	Update(ctx context.Context, card entity.Card) error
	Delete(ctx context.Context, id string) error
}

type Client struct {
	Cards        Cards
	Participants participantRepository.Participants

	Commit   func() error
	Rollback func() error
}

// NewCards binds the card store to q. The expense engine uses it to check
// card references inside its own transaction.
func NewCards(q participantRepository.SQLExecutor, log *logrus.Logger) Cards {
	return &cardRepository{q: q, log: log}
}

type cardRepository struct {
	q   participantRepository.SQLExecutor
	log *logrus.Logger
}
