package authRepository

import (
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
		var err error
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
		Users:    NewUsers(db, r.log),
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Users interface {
	CreateUser(ctx context.Context, user entity.User) error
	GetByID(ctx context.Context, id string) (entity.User, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
}

type Client struct {
	Users Users

	Commit   func() error
	Rollback func() error
}

// NewUsers binds the user store to an executor, so other domains can read
// accounts inside their own transaction.
func NewUsers(q SQLExecutor, log *logrus.Logger) Users {
	return &userRepository{q: q, log: log}
}

type userRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
