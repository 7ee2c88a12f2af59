package budgetRepository

import (
	participantRepository "TravelLedger/internal/api/participant/repository"
	"TravelLedger/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
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
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Budgets:      NewBudgets(sqlExecutor, r.log),
		Ledger:       NewLedger(sqlExecutor, r.log),
		Participants: participantRepository.NewParticipants(sqlExecutor, r.log),
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type Budgets interface {
	Create(c context.Context, b entity.Budget) error
	GetByID(c context.Context, id string) (entity.Budget, error)
	ListByTrip(c context.Context, tripID string) ([]entity.Budget, error)
	Update(c context.Context, b entity.Budget) error
	Delete(c context.Context, id string) error
}

// Ledger owns the spent accumulator. AdjustSpent is the only path that moves
// it during normal operation; SetSpent is reserved for reconciliation.
type Ledger interface {
	AdjustSpent(c context.Context, budgetID string, delta decimal.Decimal) error
	SumExpenses(c context.Context, budgetID string) (decimal.Decimal, error)
	SetSpent(c context.Context, budgetID string, spent decimal.Decimal) error
}

type Client struct {
	Budgets      Budgets
	Ledger       Ledger
	Participants participantRepository.Participants

	Commit   func() error
	Rollback func() error
}

func NewBudgets(q SQLExecutor, log *logrus.Logger) Budgets {
	return &budgetRepository{q: q, log: log}
}

// NewLedger binds the accumulator to an executor so expense writes and
// their budget adjustments share one transaction.
func NewLedger(q SQLExecutor, log *logrus.Logger) Ledger {
	return &ledgerRepository{q: q, log: log}
}

type budgetRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type ledgerRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
