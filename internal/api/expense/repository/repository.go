package expenseRepository

import (
	budgetRepository "TravelLedger/internal/api/budget/repository"
	cardRepository "TravelLedger/internal/api/card/repository"
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

// NewClient composes every store the engine touches over one executor, so
// an expense write and its budget adjustment commit together.
func (r *repository) NewClient(tx bool) (Client, error) {
	var db budgetRepository.SQLExecutor
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
		Expenses:     &expenseRepository{q: db, log: r.log},
		Budgets:      budgetRepository.NewBudgets(db, r.log),
		Ledger:       budgetRepository.NewLedger(db, r.log),
		Participants: participantRepository.NewParticipants(db, r.log),
		Cards:        cardRepository.NewCards(db, r.log),
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

// ListFilter narrows ListByTrip. Empty fields do not filter.
type ListFilter struct {
	TripID   string
	BudgetID string
	Status   entity.ExpenseStatus
}

type Expenses interface {
	Create(ctx context.Context, e entity.Expense) error
	GetByID(ctx context.Context, id string) (entity.Expense, error)
	ListByTrip(ctx context.Context, filter ListFilter) ([]entity.Expense, error)
	Update(ctx context.Context, e entity.Expense) error
	UpdateStatus(ctx context.Context, id string, status entity.ExpenseStatus) error
	Delete(ctx context.Context, id string) error
}

type Client struct {
	Expenses     Expenses
	Budgets      budgetRepository.Budgets
	Ledger       budgetRepository.Ledger
	Participants participantRepository.Participants
	Cards        cardRepository.Cards

	Commit   func() error
	Rollback func() error
}

type expenseRepository struct {
	q   budgetRepository.SQLExecutor
	log *logrus.Logger
}
