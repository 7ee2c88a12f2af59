package expenseService

import (
	"TravelLedger/internal/api/expense"
	expenseRepository "TravelLedger/internal/api/expense/repository"
	"TravelLedger/internal/calculator"
	"TravelLedger/internal/entity"
	"TravelLedger/pkg/amqp"
	"TravelLedger/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ExpenseService interface {
	Create(ctx context.Context, userID string, req expense.CreateExpenseRequest) (entity.Expense, error)
	List(ctx context.Context, userID string, query expense.ListExpensesQuery) ([]entity.Expense, error)
	Get(ctx context.Context, userID string, id string) (entity.Expense, error)
	Update(ctx context.Context, userID string, id string, req expense.UpdateExpenseRequest) (entity.Expense, error)
	Remove(ctx context.Context, userID string, id string) error
	Settle(ctx context.Context, userID string, id string) (entity.Expense, error)

	TripSummary(ctx context.Context, userID string, tripID string) (calculator.Summary, error)
	ParticipantBalance(ctx context.Context, userID string, tripID string, participantID string) (calculator.Balance, error)
	ParticipantDebts(ctx context.Context, userID string, tripID string) ([]calculator.Debt, error)
}

type expenseService struct {
	log               *logrus.Logger
	expenseRepository expenseRepository.Repository
	publisher         amqp.IPublisher
	utils             utils.IUtils
}

func New(log *logrus.Logger, expenseRepo expenseRepository.Repository, publisher amqp.IPublisher, utils utils.IUtils) ExpenseService {
	return &expenseService{
		log:               log,
		expenseRepository: expenseRepo,
		publisher:         publisher,
		utils:             utils,
	}
}
