package budgetService

import (
	"TravelLedger/internal/api/budget"
	budgetRepository "TravelLedger/internal/api/budget/repository"
	"TravelLedger/internal/entity"
	"TravelLedger/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IBudgetService interface {
	Create(ctx context.Context, userID string, req budget.CreateBudgetRequest) (entity.Budget, error)
	List(ctx context.Context, userID string, tripID string) ([]entity.Budget, error)
	Get(ctx context.Context, userID string, id string) (entity.Budget, error)
	Update(ctx context.Context, userID string, id string, req budget.UpdateBudgetRequest) (entity.Budget, error)
	Delete(ctx context.Context, userID string, id string) error
	Reconcile(ctx context.Context, userID string, id string) (budget.ReconcileResponse, error)
}

type budgetService struct {
	log              *logrus.Logger
	budgetRepository budgetRepository.Repository
	utils            utils.IUtils
}

func NewBudgetService(log *logrus.Logger, br budgetRepository.Repository, utils utils.IUtils) IBudgetService {
	return &budgetService{
		log:              log,
		budgetRepository: br,
		utils:            utils,
	}
}

func MakeBudgetResponse(b entity.Budget) budget.BudgetResponse {
	return budget.BudgetResponse{
		ID:        b.ID,
		TripID:    b.TripID,
		Name:      b.Name,
		Amount:    b.Amount,
		Currency:  b.Currency,
		Spent:     b.Spent,
		Remaining: b.Remaining(),
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func MakeBudgetsResponse(bs []entity.Budget) []budget.BudgetResponse {
	res := make([]budget.BudgetResponse, 0, len(bs))
	for _, b := range bs {
		res = append(res, MakeBudgetResponse(b))
	}
	return res
}
