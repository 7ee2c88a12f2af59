package budgetService

import (
	"TravelLedger/internal/api/budget"
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"TravelLedger/pkg/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

func (s *budgetService) Create(ctx context.Context, userID string, req budget.CreateBudgetRequest) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Budget{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, req.TripID, userID); err != nil {
		return entity.Budget{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Budget{}, err
	}

	b := entity.Budget{
		ID:        ULID,
		TripID:    req.TripID,
		Name:      strings.TrimSpace(req.Name),
		Amount:    req.Amount,
		Currency:  entity.CurrencyOrDefault(req.Currency),
		CreatedBy: userID,
	}

	if err := repo.Budgets.Create(ctx, b); err != nil {
		return entity.Budget{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"budget_id":  b.ID,
		"trip_id":    b.TripID,
	}).Info("Budget created")

	return repo.Budgets.GetByID(ctx, b.ID)
}

func (s *budgetService) List(ctx context.Context, userID string, tripID string) ([]entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if tripID == "" {
		return nil, budget.ErrTripIDRequired
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, tripID, userID); err != nil {
		return nil, err
	}

	return repo.Budgets.ListByTrip(ctx, tripID)
}

func (s *budgetService) Get(ctx context.Context, userID string, id string) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Budget{}, err
	}

	b, err := repo.Budgets.GetByID(ctx, id)
	if err != nil {
		return entity.Budget{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, b.TripID, userID); err != nil {
		return entity.Budget{}, err
	}

	return b, nil
}

func (s *budgetService) Update(ctx context.Context, userID string, id string, req budget.UpdateBudgetRequest) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.Name == nil && req.Amount == nil && req.Currency == nil {
		return entity.Budget{}, budget.ErrEmptyUpdate
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Budget{}, err
	}

	b, err := repo.Budgets.GetByID(ctx, id)
	if err != nil {
		return entity.Budget{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, b.TripID, userID); err != nil {
		return entity.Budget{}, err
	}

	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Amount != nil {
		b.Amount = *req.Amount
	}
	if req.Currency != nil {
		b.Currency = entity.CurrencyOrDefault(*req.Currency)
	}

	if err := repo.Budgets.Update(ctx, b); err != nil {
		return entity.Budget{}, err
	}

	return repo.Budgets.GetByID(ctx, id)
}

func (s *budgetService) Delete(ctx context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	b, err := repo.Budgets.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, b.TripID, userID); err != nil {
		return err
	}

	if err := repo.Budgets.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"budget_id":  id,
	}).Info("Budget deleted")

	return nil
}

// Reconcile recomputes spent from the expenses currently linked to the
// budget and reports how far the stored total had drifted.
func (s *budgetService) Reconcile(ctx context.Context, userID string, id string) (budget.ReconcileResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return budget.ReconcileResponse{}, err
	}
	defer repo.Rollback()

	b, err := repo.Budgets.GetByID(ctx, id)
	if err != nil {
		return budget.ReconcileResponse{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, b.TripID, userID); err != nil {
		return budget.ReconcileResponse{}, err
	}

	total, err := repo.Ledger.SumExpenses(ctx, id)
	if err != nil {
		return budget.ReconcileResponse{}, err
	}

	drift := total.Sub(b.Spent)
	if !drift.IsZero() {
		if err := repo.Ledger.SetSpent(ctx, id, total); err != nil {
			return budget.ReconcileResponse{}, err
		}
	}

	reconciled, err := repo.Budgets.GetByID(ctx, id)
	if err != nil {
		return budget.ReconcileResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit budget reconciliation")
		return budget.ReconcileResponse{}, err
	}

	if !drift.IsZero() {
		metrics.BudgetDrift.Inc()
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"budget_id":  id,
			"drift":      drift.StringFixed(2),
		}).Warn("Budget spent drifted from its expenses and was reconciled")
	}

	return budget.ReconcileResponse{
		Budget:        MakeBudgetResponse(reconciled),
		PreviousSpent: b.Spent,
		Drift:         drift,
	}, nil
}
