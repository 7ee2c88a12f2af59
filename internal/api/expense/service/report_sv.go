package expenseService

import (
	expenseRepository "TravelLedger/internal/api/expense/repository"
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/calculator"
	"TravelLedger/internal/entity"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

// TripSummary loads the trip's expenses, budgets and roster concurrently
// and aggregates them in one pass.
func (s *expenseService) TripSummary(ctx context.Context, userID string, tripID string) (calculator.Summary, error) {
	repo, err := s.client(ctx, false)
	if err != nil {
		return calculator.Summary{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, tripID, userID); err != nil {
		return calculator.Summary{}, err
	}

	var (
		expenses     []entity.Expense
		budgets      []entity.Budget
		participants []entity.Participant
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = repo.Expenses.ListByTrip(gctx, expenseRepository.ListFilter{TripID: tripID})
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = repo.Budgets.ListByTrip(gctx, tripID)
		return err
	})
	g.Go(func() error {
		var err error
		participants, err = repo.Participants.ListByTrip(gctx, tripID)
		return err
	})
	if err := g.Wait(); err != nil {
		return calculator.Summary{}, err
	}

	return calculator.Summarize(expenses, budgets, participants), nil
}

func (s *expenseService) ParticipantBalance(ctx context.Context, userID string, tripID string, participantID string) (calculator.Balance, error) {
	repo, err := s.client(ctx, false)
	if err != nil {
		return calculator.Balance{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, tripID, userID); err != nil {
		return calculator.Balance{}, err
	}

	var (
		target   entity.Participant
		expenses []entity.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := repo.Participants.GetByID(gctx, participantID)
		if err != nil {
			return err
		}
		if p.TripID != tripID {
			return participant.ErrParticipantNotFound
		}
		target = p
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = repo.Expenses.ListByTrip(gctx, expenseRepository.ListFilter{TripID: tripID})
		return err
	})
	if err := g.Wait(); err != nil {
		return calculator.Balance{}, err
	}

	return calculator.ParticipantBalance(target, expenses), nil
}

// ParticipantDebts reports raw debtor -> creditor totals over the trip's
// pending expenses.
func (s *expenseService) ParticipantDebts(ctx context.Context, userID string, tripID string) ([]calculator.Debt, error) {
	repo, err := s.client(ctx, false)
	if err != nil {
		return nil, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, tripID, userID); err != nil {
		return nil, err
	}

	pending, err := repo.Expenses.ListByTrip(ctx, expenseRepository.ListFilter{
		TripID: tripID,
		Status: entity.ExpensePending,
	})
	if err != nil {
		return nil, err
	}

	return calculator.Debts(pending), nil
}
