package expenseService

import (
	"TravelLedger/internal/api/budget"
	"TravelLedger/internal/api/expense"
	expenseRepository "TravelLedger/internal/api/expense/repository"
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/calculator"
	"TravelLedger/internal/entity"
	"TravelLedger/pkg/amqp"
	contextPkg "TravelLedger/pkg/context"
	"errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

// Create validates the expense against the trip, stores it and charges its
// budget in the same transaction.
func (s *expenseService) Create(ctx context.Context, userID string, req expense.CreateExpenseRequest) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.client(ctx, true)
	if err != nil {
		return entity.Expense{}, err
	}
	defer repo.Rollback()

	if _, err := participant.EnsureAccess(ctx, repo.Participants, req.TripID, userID); err != nil {
		return entity.Expense{}, err
	}

	if req.BudgetID != "" {
		if err := checkBudget(ctx, repo, req.TripID, req.BudgetID); err != nil {
			return entity.Expense{}, err
		}
	}

	payer, err := newPayer(req.PaidByParticipantID, req.PaidByThirdParty)
	if err != nil {
		return entity.Expense{}, err
	}

	status := entity.ExpenseStatus(req.Status)
	if status == "" {
		status = entity.ExpensePaid
		if _, ok := payer.(entity.ThirdPartyPayer); ok {
			status = entity.ExpensePending
		}
	}
	if err := checkStatusPayer(status, payer); err != nil {
		return entity.Expense{}, err
	}

	if err := checkPayerInTrip(ctx, repo, req.TripID, payer); err != nil {
		return entity.Expense{}, err
	}

	amount := calculator.Round2(req.Amount)
	if !amount.IsPositive() {
		return entity.Expense{}, expense.ErrInvalidAmount
	}

	var splitType entity.SplitType
	var splits []entity.Split
	if req.IsDivisible {
		if req.SplitType == "" || len(req.Splits) == 0 {
			return entity.Expense{}, expense.ErrSplitsRequired
		}
		splitType = entity.SplitType(req.SplitType)
		splits, err = buildSplits(ctx, repo, req.TripID, amount, splitType, req.Splits)
		if err != nil {
			return entity.Expense{}, err
		}
	} else if len(req.Splits) > 0 {
		return entity.Expense{}, expense.ErrSplitsNotAllowed
	}

	method := entity.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = entity.PaymentCash
	}
	if req.CardID != "" {
		if method != entity.PaymentCard {
			return entity.Expense{}, expense.ErrCardNeedsCardPayment
		}
		if _, err := repo.Cards.GetByID(ctx, req.CardID); err != nil {
			return entity.Expense{}, err
		}
	}

	expenseDate, err := parseExpenseDate(req.ExpenseDate)
	if err != nil {
		return entity.Expense{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Expense{}, err
	}

	e := entity.Expense{
		ID:            ULID,
		TripID:        req.TripID,
		BudgetID:      req.BudgetID,
		Amount:        amount,
		Currency:      entity.CurrencyOrDefault(req.Currency),
		Description:   strings.TrimSpace(req.Description),
		MerchantName:  strings.TrimSpace(req.MerchantName),
		Tags:          req.Tags,
		Category:      strings.TrimSpace(req.Category),
		PaidBy:        payer,
		Status:        status,
		PaymentMethod: method,
		CardID:        req.CardID,
		IsDivisible:   req.IsDivisible,
		SplitType:     splitType,
		Splits:        splits,
		CreatedBy:     userID,
		ExpenseDate:   expenseDate,
	}

	if err := repo.Expenses.Create(ctx, e); err != nil {
		return entity.Expense{}, err
	}

	if e.HasBudget() {
		if err := repo.Ledger.AdjustSpent(ctx, e.BudgetID, e.Amount); err != nil {
			return entity.Expense{}, err
		}
	}

	created, err := repo.Expenses.GetByID(ctx, e.ID)
	if err != nil {
		return entity.Expense{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense creation")
		return entity.Expense{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"expense_id": created.ID,
		"trip_id":    created.TripID,
		"amount":     created.Amount.StringFixed(2),
		"currency":   created.Currency,
	}).Info("Expense created")

	s.announce(ctx, amqp.ExpenseCreated, created, userID)

	return created, nil
}

func (s *expenseService) List(ctx context.Context, userID string, query expense.ListExpensesQuery) ([]entity.Expense, error) {
	if query.TripID == "" {
		return nil, expense.ErrTripIDRequired
	}

	repo, err := s.client(ctx, false)
	if err != nil {
		return nil, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, query.TripID, userID); err != nil {
		return nil, err
	}

	return repo.Expenses.ListByTrip(ctx, expenseRepository.ListFilter{
		TripID:   query.TripID,
		BudgetID: query.BudgetID,
		Status:   entity.ExpenseStatus(query.Status),
	})
}

func (s *expenseService) Get(ctx context.Context, userID string, id string) (entity.Expense, error) {
	repo, err := s.client(ctx, false)
	if err != nil {
		return entity.Expense{}, err
	}

	e, err := repo.Expenses.GetByID(ctx, id)
	if err != nil {
		return entity.Expense{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, e.TripID, userID); err != nil {
		return entity.Expense{}, err
	}

	return e, nil
}

// Update applies req on top of the stored expense. When amount or budget
// is touched, the old amount leaves the old budget and the new amount
// enters the new one, inside the same transaction as the write.
func (s *expenseService) Update(ctx context.Context, userID string, id string, req expense.UpdateExpenseRequest) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.IsEmpty() {
		return entity.Expense{}, expense.ErrEmptyUpdate
	}

	repo, err := s.client(ctx, true)
	if err != nil {
		return entity.Expense{}, err
	}
	defer repo.Rollback()

	e, err := repo.Expenses.GetByID(ctx, id)
	if err != nil {
		return entity.Expense{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, e.TripID, userID); err != nil {
		return entity.Expense{}, err
	}

	oldBudgetID, oldAmount := e.BudgetID, e.Amount

	if req.BudgetID != nil {
		if *req.BudgetID != "" {
			if err := checkBudget(ctx, repo, e.TripID, *req.BudgetID); err != nil {
				return entity.Expense{}, err
			}
		}
		e.BudgetID = *req.BudgetID
	}

	if req.PaidByParticipantID != nil || req.PaidByThirdParty != nil {
		var participantID string
		if req.PaidByParticipantID != nil {
			participantID = *req.PaidByParticipantID
		}
		payer, err := newPayer(participantID, req.PaidByThirdParty)
		if err != nil {
			return entity.Expense{}, err
		}
		if err := checkStatusPayer(e.Status, payer); err != nil {
			return entity.Expense{}, err
		}
		if err := checkPayerInTrip(ctx, repo, e.TripID, payer); err != nil {
			return entity.Expense{}, err
		}
		e.PaidBy = payer
	}

	if req.Status != nil && entity.ExpenseStatus(*req.Status) != e.Status {
		return entity.Expense{}, expense.ErrStatusChange
	}

	if req.Currency != nil {
		e.Currency = entity.CurrencyOrDefault(*req.Currency)
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if req.MerchantName != nil {
		e.MerchantName = strings.TrimSpace(*req.MerchantName)
	}
	if req.Tags != nil {
		e.Tags = *req.Tags
	}
	if req.Category != nil {
		e.Category = strings.TrimSpace(*req.Category)
	}
	if req.ExpenseDate != nil && *req.ExpenseDate != "" {
		expenseDate, err := parseExpenseDate(*req.ExpenseDate)
		if err != nil {
			return entity.Expense{}, err
		}
		e.ExpenseDate = expenseDate
	}

	if req.PaymentMethod != nil {
		e.PaymentMethod = entity.PaymentMethod(*req.PaymentMethod)
		if e.PaymentMethod == "" {
			e.PaymentMethod = entity.PaymentCash
		}
		if e.PaymentMethod == entity.PaymentCash && req.CardID == nil {
			e.CardID = ""
		}
	}
	if req.CardID != nil {
		if *req.CardID != "" {
			if _, err := repo.Cards.GetByID(ctx, *req.CardID); err != nil {
				return entity.Expense{}, err
			}
		}
		e.CardID = *req.CardID
	}
	if e.CardID != "" && e.PaymentMethod != entity.PaymentCard {
		return entity.Expense{}, expense.ErrCardNeedsCardPayment
	}

	if req.Amount != nil {
		e.Amount = calculator.Round2(*req.Amount)
		if !e.Amount.IsPositive() {
			return entity.Expense{}, expense.ErrInvalidAmount
		}
	}

	isDivisible := e.IsDivisible
	if req.IsDivisible != nil {
		isDivisible = *req.IsDivisible
	}
	toggled := isDivisible != e.IsDivisible
	splitsSupplied := req.Splits != nil || req.SplitType != nil

	switch {
	case isDivisible && (toggled || splitsSupplied):
		splitType := e.SplitType
		if req.SplitType != nil {
			splitType = entity.SplitType(*req.SplitType)
		}
		if splitType == "" || len(req.Splits) == 0 {
			return entity.Expense{}, expense.ErrSplitsRequired
		}
		splits, err := buildSplits(ctx, repo, e.TripID, e.Amount, splitType, req.Splits)
		if err != nil {
			return entity.Expense{}, err
		}
		e.SplitType, e.Splits = splitType, splits
	case isDivisible:
		if len(e.Splits) == 0 {
			return entity.Expense{}, expense.ErrSplitsRequired
		}
		if !e.Amount.Equal(oldAmount) {
			e.Splits = calculator.Rescale(e.Splits, oldAmount, e.Amount)
		}
	default:
		if len(req.Splits) > 0 {
			return entity.Expense{}, expense.ErrSplitsNotAllowed
		}
		e.SplitType, e.Splits = "", nil
	}
	e.IsDivisible = isDivisible

	if err := repo.Expenses.Update(ctx, e); err != nil {
		return entity.Expense{}, err
	}

	if req.Amount != nil || req.BudgetID != nil {
		if oldBudgetID != "" {
			if err := repo.Ledger.AdjustSpent(ctx, oldBudgetID, oldAmount.Neg()); err != nil {
				return entity.Expense{}, err
			}
		}
		if e.HasBudget() {
			if err := repo.Ledger.AdjustSpent(ctx, e.BudgetID, e.Amount); err != nil {
				return entity.Expense{}, err
			}
		}
	}

	updated, err := repo.Expenses.GetByID(ctx, id)
	if err != nil {
		return entity.Expense{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense update")
		return entity.Expense{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"expense_id": id,
	}).Info("Expense updated")

	s.announce(ctx, amqp.ExpenseUpdated, updated, userID)

	return updated, nil
}

func (s *expenseService) Remove(ctx context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.client(ctx, true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	e, err := repo.Expenses.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, e.TripID, userID); err != nil {
		return err
	}

	if err := repo.Expenses.Delete(ctx, id); err != nil {
		return err
	}

	if e.HasBudget() {
		if err := repo.Ledger.AdjustSpent(ctx, e.BudgetID, e.Amount.Neg()); err != nil {
			return err
		}
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense removal")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"expense_id": id,
	}).Info("Expense removed")

	s.announce(ctx, amqp.ExpenseDeleted, e, userID)

	return nil
}

// Settle moves a pending third-party expense to paid. There is no way back.
func (s *expenseService) Settle(ctx context.Context, userID string, id string) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.client(ctx, true)
	if err != nil {
		return entity.Expense{}, err
	}
	defer repo.Rollback()

	e, err := repo.Expenses.GetByID(ctx, id)
	if err != nil {
		return entity.Expense{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, e.TripID, userID); err != nil {
		return entity.Expense{}, err
	}

	if e.Status == entity.ExpensePaid {
		return entity.Expense{}, expense.ErrAlreadyPaid
	}
	if _, ok := e.ThirdParty(); !ok {
		return entity.Expense{}, expense.ErrSettleNeedsThirdParty
	}

	if err := repo.Expenses.UpdateStatus(ctx, id, entity.ExpensePaid); err != nil {
		return entity.Expense{}, err
	}

	settled, err := repo.Expenses.GetByID(ctx, id)
	if err != nil {
		return entity.Expense{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense settlement")
		return entity.Expense{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"expense_id": id,
	}).Info("Expense settled")

	s.announce(ctx, amqp.ExpenseSettled, settled, userID)

	return settled, nil
}

func (s *expenseService) client(ctx context.Context, tx bool) (expenseRepository.Client, error) {
	repo, err := s.expenseRepository.NewClient(tx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return expenseRepository.Client{}, err
	}
	return repo, nil
}

func checkBudget(ctx context.Context, repo expenseRepository.Client, tripID string, budgetID string) error {
	b, err := repo.Budgets.GetByID(ctx, budgetID)
	if err != nil {
		return err
	}
	if b.TripID != tripID {
		return budget.ErrBudgetWrongTrip
	}
	return nil
}

// newPayer turns the two mutually exclusive request fields into a Payer.
func newPayer(participantID string, thirdParty *expense.ThirdPartyPayerRequest) (entity.Payer, error) {
	switch {
	case participantID != "" && thirdParty != nil:
		return nil, expense.ErrPayerAmbiguous
	case participantID != "":
		return entity.ParticipantPayer{ParticipantID: participantID}, nil
	case thirdParty != nil:
		return entity.ThirdPartyPayer{
			Name:  strings.TrimSpace(thirdParty.Name),
			Email: strings.ToLower(strings.TrimSpace(thirdParty.Email)),
		}, nil
	default:
		return nil, expense.ErrPayerRequired
	}
}

func checkStatusPayer(status entity.ExpenseStatus, payer entity.Payer) error {
	_, isThirdParty := payer.(entity.ThirdPartyPayer)
	switch {
	case status == entity.ExpensePending && !isThirdParty:
		return expense.ErrPendingNeedsThirdParty
	case status == entity.ExpensePaid && isThirdParty:
		return expense.ErrPaidNeedsParticipant
	}
	return nil
}

func checkPayerInTrip(ctx context.Context, repo expenseRepository.Client, tripID string, payer entity.Payer) error {
	p, ok := payer.(entity.ParticipantPayer)
	if !ok {
		return nil
	}

	found, err := repo.Participants.GetByID(ctx, p.ParticipantID)
	if err != nil {
		if errors.Is(err, participant.ErrParticipantNotFound) {
			return expense.ErrPayerNotInTrip
		}
		return err
	}
	if found.TripID != tripID {
		return expense.ErrPayerNotInTrip
	}
	return nil
}

// buildSplits computes the split lines for a divisible expense and checks
// them against the trip roster and the amount.
func buildSplits(ctx context.Context, repo expenseRepository.Client, tripID string, amount decimal.Decimal, splitType entity.SplitType, reqs []expense.SplitRequest) ([]entity.Split, error) {
	var splits []entity.Split
	switch splitType {
	case entity.SplitEqual:
		ids := make([]string, 0, len(reqs))
		for _, r := range reqs {
			ids = append(ids, r.ParticipantID)
		}
		splits = calculator.EqualSplit(amount, ids)
	default:
		splits = make([]entity.Split, 0, len(reqs))
		for _, r := range reqs {
			split := entity.Split{ParticipantID: r.ParticipantID, Amount: calculator.Round2(r.Amount)}
			if r.Percentage != nil {
				split.Percentage = decimal.NewNullDecimal(*r.Percentage)
			}
			splits = append(splits, split)
		}
	}

	members, err := repo.Participants.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	roster := make(map[string]struct{}, len(members))
	for _, id := range entity.ParticipantIDs(members) {
		roster[id] = struct{}{}
	}
	for _, split := range splits {
		if _, ok := roster[split.ParticipantID]; !ok {
			return nil, expense.ErrSplitParticipantInvalid
		}
	}

	if !calculator.SumMatches(splits, amount) {
		return nil, expense.ErrSplitSumMismatch
	}

	return splits, nil
}
