package budgetRepository

import (
	"TravelLedger/internal/api/budget"
	"TravelLedger/internal/calculator"
	contextPkg "TravelLedger/pkg/context"
	"TravelLedger/pkg/metrics"
	"context"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"time"
)

// AdjustSpent applies delta in place so concurrent writers never lose an
// update.
func (r *ledgerRepository) AdjustSpent(c context.Context, budgetID string, delta decimal.Decimal) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         budgetID,
		"delta":      calculator.Round2(delta).StringFixed(2),
		"updated_at": time.Now().UTC(),
	}

	query, args, err := sqlx.Named(queryAdjustSpent, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for AdjustSpent")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"budget_id":  budgetID,
			"error":      err.Error(),
		}).Error("Database error when adjusting budget spent")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return budget.ErrBudgetNotFound
	}

	metrics.BudgetAdjustments.Inc()

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"budget_id":  budgetID,
		"delta":      delta.StringFixed(2),
	}).Debug("Budget spent adjusted")

	return nil
}

func (r *ledgerRepository) SumExpenses(c context.Context, budgetID string) (decimal.Decimal, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(querySumExpensesByBudget, map[string]interface{}{"budget_id": budgetID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SumExpenses named query preparation err")
		return decimal.Zero, err
	}
	query = r.q.Rebind(query)

	var total decimal.NullDecimal
	if err := r.q.QueryRowxContext(c, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SumExpenses execution err")
		return decimal.Zero, err
	}

	return calculator.Round2(total.Decimal), nil
}

func (r *ledgerRepository) SetSpent(c context.Context, budgetID string, spent decimal.Decimal) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         budgetID,
		"spent":      calculator.Round2(spent).StringFixed(2),
		"updated_at": time.Now().UTC(),
	}

	query, args, err := sqlx.Named(querySetSpent, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for SetSpent")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when setting budget spent")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return budget.ErrBudgetNotFound
	}

	return nil
}
