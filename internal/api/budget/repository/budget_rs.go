package budgetRepository

import (
	"TravelLedger/internal/api/budget"
	"TravelLedger/internal/calculator"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"time"
)

type BudgetDB struct {
	ID        sql.NullString      `db:"id"`
	TripID    sql.NullString      `db:"trip_id"`
	Name      sql.NullString      `db:"name"`
	Amount    decimal.NullDecimal `db:"amount"`
	Currency  sql.NullString      `db:"currency"`
	Spent     decimal.NullDecimal `db:"spent"`
	CreatedBy sql.NullString      `db:"created_by"`
	CreatedAt sql.NullTime        `db:"created_at"`
	UpdatedAt sql.NullTime        `db:"updated_at"`
}

func (r *budgetRepository) Create(c context.Context, b entity.Budget) error {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now().UTC()
	argsKV := map[string]interface{}{
		"id":         b.ID,
		"trip_id":    b.TripID,
		"name":       b.Name,
		"amount":     calculator.Round2(b.Amount).StringFixed(2),
		"currency":   b.Currency,
		"created_by": b.CreatedBy,
		"created_at": now,
		"updated_at": now,
	}

	query, args, err := sqlx.Named(queryCreateBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateBudget")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating budget")
		return err
	}

	return nil
}

func (r *budgetRepository) GetByID(c context.Context, id string) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	var row BudgetDB

	query, args, err := sqlx.Named(queryGetBudgetByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetByID named query preparation err")
		return entity.Budget{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"budget_id":  id,
			}).Warn("GetBudgetByID no rows found")
			return entity.Budget{}, budget.ErrBudgetNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetByID execution err")
		return entity.Budget{}, err
	}

	return r.makeBudget(row), nil
}

func (r *budgetRepository) ListByTrip(c context.Context, tripID string) ([]entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []BudgetDB

	query, args, err := sqlx.Named(queryListBudgetsByTrip, map[string]interface{}{"trip_id": tripID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListBudgetsByTrip named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListBudgetsByTrip execution err")
		return nil, err
	}

	result := make([]entity.Budget, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeBudget(row))
	}

	return result, nil
}

// Update rewrites the caller-editable fields. spent is left to the ledger.
func (r *budgetRepository) Update(c context.Context, b entity.Budget) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         b.ID,
		"name":       b.Name,
		"amount":     calculator.Round2(b.Amount).StringFixed(2),
		"currency":   b.Currency,
		"updated_at": time.Now().UTC(),
	}

	query, args, err := sqlx.Named(queryUpdateBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateBudget")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating budget")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return budget.ErrBudgetNotFound
	}

	return nil
}

func (r *budgetRepository) Delete(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteBudget, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteBudget")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting budget")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return budget.ErrBudgetNotFound
	}

	return nil
}

func (r *budgetRepository) makeBudget(row BudgetDB) entity.Budget {
	var createdAt, updatedAt time.Time

	if row.CreatedAt.Valid {
		createdAt = row.CreatedAt.Time
	}

	if row.UpdatedAt.Valid {
		updatedAt = row.UpdatedAt.Time
	}

	return entity.Budget{
		ID:        row.ID.String,
		TripID:    row.TripID.String,
		Name:      row.Name.String,
		Amount:    calculator.Round2(row.Amount.Decimal),
		Currency:  row.Currency.String,
		Spent:     calculator.Round2(row.Spent.Decimal),
		CreatedBy: row.CreatedBy.String,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}
