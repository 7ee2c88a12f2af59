package expenseRepository

import (
	"TravelLedger/internal/api/expense"
	"TravelLedger/internal/calculator"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"time"
)

type ExpenseDB struct {
	ID                  sql.NullString      `db:"id"`
	TripID              sql.NullString      `db:"trip_id"`
	BudgetID            sql.NullString      `db:"budget_id"`
	Amount              decimal.NullDecimal `db:"amount"`
	Currency            sql.NullString      `db:"currency"`
	Description         sql.NullString      `db:"description"`
	MerchantName        sql.NullString      `db:"merchant_name"`
	Tags                sql.NullString      `db:"tags"`
	Category            sql.NullString      `db:"category"`
	PaidByParticipantID sql.NullString      `db:"paid_by_participant_id"`
	ThirdPartyName      sql.NullString      `db:"third_party_name"`
	ThirdPartyEmail     sql.NullString      `db:"third_party_email"`
	Status              sql.NullString      `db:"status"`
	PaymentMethod       sql.NullString      `db:"payment_method"`
	CardID              sql.NullString      `db:"card_id"`
	IsDivisible         sql.NullBool        `db:"is_divisible"`
	SplitType           sql.NullString      `db:"split_type"`
	CreatedBy           sql.NullString      `db:"created_by"`
	ExpenseDate         sql.NullTime        `db:"expense_date"`
	CreatedAt           sql.NullTime        `db:"created_at"`
	UpdatedAt           sql.NullTime        `db:"updated_at"`
}

type SplitDB struct {
	ExpenseID     sql.NullString      `db:"expense_id"`
	Position      sql.NullInt64       `db:"position"`
	ParticipantID sql.NullString      `db:"participant_id"`
	Amount        decimal.NullDecimal `db:"amount"`
	Percentage    decimal.NullDecimal `db:"percentage"`
}

func (r *expenseRepository) Create(c context.Context, e entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now().UTC()

	argsKV, err := expenseArgs(e)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode expense tags")
		return err
	}
	argsKV["created_by"] = e.CreatedBy
	argsKV["created_at"] = now
	argsKV["updated_at"] = now

	query, args, err := sqlx.Named(queryCreateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateExpense")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"trip_id":    e.TripID,
			"error":      err.Error(),
		}).Error("Database error when creating expense")
		return err
	}

	return r.insertSplits(c, e.ID, e.Splits)
}

func (r *expenseRepository) GetByID(c context.Context, id string) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var row ExpenseDB

	query, args, err := sqlx.Named(queryGetExpenseByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID named query preparation err")
		return entity.Expense{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Expense{}, expense.ErrExpenseNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID execution err")
		return entity.Expense{}, err
	}

	var splitRows []SplitDB
	if err := r.selectNamed(c, &splitRows, queryListSplitsByExpense, map[string]interface{}{"expense_id": id}, "ListSplitsByExpense"); err != nil {
		return entity.Expense{}, err
	}

	return r.makeExpense(row, splitRows), nil
}

// ListByTrip loads the trip's expenses, newest expense date first, with
// their splits in list order.
func (r *expenseRepository) ListByTrip(c context.Context, filter ListFilter) ([]entity.Expense, error) {
	argsKV := map[string]interface{}{"trip_id": filter.TripID}
	namedQuery := queryListExpensesByTrip
	if filter.BudgetID != "" {
		namedQuery += "\nAND budget_id = :budget_id"
		argsKV["budget_id"] = filter.BudgetID
	}
	if filter.Status != "" {
		namedQuery += "\nAND status = :status"
		argsKV["status"] = string(filter.Status)
	}
	namedQuery += orderExpenses

	var rows []ExpenseDB
	if err := r.selectNamed(c, &rows, namedQuery, argsKV, "ListExpensesByTrip"); err != nil {
		return nil, err
	}

	var splitRows []SplitDB
	if err := r.selectNamed(c, &splitRows, queryListSplitsByTrip, map[string]interface{}{"trip_id": filter.TripID}, "ListSplitsByTrip"); err != nil {
		return nil, err
	}

	byExpense := make(map[string][]SplitDB)
	for _, s := range splitRows {
		byExpense[s.ExpenseID.String] = append(byExpense[s.ExpenseID.String], s)
	}

	result := make([]entity.Expense, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeExpense(row, byExpense[row.ID.String]))
	}

	return result, nil
}

// Update rewrites the expense row and replaces its splits.
func (r *expenseRepository) Update(c context.Context, e entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV, err := expenseArgs(e)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode expense tags")
		return err
	}
	argsKV["updated_at"] = time.Now().UTC()

	if err := r.exec(c, queryUpdateExpense, argsKV, "UpdateExpense"); err != nil {
		return err
	}

	if err := r.exec(c, queryDeleteSplits, map[string]interface{}{"expense_id": e.ID}, "DeleteSplits"); err != nil && !errors.Is(err, expense.ErrExpenseNotFound) {
		return err
	}

	return r.insertSplits(c, e.ID, e.Splits)
}

func (r *expenseRepository) UpdateStatus(c context.Context, id string, status entity.ExpenseStatus) error {
	return r.exec(c, queryUpdateExpenseStatus, map[string]interface{}{
		"id":         id,
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}, "UpdateExpenseStatus")
}

func (r *expenseRepository) Delete(c context.Context, id string) error {
	return r.exec(c, queryDeleteExpense, map[string]interface{}{"id": id}, "DeleteExpense")
}

func (r *expenseRepository) insertSplits(c context.Context, expenseID string, splits []entity.Split) error {
	for i, s := range splits {
		var percentage interface{}
		if s.Percentage.Valid {
			percentage = calculator.Round2(s.Percentage.Decimal).StringFixed(2)
		}

		argsKV := map[string]interface{}{
			"expense_id":     expenseID,
			"position":       i,
			"participant_id": s.ParticipantID,
			"amount":         calculator.Round2(s.Amount).StringFixed(2),
			"percentage":     percentage,
		}
		if err := r.exec(c, queryCreateSplit, argsKV, "CreateSplit"); err != nil {
			return err
		}
	}
	return nil
}

// exec runs a named statement. Zero affected rows is reported as
// ErrExpenseNotFound.
func (r *expenseRepository) exec(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for " + op)
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error on " + op)
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) selectNamed(c context.Context, dest interface{}, namedQuery string, argsKV map[string]interface{}, op string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, dest, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return err
	}

	return nil
}

// expenseArgs maps the columns shared by insert and update.
func expenseArgs(e entity.Expense) (map[string]interface{}, error) {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	encodedTags, err := jsoniter.MarshalToString(tags)
	if err != nil {
		return nil, err
	}

	argsKV := map[string]interface{}{
		"id":                     e.ID,
		"trip_id":                e.TripID,
		"budget_id":              nullString(e.BudgetID),
		"amount":                 calculator.Round2(e.Amount).StringFixed(2),
		"currency":               e.Currency,
		"description":            e.Description,
		"merchant_name":          nullString(e.MerchantName),
		"tags":                   encodedTags,
		"category":               nullString(e.Category),
		"paid_by_participant_id": sql.NullString{},
		"third_party_name":       sql.NullString{},
		"third_party_email":      sql.NullString{},
		"status":                 string(e.Status),
		"payment_method":         string(e.PaymentMethod),
		"card_id":                nullString(e.CardID),
		"is_divisible":           e.IsDivisible,
		"split_type":             nullString(string(e.SplitType)),
		"expense_date":           e.ExpenseDate.UTC(),
	}

	switch p := e.PaidBy.(type) {
	case entity.ParticipantPayer:
		argsKV["paid_by_participant_id"] = nullString(p.ParticipantID)
	case entity.ThirdPartyPayer:
		argsKV["third_party_name"] = nullString(p.Name)
		argsKV["third_party_email"] = nullString(p.Email)
	}

	return argsKV, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *expenseRepository) makeExpense(row ExpenseDB, splitRows []SplitDB) entity.Expense {
	var expenseDate, createdAt, updatedAt time.Time

	if row.ExpenseDate.Valid {
		expenseDate = row.ExpenseDate.Time
	}

	if row.CreatedAt.Valid {
		createdAt = row.CreatedAt.Time
	}

	if row.UpdatedAt.Valid {
		updatedAt = row.UpdatedAt.Time
	}

	tags := []string{}
	if row.Tags.Valid && row.Tags.String != "" {
		if err := jsoniter.UnmarshalFromString(row.Tags.String, &tags); err != nil {
			r.log.WithFields(logrus.Fields{
				"expense_id": row.ID.String,
				"error":      err.Error(),
			}).Warn("Ignoring malformed expense tags")
			tags = []string{}
		}
	}

	var paidBy entity.Payer
	if row.PaidByParticipantID.Valid {
		paidBy = entity.ParticipantPayer{ParticipantID: row.PaidByParticipantID.String}
	} else if row.ThirdPartyName.Valid {
		paidBy = entity.ThirdPartyPayer{Name: row.ThirdPartyName.String, Email: row.ThirdPartyEmail.String}
	}

	var splits []entity.Split
	for _, s := range splitRows {
		split := entity.Split{
			ParticipantID: s.ParticipantID.String,
			Amount:        calculator.Round2(s.Amount.Decimal),
		}
		if s.Percentage.Valid {
			split.Percentage = decimal.NewNullDecimal(calculator.Round2(s.Percentage.Decimal))
		}
		splits = append(splits, split)
	}

	return entity.Expense{
		ID:            row.ID.String,
		TripID:        row.TripID.String,
		BudgetID:      row.BudgetID.String,
		Amount:        calculator.Round2(row.Amount.Decimal),
		Currency:      row.Currency.String,
		Description:   row.Description.String,
		MerchantName:  row.MerchantName.String,
		Tags:          tags,
		Category:      row.Category.String,
		PaidBy:        paidBy,
		Status:        entity.ExpenseStatus(row.Status.String),
		PaymentMethod: entity.PaymentMethod(row.PaymentMethod.String),
		CardID:        row.CardID.String,
		IsDivisible:   row.IsDivisible.Bool,
		SplitType:     entity.SplitType(row.SplitType.String),
		Splits:        splits,
		CreatedBy:     row.CreatedBy.String,
		ExpenseDate:   expenseDate,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}
