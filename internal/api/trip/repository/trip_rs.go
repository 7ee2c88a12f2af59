package tripRepository

import (
	"TravelLedger/internal/api/trip"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type TripDB struct {
	ID           sql.NullString `db:"id"`
	Name         sql.NullString `db:"name"`
	BaseCurrency sql.NullString `db:"base_currency"`
	CreatedBy    sql.NullString `db:"created_by"`
	CreatedAt    sql.NullTime   `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
}

func (r *tripRepository) Create(c context.Context, t entity.Trip) error {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now().UTC()
	argsKV := map[string]interface{}{
		"id":            t.ID,
		"name":          t.Name,
		"base_currency": t.BaseCurrency,
		"created_by":    t.CreatedBy,
		"created_at":    now,
		"updated_at":    now,
	}

	query, args, err := sqlx.Named(queryCreateTrip, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTrip")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating trip")
		return err
	}

	return nil
}

func (r *tripRepository) GetByID(c context.Context, id string) (entity.Trip, error) {
	requestID := contextPkg.GetRequestID(c)
	var row TripDB

	query, args, err := sqlx.Named(queryGetTripByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTripByID named query preparation err")
		return entity.Trip{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Trip{}, trip.ErrTripNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTripByID execution err")
		return entity.Trip{}, err
	}

	return r.makeTrip(row), nil
}

func (r *tripRepository) ListByUser(c context.Context, userID string) ([]entity.Trip, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []TripDB

	query, args, err := sqlx.Named(queryListTripsByUser, map[string]interface{}{"user_id": userID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListTripsByUser named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListTripsByUser execution err")
		return nil, err
	}

	result := make([]entity.Trip, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeTrip(row))
	}

	return result, nil
}

func (r *tripRepository) Update(c context.Context, t entity.Trip) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            t.ID,
		"name":          t.Name,
		"base_currency": t.BaseCurrency,
		"updated_at":    time.Now().UTC(),
	}

	query, args, err := sqlx.Named(queryUpdateTrip, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateTrip")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating trip")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return trip.ErrTripNotFound
	}

	return nil
}

func (r *tripRepository) Delete(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteTrip, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteTrip")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting trip")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return trip.ErrTripNotFound
	}

	return nil
}

func (r *tripRepository) makeTrip(row TripDB) entity.Trip {
	var createdAt, updatedAt time.Time

	if row.CreatedAt.Valid {
		createdAt = row.CreatedAt.Time
	}

	if row.UpdatedAt.Valid {
		updatedAt = row.UpdatedAt.Time
	}

	return entity.Trip{
		ID:           row.ID.String,
		Name:         row.Name.String,
		BaseCurrency: row.BaseCurrency.String,
		CreatedBy:    row.CreatedBy.String,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}
