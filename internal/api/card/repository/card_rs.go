package cardRepository

import (
	"TravelLedger/internal/api/card"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type CardDB struct {
	ID             sql.NullString `db:"id"`
	UserID         sql.NullString `db:"user_id"`
	TripID         sql.NullString `db:"trip_id"`
	Name           sql.NullString `db:"name"`
	LastFourDigits sql.NullString `db:"last_four_digits"`
	Type           sql.NullString `db:"type"`
	IsActive       sql.NullBool   `db:"is_active"`
	CreatedAt      sql.NullTime   `db:"created_at"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
}

func (r *cardRepository) Create(c context.Context, cd entity.Card) error {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now().UTC()
	argsKV := map[string]interface{}{
		"id":               cd.ID,
		"user_id":          cd.UserID,
		"trip_id":          sql.NullString{String: cd.TripID, Valid: cd.TripID != ""},
		"name":             cd.Name,
		"last_four_digits": cd.LastFourDigits,
		"type":             string(cd.Type),
		"is_active":        cd.IsActive,
		"created_at":       now,
		"updated_at":       now,
	}

	query, args, err := sqlx.Named(queryCreateCard, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCard")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating card")
		return err
	}

	return nil
}

func (r *cardRepository) GetByID(c context.Context, id string) (entity.Card, error) {
	requestID := contextPkg.GetRequestID(c)
	var row CardDB

	query, args, err := sqlx.Named(queryGetCardByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCardByID named query preparation err")
		return entity.Card{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Card{}, card.ErrCardNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCardByID execution err")
		return entity.Card{}, err
	}

	return r.makeCard(row), nil
}

func (r *cardRepository) ListByUser(c context.Context, userID string) ([]entity.Card, error) {
	return r.list(c, queryListCardsByUser, map[string]interface{}{"user_id": userID}, "ListCardsByUser")
}

func (r *cardRepository) ListByTrip(c context.Context, tripID string) ([]entity.Card, error) {
	return r.list(c, queryListCardsByTrip, map[string]interface{}{"trip_id": tripID}, "ListCardsByTrip")
}

func (r *cardRepository) list(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) ([]entity.Card, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []CardDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return nil, err
	}

	result := make([]entity.Card, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeCard(row))
	}

	return result, nil
}

func (r *cardRepository) Update(c context.Context, cd entity.Card) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":               cd.ID,
		"trip_id":          sql.NullString{String: cd.TripID, Valid: cd.TripID != ""},
		"name":             cd.Name,
		"last_four_digits": cd.LastFourDigits,
		"type":             string(cd.Type),
		"is_active":        cd.IsActive,
		"updated_at":       time.Now().UTC(),
	}

	query, args, err := sqlx.Named(queryUpdateCard, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateCard")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating card")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return card.ErrCardNotFound
	}

	return nil
}

func (r *cardRepository) Delete(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteCard, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteCard")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting card")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return card.ErrCardNotFound
	}

	return nil
}

func (r *cardRepository) makeCard(row CardDB) entity.Card {
	var createdAt, updatedAt time.Time

	if row.CreatedAt.Valid {
		createdAt = row.CreatedAt.Time
	}

	if row.UpdatedAt.Valid {
		updatedAt = row.UpdatedAt.Time
	}

	return entity.Card{
		ID:             row.ID.String,
		UserID:         row.UserID.String,
		TripID:         row.TripID.String,
		Name:           row.Name.String,
		LastFourDigits: row.LastFourDigits.String,
		Type:           entity.CardType(row.Type.String),
		IsActive:       row.IsActive.Bool,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}
