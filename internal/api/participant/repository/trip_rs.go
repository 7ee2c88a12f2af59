package participantRepository

import (
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/sirupsen/logrus"
)

type tripRow struct {
	ID           sql.NullString `db:"id"`
	Name         sql.NullString `db:"name"`
	BaseCurrency sql.NullString `db:"base_currency"`
	CreatedBy    sql.NullString `db:"created_by"`
	CreatedAt    sql.NullTime   `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
}

func (r *tripLookup) GetByID(c context.Context, id string) (entity.Trip, error) {
	requestID := contextPkg.GetRequestID(c)
	var row tripRow

	if err := getNamed(c, r.q, r.log, &row, queryLookupTrip, map[string]interface{}{"id": id}, "LookupTrip"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Trip{}, participant.ErrTripNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("LookupTrip execution err")
		return entity.Trip{}, err
	}

	return entity.Trip{
		ID:           row.ID.String,
		Name:         row.Name.String,
		BaseCurrency: row.BaseCurrency.String,
		CreatedBy:    row.CreatedBy.String,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}, nil
}
