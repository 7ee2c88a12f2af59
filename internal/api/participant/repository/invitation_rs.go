package participantRepository

import (
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/sirupsen/logrus"
	"strings"
	"time"
)

type InvitationDB struct {
	ID            sql.NullString `db:"id"`
	TripID        sql.NullString `db:"trip_id"`
	Email         sql.NullString `db:"email"`
	InvitedBy     sql.NullString `db:"invited_by"`
	ParticipantID sql.NullString `db:"participant_id"`
	Token         sql.NullString `db:"token"`
	Status        sql.NullString `db:"status"`
	ExpiresAt     sql.NullTime   `db:"expires_at"`
	CreatedAt     sql.NullTime   `db:"created_at"`
	UpdatedAt     sql.NullTime   `db:"updated_at"`
}

func (r *invitationRepository) Create(c context.Context, inv entity.Invitation) error {
	requestID := contextPkg.GetRequestID(c)

	status := inv.Status
	if status == "" {
		status = entity.InvitationPending
	}

	now := time.Now().UTC()
	argsKV := map[string]interface{}{
		"id":             inv.ID,
		"trip_id":        inv.TripID,
		"email":          strings.ToLower(strings.TrimSpace(inv.Email)),
		"invited_by":     inv.InvitedBy,
		"participant_id": nullString(inv.ParticipantID),
		"token":          inv.Token,
		"status":         string(status),
		"expires_at":     inv.ExpiresAt.UTC(),
		"created_at":     now,
		"updated_at":     now,
	}

	if _, err := execNamed(c, r.q, r.log, queryCreateInvitation, argsKV, "CreateInvitation"); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"trip_id":    inv.TripID,
			"error":      err.Error(),
		}).Error("Database error when creating invitation")
		return participant.ErrCreateInvitation
	}

	return nil
}

func (r *invitationRepository) GetByID(c context.Context, id string) (entity.Invitation, error) {
	return r.getOne(c, queryGetInvitationByID, map[string]interface{}{"id": id}, "GetInvitationByID")
}

func (r *invitationRepository) GetByToken(c context.Context, token string) (entity.Invitation, error) {
	return r.getOne(c, queryGetInvitationByToken, map[string]interface{}{"token": token}, "GetInvitationByToken")
}

func (r *invitationRepository) GetPendingByTripAndEmail(c context.Context, tripID string, email string) (entity.Invitation, error) {
	return r.getOne(c, queryGetPendingInvitationByTripAndEmail, map[string]interface{}{
		"trip_id": tripID,
		"email":   strings.ToLower(strings.TrimSpace(email)),
	}, "GetPendingInvitationByTripAndEmail")
}

func (r *invitationRepository) getOne(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.Invitation, error) {
	requestID := contextPkg.GetRequestID(c)
	var row InvitationDB

	if err := getNamed(c, r.q, r.log, &row, namedQuery, argsKV, op); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Debug(op + " no rows found")
			return entity.Invitation{}, participant.ErrInvitationNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Invitation{}, err
	}

	return makeInvitation(row), nil
}

func (r *invitationRepository) ListPendingByTrip(c context.Context, tripID string) ([]entity.Invitation, error) {
	var rows []InvitationDB

	if err := selectNamed(c, r.q, r.log, &rows, queryListPendingInvitationsByTrip, map[string]interface{}{
		"trip_id": tripID,
	}, "ListPendingInvitationsByTrip"); err != nil {
		return nil, err
	}

	result := make([]entity.Invitation, 0, len(rows))
	for _, row := range rows {
		result = append(result, makeInvitation(row))
	}

	return result, nil
}

func (r *invitationRepository) UpdateStatus(c context.Context, id string, status entity.InvitationStatus) error {
	requestID := contextPkg.GetRequestID(c)

	res, err := execNamed(c, r.q, r.log, queryUpdateInvitationStatus, map[string]interface{}{
		"id":         id,
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}, "UpdateInvitationStatus")
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateInvitationStatus execution err")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return participant.ErrInvitationNotFound
	}

	return nil
}

func (r *invitationRepository) CancelPendingForParticipant(c context.Context, participantID string) error {
	requestID := contextPkg.GetRequestID(c)

	if _, err := execNamed(c, r.q, r.log, queryCancelPendingForParticipant, map[string]interface{}{
		"participant_id": participantID,
		"updated_at":     time.Now().UTC(),
	}, "CancelPendingForParticipant"); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CancelPendingForParticipant execution err")
		return err
	}

	return nil
}

func makeInvitation(row InvitationDB) entity.Invitation {
	var expiresAt, createdAt, updatedAt time.Time

	if row.ExpiresAt.Valid {
		expiresAt = row.ExpiresAt.Time
	}

	if row.CreatedAt.Valid {
		createdAt = row.CreatedAt.Time
	}

	if row.UpdatedAt.Valid {
		updatedAt = row.UpdatedAt.Time
	}

	return entity.Invitation{
		ID:            row.ID.String,
		TripID:        row.TripID.String,
		Email:         row.Email.String,
		InvitedBy:     row.InvitedBy.String,
		ParticipantID: row.ParticipantID.String,
		Token:         row.Token.String,
		Status:        entity.InvitationStatus(row.Status.String),
		ExpiresAt:     expiresAt,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}
