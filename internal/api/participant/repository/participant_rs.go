package participantRepository

import (
	"TravelLedger/database/dberr"
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

type ParticipantDB struct {
	ID            sql.NullString `db:"id"`
	TripID        sql.NullString `db:"trip_id"`
	UserID        sql.NullString `db:"user_id"`
	GuestName     sql.NullString `db:"guest_name"`
	GuestEmail    sql.NullString `db:"guest_email"`
	Role          sql.NullString `db:"role"`
	InvitationID  sql.NullString `db:"invitation_id"`
	CreatedAt     sql.NullTime   `db:"created_at"`
	UpdatedAt     sql.NullTime   `db:"updated_at"`
	UserFirstName sql.NullString `db:"user_first_name"`
	UserLastName  sql.NullString `db:"user_last_name"`
	UserEmail     sql.NullString `db:"user_email"`
}

func (r *participantRepository) Create(c context.Context, p entity.Participant) error {
	requestID := contextPkg.GetRequestID(c)

	if err := p.ValidateNew(); err != nil {
		return participant.ErrInvalidParticipant
	}

	role := p.Role
	if role == "" {
		role = entity.RoleMember
	}

	now := time.Now().UTC()
	argsKV := map[string]interface{}{
		"id":            p.ID,
		"trip_id":       p.TripID,
		"user_id":       nullString(p.UserID),
		"guest_name":    nullString(strings.TrimSpace(p.GuestName)),
		"guest_email":   nullString(strings.ToLower(strings.TrimSpace(p.GuestEmail))),
		"role":          string(role),
		"invitation_id": nullString(p.InvitationID),
		"created_at":    now,
		"updated_at":    now,
	}

	if _, err := execNamed(c, r.q, r.log, queryCreateParticipant, argsKV, "CreateParticipant"); err != nil {
		if dberr.IsUniqueViolation(err) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"trip_id":    p.TripID,
				"error":      err.Error(),
			}).Warn("Participant already exists in trip")
			if p.UserID != "" {
				return participant.ErrAlreadyParticipant
			}
			return participant.ErrGuestEmailTaken
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating participant")
		return err
	}

	return nil
}

func (r *participantRepository) GetByID(c context.Context, id string) (entity.Participant, error) {
	return r.getOne(c, queryGetParticipantByID, map[string]interface{}{"id": id}, "GetParticipantByID")
}

func (r *participantRepository) GetByTripAndUser(c context.Context, tripID string, userID string) (entity.Participant, error) {
	return r.getOne(c, queryGetParticipantByTripAndUser, map[string]interface{}{
		"trip_id": tripID,
		"user_id": userID,
	}, "GetParticipantByTripAndUser")
}

func (r *participantRepository) GetByTripAndGuestEmail(c context.Context, tripID string, email string) (entity.Participant, error) {
	return r.getOne(c, queryGetParticipantByTripAndGuestEmail, map[string]interface{}{
		"trip_id": tripID,
		"email":   strings.ToLower(strings.TrimSpace(email)),
	}, "GetParticipantByTripAndGuestEmail")
}

func (r *participantRepository) GetByTripAndUserEmail(c context.Context, tripID string, email string) (entity.Participant, error) {
	return r.getOne(c, queryGetParticipantByTripAndUserEmail, map[string]interface{}{
		"trip_id": tripID,
		"email":   strings.ToLower(strings.TrimSpace(email)),
	}, "GetParticipantByTripAndUserEmail")
}

func (r *participantRepository) getOne(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.Participant, error) {
	requestID := contextPkg.GetRequestID(c)
	var row ParticipantDB

	if err := getNamed(c, r.q, r.log, &row, namedQuery, argsKV, op); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Debug(op + " no rows found")
			return entity.Participant{}, participant.ErrParticipantNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Participant{}, err
	}

	return makeParticipant(row), nil
}

func (r *participantRepository) ListByTrip(c context.Context, tripID string) ([]entity.Participant, error) {
	var rows []ParticipantDB

	if err := selectNamed(c, r.q, r.log, &rows, queryListParticipantsByTrip, map[string]interface{}{
		"trip_id": tripID,
	}, "ListParticipantsByTrip"); err != nil {
		return nil, err
	}

	result := make([]entity.Participant, 0, len(rows))
	for _, row := range rows {
		result = append(result, makeParticipant(row))
	}

	return result, nil
}

func (r *participantRepository) UpgradeGuest(c context.Context, id string, userID string) error {
	return r.update(c, queryUpgradeGuest, map[string]interface{}{
		"id":         id,
		"user_id":    userID,
		"updated_at": time.Now().UTC(),
	}, "UpgradeGuest")
}

func (r *participantRepository) SetInvitation(c context.Context, id string, invitationID string) error {
	return r.update(c, querySetParticipantInvitation, map[string]interface{}{
		"id":            id,
		"invitation_id": nullString(invitationID),
		"updated_at":    time.Now().UTC(),
	}, "SetParticipantInvitation")
}

func (r *participantRepository) Delete(c context.Context, id string) error {
	return r.update(c, queryDeleteParticipant, map[string]interface{}{"id": id}, "DeleteParticipant")
}

func (r *participantRepository) update(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) error {
	requestID := contextPkg.GetRequestID(c)

	res, err := execNamed(c, r.q, r.log, namedQuery, argsKV, op)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return participant.ErrAlreadyParticipant
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return participant.ErrParticipantNotFound
	}

	return nil
}

func makeParticipant(row ParticipantDB) entity.Participant {
	var createdAt, updatedAt time.Time

	if row.CreatedAt.Valid {
		createdAt = row.CreatedAt.Time
	}

	if row.UpdatedAt.Valid {
		updatedAt = row.UpdatedAt.Time
	}

	return entity.Participant{
		ID:            row.ID.String,
		TripID:        row.TripID.String,
		UserID:        row.UserID.String,
		GuestName:     row.GuestName.String,
		GuestEmail:    row.GuestEmail.String,
		Role:          entity.ParticipantRole(row.Role.String),
		InvitationID:  row.InvitationID.String,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
		UserFirstName: row.UserFirstName.String,
		UserLastName:  row.UserLastName.String,
		UserEmail:     row.UserEmail.String,
	}
}
