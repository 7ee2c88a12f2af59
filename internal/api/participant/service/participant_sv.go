package participantService

import (
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

func (s *participantService) AddGuest(ctx context.Context, userID string, req participant.AddGuestRequest) (entity.Participant, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.participantRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Participant{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, req.TripID, userID); err != nil {
		return entity.Participant{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" {
		if _, err := repo.Participants.GetByTripAndGuestEmail(ctx, req.TripID, email); err == nil {
			return entity.Participant{}, participant.ErrGuestEmailTaken
		} else if !errors.Is(err, participant.ErrParticipantNotFound) {
			return entity.Participant{}, err
		}

		if _, err := repo.Participants.GetByTripAndUserEmail(ctx, req.TripID, email); err == nil {
			return entity.Participant{}, participant.ErrAccountAlreadyMember
		} else if !errors.Is(err, participant.ErrParticipantNotFound) {
			return entity.Participant{}, err
		}
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Participant{}, err
	}

	guest := entity.Participant{
		ID:         ULID,
		TripID:     req.TripID,
		GuestName:  strings.TrimSpace(req.Name),
		GuestEmail: email,
		Role:       entity.RoleMember,
	}

	if err := repo.Participants.Create(ctx, guest); err != nil {
		return entity.Participant{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"trip_id":        req.TripID,
		"participant_id": guest.ID,
	}).Info("Guest participant added")

	return repo.Participants.GetByID(ctx, guest.ID)
}

func (s *participantService) ListByTrip(ctx context.Context, userID string, tripID string) ([]entity.Participant, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.participantRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, tripID, userID); err != nil {
		return nil, err
	}

	return repo.Participants.ListByTrip(ctx, tripID)
}

// Remove deletes a participant by participant id or, failing that, by the
// linked user id. Pending invitations of the target are cancelled.
func (s *participantService) Remove(ctx context.Context, userID string, tripID string, target string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.participantRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	owner, err := participant.EnsureOwner(ctx, repo.Participants, tripID, userID)
	if err != nil {
		return err
	}

	victim, err := repo.Participants.GetByID(ctx, target)
	if err != nil && !errors.Is(err, participant.ErrParticipantNotFound) {
		return err
	}
	if err != nil || victim.TripID != tripID {
		victim, err = repo.Participants.GetByTripAndUser(ctx, tripID, target)
		if err != nil {
			return err
		}
	}

	if victim.ID == owner.ID {
		return participant.ErrCannotRemoveSelf
	}

	if err := repo.Invitations.CancelPendingForParticipant(ctx, victim.ID); err != nil {
		return err
	}

	if err := repo.Participants.Delete(ctx, victim.ID); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit participant removal")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"trip_id":        tripID,
		"participant_id": victim.ID,
	}).Info("Participant removed")

	return nil
}
