package participantService

import (
	"TravelLedger/internal/api/auth"
	"TravelLedger/internal/api/participant"
	participantRepository "TravelLedger/internal/api/participant/repository"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"TravelLedger/pkg/redis"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

const invitationTokenBytes = 32

func (s *participantService) Invite(ctx context.Context, userID string, req participant.InviteRequest) (entity.Invitation, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.participantRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Invitation{}, err
	}

	trip, err := repo.Trips.GetByID(ctx, req.TripID)
	if err != nil {
		return entity.Invitation{}, err
	}

	if _, err := participant.EnsureOwner(ctx, repo.Participants, trip.ID, userID); err != nil {
		return entity.Invitation{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureInvitable(ctx, repo, trip.ID, email); err != nil {
		return entity.Invitation{}, err
	}

	inv, err := s.issueInvitation(ctx, repo, trip.ID, userID, email, "")
	if err != nil {
		return entity.Invitation{}, err
	}

	s.announce(ctx, repo, inv, trip)

	return inv, nil
}

func (s *participantService) SendInvitationToGuest(ctx context.Context, userID string, participantID string, req participant.SendGuestInvitationRequest) (entity.Invitation, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.participantRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Invitation{}, err
	}
	defer repo.Rollback()

	guest, err := repo.Participants.GetByID(ctx, participantID)
	if err != nil {
		return entity.Invitation{}, err
	}

	if _, err := participant.EnsureOwner(ctx, repo.Participants, guest.TripID, userID); err != nil {
		return entity.Invitation{}, err
	}

	if !guest.IsGuest() {
		return entity.Invitation{}, participant.ErrNotAGuest
	}

	trip, err := repo.Trips.GetByID(ctx, guest.TripID)
	if err != nil {
		return entity.Invitation{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureInvitable(ctx, repo, trip.ID, email); err != nil {
		return entity.Invitation{}, err
	}

	inv, err := s.issueInvitation(ctx, repo, trip.ID, userID, email, guest.ID)
	if err != nil {
		return entity.Invitation{}, err
	}

	if err := repo.Participants.SetInvitation(ctx, guest.ID, inv.ID); err != nil {
		return entity.Invitation{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit guest invitation")
		return entity.Invitation{}, err
	}

	reader, err := s.participantRepository.NewClient(false)
	if err != nil {
		return inv, nil
	}
	s.announce(ctx, reader, inv, trip)

	return inv, nil
}

func (s *participantService) GetInvitationInfo(ctx context.Context, token string) (participant.InvitationInfoResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.participantRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return participant.InvitationInfoResponse{}, err
	}

	inv, err := s.resolveToken(ctx, repo, token)
	if err != nil {
		return participant.InvitationInfoResponse{}, err
	}

	if err := s.ensureUsable(ctx, repo, inv); err != nil {
		return participant.InvitationInfoResponse{}, err
	}

	trip, err := repo.Trips.GetByID(ctx, inv.TripID)
	if err != nil {
		return participant.InvitationInfoResponse{}, err
	}

	var inviterName string
	inviter, err := repo.Users.GetByID(ctx, inv.InvitedBy)
	if err == nil {
		inviterName = inviter.FullName()
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return participant.InvitationInfoResponse{}, err
	}

	userExists := true
	if _, err := repo.Users.GetByEmail(ctx, inv.Email); err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) {
			return participant.InvitationInfoResponse{}, err
		}
		userExists = false
	}

	return participant.InvitationInfoResponse{
		Invitation:  MakeInvitationResponse(inv),
		TripName:    trip.Name,
		InviterName: inviterName,
		UserExists:  userExists,
	}, nil
}

// AcceptInvitation joins the invited account to the trip. userID is empty
// when the caller is anonymous, in which case the account is resolved from
// the invitation email.
func (s *participantService) AcceptInvitation(ctx context.Context, token string, userID string) (participant.AcceptInvitationResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	reader, err := s.participantRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return participant.AcceptInvitationResponse{}, err
	}

	inv, err := s.resolveToken(ctx, reader, token)
	if err != nil {
		return participant.AcceptInvitationResponse{}, err
	}

	if err := s.ensureUsable(ctx, reader, inv); err != nil {
		return participant.AcceptInvitationResponse{}, err
	}

	user, err := reader.Users.GetByEmail(ctx, inv.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return participant.AcceptInvitationResponse{
				Success:              false,
				Message:              "you need an account to accept this invitation",
				RequiresRegistration: true,
				Email:                inv.Email,
			}, nil
		}
		return participant.AcceptInvitationResponse{}, err
	}

	if userID != "" && userID != user.ID {
		return participant.AcceptInvitationResponse{}, participant.ErrInvitationWrongUser
	}

	repo, err := s.participantRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return participant.AcceptInvitationResponse{}, err
	}
	defer repo.Rollback()

	message := "you joined the trip"
	var participantID string

	existing, err := repo.Participants.GetByTripAndUser(ctx, inv.TripID, user.ID)
	switch {
	case err == nil:
		participantID = existing.ID
		message = "you are already a participant of this trip"
	case !errors.Is(err, participant.ErrParticipantNotFound):
		return participant.AcceptInvitationResponse{}, err
	}

	if participantID == "" && inv.ParticipantID != "" {
		guest, err := repo.Participants.GetByID(ctx, inv.ParticipantID)
		if err != nil && !errors.Is(err, participant.ErrParticipantNotFound) {
			return participant.AcceptInvitationResponse{}, err
		}
		if err == nil && guest.IsGuest() && guest.TripID == inv.TripID {
			if err := repo.Participants.UpgradeGuest(ctx, guest.ID, user.ID); err != nil {
				return participant.AcceptInvitationResponse{}, err
			}
			participantID = guest.ID
		}
	}

	if participantID == "" {
		ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate ULID")
			return participant.AcceptInvitationResponse{}, err
		}

		member := entity.Participant{
			ID:     ULID,
			TripID: inv.TripID,
			UserID: user.ID,
			Role:   entity.RoleMember,
		}
		if err := repo.Participants.Create(ctx, member); err != nil {
			return participant.AcceptInvitationResponse{}, err
		}
		participantID = member.ID
	}

	if err := repo.Invitations.UpdateStatus(ctx, inv.ID, entity.InvitationAccepted); err != nil {
		return participant.AcceptInvitationResponse{}, err
	}

	joined, err := repo.Participants.GetByID(ctx, participantID)
	if err != nil {
		return participant.AcceptInvitationResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit invitation acceptance")
		return participant.AcceptInvitationResponse{}, err
	}

	s.evict(ctx, inv.Token)

	s.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"trip_id":        inv.TripID,
		"participant_id": joined.ID,
	}).Info("Invitation accepted")

	res := MakeParticipantResponse(joined)
	return participant.AcceptInvitationResponse{
		Success:     true,
		Message:     message,
		Participant: &res,
	}, nil
}

func (s *participantService) CancelInvitation(ctx context.Context, userID string, invitationID string) (entity.Invitation, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.participantRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Invitation{}, err
	}

	inv, err := repo.Invitations.GetByID(ctx, invitationID)
	if err != nil {
		return entity.Invitation{}, err
	}

	if _, err := participant.EnsureOwner(ctx, repo.Participants, inv.TripID, userID); err != nil {
		return entity.Invitation{}, err
	}

	if !inv.IsPending() {
		return entity.Invitation{}, participant.ErrInvitationNotPending
	}

	if err := repo.Invitations.UpdateStatus(ctx, inv.ID, entity.InvitationCancelled); err != nil {
		return entity.Invitation{}, err
	}

	s.evict(ctx, inv.Token)

	inv.Status = entity.InvitationCancelled
	return inv, nil
}

func (s *participantService) PendingInvitations(ctx context.Context, userID string, tripID string) ([]entity.Invitation, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.participantRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	if _, err := participant.EnsureOwner(ctx, repo.Participants, tripID, userID); err != nil {
		return nil, err
	}

	return repo.Invitations.ListPendingByTrip(ctx, tripID)
}

func (s *participantService) ensureInvitable(ctx context.Context, repo participantRepository.Client, tripID string, email string) error {
	if _, err := repo.Participants.GetByTripAndUserEmail(ctx, tripID, email); err == nil {
		return participant.ErrAlreadyParticipant
	} else if !errors.Is(err, participant.ErrParticipantNotFound) {
		return err
	}

	if _, err := repo.Invitations.GetPendingByTripAndEmail(ctx, tripID, email); err == nil {
		return participant.ErrInvitationPending
	} else if !errors.Is(err, participant.ErrInvitationNotFound) {
		return err
	}

	return nil
}

func (s *participantService) issueInvitation(ctx context.Context, repo participantRepository.Client, tripID string, inviterID string, email string, participantID string) (entity.Invitation, error) {
	requestID := contextPkg.GetRequestID(ctx)

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Invitation{}, err
	}

	token, err := s.utils.NewToken(invitationTokenBytes)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate invitation token")
		return entity.Invitation{}, err
	}

	inv := entity.Invitation{
		ID:            ULID,
		TripID:        tripID,
		Email:         email,
		InvitedBy:     inviterID,
		ParticipantID: participantID,
		Token:         token,
		Status:        entity.InvitationPending,
		ExpiresAt:     time.Now().UTC().Add(s.invitationTTL),
	}

	if err := repo.Invitations.Create(ctx, inv); err != nil {
		return entity.Invitation{}, err
	}

	return repo.Invitations.GetByID(ctx, inv.ID)
}

// announce caches the token and mails the invitee. Neither failure is
// surfaced to the caller.
func (s *participantService) announce(ctx context.Context, repo participantRepository.Client, inv entity.Invitation, trip entity.Trip) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.redis.Set(ctx, invitationCacheKey(inv.Token), inv.ID, s.invitationTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to cache invitation token")
	}

	inviterName := "A trip organizer"
	if inviter, err := repo.Users.GetByID(ctx, inv.InvitedBy); err == nil {
		inviterName = inviter.FullName()
	}

	if err := s.smtp.SendTripInvitation(inv.Email, inviterName, trip.Name, inv.Token); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":    requestID,
			"invitation_id": inv.ID,
			"error":         err.Error(),
		}).Error("Failed to send invitation email")
		return
	}

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"invitation_id": inv.ID,
		"trip_id":       trip.ID,
	}).Info("Invitation sent")
}

func (s *participantService) resolveToken(ctx context.Context, repo participantRepository.Client, token string) (entity.Invitation, error) {
	requestID := contextPkg.GetRequestID(ctx)

	id, err := s.redis.Get(ctx, invitationCacheKey(token))
	if err == nil {
		inv, err := repo.Invitations.GetByID(ctx, id)
		if err == nil && inv.Token == token {
			return inv, nil
		}
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invitation cache unavailable, falling back to database")
	}

	inv, err := repo.Invitations.GetByToken(ctx, token)
	if err != nil {
		return entity.Invitation{}, err
	}

	if ttl := time.Until(inv.ExpiresAt); inv.IsPending() && ttl > 0 {
		_ = s.redis.Set(ctx, invitationCacheKey(token), inv.ID, ttl)
	}

	return inv, nil
}

func (s *participantService) ensureUsable(ctx context.Context, repo participantRepository.Client, inv entity.Invitation) error {
	if !inv.IsPending() {
		return participant.ErrInvitationNotPending
	}

	if inv.IsExpired(time.Now()) {
		if err := repo.Invitations.UpdateStatus(ctx, inv.ID, entity.InvitationExpired); err != nil {
			return err
		}
		s.evict(ctx, inv.Token)
		return participant.ErrInvitationExpired
	}

	return nil
}

func (s *participantService) evict(ctx context.Context, token string) {
	if err := s.redis.Del(ctx, invitationCacheKey(token)); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to evict invitation token")
	}
}
