package participantService

import (
	"TravelLedger/internal/api/participant"
	participantRepository "TravelLedger/internal/api/participant/repository"
	"TravelLedger/internal/entity"
	"TravelLedger/pkg/redis"
	"TravelLedger/pkg/smtp"
	"TravelLedger/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type ParticipantService interface {
	AddGuest(ctx context.Context, userID string, req participant.AddGuestRequest) (entity.Participant, error)
	ListByTrip(ctx context.Context, userID string, tripID string) ([]entity.Participant, error)
	Remove(ctx context.Context, userID string, tripID string, target string) error

	Invite(ctx context.Context, userID string, req participant.InviteRequest) (entity.Invitation, error)
	SendInvitationToGuest(ctx context.Context, userID string, participantID string, req participant.SendGuestInvitationRequest) (entity.Invitation, error)
	GetInvitationInfo(ctx context.Context, token string) (participant.InvitationInfoResponse, error)
	AcceptInvitation(ctx context.Context, token string, userID string) (participant.AcceptInvitationResponse, error)
	CancelInvitation(ctx context.Context, userID string, invitationID string) (entity.Invitation, error)
	PendingInvitations(ctx context.Context, userID string, tripID string) ([]entity.Invitation, error)
}

type participantService struct {
	log                   *logrus.Logger
	participantRepository participantRepository.Repository
	redis                 redis.IRedis
	smtp                  smtp.ItfSmtp
	utils                 utils.IUtils
	invitationTTL         time.Duration
}

func New(
	log *logrus.Logger,
	participantRepo participantRepository.Repository,
	redis redis.IRedis,
	smtp smtp.ItfSmtp,
	utils utils.IUtils,
	invitationTTL time.Duration,
) ParticipantService {
	return &participantService{
		log:                   log,
		participantRepository: participantRepo,
		redis:                 redis,
		smtp:                  smtp,
		utils:                 utils,
		invitationTTL:         invitationTTL,
	}
}
