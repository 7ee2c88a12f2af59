package cardService

import (
	"TravelLedger/internal/api/card"
	cardRepository "TravelLedger/internal/api/card/repository"
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

func (s *cardService) Create(ctx context.Context, userID string, req card.CreateCardRequest) (entity.Card, error) {
	requestID := contextPkg.GetRequestID(ctx)

	cardType, ok := entity.CardTypeOrDefault(req.Type)
	if !ok {
		return entity.Card{}, card.ErrInvalidType
	}

	repo, err := s.cardRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Card{}, err
	}

	if req.TripID != "" {
		if _, err := participant.EnsureAccess(ctx, repo.Participants, req.TripID, userID); err != nil {
			return entity.Card{}, err
		}
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Card{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	c := entity.Card{
		ID:             ULID,
		UserID:         userID,
		TripID:         req.TripID,
		Name:           strings.TrimSpace(req.Name),
		LastFourDigits: req.LastFourDigits,
		Type:           cardType,
		IsActive:       active,
	}

	if err := repo.Cards.Create(ctx, c); err != nil {
		return entity.Card{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"card_id":    c.ID,
		"user_id":    userID,
	}).Info("Card created")

	return repo.Cards.GetByID(ctx, c.ID)
}

func (s *cardService) ListMine(ctx context.Context, userID string) ([]entity.Card, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.cardRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	return repo.Cards.ListByUser(ctx, userID)
}

func (s *cardService) ListByTrip(ctx context.Context, userID string, tripID string) ([]entity.Card, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.cardRepository.NewClient(false)
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

	return repo.Cards.ListByTrip(ctx, tripID)
}

func (s *cardService) Get(ctx context.Context, userID string, id string) (entity.Card, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.cardRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Card{}, err
	}

	return owned(ctx, repo, userID, id)
}

func (s *cardService) Update(ctx context.Context, userID string, id string, req card.UpdateCardRequest) (entity.Card, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.Name == nil && req.LastFourDigits == nil && req.Type == nil && req.IsActive == nil && req.TripID == nil {
		return entity.Card{}, card.ErrEmptyUpdate
	}

	repo, err := s.cardRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Card{}, err
	}

	c, err := owned(ctx, repo, userID, id)
	if err != nil {
		return entity.Card{}, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.LastFourDigits != nil {
		c.LastFourDigits = *req.LastFourDigits
	}
	if req.Type != nil {
		cardType, ok := entity.CardTypeOrDefault(*req.Type)
		if !ok {
			return entity.Card{}, card.ErrInvalidType
		}
		c.Type = cardType
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.TripID != nil {
		if *req.TripID != "" {
			if _, err := participant.EnsureAccess(ctx, repo.Participants, *req.TripID, userID); err != nil {
				return entity.Card{}, err
			}
		}
		c.TripID = *req.TripID
	}

	if err := repo.Cards.Update(ctx, c); err != nil {
		return entity.Card{}, err
	}

	return repo.Cards.GetByID(ctx, id)
}

func (s *cardService) Delete(ctx context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.cardRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if _, err := owned(ctx, repo, userID, id); err != nil {
		return err
	}

	if err := repo.Cards.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"card_id":    id,
	}).Info("Card deleted")

	return nil
}

func owned(ctx context.Context, repo cardRepository.Client, userID string, id string) (entity.Card, error) {
	c, err := repo.Cards.GetByID(ctx, id)
	if err != nil {
		return entity.Card{}, err
	}
	if c.UserID != userID {
		return entity.Card{}, card.ErrCardForbidden
	}
	return c, nil
}
