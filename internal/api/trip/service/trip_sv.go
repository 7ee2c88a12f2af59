package tripService

import (
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/api/trip"
	"TravelLedger/internal/entity"
	contextPkg "TravelLedger/pkg/context"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

// Create stores the trip and makes the caller its owner in one transaction.
func (s *tripService) Create(ctx context.Context, userID string, req trip.CreateTripRequest) (entity.Trip, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tripRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Trip{}, err
	}
	defer repo.Rollback()

	tripID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Trip{}, err
	}

	ownerID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Trip{}, err
	}

	t := entity.Trip{
		ID:           tripID,
		Name:         strings.TrimSpace(req.Name),
		BaseCurrency: entity.CurrencyOrDefault(req.BaseCurrency),
		CreatedBy:    userID,
	}

	if err := repo.Trips.Create(ctx, t); err != nil {
		return entity.Trip{}, err
	}

	if err := repo.Participants.Create(ctx, entity.Participant{
		ID:     ownerID,
		TripID: t.ID,
		UserID: userID,
		Role:   entity.RoleOwner,
	}); err != nil {
		return entity.Trip{}, err
	}

	created, err := repo.Trips.GetByID(ctx, t.ID)
	if err != nil {
		return entity.Trip{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit trip creation")
		return entity.Trip{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"trip_id":    created.ID,
		"user_id":    userID,
	}).Info("Trip created")

	return created, nil
}

func (s *tripService) List(ctx context.Context, userID string) ([]entity.Trip, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tripRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	return repo.Trips.ListByUser(ctx, userID)
}

func (s *tripService) Get(ctx context.Context, userID string, tripID string) (entity.Trip, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tripRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Trip{}, err
	}

	if _, err := participant.EnsureAccess(ctx, repo.Participants, tripID, userID); err != nil {
		return entity.Trip{}, err
	}

	return repo.Trips.GetByID(ctx, tripID)
}

func (s *tripService) Update(ctx context.Context, userID string, tripID string, req trip.UpdateTripRequest) (entity.Trip, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.Name == nil && req.BaseCurrency == nil {
		return entity.Trip{}, trip.ErrEmptyUpdate
	}

	repo, err := s.tripRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Trip{}, err
	}

	if _, err := participant.EnsureOwner(ctx, repo.Participants, tripID, userID); err != nil {
		return entity.Trip{}, err
	}

	t, err := repo.Trips.GetByID(ctx, tripID)
	if err != nil {
		return entity.Trip{}, err
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.BaseCurrency != nil {
		t.BaseCurrency = entity.CurrencyOrDefault(*req.BaseCurrency)
	}

	if err := repo.Trips.Update(ctx, t); err != nil {
		return entity.Trip{}, err
	}

	return repo.Trips.GetByID(ctx, tripID)
}

func (s *tripService) Delete(ctx context.Context, userID string, tripID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tripRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if _, err := participant.EnsureOwner(ctx, repo.Participants, tripID, userID); err != nil {
		return err
	}

	if err := repo.Trips.Delete(ctx, tripID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"trip_id":    tripID,
	}).Info("Trip deleted")

	return nil
}
