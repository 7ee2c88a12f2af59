package tripService

import (
	"TravelLedger/internal/api/trip"
	tripRepository "TravelLedger/internal/api/trip/repository"
	"TravelLedger/internal/entity"
	"TravelLedger/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type TripService interface {
	Create(ctx context.Context, userID string, req trip.CreateTripRequest) (entity.Trip, error)
	List(ctx context.Context, userID string) ([]entity.Trip, error)
	Get(ctx context.Context, userID string, tripID string) (entity.Trip, error)
	Update(ctx context.Context, userID string, tripID string, req trip.UpdateTripRequest) (entity.Trip, error)
	Delete(ctx context.Context, userID string, tripID string) error
}

type tripService struct {
	log            *logrus.Logger
	tripRepository tripRepository.Repository
	utils          utils.IUtils
}

func New(log *logrus.Logger, tripRepo tripRepository.Repository, utils utils.IUtils) TripService {
	return &tripService{
		log:            log,
		tripRepository: tripRepo,
		utils:          utils,
	}
}

func MakeTripResponse(t entity.Trip) trip.TripResponse {
	return trip.TripResponse{
		ID:           t.ID,
		Name:         t.Name,
		BaseCurrency: t.BaseCurrency,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func MakeTripsResponse(ts []entity.Trip) []trip.TripResponse {
	res := make([]trip.TripResponse, 0, len(ts))
	for _, t := range ts {
		res = append(res, MakeTripResponse(t))
	}
	return res
}
