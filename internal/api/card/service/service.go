package cardService

import (
	"TravelLedger/internal/api/card"
	cardRepository "TravelLedger/internal/api/card/repository"
	"TravelLedger/internal/entity"
	"TravelLedger/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type CardService interface {
	Create(ctx context.Context, userID string, req card.CreateCardRequest) (entity.Card, error)
	ListMine(ctx context.Context, userID string) ([]entity.Card, error)
	ListByTrip(ctx context.Context, userID string, tripID string) ([]entity.Card, error)
	Get(ctx context.Context, userID string, id string) (entity.Card, error)
	Update(ctx context.Context, userID string, id string, req card.UpdateCardRequest) (entity.Card, error)
	Delete(ctx context.Context, userID string, id string) error
}

type cardService struct {
	log            *logrus.Logger
	cardRepository cardRepository.Repository
	utils          utils.IUtils
}

func New(log *logrus.Logger, cardRepo cardRepository.Repository, utils utils.IUtils) CardService {
	return &cardService{
		log:            log,
		cardRepository: cardRepo,
		utils:          utils,
	}
}

func MakeCardResponse(c entity.Card) card.CardResponse {
	return card.CardResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		TripID:         c.TripID,
		Name:           c.Name,
		LastFourDigits: c.LastFourDigits,
		Type:           string(c.Type),
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func MakeCardsResponse(cs []entity.Card) []card.CardResponse {
	res := make([]card.CardResponse, 0, len(cs))
	for _, c := range cs {
		res = append(res, MakeCardResponse(c))
	}
	return res
}
