package participant

import (
	"TravelLedger/internal/entity"
	"errors"
	"golang.org/x/net/context"
)

type MembershipReader interface {
	GetByTripAndUser(ctx context.Context, tripID string, userID string) (entity.Participant, error)
}

// EnsureAccess returns the caller's participant record for the trip. A
// missing record and a missing trip are reported the same way.
func EnsureAccess(ctx context.Context, r MembershipReader, tripID string, userID string) (entity.Participant, error) {
	p, err := r.GetByTripAndUser(ctx, tripID, userID)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return entity.Participant{}, ErrNoTripAccess
		}
		return entity.Participant{}, err
	}
	return p, nil
}

// EnsureOwner is EnsureAccess restricted to the trip owner.
func EnsureOwner(ctx context.Context, r MembershipReader, tripID string, userID string) (entity.Participant, error) {
	p, err := EnsureAccess(ctx, r, tripID, userID)
	if err != nil {
		return entity.Participant{}, err
	}
	if !p.IsOwner() {
		return entity.Participant{}, ErrOwnerOnly
	}
	return p, nil
}
