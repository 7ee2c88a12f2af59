package participantService

import (
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/entity"
)

const invitationCachePrefix = "invitation:"

func invitationCacheKey(token string) string {
	return invitationCachePrefix + token
}

func MakeParticipantResponse(p entity.Participant) participant.ParticipantResponse {
	email := p.UserEmail
	if email == "" {
		email = p.GuestEmail
	}

	return participant.ParticipantResponse{
		ID:           p.ID,
		TripID:       p.TripID,
		UserID:       p.UserID,
		Name:         p.DisplayName(),
		Email:        email,
		GuestName:    p.GuestName,
		GuestEmail:   p.GuestEmail,
		Role:         string(p.Role),
		IsGuest:      p.IsGuest(),
		InvitationID: p.InvitationID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func MakeParticipantsResponse(ps []entity.Participant) []participant.ParticipantResponse {
	res := make([]participant.ParticipantResponse, 0, len(ps))
	for _, p := range ps {
		res = append(res, MakeParticipantResponse(p))
	}
	return res
}

func MakeInvitationResponse(inv entity.Invitation) participant.InvitationResponse {
	return participant.InvitationResponse{
		ID:            inv.ID,
		TripID:        inv.TripID,
		Email:         inv.Email,
		InvitedBy:     inv.InvitedBy,
		ParticipantID: inv.ParticipantID,
		Status:        string(inv.Status),
		ExpiresAt:     inv.ExpiresAt,
		CreatedAt:     inv.CreatedAt,
	}
}

func MakeInvitationsResponse(invs []entity.Invitation) []participant.InvitationResponse {
	res := make([]participant.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		res = append(res, MakeInvitationResponse(inv))
	}
	return res
}
