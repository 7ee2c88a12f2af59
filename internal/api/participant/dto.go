package participant

import "time"

type AddGuestRequest struct {
	TripID string `json:"tripId" validate:"required"`
	Name   string `json:"name" validate:"required,min=2,max=100"`
	Email  string `json:"email" validate:"omitempty,email,max=255"`
}

type InviteRequest struct {
	TripID string `json:"tripId" validate:"required"`
	Email  string `json:"email" validate:"required,email,max=255"`
}

type SendGuestInvitationRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type ParticipantResponse struct {
	ID           string    `json:"id"`
	TripID       string    `json:"tripId"`
	UserID       string    `json:"userId,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	GuestName    string    `json:"guestName,omitempty"`
	GuestEmail   string    `json:"guestEmail,omitempty"`
	Role         string    `json:"role"`
	IsGuest      bool      `json:"isGuest"`
	InvitationID string    `json:"invitationId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type InvitationResponse struct {
	ID            string    `json:"id"`
	TripID        string    `json:"tripId"`
	Email         string    `json:"email"`
	InvitedBy     string    `json:"invitedBy"`
	ParticipantID string    `json:"participantId,omitempty"`
	Status        string    `json:"status"`
	ExpiresAt     time.Time `json:"expiresAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

type InvitationInfoResponse struct {
	Invitation  InvitationResponse `json:"invitation"`
	TripName    string             `json:"tripName"`
	InviterName string             `json:"inviterName"`
	UserExists  bool               `json:"userExists"`
}

type AcceptInvitationResponse struct {
	Success              bool                 `json:"success"`
	Message              string               `json:"message"`
	RequiresRegistration bool                 `json:"requiresRegistration,omitempty"`
	Email                string               `json:"email,omitempty"`
	Participant          *ParticipantResponse `json:"participant,omitempty"`
}
