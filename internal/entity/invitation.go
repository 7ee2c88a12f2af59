package entity

import "time"

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationExpired   InvitationStatus = "expired"
	InvitationCancelled InvitationStatus = "cancelled"
)

type Invitation struct {
	ID            string
	TripID        string
	Email         string
	InvitedBy     string
	ParticipantID string
	Token         string
	Status        InvitationStatus
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (i Invitation) IsPending() bool {
	return i.Status == InvitationPending
}

func (i Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
