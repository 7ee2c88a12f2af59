package entity

import (
	"errors"
	"strings"
	"time"
)

type ParticipantRole string

const (
	RoleOwner  ParticipantRole = "owner"
	RoleMember ParticipantRole = "member"
)

var ErrParticipantIdentity = errors.New("participant must have exactly one of user or guest name")

// Participant is one person's membership in one trip. A guest has no
// UserID. An upgraded guest keeps GuestName and GuestEmail for display.
type Participant struct {
	ID           string
	TripID       string
	UserID       string
	GuestName    string
	GuestEmail   string
	Role         ParticipantRole
	InvitationID string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Populated when the registry joins the linked account.
	UserFirstName string
	UserLastName  string
	UserEmail     string
}

func (p Participant) IsGuest() bool {
	return p.UserID == ""
}

func (p Participant) IsOwner() bool {
	return p.Role == RoleOwner
}

// ValidateNew checks the identity rule for a participant about to be created.
func (p Participant) ValidateNew() error {
	hasUser := p.UserID != ""
	hasGuest := strings.TrimSpace(p.GuestName) != ""
	if hasUser == hasGuest {
		return ErrParticipantIdentity
	}
	return nil
}

func (p Participant) DisplayName() string {
	if p.GuestName != "" {
		return p.GuestName
	}
	name := strings.TrimSpace(p.UserFirstName + " " + p.UserLastName)
	if name == "" {
		return "Unnamed"
	}
	return name
}

// ParticipantIDs returns the ids of ps in order.
func ParticipantIDs(ps []Participant) []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}
