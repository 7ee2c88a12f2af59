package participant

import (
	"TravelLedger/pkg/response"
	"net/http"
)

var (
	ErrNoTripAccess          = response.NewError(http.StatusForbidden, "no access to this trip or the trip doesn't exist")
	ErrOwnerOnly             = response.NewError(http.StatusForbidden, "only the trip owner can do this")
	ErrTripNotFound          = response.NewError(http.StatusNotFound, "trip not found")
	ErrParticipantNotFound   = response.NewError(http.StatusNotFound, "participant not found")
	ErrInvitationNotFound    = response.NewError(http.StatusNotFound, "invitation not found")
	ErrGuestEmailTaken       = response.NewError(http.StatusConflict, "a guest with this email already exists in the trip")
	ErrAccountAlreadyMember  = response.NewError(http.StatusConflict, "a user with this email is already a participant of the trip")
	ErrAlreadyParticipant    = response.NewError(http.StatusBadRequest, "this user is already a participant of the trip")
	ErrInvitationPending     = response.NewError(http.StatusBadRequest, "a pending invitation already exists for this email")
	ErrInvitationNotPending  = response.NewError(http.StatusBadRequest, "this invitation is no longer valid")
	ErrInvitationExpired     = response.NewError(http.StatusBadRequest, "this invitation has expired")
	ErrInvitationWrongUser   = response.NewError(http.StatusForbidden, "this invitation belongs to another account")
	ErrNotAGuest             = response.NewError(http.StatusBadRequest, "participant is not a guest")
	ErrCannotRemoveSelf      = response.NewError(http.StatusBadRequest, "you cannot remove yourself from the trip")
	ErrInvalidParticipant    = response.NewError(http.StatusBadRequest, "participant must have exactly one of user or guest name")
	ErrCreateParticipant     = response.NewError(http.StatusInternalServerError, "failed to create participant")
	ErrCreateInvitation      = response.NewError(http.StatusInternalServerError, "failed to create invitation")
)
