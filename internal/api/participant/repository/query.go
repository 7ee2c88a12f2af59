package participantRepository

const (
	participantColumns = `
SELECT p.id, p.trip_id, p.user_id, p.guest_name, p.guest_email, p.role, p.invitation_id,
       p.created_at, p.updated_at,
       u.first_name AS user_first_name, u.last_name AS user_last_name, u.email AS user_email
FROM participants p
LEFT JOIN users u ON u.id = p.user_id`

	queryCreateParticipant = `
INSERT INTO participants (id, trip_id, user_id, guest_name, guest_email, role, invitation_id, created_at, updated_at)
VALUES (:id, :trip_id, :user_id, :guest_name, :guest_email, :role, :invitation_id, :created_at, :updated_at)`

	queryGetParticipantByID = participantColumns + `
WHERE p.id = :id`

	queryGetParticipantByTripAndUser = participantColumns + `
WHERE p.trip_id = :trip_id AND p.user_id = :user_id`

	queryGetParticipantByTripAndGuestEmail = participantColumns + `
WHERE p.trip_id = :trip_id AND p.guest_email = :email`

	queryGetParticipantByTripAndUserEmail = participantColumns + `
WHERE p.trip_id = :trip_id AND u.email = :email`

	queryListParticipantsByTrip = participantColumns + `
WHERE p.trip_id = :trip_id
ORDER BY p.created_at ASC, p.id ASC`

	queryUpgradeGuest = `
UPDATE participants
SET user_id = :user_id, invitation_id = NULL, updated_at = :updated_at
WHERE id = :id`

	querySetParticipantInvitation = `
UPDATE participants
SET invitation_id = :invitation_id, updated_at = :updated_at
WHERE id = :id`

	queryDeleteParticipant = `
DELETE FROM participants
WHERE id = :id`

	invitationColumns = `
SELECT id, trip_id, email, invited_by, participant_id, token, status, expires_at, created_at, updated_at
FROM invitations`

	queryCreateInvitation = `
INSERT INTO invitations (id, trip_id, email, invited_by, participant_id, token, status, expires_at, created_at, updated_at)
VALUES (:id, :trip_id, :email, :invited_by, :participant_id, :token, :status, :expires_at, :created_at, :updated_at)`

	queryGetInvitationByID = invitationColumns + `
WHERE id = :id`

	queryGetInvitationByToken = invitationColumns + `
WHERE token = :token`

	queryGetPendingInvitationByTripAndEmail = invitationColumns + `
WHERE trip_id = :trip_id AND email = :email AND status = 'pending'`

	queryListPendingInvitationsByTrip = invitationColumns + `
WHERE trip_id = :trip_id AND status = 'pending'
ORDER BY created_at DESC, id DESC`

	queryUpdateInvitationStatus = `
UPDATE invitations
SET status = :status, updated_at = :updated_at
WHERE id = :id`

	queryCancelPendingForParticipant = `
UPDATE invitations
SET status = 'cancelled', updated_at = :updated_at
WHERE participant_id = :participant_id AND status = 'pending'`

	queryLookupTrip = `
SELECT id, name, base_currency, created_by, created_at, updated_at
FROM trips
WHERE id = :id`
)
