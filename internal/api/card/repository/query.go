package cardRepository

const (
	queryCreateCard = `
INSERT INTO cards (id, user_id, trip_id, name, last_four_digits, type, is_active, created_at, updated_at)
VALUES (:id, :user_id, :trip_id, :name, :last_four_digits, :type, :is_active, :created_at, :updated_at)`

	queryGetCardByID = `
SELECT id, user_id, trip_id, name, last_four_digits, type, is_active, created_at, updated_at
FROM cards
WHERE id = :id`

	queryListCardsByUser = `
SELECT id, user_id, trip_id, name, last_four_digits, type, is_active, created_at, updated_at
FROM cards
WHERE user_id = :user_id
ORDER BY created_at DESC, id DESC`

	queryListCardsByTrip = `
SELECT id, user_id, trip_id, name, last_four_digits, type, is_active, created_at, updated_at
FROM cards
WHERE trip_id = :trip_id
ORDER BY created_at DESC, id DESC`

	queryUpdateCard = `
UPDATE cards
SET trip_id = :trip_id, name = :name, last_four_digits = :last_four_digits, type = :type, is_active = :is_active, updated_at = :updated_at
WHERE id = :id`

	queryDeleteCard = `
DELETE FROM cards
WHERE id = :id`
)
