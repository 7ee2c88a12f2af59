package tripRepository

const (
	queryCreateTrip = `
INSERT INTO trips (id, name, base_currency, created_by, created_at, updated_at)
VALUES (:id, :name, :base_currency, :created_by, :created_at, :updated_at)`

	queryGetTripByID = `
SELECT id, name, base_currency, created_by, created_at, updated_at
FROM trips
WHERE id = :id`

	queryListTripsByUser = `
SELECT t.id, t.name, t.base_currency, t.created_by, t.created_at, t.updated_at
FROM trips t
JOIN participants p ON p.trip_id = t.id
WHERE p.user_id = :user_id
ORDER BY t.created_at DESC, t.id DESC`

	queryUpdateTrip = `
UPDATE trips
SET name = :name, base_currency = :base_currency, updated_at = :updated_at
WHERE id = :id`

	queryDeleteTrip = `
DELETE FROM trips
WHERE id = :id`
)
