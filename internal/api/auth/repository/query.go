package authRepository

const (
	queryCreateUser = `
INSERT INTO users (id, email, first_name, last_name, password, created_at, updated_at)
VALUES (:id, :email, :first_name, :last_name, :password, :created_at, :updated_at)`

	queryGetById = `
SELECT id, email, first_name, last_name, password, created_at, updated_at
FROM users
WHERE id = :id`

	queryGetByEmail = `
SELECT id, email, first_name, last_name, password, created_at, updated_at
FROM users
WHERE email = :email`
)
