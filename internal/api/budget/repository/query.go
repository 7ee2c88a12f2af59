package budgetRepository

const (
	queryCreateBudget = `
INSERT INTO budgets (id, trip_id, name, amount, currency, spent, created_by, created_at, updated_at)
VALUES (:id, :trip_id, :name, CAST(:amount AS NUMERIC), :currency, 0, :created_by, :created_at, :updated_at)`

	queryGetBudgetByID = `
SELECT id, trip_id, name, amount, currency, spent, created_by, created_at, updated_at
FROM budgets
WHERE id = :id`

	queryListBudgetsByTrip = `
SELECT id, trip_id, name, amount, currency, spent, created_by, created_at, updated_at
FROM budgets
WHERE trip_id = :trip_id
ORDER BY created_at DESC, id DESC`

	queryUpdateBudget = `
UPDATE budgets
SET name = :name, amount = CAST(:amount AS NUMERIC), currency = :currency, updated_at = :updated_at
WHERE id = :id`

	queryDeleteBudget = `
DELETE FROM budgets
WHERE id = :id`

	queryAdjustSpent = `
UPDATE budgets
SET spent = spent + CAST(:delta AS NUMERIC), updated_at = :updated_at
WHERE id = :id`

	querySetSpent = `
UPDATE budgets
SET spent = CAST(:spent AS NUMERIC), updated_at = :updated_at
WHERE id = :id`

	querySumExpensesByBudget = `
SELECT COALESCE(SUM(amount), 0) AS total
FROM expenses
WHERE budget_id = :budget_id`
)
