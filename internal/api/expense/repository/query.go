package expenseRepository

const expenseColumns = `id, trip_id, budget_id, amount, currency, description, merchant_name, tags, category,
paid_by_participant_id, third_party_name, third_party_email, status, payment_method, card_id,
is_divisible, split_type, created_by, expense_date, created_at, updated_at`

const (
	queryCreateExpense = `
INSERT INTO expenses (id, trip_id, budget_id, amount, currency, description, merchant_name, tags, category,
	paid_by_participant_id, third_party_name, third_party_email, status, payment_method, card_id,
	is_divisible, split_type, created_by, expense_date, created_at, updated_at)
VALUES (:id, :trip_id, :budget_id, CAST(:amount AS NUMERIC), :currency, :description, :merchant_name, :tags, :category,
	:paid_by_participant_id, :third_party_name, :third_party_email, :status, :payment_method, :card_id,
	:is_divisible, :split_type, :created_by, :expense_date, :created_at, :updated_at)`

	queryGetExpenseByID = `
SELECT ` + expenseColumns + `
FROM expenses
WHERE id = :id`

	queryUpdateExpense = `
UPDATE expenses
SET budget_id = :budget_id, amount = CAST(:amount AS NUMERIC), currency = :currency, description = :description,
	merchant_name = :merchant_name, tags = :tags, category = :category,
	paid_by_participant_id = :paid_by_participant_id, third_party_name = :third_party_name, third_party_email = :third_party_email,
	status = :status, payment_method = :payment_method, card_id = :card_id,
	is_divisible = :is_divisible, split_type = :split_type, expense_date = :expense_date, updated_at = :updated_at
WHERE id = :id`

	queryUpdateExpenseStatus = `
UPDATE expenses
SET status = :status, updated_at = :updated_at
WHERE id = :id`

	queryDeleteExpense = `
DELETE FROM expenses
WHERE id = :id`

	queryCreateSplit = `
INSERT INTO expense_splits (expense_id, position, participant_id, amount, percentage)
VALUES (:expense_id, :position, :participant_id, CAST(:amount AS NUMERIC), CAST(:percentage AS NUMERIC))`

	queryDeleteSplits = `
DELETE FROM expense_splits
WHERE expense_id = :expense_id`

	queryListSplitsByExpense = `
SELECT expense_id, position, participant_id, amount, percentage
FROM expense_splits
WHERE expense_id = :expense_id
ORDER BY position`

	queryListSplitsByTrip = `
SELECT s.expense_id, s.position, s.participant_id, s.amount, s.percentage
FROM expense_splits s
JOIN expenses e ON e.id = s.expense_id
WHERE e.trip_id = :trip_id
ORDER BY s.expense_id, s.position`
)

// queryListExpensesByTrip is completed by the optional budget and status
// filters in ListByTrip.
const queryListExpensesByTrip = `
SELECT ` + expenseColumns + `
FROM expenses
WHERE trip_id = :trip_id`

const orderExpenses = `
ORDER BY expense_date DESC, created_at DESC, id DESC`
