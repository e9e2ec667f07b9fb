package postgres

import (
	"database/sql"
	"time"

	"finbot/internal/domain"

	"github.com/shopspring/decimal"
)

// ExpenseRepo implements repository.ExpenseRepository
type ExpenseRepo struct {
	db *sql.DB
}

// NewExpenseRepo creates a new expense repository
func NewExpenseRepo(db *sql.DB) *ExpenseRepo {
	return &ExpenseRepo{db: db}
}

// Save appends an expense record
func (r *ExpenseRepo) Save(userID int64, amount decimal.Decimal, category string, date time.Time) error {
	query := `
		INSERT INTO expenses (user_id, amount, category, date)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(query, userID, amount, category, date)
	return err
}

// GetSince returns the user's expenses with date >= since, newest first
func (r *ExpenseRepo) GetSince(userID int64, since time.Time) ([]domain.Expense, error) {
	query := `
		SELECT id, user_id, amount, category, date
		FROM expenses
		WHERE user_id = $1 AND date >= $2
		ORDER BY date DESC
	`

	rows, err := r.db.Query(query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// GetRange returns the user's expenses with since <= date < until, newest first
func (r *ExpenseRepo) GetRange(userID int64, start, end time.Time) ([]domain.Expense, error) {
	query := `
		SELECT id, user_id, amount, category, date
		FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date DESC
	`

	rows, err := r.db.Query(query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// DeleteSince bulk-deletes the user's expenses with date >= since and
// returns the number of removed rows. Irreversible, no soft delete.
func (r *ExpenseRepo) DeleteSince(userID int64, since time.Time) (int64, error) {
	query := `
		DELETE FROM expenses
		WHERE user_id = $1 AND date >= $2
	`
	res, err := r.db.Exec(query, userID, since)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanExpenses(rows *sql.Rows) ([]domain.Expense, error) {
	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Date); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
