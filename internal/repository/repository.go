package repository

import (
	"time"

	"finbot/internal/domain"

	"github.com/shopspring/decimal"
)

// ExpenseRepository defines expense data operations. Every operation is
// scoped to a single user_id.
type ExpenseRepository interface {
	Save(userID int64, amount decimal.Decimal, category string, date time.Time) error
	GetSince(userID int64, since time.Time) ([]domain.Expense, error)
	GetRange(userID int64, start, end time.Time) ([]domain.Expense, error)
	DeleteSince(userID int64, since time.Time) (int64, error)
}

// UserRepository defines user data operations
type UserRepository interface {
	Upsert(user domain.User) error
	EnsureExists(userID int64) error
	Get(userID int64) (*domain.User, error)
}
