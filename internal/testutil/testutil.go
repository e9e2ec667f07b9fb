package testutil

import (
	"time"

	"finbot/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestExpense creates a test expense
func NewTestExpense(id int, userID int64, amount float64, category string, date time.Time) domain.Expense {
	return domain.Expense{
		ID:       id,
		UserID:   userID,
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
		Date:     date,
	}
}

// NewTestUser creates a test user
func NewTestUser(userID int64, username, firstName, lastName string) *domain.User {
	return &domain.User{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now(),
	}
}
