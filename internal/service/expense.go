package service

import (
	"errors"
	"time"
	"unicode/utf8"

	"finbot/internal/domain"
	"finbot/internal/repository"

	"github.com/shopspring/decimal"
)

// Validation errors surfaced to the conversation layer. All are
// recoverable: the handler re-prompts and keeps the pending state.
var (
	ErrZeroAmount       = errors.New("amount must not be zero")
	ErrCategoryTooShort = errors.New("category name is too short")
	ErrCategoryTooLong  = errors.New("category name is too long")
	ErrRangeInverted    = errors.New("end date is before start date")
)

const (
	categoryMinLen = 2
	categoryMaxLen = 50
)

// ExpenseService handles expense business logic
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	userRepo    repository.UserRepository
	location    *time.Location
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	userRepo repository.UserRepository,
	location *time.Location,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		location:    location,
	}
}

// ValidateCategory checks the 2..50 rune bounds for free-text categories
func ValidateCategory(category string) error {
	n := utf8.RuneCountInString(category)
	if n < categoryMinLen {
		return ErrCategoryTooShort
	}
	if n > categoryMaxLen {
		return ErrCategoryTooLong
	}
	return nil
}

// AddExpense stores an expense timestamped in the reference timezone.
// The user row is lazily ensured so expenses never dangle.
func (s *ExpenseService) AddExpense(userID int64, amount decimal.Decimal, category string) error {
	if amount.IsZero() {
		return ErrZeroAmount
	}
	if err := ValidateCategory(category); err != nil {
		return err
	}

	if err := s.userRepo.EnsureExists(userID); err != nil {
		return err
	}

	return s.expenseRepo.Save(userID, amount, category, time.Now().In(s.location))
}

// ExpensesByPeriod returns the user's expenses since the period boundary,
// newest first. An unknown period yields an empty list, not an error.
func (s *ExpenseService) ExpensesByPeriod(userID int64, period domain.Period) ([]domain.Expense, error) {
	start, ok := domain.PeriodStart(period, time.Now().In(s.location))
	if !ok {
		return nil, nil
	}
	return s.expenseRepo.GetSince(userID, start)
}

// ExpensesByRange returns expenses within [start, end] where the end date
// is inclusive of the whole day.
func (s *ExpenseService) ExpensesByRange(userID int64, start, end time.Time) ([]domain.Expense, error) {
	if end.Before(start) {
		return nil, ErrRangeInverted
	}
	return s.expenseRepo.GetRange(userID, start, end.AddDate(0, 0, 1))
}

// ResetByPeriod bulk-deletes the user's expenses since the period boundary.
// Unknown periods are a no-op.
func (s *ExpenseService) ResetByPeriod(userID int64, period domain.Period) (int64, error) {
	start, ok := domain.PeriodStart(period, time.Now().In(s.location))
	if !ok {
		return 0, nil
	}
	return s.expenseRepo.DeleteSince(userID, start)
}

// PeriodBounds returns the [start, now] window of a period for report
// headers. ok is false for unknown periods.
func (s *ExpenseService) PeriodBounds(period domain.Period) (start, end time.Time, ok bool) {
	now := time.Now().In(s.location)
	start, ok = domain.PeriodStart(period, now)
	return start, now, ok
}
