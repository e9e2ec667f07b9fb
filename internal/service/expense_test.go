package service

import (
	"fmt"
	"testing"
	"time"

	"finbot/internal/domain"
	"finbot/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newExpenseService(expenseRepo *testutil.MockExpenseRepository, userRepo *testutil.MockUserRepository) *ExpenseService {
	loc, _ := time.LoadLocation("Europe/Moscow")
	return NewExpenseService(expenseRepo, userRepo, loc)
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		expected error
	}{
		{
			name:     "valid category",
			category: "Такси",
			expected: nil,
		},
		{
			name:     "minimum length",
			category: "Ок",
			expected: nil,
		},
		{
			name:     "single rune rejected",
			category: "A",
			expected: ErrCategoryTooShort,
		},
		{
			name:     "empty rejected",
			category: "",
			expected: ErrCategoryTooShort,
		},
		{
			name:     "over 50 runes rejected",
			category: "Очень длинное название категории которое не влезает!",
			expected: ErrCategoryTooLong,
		},
		{
			name:     "cyrillic counted in runes not bytes",
			category: "Продукты и хозяйственные товары для всего дома",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategory(tt.category)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestExpenseService_AddExpense(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		category    string
		expectedErr error
		saveCalled  bool
	}{
		{
			name:       "valid expense",
			amount:     decimal.NewFromInt(250),
			category:   "Такси",
			saveCalled: true,
		},
		{
			name:        "zero amount rejected",
			amount:      decimal.Zero,
			category:    "Такси",
			expectedErr: ErrZeroAmount,
		},
		{
			name:        "short category rejected",
			amount:      decimal.NewFromInt(100),
			category:    "A",
			expectedErr: ErrCategoryTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenseRepo := new(testutil.MockExpenseRepository)
			userRepo := new(testutil.MockUserRepository)

			if tt.saveCalled {
				userRepo.On("EnsureExists", int64(123)).Return(nil)
				expenseRepo.On("Save", int64(123), tt.amount, tt.category, mock.AnythingOfType("time.Time")).Return(nil)
			}

			service := newExpenseService(expenseRepo, userRepo)

			err := service.AddExpense(123, tt.amount, tt.category)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			expenseRepo.AssertExpectations(t)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestExpenseService_ExpensesByPeriod(t *testing.T) {
	expenseRepo := new(testutil.MockExpenseRepository)
	userRepo := new(testutil.MockUserRepository)

	expected := []domain.Expense{
		testutil.NewTestExpense(1, 123, 250, "Такси", time.Now()),
	}
	expenseRepo.On("GetSince", int64(123), mock.AnythingOfType("time.Time")).Return(expected, nil)

	service := newExpenseService(expenseRepo, userRepo)

	expenses, err := service.ExpensesByPeriod(123, domain.PeriodDay)

	assert.NoError(t, err)
	assert.Equal(t, expected, expenses)
	expenseRepo.AssertExpectations(t)
}

func TestExpenseService_ExpensesByPeriod_UnknownPeriod(t *testing.T) {
	expenseRepo := new(testutil.MockExpenseRepository)
	userRepo := new(testutil.MockUserRepository)

	service := newExpenseService(expenseRepo, userRepo)

	// Unknown period must not hit the repository at all
	expenses, err := service.ExpensesByPeriod(123, domain.Period("quarter"))

	assert.NoError(t, err)
	assert.Empty(t, expenses)
	expenseRepo.AssertNotCalled(t, "GetSince", mock.Anything, mock.Anything)
}

func TestExpenseService_ExpensesByRange(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	start := time.Date(2024, 12, 1, 0, 0, 0, 0, loc)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, loc)

	t.Run("end day is inclusive", func(t *testing.T) {
		expenseRepo := new(testutil.MockExpenseRepository)
		userRepo := new(testutil.MockUserRepository)

		// The repo receives midnight of the day after the end date
		expenseRepo.On("GetRange", int64(123), start, end.AddDate(0, 0, 1)).
			Return([]domain.Expense{}, nil)

		service := newExpenseService(expenseRepo, userRepo)

		_, err := service.ExpensesByRange(123, start, end)

		assert.NoError(t, err)
		expenseRepo.AssertExpectations(t)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		expenseRepo := new(testutil.MockExpenseRepository)
		userRepo := new(testutil.MockUserRepository)

		service := newExpenseService(expenseRepo, userRepo)

		_, err := service.ExpensesByRange(123, end, start)

		assert.ErrorIs(t, err, ErrRangeInverted)
		expenseRepo.AssertNotCalled(t, "GetRange", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExpenseService_ResetByPeriod(t *testing.T) {
	tests := []struct {
		name          string
		period        domain.Period
		mockDeleted   int64
		mockError     error
		expectedCount int64
		expectedError bool
		repoCalled    bool
	}{
		{
			name:          "successful reset",
			period:        domain.PeriodWeek,
			mockDeleted:   5,
			expectedCount: 5,
			repoCalled:    true,
		},
		{
			name:       "unknown period is a no-op",
			period:     domain.Period("quarter"),
			repoCalled: false,
		},
		{
			name:          "database error",
			period:        domain.PeriodDay,
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
			repoCalled:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenseRepo := new(testutil.MockExpenseRepository)
			userRepo := new(testutil.MockUserRepository)

			if tt.repoCalled {
				expenseRepo.On("DeleteSince", int64(123), mock.AnythingOfType("time.Time")).
					Return(tt.mockDeleted, tt.mockError)
			}

			service := newExpenseService(expenseRepo, userRepo)

			deleted, err := service.ResetByPeriod(123, tt.period)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, deleted)
			}

			expenseRepo.AssertExpectations(t)
		})
	}
}

func TestExpenseService_PeriodBounds(t *testing.T) {
	service := newExpenseService(new(testutil.MockExpenseRepository), new(testutil.MockUserRepository))

	start, end, ok := service.PeriodBounds(domain.PeriodMonth)

	assert.True(t, ok)
	assert.Equal(t, 1, start.Day())
	assert.False(t, start.After(end))

	_, _, ok = service.PeriodBounds(domain.Period("quarter"))
	assert.False(t, ok)
}
