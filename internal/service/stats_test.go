package service

import (
	"strings"
	"testing"
	"time"

	"finbot/internal/domain"
	"finbot/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleExpenses() []domain.Expense {
	now := time.Now()
	return []domain.Expense{
		testutil.NewTestExpense(1, 123, 250, "Еда", now),
		testutil.NewTestExpense(2, 123, 100.50, "Такси", now),
		testutil.NewTestExpense(3, 123, 75.25, "Еда", now),
		testutil.NewTestExpense(4, 123, 500, "Жильё", now),
	}
}

func TestGroupByCategory(t *testing.T) {
	totals := GroupByCategory(sampleExpenses())

	assert.Len(t, totals, 3)

	// Sorted by descending total
	assert.Equal(t, "Жильё", totals[0].Category)
	assert.True(t, totals[0].Total.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "Еда", totals[1].Category)
	assert.True(t, totals[1].Total.Equal(decimal.NewFromFloat(325.25)))
	assert.Equal(t, "Такси", totals[2].Category)
	assert.True(t, totals[2].Total.Equal(decimal.NewFromFloat(100.50)))
}

func TestGroupByCategory_TotalsMatchTotalOf(t *testing.T) {
	expenses := sampleExpenses()

	grouped := GroupByCategory(expenses)
	sum := decimal.Zero
	for _, ct := range grouped {
		sum = sum.Add(ct.Total)
	}

	assert.True(t, sum.Equal(TotalOf(expenses)),
		"grouped sum %s != total %s", sum, TotalOf(expenses))
}

func TestGroupByCategory_Empty(t *testing.T) {
	assert.Empty(t, GroupByCategory(nil))
	assert.True(t, TotalOf(nil).IsZero())
}

func TestGroupByCategory_EqualTotalsOrderedByName(t *testing.T) {
	now := time.Now()
	expenses := []domain.Expense{
		testutil.NewTestExpense(1, 123, 100, "Б", now),
		testutil.NewTestExpense(2, 123, 100, "А", now),
	}

	totals := GroupByCategory(expenses)

	assert.Equal(t, "А", totals[0].Category)
	assert.Equal(t, "Б", totals[1].Category)
}

func TestFormatExpenseList(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	expenses := []domain.Expense{
		testutil.NewTestExpense(1, 123, 250, "Такси", time.Date(2024, 12, 11, 15, 30, 0, 0, loc)),
	}

	text := FormatExpenseList(expenses, domain.PeriodDay)

	assert.Contains(t, text, "Статистика за день")
	assert.Contains(t, text, "Такси: 250.00 ₽")
	assert.Contains(t, text, "11.12.2024 15:30")
	assert.Contains(t, text, "Итого: 250.00 ₽")
}

func TestFormatExpenseList_NoData(t *testing.T) {
	text := FormatExpenseList(nil, domain.PeriodMonth)

	assert.True(t, strings.Contains(text, "не найдено"))
}
