package service

import (
	"fmt"
	"sort"
	"strings"

	"finbot/internal/domain"

	"github.com/shopspring/decimal"
)

// GroupByCategory sums expenses per category, sorted by descending total.
// Charts and reports both display in this order.
func GroupByCategory(expenses []domain.Expense) []domain.CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}

	totals := make([]domain.CategoryTotal, 0, len(sums))
	for category, total := range sums {
		totals = append(totals, domain.CategoryTotal{Category: category, Total: total})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total.Equal(totals[j].Total) {
			return totals[i].Category < totals[j].Category
		}
		return totals[i].Total.GreaterThan(totals[j].Total)
	})

	return totals
}

// TotalOf sums all expense amounts
func TotalOf(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// FormatExpenseList renders the per-period statistics text
func FormatExpenseList(expenses []domain.Expense, period domain.Period) string {
	if len(expenses) == 0 {
		return "📉 За выбранный период расходов не найдено."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Статистика за %s:\n\n", period.Name())
	for _, e := range expenses {
		fmt.Fprintf(&b, "• %s: %s ₽ (%s)\n",
			e.Category, e.Amount.StringFixed(2), e.Date.Format("02.01.2006 15:04"))
	}
	fmt.Fprintf(&b, "\n💰 Итого: %s ₽", TotalOf(expenses).StringFixed(2))

	return b.String()
}
