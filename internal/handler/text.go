package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"finbot/internal/domain"
	"finbot/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// amountPattern matches an expense amount: digits with up to two
// decimals, dot or comma separated
var amountPattern = regexp.MustCompile(`^\d+([.,]\d{1,2})?$`)

// parseAmount parses text matched by amountPattern
func parseAmount(text string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(text, ",", "."))
}

// handleText routes free text by the user's conversation state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateAwaitingRangeStart:
		return h.handleRangeStart(c, userID, text)
	case domain.StateAwaitingRangeEnd:
		return h.handleRangeEnd(c, userID, text, state)
	case domain.StateAwaitingCategory:
		return h.handleCategoryText(c, userID, text, state)
	default:
		return h.handleIdleText(c, userID, text)
	}
}

// handleIdleText starts the expense entry flow on a valid amount
func (h *Handler) handleIdleText(c tele.Context, userID int64, text string) error {
	if !amountPattern.MatchString(text) {
		// Not an amount and nothing pending: re-show the main menu hint
		return nil
	}

	amount, err := parseAmount(text)
	if err != nil {
		return nil
	}

	h.deletePrevious(userID)

	if amount.IsZero() {
		return h.send(userID, textZeroAmount)
	}

	h.SetState(userID, &domain.StateData{
		State:         domain.StateAwaitingCategory,
		PendingAmount: amount,
	})

	return h.send(userID, textChooseCategory, categoryMarkup())
}

// handleCategoryText treats text while an amount is pending as a custom
// category. A new amount overwrites the pending one instead.
func (h *Handler) handleCategoryText(c tele.Context, userID int64, text string, state *domain.StateData) error {
	if amountPattern.MatchString(text) {
		return h.handleIdleText(c, userID, text)
	}

	h.deletePrevious(userID)

	if err := service.ValidateCategory(text); err != nil {
		// Keep the pending amount, just re-prompt
		switch {
		case errors.Is(err, service.ErrCategoryTooLong):
			return h.send(userID, textCategoryTooLong)
		case errors.Is(err, service.ErrCategoryTooShort):
			return h.send(userID, textCategoryTooShort)
		}
		return h.send(userID, textError)
	}

	return h.saveExpense(userID, state.PendingAmount, text)
}

// handleRangeStart expects the custom report start date
func (h *Handler) handleRangeStart(c tele.Context, userID int64, text string) error {
	start, err := domain.ParseDate(text, h.location)
	if err != nil {
		return h.send(userID, textInvalidDate)
	}

	h.SetState(userID, &domain.StateData{
		State:      domain.StateAwaitingRangeEnd,
		RangeStart: start,
	})

	return h.send(userID, textEnterEndDate)
}

// handleRangeEnd expects the custom report end date and generates the
// report. An inverted range keeps the state and re-prompts.
func (h *Handler) handleRangeEnd(c tele.Context, userID int64, text string, state *domain.StateData) error {
	end, err := domain.ParseDate(text, h.location)
	if err != nil {
		return h.send(userID, textInvalidDate)
	}

	if end.Before(state.RangeStart) {
		return h.send(userID, textDateRangeError)
	}

	h.deletePrevious(userID)
	_ = h.send(userID, textGeneratingReport)

	expenses, err := h.expenseService.ExpensesByRange(userID, state.RangeStart, end)
	if err != nil {
		h.logger.Error("Failed to load expenses for report",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.ResetState(userID)
		return h.send(userID, textError, mainMenuMarkup())
	}

	h.ResetState(userID)

	filename := fmt.Sprintf("Отчет_%s_%s.pdf",
		domain.FormatDate(state.RangeStart), domain.FormatDate(end))
	h.sendPDFReport(userID, expenses, state.RangeStart, end, filename)

	h.deletePrevious(userID)
	return h.send(userID, textMainMenu, mainMenuMarkup())
}

// saveExpense persists the pending amount with the chosen category and
// returns the user to the main menu
func (h *Handler) saveExpense(userID int64, amount decimal.Decimal, category string) error {
	if err := h.expenseService.AddExpense(userID, amount, category); err != nil {
		h.logger.Error("Failed to save expense",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return h.send(userID, textError)
	}

	h.logger.Info("Expense added",
		zap.Int64("user_id", userID),
		zap.String("amount", amount.String()),
		zap.String("category", category),
	)

	h.ResetState(userID)

	_ = h.send(userID, fmt.Sprintf(textExpenseAdded, amount.StringFixed(2), category))
	return h.send(userID, textMainMenu, mainMenuMarkup())
}
