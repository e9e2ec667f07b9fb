package handler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finbot/internal/domain"
	"finbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleCategoryChosen saves the pending amount under a fixed category
func (h *Handler) handleCategoryChosen(c tele.Context) error {
	userID := c.Sender().ID
	category := c.Callback().Data

	_ = c.Respond()

	state := h.GetState(userID)
	if state.State != domain.StateAwaitingCategory {
		// Stale button press, the amount is long gone
		h.deletePrevious(userID)
		return h.send(userID, textNoAmount, mainMenuMarkup())
	}

	h.deletePrevious(userID)
	return h.saveExpense(userID, state.PendingAmount, category)
}

// handleCustomCategory prompts for a free-text category
func (h *Handler) handleCustomCategory(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateAwaitingCategory {
		h.deletePrevious(userID)
		return h.send(userID, textNoAmount, mainMenuMarkup())
	}

	h.deletePrevious(userID)
	return h.editOrSend(c, textCustomCategory, nil)
}

// handleStatsMenu shows the statistics period menu
func (h *Handler) handleStatsMenu(c tele.Context) error {
	h.deletePrevious(c.Sender().ID)
	return h.editOrSend(c, textStatsPeriod, statsMenuMarkup())
}

// handleStats lists expenses for the requested period
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID
	period := domain.Period(c.Callback().Data)

	expenses, err := h.expenseService.ExpensesByPeriod(userID, period)
	if err != nil {
		h.logger.Error("Failed to load statistics",
			zap.Int64("user_id", userID),
			zap.String("period", string(period)),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: textError})
	}

	h.deletePrevious(userID)
	return h.editOrSend(c, service.FormatExpenseList(expenses, period), statsResultMarkup(period))
}

// handleChart renders and sends the period pie chart. The image file is
// transient and removed right after sending.
func (h *Handler) handleChart(c tele.Context) error {
	userID := c.Sender().ID
	period := domain.Period(c.Callback().Data)

	expenses, err := h.expenseService.ExpensesByPeriod(userID, period)
	if err != nil {
		h.logger.Error("Failed to load expenses for chart",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: textError})
	}

	title := fmt.Sprintf("Диаграмма расходов за %s", period.Name())
	png, err := h.reportService.RenderChart(expenses, title)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			h.deletePrevious(userID)
			return h.editOrSend(c, textNoChartData, backToStatsMarkup())
		}
		h.logger.Error("Failed to render chart",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: textError})
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("chart_%d_%d.png", userID, time.Now().UnixNano()))
	if err := os.WriteFile(path, png, 0o600); err != nil {
		h.logger.Error("Failed to write chart file", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: textError})
	}
	defer os.Remove(path)

	h.deletePrevious(userID)

	photo := &tele.Photo{
		File:    tele.FromDisk(path),
		Caption: fmt.Sprintf(textChartCaption, period.Name()),
	}
	if err := h.send(userID, photo, chartMarkup(period)); err != nil {
		return err
	}
	return c.Respond()
}

// handleDeleteChart removes the chart message and re-shows statistics
func (h *Handler) handleDeleteChart(c tele.Context) error {
	userID := c.Sender().ID
	period := domain.Period(c.Callback().Data)

	if err := c.Delete(); err != nil {
		h.logger.Debug("Failed to delete chart message", zap.Error(err))
	}
	h.deletePrevious(userID)

	expenses, err := h.expenseService.ExpensesByPeriod(userID, period)
	if err != nil {
		h.logger.Error("Failed to load statistics",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return h.send(userID, textError, mainMenuMarkup())
	}

	if err := h.send(userID, service.FormatExpenseList(expenses, period), statsResultMarkup(period)); err != nil {
		return err
	}
	return c.Respond()
}

// handleResetMenu shows the reset period menu
func (h *Handler) handleResetMenu(c tele.Context) error {
	h.deletePrevious(c.Sender().ID)
	return h.editOrSend(c, textResetPeriod, resetMenuMarkup())
}

// handleResetRequest asks for confirmation before the bulk delete
func (h *Handler) handleResetRequest(c tele.Context) error {
	userID := c.Sender().ID
	period := domain.Period(c.Callback().Data)

	h.SetState(userID, &domain.StateData{
		State:       domain.StateAwaitingResetConfirm,
		ResetPeriod: period,
	})

	h.deletePrevious(userID)
	return h.editOrSend(c, fmt.Sprintf(textConfirmReset, period.Name()), confirmResetMarkup(period))
}

// handleConfirmReset performs the irreversible bulk delete. A stale
// confirmation (no matching state) is a no-op back to the main menu.
func (h *Handler) handleConfirmReset(c tele.Context) error {
	userID := c.Sender().ID
	period := domain.Period(c.Callback().Data)

	state := h.GetState(userID)
	if state.State != domain.StateAwaitingResetConfirm || state.ResetPeriod != period {
		h.ResetState(userID)
		h.deletePrevious(userID)
		return h.editOrSend(c, textMainMenu, mainMenuMarkup())
	}

	h.ResetState(userID)

	deleted, err := h.expenseService.ResetByPeriod(userID, period)
	if err != nil {
		h.logger.Error("Failed to reset statistics",
			zap.Int64("user_id", userID),
			zap.String("period", string(period)),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: textError})
	}

	h.logger.Info("Statistics reset",
		zap.Int64("user_id", userID),
		zap.String("period", string(period)),
		zap.Int64("deleted", deleted),
	)

	h.deletePrevious(userID)
	return h.editOrSend(c, textStatsCleared, statsMenuMarkup())
}

// handleCancelReset aborts the reset confirmation
func (h *Handler) handleCancelReset(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)
	h.deletePrevious(userID)

	return h.editOrSend(c, textStatsPeriod, statsMenuMarkup())
}

// handleReportMenu shows the PDF report period menu
func (h *Handler) handleReportMenu(c tele.Context) error {
	h.deletePrevious(c.Sender().ID)
	return h.editOrSend(c, textReportMenu, reportMenuMarkup())
}

// handleReport generates a PDF report over a fixed period
func (h *Handler) handleReport(c tele.Context) error {
	userID := c.Sender().ID
	period := domain.Period(c.Callback().Data)

	start, end, ok := h.expenseService.PeriodBounds(period)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: textError})
	}

	expenses, err := h.expenseService.ExpensesByPeriod(userID, period)
	if err != nil {
		h.logger.Error("Failed to load expenses for report",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: textError})
	}

	h.deletePrevious(userID)
	_ = h.send(userID, textGeneratingReport)

	filename := fmt.Sprintf("Отчет_за_%s_%s.pdf", period.Name(), domain.FormatDate(end))
	h.sendPDFReport(userID, expenses, start, end, filename)

	h.deletePrevious(userID)
	if err := h.send(userID, textMainMenu, mainMenuMarkup()); err != nil {
		return err
	}
	return c.Respond()
}

// handleReportCustom starts the custom date range dialog
func (h *Handler) handleReportCustom(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateAwaitingRangeStart})

	h.deletePrevious(userID)
	return h.editOrSend(c, textEnterStartDate, nil)
}

// sendPDFReport renders, sends and removes the transient report file.
// Empty data and render failures degrade to a notice, never an error.
func (h *Handler) sendPDFReport(userID int64, expenses []domain.Expense, start, end time.Time, filename string) {
	displayName, err := h.userService.DisplayName(userID)
	if err != nil {
		h.logger.Warn("Failed to resolve display name",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		displayName = fmt.Sprintf("ID %d", userID)
	}

	path, err := h.reportService.GeneratePDF(displayName, expenses, start, end)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			_ = h.send(userID, textNoDataReport)
			return
		}
		h.logger.Error("Failed to generate PDF report",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		_ = h.send(userID, textError)
		return
	}
	defer os.Remove(path)

	// The document itself stays with the user, so it is deliberately
	// not recorded in the deletion trail
	doc := &tele.Document{
		File:     tele.FromDisk(path),
		FileName: filename,
		Caption:  textReportSent,
	}
	if _, err := h.bot.Send(tele.ChatID(userID), doc); err != nil {
		h.logger.Error("Failed to send report document",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}
