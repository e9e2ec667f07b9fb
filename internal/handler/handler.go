package handler

import (
	"strconv"
	"sync"
	"time"

	"finbot/internal/domain"
	"finbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Categories offered by the fixed picker. Free-text categories are also
// accepted while an amount is pending.
var categories = []string{
	"🍔 Еда",
	"🚕 Транспорт",
	"🏠 Жильё",
	"🎮 Развлечения",
	"💊 Здоровье",
	"👕 Одежда",
	"📱 Связь",
	"🎁 Подарки",
}

// Handler manages all bot interactions
type Handler struct {
	bot            *tele.Bot
	expenseService *service.ExpenseService
	userService    *service.UserService
	reportService  *service.ReportService
	location       *time.Location
	logger         *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// IDs of previously sent messages, deleted before each new screen
	trail    map[int64][]int
	trailMux sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	expenseService *service.ExpenseService,
	userService *service.UserService,
	reportService *service.ReportService,
	location *time.Location,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:            bot,
		expenseService: expenseService,
		userService:    userService,
		reportService:  reportService,
		location:       location,
		logger:         logger,
		states:         make(map[int64]*domain.StateData),
		trail:          make(map[int64][]int),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Static inline buttons
	h.bot.Handle(&btnStatsMenu, h.handleStatsMenu)
	h.bot.Handle(&btnResetMenu, h.handleResetMenu)
	h.bot.Handle(&btnReportMenu, h.handleReportMenu)
	h.bot.Handle(&btnBackMain, h.handleBackMain)
	h.bot.Handle(&btnCustomCategory, h.handleCustomCategory)
	h.bot.Handle(&btnCancelReset, h.handleCancelReset)
	h.bot.Handle(&btnReportCustom, h.handleReportCustom)

	// Buttons carrying dynamic data
	h.bot.Handle(&tele.Btn{Unique: "cat"}, h.handleCategoryChosen)
	h.bot.Handle(&tele.Btn{Unique: "stats"}, h.handleStats)
	h.bot.Handle(&tele.Btn{Unique: "chart"}, h.handleChart)
	h.bot.Handle(&tele.Btn{Unique: "delchart"}, h.handleDeleteChart)
	h.bot.Handle(&tele.Btn{Unique: "reset"}, h.handleResetRequest)
	h.bot.Handle(&tele.Btn{Unique: "confirmreset"}, h.handleConfirmReset)
	h.bot.Handle(&tele.Btn{Unique: "report"}, h.handleReport)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	state.UpdatedAt = time.Now()
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// EvictStaleSessions drops conversation state and message trails for
// users idle longer than maxIdle. Returns the number of evicted users.
func (h *Handler) EvictStaleSessions(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	h.stateMux.Lock()
	var evicted []int64
	for userID, state := range h.states {
		if state.UpdatedAt.Before(cutoff) {
			delete(h.states, userID)
			evicted = append(evicted, userID)
		}
	}
	h.stateMux.Unlock()

	h.trailMux.Lock()
	for _, userID := range evicted {
		delete(h.trail, userID)
	}
	h.trailMux.Unlock()

	return len(evicted)
}

// trackMessage remembers a sent message for later cleanup
func (h *Handler) trackMessage(userID int64, msg *tele.Message) {
	if msg == nil {
		return
	}
	h.trailMux.Lock()
	defer h.trailMux.Unlock()
	h.trail[userID] = append(h.trail[userID], msg.ID)
}

// deletePrevious best-effort deletes all tracked messages of the user.
// Failures (already deleted, too old) are logged and ignored.
func (h *Handler) deletePrevious(userID int64) {
	h.trailMux.Lock()
	ids := h.trail[userID]
	h.trail[userID] = nil
	h.trailMux.Unlock()

	for _, id := range ids {
		stored := tele.StoredMessage{
			MessageID: strconv.Itoa(id),
			ChatID:    userID,
		}
		if err := h.bot.Delete(&stored); err != nil {
			h.logger.Debug("Failed to delete message",
				zap.Int64("user_id", userID),
				zap.Int("message_id", id),
				zap.Error(err),
			)
		}
	}
}

// send sends a message to the user and records it in the trail
func (h *Handler) send(userID int64, what interface{}, opts ...interface{}) error {
	msg, err := h.bot.Send(tele.ChatID(userID), what, opts...)
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return err
	}
	h.trackMessage(userID, msg)
	return nil
}

// editOrSend edits the callback's message, falling back to a fresh send
// when Telegram refuses the edit (deleted or too old message)
func (h *Handler) editOrSend(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	userID := c.Sender().ID

	if c.Callback() == nil {
		if markup != nil {
			return h.send(userID, text, markup)
		}
		return h.send(userID, text)
	}

	var err error
	if markup != nil {
		err = c.Edit(text, markup)
	} else {
		err = c.Edit(text)
	}
	if err != nil {
		h.logger.Debug("Failed to edit message, sending new",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		if markup != nil {
			return h.send(userID, text, markup)
		}
		return h.send(userID, text)
	}

	if msg := c.Callback().Message; msg != nil {
		h.trackMessage(userID, msg)
	}
	return c.Respond()
}

// Inline keyboard buttons
var (
	btnStatsMenu = tele.Btn{
		Unique: "stats_menu",
		Text:   "📊 Показать статистику",
	}
	btnResetMenu = tele.Btn{
		Unique: "reset_menu",
		Text:   "🗑 Очистить статистику",
	}
	btnReportMenu = tele.Btn{
		Unique: "report_menu",
		Text:   "📄 PDF отчет",
	}
	btnBackMain = tele.Btn{
		Unique: "back_main",
		Text:   "⬅️ Назад",
	}
	btnCustomCategory = tele.Btn{
		Unique: "custom_category",
		Text:   "✏️ Своя категория",
	}
	btnCancelReset = tele.Btn{
		Unique: "cancel_reset",
		Text:   "❌ Отмена",
	}
	btnReportCustom = tele.Btn{
		Unique: "report_custom",
		Text:   "📅 Произвольный период",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnStatsMenu),
	)
	return menu
}

// categoryMarkup returns the fixed category picker, two per row
func categoryMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for i := 0; i < len(categories); i += 2 {
		row := tele.Row{menu.Data(categories[i], "cat", categories[i])}
		if i+1 < len(categories) {
			row = append(row, menu.Data(categories[i+1], "cat", categories[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, menu.Row(btnCustomCategory))

	menu.Inline(rows...)
	return menu
}

// statsMenuMarkup returns the statistics period menu
func statsMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(
			menu.Data("📅 За день", "stats", string(domain.PeriodDay)),
			menu.Data("🗓 За неделю", "stats", string(domain.PeriodWeek)),
		),
		menu.Row(
			menu.Data("📈 За месяц", "stats", string(domain.PeriodMonth)),
			menu.Data("📊 За год", "stats", string(domain.PeriodYear)),
		),
		menu.Row(btnReportMenu),
		menu.Row(btnResetMenu),
		menu.Row(btnBackMain),
	)
	return menu
}

// statsResultMarkup returns the chart shortcut under a statistics listing
func statsResultMarkup(period domain.Period) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("📊 Диаграмма расходов", "chart", string(period))),
		menu.Row(btnStatsMenu),
	)
	return menu
}

// resetMenuMarkup returns the reset period menu
func resetMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(
			menu.Data("📅 Очистить за день", "reset", string(domain.PeriodDay)),
			menu.Data("🗓 Очистить за неделю", "reset", string(domain.PeriodWeek)),
		),
		menu.Row(
			menu.Data("📈 Очистить за месяц", "reset", string(domain.PeriodMonth)),
			menu.Data("📊 Очистить за год", "reset", string(domain.PeriodYear)),
		),
		menu.Row(btnStatsMenu),
	)
	return menu
}

// confirmResetMarkup returns the confirm/cancel pair for a reset
func confirmResetMarkup(period domain.Period) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(
			menu.Data("✅ Подтвердить", "confirmreset", string(period)),
			btnCancelReset,
		),
	)
	return menu
}

// reportMenuMarkup returns the PDF report period menu
func reportMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(
			menu.Data("📅 За день", "report", string(domain.PeriodDay)),
			menu.Data("🗓 За неделю", "report", string(domain.PeriodWeek)),
		),
		menu.Row(
			menu.Data("📈 За месяц", "report", string(domain.PeriodMonth)),
			menu.Data("📊 За год", "report", string(domain.PeriodYear)),
		),
		menu.Row(btnReportCustom),
		menu.Row(btnStatsMenu),
	)
	return menu
}

// backToStatsMarkup returns a lone back button
func backToStatsMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnStatsMenu))
	return menu
}

// chartMarkup returns the back button attached to a chart photo
func chartMarkup(period domain.Period) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("⬅️ Назад к статистике", "delchart", string(period))),
	)
	return menu
}
