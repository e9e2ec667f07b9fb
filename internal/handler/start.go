package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(userID)
	h.deletePrevious(userID)

	return h.send(userID, textStart, mainMenuMarkup())
}

// handleBackMain returns to the main menu
func (h *Handler) handleBackMain(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)
	h.deletePrevious(userID)

	return h.editOrSend(c, textMainMenu, mainMenuMarkup())
}
