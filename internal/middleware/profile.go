package middleware

import (
	"finbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// ProfileCapture upserts the sender's profile on every update so that
// reports always have fresh usernames. Failures never block handling.
func ProfileCapture(userService *service.UserService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			err := userService.UpsertProfile(sender.ID, sender.Username, sender.FirstName, sender.LastName)
			if err != nil {
				logger.Warn("Failed to upsert user profile",
					zap.Int64("user_id", sender.ID),
					zap.Error(err),
				)
			}

			return next(c)
		}
	}
}
