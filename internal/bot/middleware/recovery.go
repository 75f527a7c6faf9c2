package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Recovery middleware for panic handling
func Recovery(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					var userID int64
					if sender := c.Sender(); sender != nil {
						userID = sender.ID
					}

					logger.Error("panic recovered",
						zap.Any("panic", r),
						zap.Stack("stack"),
						zap.Int64("user_id", userID),
					)

					_ = c.Send("😔 Something went wrong. Please try again later.")
				}
			}()

			return next(c)
		}
	}
}
