package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// Сообщения восстановления после паники.
const (
	LogHandlerPanic  = "handler panicked"
	ErrMsgPanicReply = "Internal server error"
)

// NewRecoveryMiddleware перехватывает панику обработчика и отвечает 500
// в том же формате {"error": "..."}, что и обычные ошибки.
// Идентификатор запроса остается в заголовке ответа.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			requestCtx := RequestContext(ctx)
			logger.Log(requestCtx).Error(requestCtx, LogHandlerPanic,
				zap.Any("panic", r),
				zap.String("route", ctx.Route().Path),
				zap.ByteString("stack", debug.Stack()),
			)
			err = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrMsgPanicReply})
		}()

		return ctx.Next()
	}
}
