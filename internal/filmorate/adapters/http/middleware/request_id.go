// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"filmorate/pkg/logger"
)

// Имя заголовка и ключ Locals с контекстом запроса.
const (
	HeaderRequestID  = "X-Request-ID"
	LocalsRequestCtx = "requestContext"
)

// NewRequestIDMiddleware кладет идентификатор запроса в контекст
// и возвращает его клиенту в заголовке.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}
		ctx.Locals(LocalsRequestCtx, requestCtx)
		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с идентификатором,
// а без middleware - контекст fiber.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(LocalsRequestCtx).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
