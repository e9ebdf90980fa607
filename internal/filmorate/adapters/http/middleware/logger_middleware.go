package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// Сообщения журнала запросов.
const (
	LogRequestCompleted = "request completed"
	LogRequestRejected  = "request rejected"
	LogRequestFailed    = "request failed"
)

// NewLoggerMiddleware пишет одну запись на запрос после его обработки.
// Ответы 5xx и ошибки обработчиков пишутся с уровнем Error, ответы 4xx с уровнем Warn.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		start := time.Now()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		fields := []zap.Field{
			zap.String("http_method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.String("route", ctx.Route().Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", ctx.IP()),
		}

		log := logger.Log(requestCtx)
		switch {
		case err != nil:
			log.Error(requestCtx, LogRequestFailed, append(fields, zap.Error(err))...)
		case status >= fiber.StatusInternalServerError:
			log.Error(requestCtx, LogRequestFailed, fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn(requestCtx, LogRequestRejected, fields...)
		default:
			log.Info(requestCtx, LogRequestCompleted, fields...)
		}
		return err
	}
}
