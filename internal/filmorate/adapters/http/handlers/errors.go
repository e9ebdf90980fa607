// Package handlers содержит HTTP-обработчики фильмов, пользователей и справочников.
package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"filmorate/internal/filmorate/domain/entities"
)

// Константы ошибок ответа.
const (
	ErrMsgInvalidID          = "invalid id"
	ErrMsgInvalidCount       = "count must be an integer"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInternal           = "Internal server error"
)

// errInvalidID возвращается, если параметр пути не является целым числом.
var errInvalidID = fmt.Errorf("%w: %s", entities.ErrValidation, ErrMsgInvalidID)

// statusOf отображает вид ошибки в HTTP-статус.
func statusOf(err error) int {
	var fiberErr *fiber.Error
	switch {
	case entities.IsValidation(err):
		return fiber.StatusBadRequest
	case entities.IsNotFound(err):
		return fiber.StatusNotFound
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError отправляет ошибку клиенту в виде {"error": "..."}.
// Текст внутренних ошибок не раскрывается.
func handleError(ctx fiber.Ctx, err error) error {
	status := statusOf(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = ErrMsgInternal
	}
	if err := ctx.Status(status).JSON(fiber.Map{"error": msg}); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}

func pathID(ctx fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params(name), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

func pathIntID(ctx fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Params(name))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

func sendJSON(ctx fiber.Ctx, body any) error {
	if err := ctx.JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendStatus(ctx fiber.Ctx, status int) error {
	if err := ctx.SendStatus(status); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
