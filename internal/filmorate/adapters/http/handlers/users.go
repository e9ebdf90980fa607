package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/pkg/logger"
)

// UserHandler обрабатывает запросы /users.
type UserHandler struct {
	users api.UserUseCase
}

// NewUserHandler создает обработчик пользователей.
func NewUserHandler(users api.UserUseCase) *UserHandler {
	return &UserHandler{users: users}
}

// List возвращает всех пользователей.
func (h *UserHandler) List(ctx fiber.Ctx) error {
	users, err := h.users.ListUsers(middleware.RequestContext(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromUsers(users))
}

// Get возвращает пользователя по идентификатору.
func (h *UserHandler) Get(ctx fiber.Ctx) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}

	user, err := h.users.GetUser(middleware.RequestContext(ctx), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromUser(user))
}

// Create регистрирует пользователя. Пустое имя заменяется логином.
func (h *UserHandler) Create(ctx fiber.Ctx) error {
	return h.save(ctx, "UserHandler.Create", h.users.CreateUser)
}

// Update заменяет данные пользователя.
func (h *UserHandler) Update(ctx fiber.Ctx) error {
	return h.save(ctx, "UserHandler.Update", h.users.UpdateUser)
}

func (h *UserHandler) save(
	ctx fiber.Ctx,
	handler string,
	op func(ctx context.Context, user *entities.User) (*entities.User, error),
) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", handler))

	var req dto.User
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return handleError(ctx, fmt.Errorf("%w: %s", entities.ErrValidation, ErrMsgInvalidRequestBody))
	}

	user, err := req.ToEntity()
	if err != nil {
		return handleError(ctx, err)
	}

	saved, err := op(requestCtx, user)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromUser(saved))
}

// Delete удаляет пользователя вместе с его дружбами и отметками.
func (h *UserHandler) Delete(ctx fiber.Ctx) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}

	if err := h.users.DeleteUser(middleware.RequestContext(ctx), id); err != nil {
		return handleError(ctx, err)
	}
	return sendStatus(ctx, fiber.StatusNoContent)
}

// AddFriend отправляет или подтверждает заявку в друзья.
func (h *UserHandler) AddFriend(ctx fiber.Ctx) error {
	return h.friendOp(ctx, h.users.AddFriend)
}

// RemoveFriend разрывает связь в обе стороны.
func (h *UserHandler) RemoveFriend(ctx fiber.Ctx) error {
	return h.friendOp(ctx, h.users.RemoveFriend)
}

func (h *UserHandler) friendOp(ctx fiber.Ctx, op func(ctx context.Context, userID, friendID int64) error) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	friendID, err := pathID(ctx, "friendId")
	if err != nil {
		return handleError(ctx, err)
	}

	if err := op(middleware.RequestContext(ctx), userID, friendID); err != nil {
		return handleError(ctx, err)
	}
	return sendStatus(ctx, fiber.StatusOK)
}

// Friends возвращает подтвержденных друзей пользователя.
func (h *UserHandler) Friends(ctx fiber.Ctx) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}

	friends, err := h.users.GetFriends(middleware.RequestContext(ctx), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromUsers(friends))
}

// CommonFriends возвращает общих подтвержденных друзей двух пользователей.
func (h *UserHandler) CommonFriends(ctx fiber.Ctx) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	otherID, err := pathID(ctx, "otherId")
	if err != nil {
		return handleError(ctx, err)
	}

	common, err := h.users.GetCommonFriends(middleware.RequestContext(ctx), id, otherID)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromUsers(common))
}
