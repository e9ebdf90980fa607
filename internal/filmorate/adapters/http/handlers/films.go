package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/pkg/logger"
)

// DefaultPopularCount - размер рейтинга популярных фильмов по умолчанию.
const DefaultPopularCount = "10"

// FilmHandler обрабатывает запросы /films.
type FilmHandler struct {
	films api.FilmUseCase
}

// NewFilmHandler создает обработчик фильмов.
func NewFilmHandler(films api.FilmUseCase) *FilmHandler {
	return &FilmHandler{films: films}
}

// List возвращает все фильмы.
func (h *FilmHandler) List(ctx fiber.Ctx) error {
	films, err := h.films.ListFilms(middleware.RequestContext(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromFilms(films))
}

// Get возвращает фильм по идентификатору.
func (h *FilmHandler) Get(ctx fiber.Ctx) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}

	film, err := h.films.GetFilm(middleware.RequestContext(ctx), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromFilm(film))
}

// Create добавляет фильм.
func (h *FilmHandler) Create(ctx fiber.Ctx) error {
	return h.save(ctx, "FilmHandler.Create", h.films.CreateFilm)
}

// Update заменяет фильм.
func (h *FilmHandler) Update(ctx fiber.Ctx) error {
	return h.save(ctx, "FilmHandler.Update", h.films.UpdateFilm)
}

func (h *FilmHandler) save(
	ctx fiber.Ctx,
	handler string,
	op func(ctx context.Context, film *entities.Film) (*entities.Film, error),
) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", handler))

	var req dto.Film
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return handleError(ctx, fmt.Errorf("%w: %s", entities.ErrValidation, ErrMsgInvalidRequestBody))
	}

	film, err := req.ToEntity()
	if err != nil {
		return handleError(ctx, err)
	}

	saved, err := op(requestCtx, film)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromFilm(saved))
}

// Delete удаляет фильм.
func (h *FilmHandler) Delete(ctx fiber.Ctx) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}

	if err := h.films.DeleteFilm(middleware.RequestContext(ctx), id); err != nil {
		return handleError(ctx, err)
	}
	return sendStatus(ctx, fiber.StatusNoContent)
}

// Like ставит отметку пользователя.
func (h *FilmHandler) Like(ctx fiber.Ctx) error {
	return h.likeOp(ctx, h.films.Like)
}

// Unlike снимает отметку пользователя.
func (h *FilmHandler) Unlike(ctx fiber.Ctx) error {
	return h.likeOp(ctx, h.films.Unlike)
}

func (h *FilmHandler) likeOp(ctx fiber.Ctx, op func(ctx context.Context, filmID, userID int64) error) error {
	filmID, err := pathID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}
	userID, err := pathID(ctx, "userId")
	if err != nil {
		return handleError(ctx, err)
	}

	if err := op(middleware.RequestContext(ctx), filmID, userID); err != nil {
		return handleError(ctx, err)
	}
	return sendStatus(ctx, fiber.StatusOK)
}

// Popular возвращает count самых популярных фильмов.
func (h *FilmHandler) Popular(ctx fiber.Ctx) error {
	count, err := strconv.Atoi(ctx.Query("count", DefaultPopularCount))
	if err != nil {
		return handleError(ctx, fmt.Errorf("%w: %s", entities.ErrValidation, ErrMsgInvalidCount))
	}

	films, err := h.films.TopPopular(middleware.RequestContext(ctx), count)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromFilms(films))
}
