package handlers

import (
	"github.com/gofiber/fiber/v3"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/ports/api"
)

// ReferenceHandler обрабатывает запросы /genres и /mpa.
type ReferenceHandler struct {
	refs api.ReferenceUseCase
}

// NewReferenceHandler создает обработчик справочников.
func NewReferenceHandler(refs api.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

// Genres возвращает справочник жанров.
func (h *ReferenceHandler) Genres(ctx fiber.Ctx) error {
	genres, err := h.refs.ListGenres(middleware.RequestContext(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromGenres(genres))
}

// Genre возвращает жанр по идентификатору.
func (h *ReferenceHandler) Genre(ctx fiber.Ctx) error {
	id, err := pathIntID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}

	genre, err := h.refs.GetGenre(middleware.RequestContext(ctx), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.Reference{ID: genre.ID, Name: genre.Name})
}

// Ratings возвращает справочник рейтингов MPA.
func (h *ReferenceHandler) Ratings(ctx fiber.Ctx) error {
	ratings, err := h.refs.ListRatings(middleware.RequestContext(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.FromRatings(ratings))
}

// Rating возвращает рейтинг MPA по идентификатору.
func (h *ReferenceHandler) Rating(ctx fiber.Ctx) error {
	id, err := pathIntID(ctx, "id")
	if err != nil {
		return handleError(ctx, err)
	}

	rating, err := h.refs.GetRating(middleware.RequestContext(ctx), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, dto.Reference{ID: rating.ID, Name: rating.Name})
}
