// Package http содержит HTTP-адаптер фильмотеки на fiber.
package http

import (
	"github.com/gofiber/fiber/v3"

	"filmorate/internal/filmorate/adapters/http/handlers"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/ports/api"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, films api.FilmUseCase, users api.UserUseCase, refs api.ReferenceUseCase) {
	filmHandler := handlers.NewFilmHandler(films)
	userHandler := handlers.NewUserHandler(users)
	refHandler := handlers.NewReferenceHandler(refs)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	filmRoutes := app.Group("/films")
	filmRoutes.Get("/", filmHandler.List)
	filmRoutes.Post("/", filmHandler.Create)
	filmRoutes.Put("/", filmHandler.Update)
	filmRoutes.Get("/popular", filmHandler.Popular)
	filmRoutes.Get("/:id", filmHandler.Get)
	filmRoutes.Delete("/:id", filmHandler.Delete)
	filmRoutes.Put("/:id/like/:userId", filmHandler.Like)
	filmRoutes.Delete("/:id/like/:userId", filmHandler.Unlike)

	userRoutes := app.Group("/users")
	userRoutes.Get("/", userHandler.List)
	userRoutes.Post("/", userHandler.Create)
	userRoutes.Put("/", userHandler.Update)
	userRoutes.Get("/:id", userHandler.Get)
	userRoutes.Delete("/:id", userHandler.Delete)
	userRoutes.Get("/:id/friends", userHandler.Friends)
	userRoutes.Get("/:id/friends/common/:otherId", userHandler.CommonFriends)
	userRoutes.Put("/:id/friends/:friendId", userHandler.AddFriend)
	userRoutes.Delete("/:id/friends/:friendId", userHandler.RemoveFriend)

	app.Get("/genres", refHandler.Genres)
	app.Get("/genres/:id", refHandler.Genre)
	app.Get("/mpa", refHandler.Ratings)
	app.Get("/mpa/:id", refHandler.Rating)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
