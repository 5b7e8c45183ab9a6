package routes

import (
	"github.com/gofiber/fiber/v2"

	"article-registry-backend/controllers"
)

// Register wires all HTTP routes.
func Register(app *fiber.App, health *controllers.HealthController, articles *controllers.ArticleController, idempotency fiber.Handler) {
	api := app.Group("/api")

	api.Get("/", health.Root)
	api.Get("/health", health.Health)

	// Idempotency guard applies to the article routes (mutating methods only)
	guarded := api.Group("", idempotency)

	guarded.Get("/articles", articles.List)
	guarded.Post("/articles", articles.Create)
	guarded.Post("/articles/bulk", articles.BulkImport)
	guarded.Delete("/articles", articles.DeleteAll)
	guarded.Get("/articles/:id", articles.Get)
	guarded.Put("/articles/:id", articles.Update)
	guarded.Delete("/articles/:id", articles.Delete)
}
