package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires the API surface. The health check is open; the
// answering endpoints sit behind bearer auth.
func RegisterRoutes(app *fiber.App, h *Handler, token string) {
	v1 := app.Group("/api/v1")
	v1.Get("/health", h.Health)

	authed := v1.Group("", BearerAuth(token))
	authed.Post("/run", h.Run)
	authed.Post("/evaluate", h.Evaluate)
}
