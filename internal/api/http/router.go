package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/church-cms/internal/api/http/handlers"
	"github.com/spec-kit/church-cms/internal/auth"
	"github.com/spec-kit/church-cms/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admins         *handlers.AdminsHandler
	Resources      []*handlers.ResourcesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every mutating route chains
// authentication then the admin role check; list/get routes on public site
// content stay unauthenticated.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Delete("/logout", cfg.Auth.Logout)

	adminOnly := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin)}

	admins := app.Group("/admins", adminOnly...)
	admins.Get("/", cfg.Admins.List)
	admins.Get("/:id", cfg.Admins.Get)
	admins.Post("/create", cfg.Admins.Create)
	admins.Put("/put/:id", cfg.Admins.Update)
	admins.Delete("/delete/:id", cfg.Admins.Delete)

	for _, handler := range cfg.Resources {
		desc := handler.Descriptor()
		group := app.Group("/" + desc.Path)

		if desc.PublicRead {
			group.Get("/", handler.List)
			group.Get("/:key", handler.Get)
		} else {
			group.Get("/", append(adminOnly, handler.List)...)
			group.Get("/:key", append(adminOnly, handler.Get)...)
		}

		group.Post("/create", append(adminOnly, handler.Create)...)
		group.Put("/put/:key", append(adminOnly, handler.Update)...)
		group.Delete("/delete/:key", append(adminOnly, handler.Delete)...)
	}
}
