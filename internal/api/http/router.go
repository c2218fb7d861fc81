package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/http/handlers"
	"github.com/onetouch-fm/facility-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Accounts       *handlers.AccountsHandler
	Companies      *handlers.CompaniesHandler
	Offices        *handlers.OfficesHandler
	Items          *handlers.ItemsHandler
	Partners       *handlers.PartnersHandler
	Contracts      *handlers.ContractsHandler
	Reports        *handlers.ReportsHandler
	Audit          *handlers.AuditHandler
	Settings       *handlers.SettingsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/stats", cfg.Health.Stats)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/contractor/login", cfg.Auth.LoginContractor)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	api.Get("/accounts", cfg.Accounts.List)
	api.Post("/accounts", cfg.Accounts.Create)
	api.Get("/accounts/:id", cfg.Accounts.Get)
	api.Put("/accounts/:id", cfg.Accounts.Update)
	api.Delete("/accounts/:id", cfg.Accounts.Delete)

	api.Get("/companies", cfg.Companies.List)
	api.Post("/companies", cfg.Companies.Create)
	api.Get("/companies/:code", cfg.Companies.Get)
	api.Put("/companies/:code", cfg.Companies.Update)

	api.Get("/offices", cfg.Offices.List)
	api.Post("/offices", cfg.Offices.Create)
	api.Get("/offices/:code", cfg.Offices.Get)
	api.Put("/offices/:code", cfg.Offices.Update)
	api.Delete("/offices/:code", cfg.Offices.Delete)

	api.Get("/items", cfg.Items.List)
	api.Get("/items/stats", cfg.Items.Stats)
	api.Post("/items", cfg.Items.Create)
	api.Post("/items/import", cfg.Items.Import)
	api.Get("/items/:id", cfg.Items.Get)
	api.Put("/items/:id", cfg.Items.Update)
	api.Delete("/items/:id", cfg.Items.Delete)

	api.Get("/partners", cfg.Partners.List)
	api.Post("/partners", cfg.Partners.Create)
	api.Get("/partners/:id", cfg.Partners.Get)
	api.Put("/partners/:id", cfg.Partners.Update)
	api.Delete("/partners/:id", cfg.Partners.Delete)
	api.Get("/partners/:id/contacts", cfg.Partners.ListContacts)
	api.Post("/partners/:id/contacts", cfg.Partners.AddContact)

	api.Get("/contracts", cfg.Contracts.List)
	api.Get("/contracts/resolve", cfg.Contracts.Resolve)
	api.Post("/contracts", cfg.Contracts.Create)
	api.Get("/contracts/:id", cfg.Contracts.Get)
	api.Put("/contracts/:id", cfg.Contracts.Update)
	api.Delete("/contracts/:id", cfg.Contracts.Delete)

	api.Get("/reports", cfg.Reports.List)
	api.Post("/reports", cfg.Reports.Create)
	api.Get("/reports/:id", cfg.Reports.Get)
	api.Patch("/reports/:id/status", cfg.Reports.UpdateStatus)
	api.Get("/reports/:id/photos", cfg.Reports.ListPhotos)
	api.Post("/reports/:id/photos", cfg.Reports.AddPhoto)

	api.Get("/settings", cfg.Settings.List)
	api.Get("/settings/:key", cfg.Settings.Get)
	api.Put("/settings/:key", cfg.Settings.Update)

	api.Get("/audit-logs", cfg.Audit.List)
}
