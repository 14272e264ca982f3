package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/http/middleware"
	"sitecms/internal/model"
	"sitecms/internal/service"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Services   service.ContentService[model.Service, service.ServiceInput]
	Packages   service.ContentService[model.Package, service.PackageInput]
	Projects   service.ProjectService
	Reviews    service.ReviewService
	Gallery    service.GalleryService
	Stats      service.ContentService[model.Stat, service.StatInput]
	FAQs       service.ContentService[model.FAQ, service.FAQInput]
	SEO        service.SEOService
	About      service.AboutService
	Settings   service.SettingService
	Contacts   service.ContactService
	Newsletter service.NewsletterService
	Media      service.MediaService
	Auth       service.AuthService
	Users      service.UserService
	Audit      service.AuditService
	Dashboard  service.DashboardService
}

// RegisterRoutes attaches the health probes, the public site API and the backoffice API.
func RegisterRoutes(app *fiber.App, db *sql.DB, s Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	services := NewContentHandler(s.Services)
	packages := NewContentHandler(s.Packages)
	stats := NewContentHandler(s.Stats)
	faqs := NewContentHandler(s.FAQs)
	projects := NewProjectHandler(s.Projects)
	reviews := NewReviewHandler(s.Reviews)
	gallery := NewGalleryHandler(s.Gallery)
	seo := NewSEOHandler(s.SEO)

	api := app.Group("/api")

	api.Get("/services", services.ListPublic())
	api.Get("/services/:slug", services.GetBySlug())
	api.Get("/packages", packages.ListPublic())
	api.Get("/projects", projects.ListPublic())
	api.Get("/projects/:slug", projects.GetBySlug())
	api.Get("/reviews", reviews.ListPublic())
	api.Post("/reviews", reviews.Submit())
	api.Get("/gallery", gallery.ListPublic())
	api.Get("/stats", stats.ListPublic())
	api.Get("/faqs", faqs.ListPublic())
	api.Get("/about", GetAbout(s.About))
	api.Get("/settings", PublicSettings(s.Settings))
	api.Get("/seo", seo.GetByPath())
	api.Post("/contact", SubmitContact(s.Contacts))
	api.Post("/newsletter/subscribe", Subscribe(s.Newsletter))
	api.Post("/newsletter/unsubscribe", Unsubscribe(s.Newsletter))

	requireAuth := middleware.RequireAuth(s.Auth)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", Login(s.Auth))
	authGroup.Post("/logout", requireAuth, Logout(s.Auth))
	authGroup.Get("/me", requireAuth, Me(s.Auth))
	authGroup.Post("/password/forgot", ForgotPassword(s.Auth))
	authGroup.Post("/password/reset", ResetPassword(s.Auth))

	admin := api.Group("/admin", requireAuth, middleware.RequireRole(model.RoleAdmin, model.RoleEditor))

	services.mount(admin.Group("/services"), true)
	packages.mount(admin.Group("/packages"), true)
	stats.mount(admin.Group("/stats"), true)
	faqs.mount(admin.Group("/faqs"), true)
	reviews.mount(admin.Group("/reviews"), true)
	seo.mount(admin.Group("/seo"), false)
	projects.mount(admin.Group("/projects"))
	gallery.mount(admin.Group("/gallery"))

	admin.Post("/uploads", UploadMedia(s.Media))

	admin.Get("/contacts", ListContacts(s.Contacts))
	admin.Get("/contacts/:id", GetContact(s.Contacts))
	admin.Patch("/contacts/:id/status", UpdateContactStatus(s.Contacts))
	admin.Delete("/contacts/:id", DeleteContact(s.Contacts))

	admin.Get("/newsletter", ListSubscribers(s.Newsletter))
	admin.Get("/newsletter/export", ExportSubscribers(s.Newsletter))
	admin.Delete("/newsletter/:id", DeleteSubscriber(s.Newsletter))

	admin.Get("/settings", ListSettings(s.Settings))
	admin.Put("/settings", UpsertSettings(s.Settings))
	admin.Put("/about", UpdateAbout(s.About))
	admin.Get("/dashboard", Dashboard(s.Dashboard))

	adminOnly := middleware.RequireRole(model.RoleAdmin)
	admin.Get("/users", adminOnly, ListUsers(s.Users))
	admin.Get("/users/:id", adminOnly, GetUser(s.Users))
	admin.Put("/users/:id", adminOnly, UpdateUser(s.Users))
	admin.Delete("/users/:id", adminOnly, DeleteUser(s.Users))
	admin.Get("/roles", adminOnly, ListRoles(s.Users))
	admin.Get("/audit-logs", adminOnly, ListAuditLogs(s.Audit))
}
