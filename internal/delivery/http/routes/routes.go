package routes

import (
	"time"

	"hr-recruitment/internal/config"
	"hr-recruitment/internal/delivery/http/handler"
	"hr-recruitment/internal/delivery/http/middleware"
	"hr-recruitment/internal/domain/hruser"
	"hr-recruitment/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
)

type Registry struct {
	Health       *handler.HealthHandler
	Applications *handler.ApplicationHandler
	Auth         *handler.AuthHandler
	JobTitles    *handler.JobTitleHandler
	Uploads      *handler.UploadHandler
	WS           *ws.Handler

	AuthMW    *middleware.AuthMiddleware
	Limiter   middleware.Allower
	RateLimit config.RateLimitConfig

	// UploadDir is served read-only under /uploads when set.
	UploadDir string
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	if r.UploadDir != "" {
		app.Use("/uploads", static.New(r.UploadDir))
	}

	api := app.Group("/api", middleware.RateLimit(r.Limiter, "api", r.RateLimit.APIPerWindow, r.RateLimit.APIWindow, ""))
	r.registerApplications(api)
	r.registerAuth(api)
	r.registerJobTitles(api)
	r.registerUploads(api)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health == nil {
		return
	}
	app.Get("/", r.Health.Banner)
	app.Get("/health", r.Health.Health)
}

// registerApplications keeps the static paths ahead of /:id.
func (r *Registry) registerApplications(api fiber.Router) {
	h := r.Applications
	if h == nil {
		return
	}
	authn, staff := r.AuthMW.Middleware(), middleware.RequireRole(hruser.RoleAdmin, hruser.RoleHR)

	grp := api.Group("/applications")
	grp.Post("/submit",
		middleware.RateLimit(r.Limiter, "submit", r.RateLimit.SubmitPerMinute, time.Minute,
			"Too many applications submitted, please try again later."),
		h.HandleSubmit)
	grp.Get("/", authn, staff, h.HandleList)
	grp.Get("/accepted-to-join", authn, staff, h.HandleListAcceptedToJoin)
	grp.Get("/stats", authn, staff, h.HandleStats)
	grp.Get("/export/excel", authn, staff, h.HandleExport)
	grp.Get("/:id", authn, staff, h.HandleGet)
	grp.Put("/:id/status", authn, staff, h.HandleUpdateStatus)
}

func (r *Registry) registerAuth(api fiber.Router) {
	h := r.Auth
	if h == nil {
		return
	}
	authn, admin := r.AuthMW.Middleware(), middleware.RequireRole(hruser.RoleAdmin)

	grp := api.Group("/auth")
	grp.Post("/login",
		middleware.RateLimit(r.Limiter, "login", r.RateLimit.LoginPerMinute, time.Minute,
			"Too many login attempts, please try again later."),
		h.Login)
	grp.Post("/logout", h.Logout)
	grp.Get("/profile", authn, h.Profile)
	grp.Put("/change-password", authn, h.ChangePassword)
	grp.Get("/hr-users", authn, admin, h.ListUsers)
	grp.Post("/hr-users", authn, admin, h.CreateUser)
	grp.Put("/hr-users/:id", authn, admin, h.UpdateUser)
	grp.Delete("/hr-users/:id", authn, admin, h.DeleteUser)
	grp.Get("/roles", authn, admin, h.Roles)
}

func (r *Registry) registerJobTitles(api fiber.Router) {
	h := r.JobTitles
	if h == nil {
		return
	}
	authn, staff := r.AuthMW.Middleware(), middleware.RequireRole(hruser.RoleAdmin, hruser.RoleHR)

	grp := api.Group("/jobs")
	grp.Get("/", h.ListActive)
	grp.Get("/all", authn, staff, h.ListAll)
	grp.Post("/", authn, staff, h.Create)
	grp.Put("/:id", authn, staff, h.Update)
	grp.Patch("/:id/status", authn, staff, h.SetStatus)
	grp.Delete("/:id", authn, staff, h.Delete)
}

func (r *Registry) registerUploads(api fiber.Router) {
	h := r.Uploads
	if h == nil {
		return
	}
	grp := api.Group("/uploads")
	grp.Post("/cv", h.UploadCV)
	grp.Post("/profile-image", h.UploadProfileImage)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.WS == nil {
		return
	}
	app.Get("/ws/applications",
		r.AuthMW.Middleware(),
		middleware.RequireRole(hruser.RoleAdmin, hruser.RoleHR),
		r.WS.HandleApplicationsWS)
}
