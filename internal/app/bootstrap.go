package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"hr-recruitment/internal/config"
	"hr-recruitment/internal/database/migration"
	"hr-recruitment/internal/database/seeder"
	"hr-recruitment/internal/delivery/http/handler"
	"hr-recruitment/internal/delivery/http/middleware"
	"hr-recruitment/internal/delivery/http/routes"
	"hr-recruitment/internal/pkg/validator"
	"hr-recruitment/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	errMw := middleware.NewErrorMiddleware(c.Logger)

	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		BodyLimit:    cfg.App.BodyLimit,
		ErrorHandler: errMw.Handler,
	})

	registerGlobalMiddleware(f, cfg, c, errMw)
	registerRoutes(f, cfg, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects dependencies, prepares the schema and returns a ready app.
// The returned cleanup func must be called once the server has stopped.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	cleanup := func() error {
		cancel()
		return c.Close()
	}

	if err := prepareDatabase(ctx, cfg, c); err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	if err := c.Wire(ctx); err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	go c.Hub.Run(ctx)

	return New(cfg, c), cleanup, nil
}

func prepareDatabase(ctx context.Context, cfg config.Config, c *Container) error {
	if cfg.Migrations.AutoMigrate {
		r := migration.Runner{FS: c.MigrationsFS(), Logger: c.Logger}
		n, err := r.Run(ctx, c.DB.SQLDB())
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		c.Logger.Printf("[Bootstrap] migrations applied | count=%d", n)
	}
	if cfg.Migrations.AutoSeed {
		runner := seeder.Runner{
			Seeders: seeder.Defaults(c.HashPassword, envOr("SEED_ADMIN_PASSWORD", ""), envOr("SEED_HR_PASSWORD", "")),
			Logger:  c.Logger,
		}
		if err := runner.Run(ctx, c.DB); err != nil {
			return err
		}
	}
	return nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, c *Container, errMw *middleware.ErrorMiddleware) {
	if app == nil {
		return
	}

	app.Use(errMw.Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger, "/health").Middleware())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendOrigin},
		AllowCredentials: true,
	}))
}

func registerRoutes(app *fiber.App, cfg config.Config, c *Container) {
	if app == nil {
		return
	}

	reg := routes.Registry{
		Health: handler.NewHealthHandler(c.DB, cfg.App.AppName),
		Applications: handler.NewApplicationHandler(
			c.Submit, c.Query, c.Status, c.Export, validator.New(),
		),
		Auth: handler.NewAuthHandler(c.Auth, handler.CookieOptions{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
			MaxAge: cfg.Auth.TokenTTL,
		}),
		JobTitles: handler.NewJobTitleHandler(c.JobTitles),
		Uploads:   handler.NewUploadHandler(c.Uploads),
		WS:        ws.NewHandler(c.Hub, cfg.App.FrontendOrigin, c.Logger),

		AuthMW:    middleware.NewAuthMiddleware(c.Auth, cfg.Auth.CookieName),
		Limiter:   c.Limiter,
		RateLimit: cfg.RateLimit,
		UploadDir: c.UploadDir,
	}
	reg.Register(app)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
