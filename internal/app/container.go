package app

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"hr-recruitment/internal/config"
	"hr-recruitment/internal/database"
	dbpostgres "hr-recruitment/internal/database/postgres"
	"hr-recruitment/internal/infrastructure/export"
	"hr-recruitment/internal/infrastructure/persistence/postgres"
	"hr-recruitment/internal/infrastructure/ratelimit"
	"hr-recruitment/internal/infrastructure/storage"
	"hr-recruitment/internal/pkg/jwt"
	"hr-recruitment/internal/repository"
	"hr-recruitment/internal/usecase"
	"hr-recruitment/internal/ws"
	"hr-recruitment/migrations"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Redis  *redis.Client
	Hub    *ws.Hub

	Limiter *ratelimit.Limiter
	Blobs   usecase.BlobStore
	// UploadDir is set when blobs live on local disk and must be served.
	UploadDir string
	HRUsers   *postgres.HRUserRepository

	Submit    *usecase.ApplicationSubmit
	Query     *usecase.ApplicationQuery
	Status    *usecase.ApplicationStatus
	Export    *usecase.ApplicationExport
	Auth      *usecase.Auth
	JobTitles *usecase.JobTitles
	Uploads   *usecase.Uploads

	closers []func() error
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		closers: []func() error{db.Close},
	}, nil
}

// MigrationsFS returns the embedded migrations unless a directory override is configured.
func (c *Container) MigrationsFS() fs.FS {
	if c.Config.Migrations.Dir != "" {
		return os.DirFS(c.Config.Migrations.Dir)
	}
	return migrations.FS
}

func (c *Container) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), c.Config.Auth.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Wire builds the services the HTTP server depends on.
func (c *Container) Wire(ctx context.Context) error {
	cfg := c.Config

	c.Redis = ratelimit.NewRedisClient(cfg.Redis, c.Logger)
	if c.Redis != nil {
		c.closers = append(c.closers, c.Redis.Close)
	}
	c.Limiter = ratelimit.NewLimiter(c.Redis, "ratelimit:", c.Logger)

	switch cfg.Storage.Driver {
	case "gcs":
		g, err := storage.NewGCS(ctx, cfg.Storage.GCSBucket, cfg.Storage.PublicURL, cfg.Storage.GCSCredentials)
		if err != nil {
			return err
		}
		c.Blobs = g
		c.closers = append(c.closers, g.Close)
	default:
		l, err := storage.NewLocal(cfg.Storage.LocalDir, cfg.Storage.PublicURL)
		if err != nil {
			return err
		}
		c.Blobs = l
		c.UploadDir = l.Dir()
	}

	hrUsers, err := postgres.NewHRUserRepository(ctx, c.DB.SQLDB())
	if err != nil {
		return fmt.Errorf("hr user repository: %w", err)
	}
	c.HRUsers = hrUsers
	c.closers = append(c.closers, hrUsers.Close)

	c.Hub = ws.NewHub(c.Logger)

	apps := repository.NewPostgresApplicationRepository(c.DB)
	c.Submit = usecase.NewApplicationSubmitUsecase(c.DB, nil, c.Logger)
	c.Query = usecase.NewApplicationQueryUsecase(apps, c.Logger)
	c.Status = usecase.NewApplicationStatusUsecase(apps, c.Logger,
		usecase.OnboardingHook{Logger: c.Logger},
		ws.NewStatusBroadcaster(c.Hub),
	)
	c.Export = usecase.NewApplicationExportUsecase(apps, c.Logger, export.NewXLSXRenderer(), export.NewCSVRenderer())

	jwtSvc := jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	c.Auth = usecase.NewAuthUsecase(hrUsers, jwtSvc, cfg.Auth.BcryptCost)
	c.JobTitles = usecase.NewJobTitleUsecase(postgres.NewJobTitleRepository(c.DB), c.Logger)
	c.Uploads = usecase.NewUploadUsecase(c.Blobs, usecase.UploadLimits{
		CVMaxBytes:    cfg.Storage.CVMaxBytes,
		ImageMaxBytes: cfg.Storage.ImageMaxBytes,
	}, c.Logger)

	return nil
}

// Close releases resources in reverse acquisition order.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}
