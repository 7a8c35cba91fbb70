package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Redis      RedisConfig
	Storage    StorageConfig
	RateLimit  RateLimitConfig
	Migrations MigrationConfig
}

type AppConfig struct {
	AppName        string
	Environment    string
	HTTPPort       string
	BodyLimit      int
	FrontendOrigin string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type AuthConfig struct {
	JWTSecret    string
	JWTIssuer    string
	TokenTTL     time.Duration
	CookieName   string
	CookieSecure bool
	BcryptCost   int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Driver         string
	LocalDir       string
	GCSBucket      string
	GCSCredentials string
	PublicURL      string
	CVMaxBytes     int64
	ImageMaxBytes  int64
}

type RateLimitConfig struct {
	APIPerWindow    int
	APIWindow       time.Duration
	SubmitPerMinute int
	LoginPerMinute  int
}

type MigrationConfig struct {
	Dir         string
	AutoMigrate bool
	AutoSeed    bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads the process environment, after merging an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return n
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optBool := func(key string, def bool) bool {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "hr-recruitment"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "5000"),
		BodyLimit:   optInt("HTTP_BODY_LIMIT", 10*1024*1024),

		FrontendOrigin: opt("FRONTEND_URL", "http://localhost:3000"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.Auth = AuthConfig{
		JWTSecret:  req("JWT_SECRET"),
		JWTIssuer:  opt("JWT_ISSUER", "hr-recruitment"),
		TokenTTL:   optDuration("JWT_TTL", 12*time.Hour),
		CookieName: opt("AUTH_COOKIE_NAME", "authToken"),
		BcryptCost: optInt("BCRYPT_COST", 12),
	}
	cfg.Auth.CookieSecure = optBool("AUTH_COOKIE_SECURE", cfg.App.Environment == "production")

	cfg.Redis = RedisConfig{
		Addr:     opt("REDIS_ADDR", ""),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       optInt("REDIS_DB", 0),
	}

	cfg.Storage = StorageConfig{
		Driver:         strings.ToLower(opt("STORAGE_DRIVER", "local")),
		LocalDir:       opt("STORAGE_LOCAL_DIR", "uploads"),
		GCSBucket:      opt("STORAGE_GCS_BUCKET", ""),
		GCSCredentials: opt("STORAGE_GCS_CREDENTIALS_FILE", ""),
		PublicURL:      opt("STORAGE_PUBLIC_URL", ""),

		CVMaxBytes:    int64(optInt("UPLOAD_CV_MAX_BYTES", 2*1024*1024)),
		ImageMaxBytes: int64(optInt("UPLOAD_IMAGE_MAX_BYTES", 5*1024*1024)),
	}
	if cfg.Storage.Driver == "gcs" && cfg.Storage.GCSBucket == "" {
		missing = append(missing, "STORAGE_GCS_BUCKET")
	}

	cfg.RateLimit = RateLimitConfig{
		APIPerWindow:    optInt("RATE_LIMIT_API_MAX", 100),
		APIWindow:       optDuration("RATE_LIMIT_API_WINDOW", 15*time.Minute),
		SubmitPerMinute: optInt("RATE_LIMIT_SUBMIT_PER_MINUTE", 10),
		LoginPerMinute:  optInt("RATE_LIMIT_LOGIN_PER_MINUTE", 5),
	}

	cfg.Migrations = MigrationConfig{
		Dir:         opt("MIGRATIONS_DIR", ""),
		AutoMigrate: optBool("AUTO_MIGRATE", true),
		AutoSeed:    optBool("AUTO_SEED", false),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
