package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	RateLimit    RateLimitConfig
	DB           DBConfig
	Redis        RedisConfig
	Admin        AdminConfig
	FeatureFlags FeatureFlagsConfig
}

// Load reads a local .env file when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.DB.Target = cfg.DB.Resolve(cfg.App.IsProd())
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHAHEN_APP_ENV" default:"development"`
	Port         string `envconfig:"PORT" default:"3001"`
	LogLevel     string `envconfig:"SHAHEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHAHEN_LOG_WARN_STACK" default:"false"`
	Version      string `envconfig:"SHAHEN_APP_VERSION" default:"1.0.0"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "dev")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "prod")
}

type HTTPConfig struct {
	FrontendURL       string        `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
	BodyLimitBytes    int64         `envconfig:"SHAHEN_HTTP_BODY_LIMIT_BYTES" default:"10485760"`
	ShutdownTimeout   time.Duration `envconfig:"SHAHEN_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	ReadHeaderTimeout time.Duration `envconfig:"SHAHEN_HTTP_READ_HEADER_TIMEOUT" default:"5s"`
}

type RateLimitConfig struct {
	Window time.Duration `envconfig:"SHAHEN_RATE_LIMIT_WINDOW" default:"15m"`
	Max    int           `envconfig:"RATE_LIMIT_MAX" default:"100"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHAHEN_REDIS_URL"`
	Address      string        `envconfig:"SHAHEN_REDIS_ADDR"`
	Password     string        `envconfig:"SHAHEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHAHEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHAHEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHAHEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHAHEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHAHEN_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"SHAHEN_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a Redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// AdminConfig guards the contact administration routes. An empty secret
// leaves them open.
type AdminConfig struct {
	JWTSecret string        `envconfig:"SHAHEN_ADMIN_JWT_SECRET"`
	JWTIssuer string        `envconfig:"SHAHEN_ADMIN_JWT_ISSUER" default:"shahen-backend"`
	TokenTTL  time.Duration `envconfig:"SHAHEN_ADMIN_TOKEN_TTL" default:"12h"`
}

func (a AdminConfig) Enabled() bool {
	return strings.TrimSpace(a.JWTSecret) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"SHAHEN_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"SHAHEN_SQLITE_PATH" default:"file:shahen.db?cache=shared"`
	AutoMigrate bool   `envconfig:"SHAHEN_AUTO_MIGRATE" default:"false"`
}
