package config

// EnvPrefix namespaces the service's own variables. Database variables keep
// the names hosting platforms inject (DB_*, DATABASE_URL, PG*).
const EnvPrefix = "SHAHEN"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
	AppEnvTest = "test"
)

const (
	EnvAppEnv       = "SHAHEN_APP_ENV"
	EnvPort         = "PORT"
	EnvLogLevel     = "SHAHEN_LOG_LEVEL"
	EnvLogWarnStack = "SHAHEN_LOG_WARN_STACK"
	EnvAppVersion   = "SHAHEN_APP_VERSION"

	EnvFrontendURL     = "FRONTEND_URL"
	EnvBodyLimitBytes  = "SHAHEN_HTTP_BODY_LIMIT_BYTES"
	EnvShutdownTimeout = "SHAHEN_HTTP_SHUTDOWN_TIMEOUT"

	EnvRateLimitWindow = "SHAHEN_RATE_LIMIT_WINDOW"
	EnvRateLimitMax    = "RATE_LIMIT_MAX"

	EnvDBHost     = "DB_HOST"
	EnvDBPort     = "DB_PORT"
	EnvDBUser     = "DB_USERNAME"
	EnvDBPassword = "DB_PASSWORD"
	EnvDBName     = "DB_NAME"
	EnvDBURL      = "DATABASE_URL"
	EnvPGHost     = "PGHOST"
	EnvPGPort     = "PGPORT"
	EnvPGUser     = "PGUSER"
	EnvPGPassword = "PGPASSWORD"
	EnvPGDatabase = "PGDATABASE"

	EnvRedisURL  = "SHAHEN_REDIS_URL"
	EnvRedisAddr = "SHAHEN_REDIS_ADDR"

	EnvAdminJWTSecret = "SHAHEN_ADMIN_JWT_SECRET"
	EnvAdminJWTIssuer = "SHAHEN_ADMIN_JWT_ISSUER"
	EnvAdminTokenTTL  = "SHAHEN_ADMIN_TOKEN_TTL"

	EnvUseSQLite   = "SHAHEN_USE_SQLITE"
	EnvSQLitePath  = "SHAHEN_SQLITE_PATH"
	EnvAutoMigrate = "SHAHEN_AUTO_MIGRATE"
)

// Fallbacks used when no database variable resolves.
const (
	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBName     = "shahen_logistics"
)

// dbPlaceholderVars are checked for unexpanded "$VAR" values so boot can warn.
var dbPlaceholderVars = []string{EnvDBHost, EnvDBPort, EnvDBUser, EnvDBPassword, EnvDBName}
