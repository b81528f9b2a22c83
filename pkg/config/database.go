package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/OmerAlfiel/Shahen-website/pkg/env"
)

// DBConfig holds every source a Postgres target can come from plus pool
// and retry tuning. Target is filled by Load.
type DBConfig struct {
	Host     string `envconfig:"DB_HOST"`
	Port     string `envconfig:"DB_PORT"`
	User     string `envconfig:"DB_USERNAME"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME"`

	URL string `envconfig:"DATABASE_URL"`

	PGHost     string `envconfig:"PGHOST"`
	PGPort     string `envconfig:"PGPORT"`
	PGUser     string `envconfig:"PGUSER"`
	PGPassword string `envconfig:"PGPASSWORD"`
	PGDatabase string `envconfig:"PGDATABASE"`

	MaxOpenConns    int           `envconfig:"SHAHEN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHAHEN_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SHAHEN_DB_CONN_MAX_LIFETIME" default:"30s"`
	ConnMaxIdleTime time.Duration `envconfig:"SHAHEN_DB_CONN_MAX_IDLE_TIME" default:"10s"`
	ConnectAttempts int           `envconfig:"SHAHEN_DB_CONNECT_ATTEMPTS" default:"5"`
	ConnectBackoff  time.Duration `envconfig:"SHAHEN_DB_CONNECT_BACKOFF" default:"3s"`

	Target DBTarget `ignored:"true"`
}

// DBTarget is the resolved Postgres endpoint.
type DBTarget struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	// Placeholders lists DB_* variables that held an unexpanded "$VAR".
	Placeholders []string
}

// DSN renders the target as a postgres:// URL.
func (t DBTarget) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(t.User, t.Password),
		Host:   fmt.Sprintf("%s:%d", t.Host, t.Port),
		Path:   t.Name,
	}
	q := u.Query()
	q.Set("sslmode", t.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// LogFields describes the target without the password.
func (t DBTarget) LogFields() map[string]any {
	return map[string]any{
		"db_host":    t.Host,
		"db_port":    t.Port,
		"db_user":    t.User,
		"db_name":    t.Name,
		"db_sslmode": t.SSLMode,
	}
}

type urlParts struct {
	host, user, password, name string
	port                       int
}

func parseDatabaseURL(raw string) urlParts {
	if raw == "" {
		return urlParts{}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return urlParts{}
	}
	parts := urlParts{host: u.Hostname()}
	if p, err := strconv.Atoi(u.Port()); err == nil {
		parts.port = p
	}
	if u.User != nil {
		parts.user = u.User.Username()
		parts.password, _ = u.User.Password()
	}
	if len(u.Path) > 1 {
		parts.name = u.Path[1:]
	}
	return parts
}

// Resolve picks each connection parameter independently, in order: an
// explicit DB_* value that is not a placeholder, DATABASE_URL, the PG*
// variables, then the local defaults. Production connections require TLS.
func (db DBConfig) Resolve(production bool) DBTarget {
	fromURL := parseDatabaseURL(db.URL)

	target := DBTarget{
		Host:     firstString(db.Host, fromURL.host, db.PGHost, DefaultDBHost),
		Port:     firstPort(db.Port, fromURL.port, db.PGPort),
		User:     firstString(db.User, fromURL.user, db.PGUser, DefaultDBUser),
		Password: firstString(db.Password, fromURL.password, db.PGPassword, DefaultDBPassword),
		Name:     firstString(db.Name, fromURL.name, db.PGDatabase, DefaultDBName),
		SSLMode:  "disable",
	}
	if production {
		target.SSLMode = "require"
	}

	raw := map[string]string{
		EnvDBHost:     db.Host,
		EnvDBPort:     db.Port,
		EnvDBUser:     db.User,
		EnvDBPassword: db.Password,
		EnvDBName:     db.Name,
	}
	for _, name := range dbPlaceholderVars {
		if env.IsPlaceholder(raw[name]) {
			target.Placeholders = append(target.Placeholders, name)
		}
	}
	return target
}

// firstString returns the first usable explicit value; later candidates
// (URL parts, PG* vars, defaults) are taken as-is when non-empty.
func firstString(explicit string, rest ...string) string {
	if v, ok := env.Usable(explicit); ok {
		return v
	}
	for _, candidate := range rest {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func firstPort(explicit string, fromURL int, pgPort string) int {
	if v, ok := env.Usable(explicit); ok {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			return p
		}
	}
	if fromURL > 0 {
		return fromURL
	}
	if p, err := strconv.Atoi(pgPort); err == nil && p > 0 {
		return p
	}
	return DefaultDBPort
}
