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
	Recruiting RecruitingConfig
	Session    SessionConfig
	Redis      RedisConfig
	Database   DatabaseConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	PublicBaseURL string
	MigrationsDir string
}

type RecruitingConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	CookieSecure  bool
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	JobsCacheTTL time.Duration
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

// Enabled reports whether a Postgres host was configured. The activity log is
// optional and the console runs without it.
func (d DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(d.DBHost) != ""
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

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
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := parseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optInt32 := func(key string) int32 {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return 0
		}
		return int32(v)
	}
	optBool := func(key string) bool {
		raw := opt(key)
		if raw == "" {
			return false
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return false
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		PublicBaseURL: strings.TrimRight(opt("PUBLIC_BASE_URL"), "/"),
		MigrationsDir: opt("MIGRATIONS_DIR"),
	}

	cfg.Recruiting = RecruitingConfig{
		BaseURL: strings.TrimRight(req("RECRUITING_API_BASE_URL"), "/"),
		Timeout: optDuration("RECRUITING_API_TIMEOUT", 10*time.Second),
	}

	cfg.Session = SessionConfig{
		AccessSecret:  req("SESSION_ACCESS_SECRET"),
		RefreshSecret: req("SESSION_REFRESH_SECRET"),
		AccessTTL:     optDuration("SESSION_ACCESS_TTL", time.Hour),
		RefreshTTL:    optDuration("SESSION_REFRESH_TTL", 7*24*time.Hour),
		CookieSecure:  optBool("COOKIE_SECURE"),
	}

	cfg.Redis = RedisConfig{
		Host:         opt("REDIS_HOST"),
		Port:         opt("REDIS_PORT"),
		Password:     opt("REDIS_PASSWORD"),
		JobsCacheTTL: optDuration("JOBS_CACHE_TTL", 30*time.Second),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          optInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          optInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// parseDuration accepts Go duration strings ("10s", "1h") and bare integers as seconds.
func parseDuration(raw string) (time.Duration, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(raw)
}
