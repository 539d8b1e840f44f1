package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Session codecs.
const (
	CodecJWT          = "jwt"
	CodecSecureCookie = "securecookie"
)

type Config struct {
	Env  string
	Port int

	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	AI        AIConfig
	CORS      CORSConfig
	Log       LogConfig
	Dashboard DashboardConfig
	Exports   ExportsConfig
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Driver        string
	RunMigrations bool
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	CookieName         string
	Secret             string
	BlockKey           string
	MaxAge             time.Duration
	Codec              string
	Issuer             string
	SharedPasswordHash string
}

// AIConfig configures the generative model behind the advisory flows.
type AIConfig struct {
	APIKey   string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs dashboard cache tuning.
type DashboardConfig struct {
	CacheTTL time.Duration
}

// ExportsConfig configures asynchronous roster and attendance exports.
type ExportsConfig struct {
	Enabled           bool
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	CleanupInterval   time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

// SecureCookies reports whether cookies must carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.Env == EnvProduction
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Store = StoreConfig{
		Driver:        strings.ToLower(v.GetString("STORE_DRIVER")),
		RunMigrations: v.GetBool("DB_RUN_MIGRATIONS"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("ENABLE_CACHE"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		CookieName:         v.GetString("SESSION_COOKIE_NAME"),
		Secret:             v.GetString("SESSION_SECRET"),
		BlockKey:           v.GetString("SESSION_BLOCK_KEY"),
		MaxAge:             parseDuration(v.GetString("SESSION_MAX_AGE"), 7*24*time.Hour),
		Codec:              strings.ToLower(v.GetString("SESSION_CODEC")),
		Issuer:             v.GetString("SESSION_ISSUER"),
		SharedPasswordHash: v.GetString("SESSION_SHARED_PASSWORD_HASH"),
	}

	cfg.AI = AIConfig{
		APIKey:   v.GetString("AI_API_KEY"),
		Model:    v.GetString("AI_MODEL"),
		Timeout:  parseDuration(v.GetString("AI_TIMEOUT"), 30*time.Second),
		CacheTTL: parseDuration(v.GetString("AI_CACHE_TTL"), 15*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheTTL: parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		Enabled:           v.GetBool("ENABLE_EXPORTS"),
		StorageDir:        v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		CleanupInterval:   parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
		WorkerConcurrency: v.GetInt("EXPORTS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("EXPORTS_WORKER_RETRIES"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreMemory, StorePostgres:
	default:
		return errors.New("STORE_DRIVER must be memory or postgres")
	}
	switch c.Session.Codec {
	case CodecJWT, CodecSecureCookie:
	default:
		return errors.New("SESSION_CODEC must be jwt or securecookie")
	}
	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.Env == EnvProduction && c.Session.Secret == devSessionSecret {
		return errors.New("SESSION_SECRET must be overridden in production")
	}
	return nil
}

const devSessionSecret = "dev_session_secret"

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("DB_RUN_MIGRATIONS", true)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "school_erp")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_COOKIE_NAME", "school_erp_session")
	v.SetDefault("SESSION_SECRET", devSessionSecret)
	v.SetDefault("SESSION_BLOCK_KEY", "")
	v.SetDefault("SESSION_MAX_AGE", "168h")
	v.SetDefault("SESSION_CODEC", CodecJWT)
	v.SetDefault("SESSION_ISSUER", "school-erp")
	v.SetDefault("SESSION_SHARED_PASSWORD_HASH", "")

	v.SetDefault("AI_API_KEY", "")
	v.SetDefault("AI_MODEL", "gemini-2.5-flash")
	v.SetDefault("AI_TIMEOUT", "30s")
	v.SetDefault("AI_CACHE_TTL", "15m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")

	v.SetDefault("ENABLE_EXPORTS", true)
	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("EXPORTS_WORKER_CONCURRENCY", 1)
	v.SetDefault("EXPORTS_WORKER_RETRIES", 3)
}

func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
