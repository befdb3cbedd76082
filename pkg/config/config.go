package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "GUARDTAG"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "GUARDTAG_APP_ENV"
	EnvPort     = "GUARDTAG_APP_PORT"
	EnvDBDSN    = "GUARDTAG_DB_DSN"
	EnvDBHost   = "GUARDTAG_DB_HOST"
	EnvDBUser   = "GUARDTAG_DB_USER"
	EnvDBName   = "GUARDTAG_DB_NAME"
	EnvRedisURL = "GUARDTAG_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Stripe       StripeConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GUARDTAG_APP_ENV" required:"true"`
	Port         string `envconfig:"GUARDTAG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GUARDTAG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GUARDTAG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GUARDTAG_DB_DSN"`
	Driver string `envconfig:"GUARDTAG_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GUARDTAG_DB_HOST"`
	LegacyPort     int    `envconfig:"GUARDTAG_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GUARDTAG_DB_USER"`
	LegacyPassword string `envconfig:"GUARDTAG_DB_PASSWORD"`
	LegacyName     string `envconfig:"GUARDTAG_DB_NAME"`
	LegacySSLMode  string `envconfig:"GUARDTAG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GUARDTAG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GUARDTAG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GUARDTAG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GUARDTAG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GUARDTAG_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GUARDTAG_REDIS_ADDR"`
	Password     string        `envconfig:"GUARDTAG_REDIS_PASSWORD"`
	DB           int           `envconfig:"GUARDTAG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GUARDTAG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GUARDTAG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GUARDTAG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GUARDTAG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GUARDTAG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig tunes the durable cart slot.
type CartConfig struct {
	SlotTTL time.Duration `envconfig:"GUARDTAG_CART_SLOT_TTL" default:"720h"`
}

type StripeConfig struct {
	APIKey string `envconfig:"GUARDTAG_STRIPE_API_KEY"`
	Env    string `envconfig:"GUARDTAG_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GUARDTAG_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GUARDTAG_AUTO_MIGRATE" default:"false"`
	SeedCatalog bool `envconfig:"GUARDTAG_SEED_CATALOG" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
