package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "TAHWEELA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv      = "TAHWEELA_APP_ENV"
	EnvPort        = "TAHWEELA_APP_PORT"
	EnvDBDSN       = "TAHWEELA_DB_DSN"
	EnvDBHost      = "TAHWEELA_DB_HOST"
	EnvDBUser      = "TAHWEELA_DB_USER"
	EnvDBName      = "TAHWEELA_DB_NAME"
	EnvRedisURL    = "TAHWEELA_REDIS_URL"
	EnvJWTSecret   = "TAHWEELA_JWT_SECRET"
	EnvJWTIssuer   = "TAHWEELA_JWT_ISSUER"
	EnvJWTExpMins  = "TAHWEELA_JWT_EXPIRATION_MINUTES"
	EnvCartKey     = "TAHWEELA_CART_STORAGE_KEY"
	EnvCartTTL     = "TAHWEELA_CART_MIRROR_TTL"
	EnvMirrorKind  = "TAHWEELA_CART_MIRROR"
	EnvCurrency    = "TAHWEELA_CHECKOUT_CURRENCY"
	EnvUseSQLite   = "TAHWEELA_USE_SQLITE"
	EnvSQLitePath  = "TAHWEELA_SQLITE_PATH"
	EnvAutoMigrate = "TAHWEELA_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.Cart.MirrorKind == MirrorRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s is required when the cart mirror is redis", EnvRedisURL)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TAHWEELA_APP_ENV" required:"true"`
	Port         string `envconfig:"TAHWEELA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TAHWEELA_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"TAHWEELA_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"TAHWEELA_LOG_WARN_STACK" default:"false"`

	CORSOrigins     []string      `envconfig:"TAHWEELA_CORS_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"TAHWEELA_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TAHWEELA_DB_DSN"`
	Driver string `envconfig:"TAHWEELA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TAHWEELA_DB_HOST"`
	LegacyPort     int    `envconfig:"TAHWEELA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TAHWEELA_DB_USER"`
	LegacyPassword string `envconfig:"TAHWEELA_DB_PASSWORD"`
	LegacyName     string `envconfig:"TAHWEELA_DB_NAME"`
	LegacySSLMode  string `envconfig:"TAHWEELA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TAHWEELA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TAHWEELA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TAHWEELA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TAHWEELA_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SQLitePath string `envconfig:"TAHWEELA_SQLITE_PATH" default:"file:tahweela.db?cache=shared"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TAHWEELA_REDIS_URL"`
	Address      string        `envconfig:"TAHWEELA_REDIS_ADDR"`
	Password     string        `envconfig:"TAHWEELA_REDIS_PASSWORD"`
	DB           int           `envconfig:"TAHWEELA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TAHWEELA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TAHWEELA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TAHWEELA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TAHWEELA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TAHWEELA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TAHWEELA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TAHWEELA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TAHWEELA_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

const (
	MirrorRedis  = "redis"
	MirrorMemory = "memory"
)

type CartConfig struct {
	StorageKey string        `envconfig:"TAHWEELA_CART_STORAGE_KEY" default:"tahweela_cart"`
	MirrorKind string        `envconfig:"TAHWEELA_CART_MIRROR" default:"redis"`
	MirrorTTL  time.Duration `envconfig:"TAHWEELA_CART_MIRROR_TTL" default:"720h"`
}

type CheckoutConfig struct {
	Currency string `envconfig:"TAHWEELA_CHECKOUT_CURRENCY" default:"SAR"`
}

type CatalogConfig struct {
	DefaultLimit int `envconfig:"TAHWEELA_CATALOG_DEFAULT_LIMIT" default:"12"`
	MaxLimit     int `envconfig:"TAHWEELA_CATALOG_MAX_LIMIT" default:"100"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TAHWEELA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TAHWEELA_AUTO_MIGRATE" default:"false"`
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
