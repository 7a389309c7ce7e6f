package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Documents     DocumentsConfig
	Reminders     RemindersConfig
	WebPush       WebPushConfig
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
	Env          string `envconfig:"GIFTFLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"GIFTFLOW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GIFTFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GIFTFLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"GIFTFLOW_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"GIFTFLOW_DB_DSN"`
	Driver string `envconfig:"GIFTFLOW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GIFTFLOW_DB_HOST"`
	LegacyPort     int    `envconfig:"GIFTFLOW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GIFTFLOW_DB_USER"`
	LegacyPassword string `envconfig:"GIFTFLOW_DB_PASSWORD"`
	LegacyName     string `envconfig:"GIFTFLOW_DB_NAME"`
	LegacySSLMode  string `envconfig:"GIFTFLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GIFTFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GIFTFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GIFTFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GIFTFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GIFTFLOW_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GIFTFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"GIFTFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"GIFTFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GIFTFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GIFTFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GIFTFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GIFTFLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GIFTFLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GIFTFLOW_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GIFTFLOW_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"GIFTFLOW_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"GIFTFLOW_BCRYPT_COST" default:"10"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"GIFTFLOW_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"GIFTFLOW_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"GIFTFLOW_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GIFTFLOW_AUTO_MIGRATE" default:"false"`
}

// DocumentsConfig carries fallbacks for document numbering; the settings store
// overrides these at runtime.
type DocumentsConfig struct {
	InvoicePrefix  string `envconfig:"GIFTFLOW_INVOICE_PREFIX" default:"INV"`
	ReceiptPrefix  string `envconfig:"GIFTFLOW_RECEIPT_PREFIX" default:"RCP"`
	CurrencySymbol string `envconfig:"GIFTFLOW_CURRENCY_SYMBOL" default:"Rs."`
}

type RemindersConfig struct {
	CronSecret string        `envconfig:"GIFTFLOW_CRON_SECRET" required:"true"`
	Interval   time.Duration `envconfig:"GIFTFLOW_CRON_INTERVAL" default:"24h"`
}

type WebPushConfig struct {
	VAPIDPublicKey  string `envconfig:"GIFTFLOW_VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `envconfig:"GIFTFLOW_VAPID_PRIVATE_KEY"`
	Subscriber      string `envconfig:"GIFTFLOW_VAPID_SUBSCRIBER" default:"mailto:admin@giftflow.local"`
}

// Enabled reports whether web push delivery is configured.
func (w WebPushConfig) Enabled() bool {
	return w.VAPIDPublicKey != "" && w.VAPIDPrivateKey != ""
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
