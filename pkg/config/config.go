package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "tripbazaar"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Supplier SupplierConfig
	Cache    CacheConfig
	SMS      SMSConfig
	Booking  BookingConfig
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
	Env          string `envconfig:"TRIPBAZAAR_APP_ENV" required:"true"`
	Port         string `envconfig:"TRIPBAZAAR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TRIPBAZAAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TRIPBAZAAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TRIPBAZAAR_DB_DSN"`
	Driver string `envconfig:"TRIPBAZAAR_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"TRIPBAZAAR_DB_HOST"`
	Port     int    `envconfig:"TRIPBAZAAR_DB_PORT" default:"5432"`
	User     string `envconfig:"TRIPBAZAAR_DB_USER"`
	Password string `envconfig:"TRIPBAZAAR_DB_PASSWORD"`
	Name     string `envconfig:"TRIPBAZAAR_DB_NAME"`
	SSLMode  string `envconfig:"TRIPBAZAAR_DB_SSLMODE" default:"disable"`

	AutoMigrate bool `envconfig:"TRIPBAZAAR_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"TRIPBAZAAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRIPBAZAAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRIPBAZAAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRIPBAZAAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TRIPBAZAAR_REDIS_URL"`
	Address      string        `envconfig:"TRIPBAZAAR_REDIS_ADDR"`
	Password     string        `envconfig:"TRIPBAZAAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRIPBAZAAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRIPBAZAAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRIPBAZAAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRIPBAZAAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRIPBAZAAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TRIPBAZAAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TRIPBAZAAR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TRIPBAZAAR_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TRIPBAZAAR_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TRIPBAZAAR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TRIPBAZAAR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TRIPBAZAAR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TRIPBAZAAR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TRIPBAZAAR_ARGON_KEY_LEN" default:"32"`
}

// SupplierConfig carries the upstream hotel API connection settings.
type SupplierConfig struct {
	BaseURL      string        `envconfig:"TRIPBAZAAR_SUPPLIER_BASE_URL" required:"true"`
	APIKey       string        `envconfig:"TRIPBAZAAR_SUPPLIER_API_KEY"`
	Timeout      time.Duration `envconfig:"TRIPBAZAAR_SUPPLIER_TIMEOUT" default:"30s"`
	SourceMarket string        `envconfig:"TRIPBAZAAR_SUPPLIER_SOURCE_MARKET" default:"IN"`
	Locale       string        `envconfig:"TRIPBAZAAR_SUPPLIER_LOCALE" default:"en-US"`

	BreakerConsecutiveFailures uint32        `envconfig:"TRIPBAZAAR_SUPPLIER_BREAKER_FAILURES" default:"5"`
	BreakerOpenFor             time.Duration `envconfig:"TRIPBAZAAR_SUPPLIER_BREAKER_OPEN_FOR" default:"30s"`
}

// CacheConfig holds the memoization TTLs for the search flows.
type CacheConfig struct {
	AutosuggestTTL time.Duration `envconfig:"TRIPBAZAAR_CACHE_AUTOSUGGEST_TTL" default:"7200s"`
	HotelSearchTTL time.Duration `envconfig:"TRIPBAZAAR_CACHE_HOTEL_SEARCH_TTL" default:"300s"`
}

type SMSConfig struct {
	BaseURL       string `envconfig:"TRIPBAZAAR_SMS_BASE_URL"`
	APIKey        string `envconfig:"TRIPBAZAAR_SMS_API_KEY"`
	SenderID      string `envconfig:"TRIPBAZAAR_SMS_SENDER_ID" default:"TRPBZR"`
	CountryPrefix string `envconfig:"TRIPBAZAAR_SMS_COUNTRY_PREFIX" default:"91"`
	AdminMobile   string `envconfig:"TRIPBAZAAR_SMS_ADMIN_MOBILE" default:"7678105666"`
	QueueSize     int    `envconfig:"TRIPBAZAAR_SMS_QUEUE_SIZE" default:"256"`
}

// BookingConfig carries booking-flow defaults.
type BookingConfig struct {
	GuestNationality string `envconfig:"TRIPBAZAAR_BOOKING_GUEST_NATIONALITY" default:"IN"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, "sqlite") {
		return fmt.Errorf("TRIPBAZAAR_DB_DSN is required for the sqlite driver")
	}

	missing := []string{}
	for envName, value := range map[string]string{
		"TRIPBAZAAR_DB_HOST": db.Host,
		"TRIPBAZAAR_DB_USER": db.User,
		"TRIPBAZAAR_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, envName)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either TRIPBAZAAR_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
