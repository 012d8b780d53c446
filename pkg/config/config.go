package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Store        StoreConfig
	Shipping     ShippingConfig
	Checkout     CheckoutConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"UMKM_APP_ENV" default:"dev"`
	Port         string `envconfig:"UMKM_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"UMKM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"UMKM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Path            string        `envconfig:"UMKM_DB_PATH" default:"storefront.db"`
	MaxOpenConns    int           `envconfig:"UMKM_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"UMKM_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"UMKM_DB_CONN_MAX_LIFETIME" default:"0"`
	ConnMaxIdleTime time.Duration `envconfig:"UMKM_DB_CONN_MAX_IDLE_TIME" default:"0"`
}

type RedisConfig struct {
	Address      string        `envconfig:"UMKM_REDIS_ADDR"`
	Password     string        `envconfig:"UMKM_REDIS_PASSWORD"`
	DB           int           `envconfig:"UMKM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"UMKM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"UMKM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"UMKM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"UMKM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"UMKM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StoreConfig identifies the merchant the storefront sells for.
type StoreConfig struct {
	Name           string `envconfig:"UMKM_STORE_NAME" default:"UMKM Store"`
	WhatsAppNumber string `envconfig:"UMKM_STORE_WHATSAPP_NUMBER" default:"62895613114028"`
}

type ShippingConfig struct {
	BaseCost int `envconfig:"UMKM_SHIPPING_BASE_COST" default:"5000"`
}

// CheckoutConfig carries the capability flags probed once at startup.
type CheckoutConfig struct {
	EnableClipboard bool `envconfig:"UMKM_CHECKOUT_ENABLE_CLIPBOARD" default:"true"`
	EnableShare     bool `envconfig:"UMKM_CHECKOUT_ENABLE_SHARE" default:"true"`
}

const (
	CartStorageFile  = "file"
	CartStorageRedis = "redis"
)

type CartConfig struct {
	// Storage selects the durable slot backend: "redis" or "file".
	Storage    string        `envconfig:"UMKM_CART_STORAGE" default:"file"`
	FileDir    string        `envconfig:"UMKM_CART_FILE_DIR" default:"carts"`
	SlotTTL    time.Duration `envconfig:"UMKM_CART_SLOT_TTL" default:"168h"`
	SessionTTL time.Duration `envconfig:"UMKM_CART_SESSION_TTL" default:"24h"`
}

func (c CartConfig) validate() error {
	switch strings.ToLower(c.Storage) {
	case CartStorageRedis, CartStorageFile:
		return nil
	default:
		return fmt.Errorf("unknown cart storage backend %q", c.Storage)
	}
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"UMKM_AUTO_MIGRATE" default:"true"`
}
