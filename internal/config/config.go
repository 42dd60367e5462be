package config

import (
	"fmt"
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const devJWTSecret = "dev-secret-change-me"

// Configはアプリ全体の設定
// 環境変数（SHOP_接頭辞）、フラグ、YAMLから読む
type Config struct {
	Addr      string `default:"0.0.0.0:8080" usage:"API server listen address"`
	Env       string `default:"prod" usage:"dev or prod"`
	DB        DBConfig
	JWT       JWTConfig
	Order     OrderConfig
	RateLimit RateLimitConfig
	Graceful  GracefulConfig
}

type DBConfig struct {
	URL           string        `env:"URL" flag:"database-url" usage:"PostgreSQL connection URL (SHOP_DB_URL or DATABASE_URL)"`
	Host          string        `default:"localhost" usage:"DB host"`
	Port          int           `default:"5432" usage:"DB port"`
	User          string        `default:"postgres" usage:"DB user"`
	Password      string        `default:"postgres" usage:"DB password"`
	Name          string        `default:"ecshop" usage:"DB name"`
	SSLMode       string        `env:"SSLMODE" default:"disable" usage:"DB sslmode"`
	MaxOpenConns  int           `env:"MAX_OPEN_CONNS" default:"20" usage:"Max open connections"`
	SlowThreshold time.Duration `env:"SLOW_THRESHOLD" default:"200ms" usage:"Slow query log threshold"`
	AutoMigrate   bool          `env:"AUTO_MIGRATE" default:"true" usage:"Run AutoMigrate on startup" flag:"auto-migrate"`
}

// URLがあれば最優先で使う
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type JWTConfig struct {
	Secret     string        `usage:"HMAC secret for signing tokens (required outside dev)"`
	Issuer     string        `default:"ecshop" usage:"Token issuer"`
	AccessTTL  time.Duration `env:"ACCESS_TTL" default:"15m" usage:"Access token lifetime"`
	RefreshTTL time.Duration `env:"REFRESH_TTL" default:"720h" usage:"Refresh token lifetime"`
}

type OrderConfig struct {
	ShippingFee string `env:"SHIPPING_FEE" default:"30000" usage:"Flat shipping fee added to every order"`
}

// RateLimitConfig controls the per-client token bucket.
type RateLimitConfig struct {
	Enabled bool          `default:"true" usage:"Enable rate limiting"`
	Rate    float64       `default:"20" usage:"Requests per second per client"`
	Burst   int           `default:"40" usage:"Burst size"`
	Expires time.Duration `default:"3m" usage:"Idle visitor expiry"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `env:"READINESS_DELAY" default:"3s" usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

func (c *Config) IsDev() bool { return c.Env == "dev" }

// 送料（decimal）
func (c *Config) ShippingFee() decimal.Decimal {
	// Loadで検証済み
	return decimal.RequireFromString(c.Order.ShippingFee)
}

// Loadは.env → 環境変数/YAML/フラグの順で読む
func Load() (*Config, error) {
	// .envは無くてもよい
	_ = godotenv.Load()

	return load(aconfig.Config{
		EnvPrefix: "SHOP",
		Files:     []string{"config.yaml", "/etc/ecshop/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
}

func load(ac aconfig.Config) (*Config, error) {
	var cfg Config
	if err := aconfig.LoaderFor(&cfg, ac).Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	//必須チェック
	if c.JWT.Secret == "" {
		if !c.IsDev() {
			return errors.New("jwt secret is required: set SHOP_JWT_SECRET")
		}
		c.JWT.Secret = devJWTSecret
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("jwt ttl must be positive")
	}
	fee, err := decimal.NewFromString(c.Order.ShippingFee)
	if err != nil {
		return errors.Wrap(err, "parse shipping fee")
	}
	if fee.IsNegative() {
		return errors.New("shipping fee must not be negative")
	}
	return nil
}

// applyPlatformDefaults maps DATABASE_URL and PORT set by hosting platforms.
func (c *Config) applyPlatformDefaults() {
	if c.DB.URL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DB.URL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
