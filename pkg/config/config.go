package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by the gateway.
const EnvPrefix = "mmc"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv          = "MMC_APP_ENV"
	EnvStorefrontToken = "MMC_SHOPIFY_STOREFRONT_TOKEN"
	EnvAdminToken      = "MMC_SHOPIFY_ADMIN_TOKEN"
)

type Config struct {
	App       AppConfig
	Shopify   ShopifyConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Sendgrid  SendgridConfig
	Media     MediaConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Shopify.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MMC_APP_ENV" required:"true"`
	Port         string `envconfig:"MMC_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MMC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MMC_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// ShopifyConfig carries the two upstream GraphQL surfaces: the public
// storefront API and the privileged admin API. The admin surface exists
// because storefront queries cannot see the media metadata the aggregation
// endpoints need.
type ShopifyConfig struct {
	StorefrontEndpoint string `envconfig:"MMC_SHOPIFY_STOREFRONT_ENDPOINT" default:"https://mymessageclothing.myshopify.com/api/2025-04/graphql.json"`
	StorefrontToken    string `envconfig:"MMC_SHOPIFY_STOREFRONT_TOKEN"`
	AdminEndpoint      string `envconfig:"MMC_SHOPIFY_ADMIN_ENDPOINT" default:"https://mymessageclothing.myshopify.com/admin/api/2024-10/graphql.json"`
	AdminToken         string `envconfig:"MMC_SHOPIFY_ADMIN_TOKEN"`
}

func (s ShopifyConfig) validate() error {
	missing := []string{}
	if strings.TrimSpace(s.StorefrontToken) == "" {
		missing = append(missing, EnvStorefrontToken)
	}
	if strings.TrimSpace(s.AdminToken) == "" {
		missing = append(missing, EnvAdminToken)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s required", strings.Join(missing, ", "))
	}
	for name, raw := range map[string]string{
		"storefront endpoint": s.StorefrontEndpoint,
		"admin endpoint":      s.AdminEndpoint,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid shopify %s %q", name, raw)
		}
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MMC_REDIS_URL"`
	Address      string        `envconfig:"MMC_REDIS_ADDR"`
	Password     string        `envconfig:"MMC_REDIS_PASSWORD"`
	DB           int           `envconfig:"MMC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MMC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MMC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MMC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MMC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MMC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis connection is configured. The gateway only
// uses redis for rate-limit counters, so the connection stays optional.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type RateLimitConfig struct {
	WaitlistWindow  time.Duration `envconfig:"MMC_RATE_LIMIT_WAITLIST_WINDOW" default:"5m"`
	WaitlistIPLimit int           `envconfig:"MMC_RATE_LIMIT_WAITLIST_IP_LIMIT" default:"10"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MMC_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,https://www.mymessageclo.com"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"MMC_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"MMC_SENDGRID_FROM_EMAIL" default:"noreply@mymessageclo.com"`
	NotifyEmail string `envconfig:"MMC_SENDGRID_NOTIFY_EMAIL" default:"mymessageclothing@gmail.com"`
}

type MediaConfig struct {
	ProxyUserAgent string        `envconfig:"MMC_MEDIA_PROXY_USER_AGENT" default:"MyMessage-Clothing-App/1.0"`
	ProxyTimeout   time.Duration `envconfig:"MMC_MEDIA_PROXY_TIMEOUT" default:"30s"`
}
