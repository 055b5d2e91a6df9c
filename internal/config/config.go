package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultSecret is only acceptable outside prod.
const DefaultSecret = "hallulies_secret_key_2024"

type Config struct {
	Env   string `env:"APP_ENV" envDefault:"dev"`
	Port  int    `env:"PORT" envDefault:"8000"`
	DBURL string `env:"DATABASE_URL"`
	DB    DBConfig

	JWTSecret string        `env:"SECRET_KEY" envDefault:"hallulies_secret_key_2024"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@hallulies.com"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	SeedMenu      bool   `env:"SEED_MENU" envDefault:"true"`

	MenuCacheTTL time.Duration `env:"MENU_CACHE_TTL" envDefault:"30s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	MaxBodyBytes       int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`

	Redis     RedisConfig
	Mail      MailConfig
	Payments  PaymentsConfig
	KeepAlive KeepAliveConfig

	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelSampleRatio float64 `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1"`

	// ShareBaseURL prefixes document share links.
	ShareBaseURL string `env:"SHARE_BASE_URL" envDefault:"https://hallulies-hotel.onrender.com"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"hallulies"`
	Password string `env:"DB_PASSWORD" envDefault:"hallulies"`
	Name     string `env:"DB_NAME" envDefault:"hallulies"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type MailConfig struct {
	Driver      string        `env:"MAIL_DRIVER" envDefault:"log"`
	Host        string        `env:"EMAIL_HOST" envDefault:"smtp.gmail.com"`
	Port        int           `env:"EMAIL_PORT" envDefault:"587"`
	Username    string        `env:"EMAIL_HOST_USER" envDefault:"hallulies6@gmail.com"`
	Password    string        `env:"EMAIL_HOST_PASSWORD"`
	From        string        `env:"EMAIL_FROM"`
	AdminNotify string        `env:"ADMIN_NOTIFY_EMAIL"`
	Timeout     time.Duration `env:"MAIL_TIMEOUT" envDefault:"5s"`
}

type PaymentsConfig struct {
	Currency string `env:"PAYMENT_CURRENCY" envDefault:"GHS"`
}

type KeepAliveConfig struct {
	URL        string        `env:"KEEPALIVE_URL" envDefault:"http://localhost:8000/api/health"`
	Schedule   string        `env:"KEEPALIVE_SCHEDULE" envDefault:"*/14 * * * *"`
	Timeout    time.Duration `env:"KEEPALIVE_TIMEOUT" envDefault:"5s"`
	HealthPort int           `env:"KEEPALIVE_HEALTH_PORT" envDefault:"9102"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// a missing .env is normal outside local dev
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBURL == "" {
		cfg.DBURL = cfg.DB.URL()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("SECRET_KEY must not be empty")
	}
	if c.IsProd() && c.JWTSecret == DefaultSecret {
		return errors.New("SECRET_KEY must be changed in prod")
	}
	if c.OTelSampleRatio < 0 || c.OTelSampleRatio > 1 {
		return errors.New("OTEL_TRACES_SAMPLER_ARG must be between 0 and 1")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	switch c.Mail.Driver {
	case "log", "smtp":
	default:
		return fmt.Errorf("unknown MAIL_DRIVER %q", c.Mail.Driver)
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}

func (c Config) UseRedis() bool {
	return c.Redis.Addr != ""
}

func (c Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

// URL escapes credentials, so passwords may contain '@', ':' or '/'.
func (d DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Sender falls back to the SMTP login when no explicit From is set.
func (m MailConfig) Sender() string {
	if m.From != "" {
		return m.From
	}
	return m.Username
}

// AdminRecipient is where moderation and contact notices go.
func (m MailConfig) AdminRecipient() string {
	if m.AdminNotify != "" {
		return m.AdminNotify
	}
	return m.Username
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
