package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.MenuCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "postgres://hallulies:hallulies@db:5432/hallulies?sslmode=disable", cfg.DBURL)
	assert.Equal(t, "log", cfg.Mail.Driver)
	assert.False(t, cfg.UseRedis())
	assert.False(t, cfg.TracingEnabled())
	assert.Equal(t, 1.0, cfg.OTelSampleRatio)
	assert.Equal(t, "https://hallulies-hotel.onrender.com", cfg.ShareBaseURL)
}

func TestLoadRejectsDefaultSecretInProd(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SECRET_KEY", DefaultSecret)

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownMailDriver(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("MAIL_DRIVER", "pigeon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsSampleRatioOutOfRange(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "1.5")

	_, err := Load()
	require.Error(t, err)
}

func TestMailFallbacks(t *testing.T) {
	m := MailConfig{Username: "desk@hallulies.com"}
	assert.Equal(t, "desk@hallulies.com", m.Sender())
	assert.Equal(t, "desk@hallulies.com", m.AdminRecipient())

	m.From = "noreply@hallulies.com"
	m.AdminNotify = "manager@hallulies.com"
	assert.Equal(t, "noreply@hallulies.com", m.Sender())
	assert.Equal(t, "manager@hallulies.com", m.AdminRecipient())
}

func TestDBURLEscapesCredentials(t *testing.T) {
	d := DBConfig{Host: "db", Port: "5432", User: "hotel", Password: "p@ss:w/rd?#", Name: "hallulies", SSLMode: "require"}

	u, err := url.Parse(d.URL())
	require.NoError(t, err)

	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss:w/rd?#", pw)
	assert.Equal(t, "hotel", u.User.Username())
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/hallulies", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}
