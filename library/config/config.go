package config

import (
	"os"
	"strings"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
)

// Config carries every runtime setting the service needs. It is built once
// during bootstrap and never mutated afterwards.
type Config struct {
	ListenAddr string
	Debug      bool

	MongoAddr   string
	MongoDBName string
	MongoUser   string
	MongoPwd    string

	// TokenSecret signs every bearer token the service issues.
	TokenSecret string

	FacebookAppID       string
	FacebookAppSecret   string
	FacebookCallbackURL string
	// FrontendLoginURL receives the browser redirect after the Facebook
	// OAuth callback, with token and user appended as query parameters.
	FrontendLoginURL string

	UploadDir          string
	UploadPublicPrefix string

	AllowedOrigins []string
}

// env var -> gconfig key overrides; env always wins so deployments can run
// without a settings file.
var envOverrides = map[string]string{
	"LISTEN_ADDR":           "listen",
	"MONGO_ADDR":            "settings.db.blog.addr",
	"MONGO_DB":              "settings.db.blog.db",
	"MONGO_USER":            "settings.db.blog.user",
	"MONGO_PWD":             "settings.db.blog.pwd",
	"JWT_SECRET":            "settings.secret",
	"FACEBOOK_APP_ID":       "settings.facebook.app_id",
	"FACEBOOK_APP_SECRET":   "settings.facebook.app_secret",
	"FACEBOOK_CALLBACK_URL": "settings.facebook.callback_url",
	"FRONTEND_LOGIN_URL":    "settings.facebook.frontend_login_url",
	"UPLOAD_DIR":            "settings.upload.dir",
}

// New assembles a Config from the shared gconfig store, applying env
// overrides and defaults, then validates it.
func New() (*Config, error) {
	for env, key := range envOverrides {
		if v := os.Getenv(env); v != "" {
			gconfig.Shared.Set(key, v)
		}
	}

	cfg := &Config{
		ListenAddr:          gconfig.Shared.GetString("listen"),
		Debug:               gconfig.Shared.GetBool("debug"),
		MongoAddr:           gconfig.Shared.GetString("settings.db.blog.addr"),
		MongoDBName:         gconfig.Shared.GetString("settings.db.blog.db"),
		MongoUser:           gconfig.Shared.GetString("settings.db.blog.user"),
		MongoPwd:            gconfig.Shared.GetString("settings.db.blog.pwd"),
		TokenSecret:         gconfig.Shared.GetString("settings.secret"),
		FacebookAppID:       gconfig.Shared.GetString("settings.facebook.app_id"),
		FacebookAppSecret:   gconfig.Shared.GetString("settings.facebook.app_secret"),
		FacebookCallbackURL: gconfig.Shared.GetString("settings.facebook.callback_url"),
		FrontendLoginURL:    gconfig.Shared.GetString("settings.facebook.frontend_login_url"),
		UploadDir:           gconfig.Shared.GetString("settings.upload.dir"),
		UploadPublicPrefix:  gconfig.Shared.GetString("settings.upload.public_prefix"),
		AllowedOrigins:      gconfig.Shared.GetStringSlice("settings.web.allowed_origins"),
	}

	if cfg.ListenAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.ListenAddr = ":" + port
		} else {
			cfg.ListenAddr = "localhost:5001"
		}
	}
	if cfg.MongoDBName == "" {
		cfg.MongoDBName = "blog"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.UploadPublicPrefix == "" {
		cfg.UploadPublicPrefix = "/uploads"
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.MongoAddr == "" {
		missing = append(missing, "settings.db.blog.addr / MONGO_ADDR")
	}
	if c.TokenSecret == "" {
		missing = append(missing, "settings.secret / JWT_SECRET")
	}

	// Facebook login is optional, but once the app id is set the rest of
	// the OAuth settings must be complete.
	if c.FacebookAppID != "" {
		if c.FacebookAppSecret == "" {
			missing = append(missing, "settings.facebook.app_secret / FACEBOOK_APP_SECRET")
		}
		if c.FacebookCallbackURL == "" {
			missing = append(missing, "settings.facebook.callback_url / FACEBOOK_CALLBACK_URL")
		}
		if c.FrontendLoginURL == "" {
			missing = append(missing, "settings.facebook.frontend_login_url / FRONTEND_LOGIN_URL")
		}
	}

	if len(missing) != 0 {
		return errors.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	return nil
}

// FacebookLoginEnabled reports whether the OAuth redirect flow can be served.
func (c *Config) FacebookLoginEnabled() bool {
	return c.FacebookAppID != ""
}
