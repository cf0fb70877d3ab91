package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	defaultPort              = "3000"
	defaultAPITimeout        = "0s"
	defaultSessionStoreURL   = "minicrm.db"
	defaultSessionSecret     = "change-me-session-secret"
	defaultSessionCookieName = "minicrm_session"
	defaultCookieSecure      = "false"
	defaultCookieSameSite    = "Lax"
	defaultViewStateTTL      = "30m"
	defaultCleanupSchedule   = "*/15 * * * *"
)

type Config struct {
	AppEnv            string
	Port              string
	APIURL            string
	APITimeout        time.Duration
	SessionStoreURL   string
	SessionSecret     string
	SessionCookieName string
	CookieSecure      bool
	CookieSameSite    string
	ViewStateTTL      time.Duration
	CleanupSchedule   string
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(os.Getenv("CRM_API_URL")), "/")
	cfg.SessionStoreURL = strings.TrimSpace(getEnv("SESSION_STORE_URL", defaultSessionStoreURL))
	cfg.SessionSecret = strings.TrimSpace(getEnv("SESSION_SECRET", defaultSessionSecret))
	cfg.SessionCookieName = strings.TrimSpace(getEnv("SESSION_COOKIE_NAME", defaultSessionCookieName))
	cfg.CleanupSchedule = strings.TrimSpace(getEnv("CLEANUP_SCHEDULE", defaultCleanupSchedule))

	var err error
	cfg.APITimeout, err = parseDurationEnv("API_TIMEOUT", defaultAPITimeout)
	if err != nil {
		return nil, err
	}

	cfg.ViewStateTTL, err = parseDurationEnv("VIEW_STATE_TTL", defaultViewStateTTL)
	if err != nil {
		return nil, err
	}

	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.CookieSameSite = strings.TrimSpace(getEnv("COOKIE_SAMESITE", defaultCookieSameSite))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s api=%s cookie_secure=%t same_site=%s", cfg.AppEnv, cfg.APIURL, cfg.CookieSecure, cfg.CookieSameSite)

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.APIURL == "" {
		return fmt.Errorf("CRM_API_URL is required")
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("CRM_API_URL must be an absolute http(s) URL")
	}
	if cfg.APITimeout < 0 {
		return fmt.Errorf("API_TIMEOUT must be >= 0")
	}
	if cfg.ViewStateTTL <= 0 {
		return fmt.Errorf("VIEW_STATE_TTL must be > 0")
	}
	if cfg.SessionStoreURL == "" {
		return fmt.Errorf("SESSION_STORE_URL must not be empty")
	}
	if cfg.SessionCookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	if _, err := cron.ParseStandard(cfg.CleanupSchedule); err != nil {
		return fmt.Errorf("invalid CLEANUP_SCHEDULE %q: %w", cfg.CleanupSchedule, err)
	}
	if cfg.CookieSameSite == "" {
		return fmt.Errorf("COOKIE_SAMESITE must not be empty")
	}
	sameSite := strings.ToLower(strings.TrimSpace(cfg.CookieSameSite))
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.SessionSecret, defaultSessionSecret) {
			return fmt.Errorf("in prod/release SESSION_SECRET must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
