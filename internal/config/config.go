package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr    string
		APIRoot string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Log struct {
		Level  string
		Pretty bool
	}
	CORS struct {
		AllowedOrigins []string
	}
	RateLimit struct {
		RPS   float64
		Burst int
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
		TTL      time.Duration
	}
	APIToken           string
	RequireDescription bool
	ShutdownTimeout    time.Duration
}

// Load reads config from environment (BOOKMARKS_ prefix) and optional bookmarks.yaml.
func Load() (*Config, error) {
	return fromViper(newViper())
}

// newViper returns a viper bound to BOOKMARKS_* env vars and the optional
// bookmarks.yaml in the working directory.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookmarks")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.api_root", "/api")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("rate_limit.rps", 50)
	v.SetDefault("rate_limit.burst", 100)
	v.SetDefault("redis.ttl", "5m")
	v.SetDefault("bookmarks.require_description", false)
	v.SetDefault("shutdown_timeout", "10s")
}

func fromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.APIRoot = "/" + strings.Trim(v.GetString("http.api_root"), "/")
	if cfg.HTTP.APIRoot == "/" {
		cfg.HTTP.APIRoot = ""
	}
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Pretty = v.GetBool("log.pretty")
	cfg.CORS.AllowedOrigins = splitList(v.GetString("cors.allowed_origins"))
	cfg.RateLimit.RPS = v.GetFloat64("rate_limit.rps")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.APIToken = v.GetString("api_token")
	cfg.RequireDescription = v.GetBool("bookmarks.require_description")

	ttl, err := time.ParseDuration(v.GetString("redis.ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKS_REDIS_TTL: %w", err)
	}
	cfg.Redis.TTL = ttl

	shutdown, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKS_SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = shutdown

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("BOOKMARKS_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BOOKMARKS_DB_DSN is required")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("BOOKMARKS_API_TOKEN is required")
	}
	if cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst <= 0 {
		return nil, fmt.Errorf("rate limit rps and burst must be positive")
	}

	return cfg, nil
}

// LoadDB reads only the database settings, for commands that never serve HTTP.
func LoadDB() (driver, dsn string, err error) {
	return dbFromViper(newViper())
}

func dbFromViper(v *viper.Viper) (driver, dsn string, err error) {
	driver = v.GetString("db.driver")
	dsn = v.GetString("db.dsn")
	if driver == "" {
		return "", "", fmt.Errorf("BOOKMARKS_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if dsn == "" {
		return "", "", fmt.Errorf("BOOKMARKS_DB_DSN is required")
	}
	return driver, dsn, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
