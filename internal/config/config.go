package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration of the server and the command line tools.
type Config struct {
	GinMode          string         `mapstructure:"gin_mode"`
	LogFormat        string         `mapstructure:"log_format"`
	APIURL           string         `mapstructure:"api_url"`
	CORSAllowOrigins string         `mapstructure:"cors_allow_origins"`
	EnablePprof      bool           `mapstructure:"enable_pprof"`
	Port             int            `mapstructure:"port"`
	DB               DatabaseConfig `mapstructure:"db"`
	JWT              JWTConfig      `mapstructure:"jwt"`
	Mirror           MirrorConfig   `mapstructure:"mirror"`
}

// DatabaseConfig selects SQLite with Path, or PostgreSQL when Host is set.
type DatabaseConfig struct {
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// MirrorConfig configures the client side copy used by the dashboard command.
type MirrorConfig struct {
	Path  string `mapstructure:"path"`
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// Load reads the configuration from defaults, the optional file named by
// BUDGET_CONFIG and the environment.
//
// Nested keys map to environment variables with "_" as separator, e.g.
// db.path is read from DB_PATH.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_format", "")
	v.SetDefault("api_url", "")
	v.SetDefault("cors_allow_origins", "")
	v.SetDefault("enable_pprof", false)
	v.SetDefault("port", 8080)
	v.SetDefault("db.path", "data/budget.db")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "budget")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("mirror.path", "data/mirror.json")
	v.SetDefault("mirror.url", "")
	v.SetDefault("mirror.token", "")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path := os.Getenv("BUDGET_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.APIURL == "" {
		c.APIURL = fmt.Sprintf("http://localhost:%d", c.Port)
	}

	return c, nil
}

// BaseURL parses APIURL.
func (c Config) BaseURL() (*url.URL, error) {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return nil, fmt.Errorf("api_url must be a valid URL: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api_url must be an absolute URL, got %q", c.APIURL)
	}

	return u, nil
}

// UsePostgres reports if the PostgreSQL backend is configured.
func (c Config) UsePostgres() bool {
	return c.DB.Host != ""
}

// AllowOrigins returns the configured CORS origins.
func (c Config) AllowOrigins() []string {
	return strings.Fields(c.CORSAllowOrigins)
}
