package skinmarket

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/skinmarket/market/skinmarket/config"
	"github.com/skinmarket/market/skinmarket/database"
)

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		if err := cfg.DB.ApplyURL(dsn); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the settings used for every key the file omits.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  slog.LevelInfo,
			Format: "text",
		},
		DB: DBConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			PoolSize: 10,
		},
		Web: WebConfig{
			Host:      config.DefaultWebHost,
			Port:      config.DefaultWebPort,
			BodyLimit: config.DefaultBodyLimit,
		},
		RateLimit: RateLimitConfig{
			Requests:   config.DefaultRateLimitRequests,
			Window:     Duration(config.DefaultRateLimitWindow),
			MaxClients: config.DefaultRateLimitClients,
		},
		Trade: TradeConfig{
			RecentLimit: config.RecentTradesLimit,
		},
	}
}

type Config struct {
	Log       LogConfig       `toml:"log"`
	DB        DBConfig        `toml:"db"`
	Web       WebConfig       `toml:"web"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Trade     TradeConfig     `toml:"trade"`
	Spaces    SpacesConfig    `toml:"spaces"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Driver       string `toml:"driver"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

func (c DBConfig) Connection() database.DBConfig {
	return database.DBConfig{
		Host:         c.Host,
		Port:         c.Port,
		User:         c.User,
		Password:     c.Password,
		Database:     c.Database,
		PoolSize:     c.PoolSize,
		MaxIdleConns: c.MaxIdleConns,
		MaxLifetime:  c.MaxLifetime,
	}
}

// ApplyURL overrides the connection fields from a postgres:// URL.
func (c *DBConfig) ApplyURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("invalid DATABASE_URL: unsupported scheme %q", u.Scheme)
	}

	c.Driver = "postgres"
	if host := u.Hostname(); host != "" {
		c.Host = host
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid DATABASE_URL port: %w", err)
		}
		c.Port = port
	}
	if u.User != nil {
		c.User = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			c.Password = pw
		}
	}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		c.Database = db
	}
	return nil
}

type WebConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	BodyLimit int    `toml:"body_limit"`
}

func (c WebConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RateLimitConfig struct {
	// Requests per Window per client.
	Requests   int      `toml:"requests"`
	Window     Duration `toml:"window"`
	MaxClients int      `toml:"max_clients"`
}

type TradeConfig struct {
	EnforceOwnership bool `toml:"enforce_ownership"`
	RecentLimit      int  `toml:"recent_limit"`
}

type SpacesConfig struct {
	Key       string `toml:"key"`
	Secret    string `toml:"secret"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	Endpoint  string `toml:"endpoint"`
	Root      string `toml:"root"`
	PublicURL string `toml:"public_url"`
}

// Duration decodes TOML strings such as "1m" or "30s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres":
		if c.DB.Host == "" || c.DB.Database == "" {
			return fmt.Errorf("db: host and database are required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("db: unknown driver %q", c.DB.Driver)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}

	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web: invalid port %d", c.Web.Port)
	}
	if c.RateLimit.Requests < 0 || c.RateLimit.MaxClients < 0 {
		return fmt.Errorf("ratelimit: values must not be negative")
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window.Std() <= 0 {
		return fmt.Errorf("ratelimit: window must be positive")
	}
	if c.Trade.RecentLimit <= 0 {
		c.Trade.RecentLimit = config.RecentTradesLimit
	}
	return nil
}
