package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for every environment override.
const EnvPrefix = "BOOSTPAY"

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Log           LogConfig           `mapstructure:"log"`
	Webhook       WebhookConfig       `mapstructure:"webhook"`
	AccessControl AccessControlConfig `mapstructure:"access_control"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Ops           OpsConfig           `mapstructure:"ops"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	CORS          CORSConfig          `mapstructure:"cors"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, memory
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Database, c.SSLMode,
	)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
// An empty Address disables every Redis-backed feature.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WebhookConfig holds payment provider callback configuration.
type WebhookConfig struct {
	Provider        string        `mapstructure:"provider"`
	Secret          string        `mapstructure:"secret"`
	SignatureHeader string        `mapstructure:"signature_header"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	// ApplyTimeout bounds order and notification work after an event is ledgered.
	ApplyTimeout time.Duration `mapstructure:"apply_timeout"`
}

// AccessControlConfig holds statically configured administrators.
type AccessControlConfig struct {
	AdminUserIDs []string `mapstructure:"admin_user_ids"`
}

// NotificationsConfig holds outbound push configuration.
type NotificationsConfig struct {
	PushEnabled      bool          `mapstructure:"push_enabled"`
	PushStream       string        `mapstructure:"push_stream"`
	PushMaxLen       int64         `mapstructure:"push_max_len"`
	AlertChannel     string        `mapstructure:"alert_channel"`
	BreakerFailures  uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout   time.Duration `mapstructure:"breaker_timeout"`
	BreakerHalfOpen  uint32        `mapstructure:"breaker_half_open"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// OpsConfig holds operator endpoint configuration.
type OpsConfig struct {
	Token string `mapstructure:"token"`
}

// MetricsConfig holds Prometheus configuration.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// CORSConfig holds CORS configuration for the operator routes.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration, reading configFile when it is not empty.
func LoadFrom(configFile string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/boostpay")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Secrets are read explicitly so they never need to live in a file.
	if secret := os.Getenv(EnvPrefix + "_WEBHOOK_SECRET"); secret != "" {
		cfg.Webhook.Secret = secret
	}
	if password := os.Getenv(EnvPrefix + "_DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if password := os.Getenv(EnvPrefix + "_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if token := os.Getenv(EnvPrefix + "_OPS_TOKEN"); token != "" {
		cfg.Ops.Token = token
	}
	if s := os.Getenv(EnvPrefix + "_ADMIN_USER_IDS"); s != "" {
		cfg.AccessControl.AdminUserIDs = parseCommaSeparatedList(s)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	if c.Webhook.Secret == "" {
		return fmt.Errorf("config: webhook.secret is required (set %s_WEBHOOK_SECRET)", EnvPrefix)
	}
	if c.Webhook.SignatureHeader == "" {
		return fmt.Errorf("config: webhook.signature_header must not be empty")
	}
	return nil
}

func parseCommaSeparatedList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	// Database defaults
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.database", "boostpay")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	// Redis defaults
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.db", 0)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Webhook defaults
	v.SetDefault("webhook.provider", "cryptomus")
	v.SetDefault("webhook.signature_header", "sign")
	v.SetDefault("webhook.max_body_bytes", 64*1024)
	v.SetDefault("webhook.apply_timeout", "30s")

	// Access control defaults
	v.SetDefault("access_control.admin_user_ids", []string{})

	// Notification defaults
	v.SetDefault("notifications.push_enabled", true)
	v.SetDefault("notifications.push_stream", "notifications:outbound")
	v.SetDefault("notifications.push_max_len", 100000)
	v.SetDefault("notifications.alert_channel", "ops:alerts")
	v.SetDefault("notifications.breaker_failures", 5)
	v.SetDefault("notifications.breaker_timeout", 30*time.Second)
	v.SetDefault("notifications.breaker_half_open", 1)
	v.SetDefault("notifications.operation_timeout", 2*time.Second)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "boostpay")
	v.SetDefault("metrics.path", "/metrics")

	// CORS defaults
	v.SetDefault("cors.allow_origins", []string{"*"})
}
