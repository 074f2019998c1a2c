package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variable names before mapping,
// e.g. HAPPIER_DB_HOST -> db_host.
const EnvPrefix = "HAPPIER_"

type Config struct {
	Env       string `koanf:"env" validate:"required"`
	Addr      string `koanf:"addr" validate:"required"`
	LogLevel  string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=json console"`

	DBHost            string        `koanf:"db_host" validate:"required"`
	DBPort            string        `koanf:"db_port" validate:"required,numeric"`
	DBName            string        `koanf:"db_name" validate:"required"`
	DBUser            string        `koanf:"db_user" validate:"required"`
	DBPassword        string        `koanf:"db_password"`
	DBTimeout         time.Duration `koanf:"db_timeout" validate:"gt=0"`
	DBMaxOpenConns    int           `koanf:"db_max_open_conns" validate:"gte=1"`
	DBMaxIdleConns    int           `koanf:"db_max_idle_conns" validate:"gte=0"`
	DBConnMaxLifetime time.Duration `koanf:"db_conn_max_lifetime"`
	DBConnectRetries  int           `koanf:"db_connect_retries" validate:"gte=1"`

	HTTPMaxBodyBytes    int64         `koanf:"http_max_body_bytes" validate:"gt=0"`
	HTTPShutdownTimeout time.Duration `koanf:"http_shutdown_timeout" validate:"gt=0"`

	AMQPURL   string `koanf:"amqp_url"`
	AMQPQueue string `koanf:"amqp_queue" validate:"required"`
}

// Default returns the configuration used for any variable left unset.
func Default() Config {
	return Config{
		Env:       "dev",
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "json",

		DBHost:            "db",
		DBPort:            "3306",
		DBName:            "happierhour",
		DBUser:            "appuser",
		DBPassword:        "apppass",
		DBTimeout:         5 * time.Second,
		DBMaxOpenConns:    25,
		DBMaxIdleConns:    25,
		DBConnMaxLifetime: 30 * time.Minute,
		DBConnectRetries:  30,

		HTTPMaxBodyBytes:    1 << 20,
		HTTPShutdownTimeout: 10 * time.Second,

		AMQPQueue: "happierhour.changes",
	}
}

// Load reads HAPPIER_* variables (a .env file in the working directory is
// loaded first, if present) over the defaults and validates the result.
func Load() (Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// DSN builds the go-sql-driver/mysql connection string.
func (c Config) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.DBUser
	cfg.Passwd = c.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = c.DBHost + ":" + c.DBPort
	cfg.DBName = c.DBName
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Timeout = c.DBTimeout
	cfg.ReadTimeout = c.DBTimeout
	cfg.WriteTimeout = c.DBTimeout
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	cfg.Params["charset"] = "utf8mb4"
	return cfg.FormatDSN()
}

// EventsEnabled reports whether change events should be published.
func (c Config) EventsEnabled() bool { return c.AMQPURL != "" }
