package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultSecret is the JWT signing secret used when none is configured. It is
// rejected outside debug mode.
const DefaultSecret = "default-secret"

var ErrDatabaseURLRequired = errors.New("database URL is required")

type Config struct {
	Debug                 bool          `yaml:"debug"                   env:"DEBUG"`
	Dev                   bool          `yaml:"dev"                     env:"DEV"`
	Host                  string        `yaml:"host"                    env:"HOST"`
	Port                  string        `yaml:"port"                    env:"PORT"`
	Secret                string        `yaml:"secret"                  env:"SECRET"`
	DatabaseURL           string        `yaml:"database_url"            env:"DATABASE_URL"`
	MigrationSource       string        `yaml:"migration_source"        env:"MIGRATION_SOURCE"`
	AllowOrigins          []string      `yaml:"allow_origins"           env:"ALLOW_ORIGINS"`
	OtelCollectorUrl      string        `yaml:"otel_collector_url"      env:"OTEL_COLLECTOR_URL"`
	AccessTokenExpiration time.Duration `yaml:"access_token_expiration" env:"ACCESS_TOKEN_EXPIRATION"`
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrDatabaseURLRequired
	}
	return nil
}

// Log buffers configuration-time messages until the zap logger exists.
type Log struct {
	entries []logEntry
}

type logEntry struct {
	level   string
	message string
	err     error
}

func (l *Log) info(message string) {
	l.entries = append(l.entries, logEntry{level: "info", message: message})
}

func (l *Log) warn(message string, err error) {
	l.entries = append(l.entries, logEntry{level: "warn", message: message, err: err})
}

// FlushToZap replays the buffered messages on the real logger.
func (l *Log) FlushToZap(logger *zap.Logger) {
	for _, entry := range l.entries {
		switch entry.level {
		case "warn":
			if entry.err != nil {
				logger.Warn(entry.message, zap.Error(entry.err))
			} else {
				logger.Warn(entry.message)
			}
		default:
			logger.Info(entry.message)
		}
	}
}

func defaultConfig() Config {
	return Config{
		Host:                  "localhost",
		Port:                  "8080",
		Secret:                DefaultSecret,
		MigrationSource:       "file://migrations",
		AccessTokenExpiration: 24 * time.Hour,
	}
}

// Load resolves the configuration in ascending precedence: defaults, then
// config.yaml, then a .env file, then process environment variables, then
// command-line flags.
func Load() (Config, *Log) {
	cfgLog := &Log{}

	cfg := defaultConfig()
	cfg = loadYamlFile("config.yaml", cfg, cfgLog)
	cfg = loadDotEnv(cfg, cfgLog)
	cfg = loadEnv(cfg)
	cfg = loadFlags(cfg)

	return cfg, cfgLog
}

func loadYamlFile(path string, cfg Config, cfgLog *Log) Config {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			cfgLog.warn(fmt.Sprintf("Failed to read config file %s", path), err)
		}
		return cfg
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		cfgLog.warn(fmt.Sprintf("Failed to parse config file %s", path), err)
		return cfg
	}

	cfgLog.info(fmt.Sprintf("Loaded config file %s", path))
	return cfg
}

func loadDotEnv(cfg Config, cfgLog *Log) Config {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			cfgLog.warn("Failed to load .env file", err)
		}
		return cfg
	}

	cfgLog.info("Loaded .env file")
	return cfg
}

func loadEnv(cfg Config) Config {
	if v := os.Getenv("DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DEV"); v != "" {
		cfg.Dev, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("SECRET"); v != "" {
		cfg.Secret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("MIGRATION_SOURCE"); v != "" {
		cfg.MigrationSource = v
	}
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		cfg.AllowOrigins = splitOrigins(v)
	}
	if v := os.Getenv("OTEL_COLLECTOR_URL"); v != "" {
		cfg.OtelCollectorUrl = v
	}
	if v := os.Getenv("ACCESS_TOKEN_EXPIRATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AccessTokenExpiration = d
		}
	}
	return cfg
}

func loadFlags(cfg Config) Config {
	if flag.Parsed() {
		return cfg
	}

	debug := flag.Bool("debug", cfg.Debug, "enable debug mode")
	dev := flag.Bool("dev", cfg.Dev, "enable development mode")
	host := flag.String("host", cfg.Host, "server host")
	port := flag.String("port", cfg.Port, "server port")
	secret := flag.String("secret", cfg.Secret, "JWT signing secret")
	databaseURL := flag.String("database_url", cfg.DatabaseURL, "PostgreSQL connection string")
	migrationSource := flag.String("migration_source", cfg.MigrationSource, "database migration source")
	allowOrigins := flag.String("allow_origins", "", "comma separated list of allowed CORS origins")
	otelCollectorUrl := flag.String("otel_collector_url", cfg.OtelCollectorUrl, "OTLP gRPC collector endpoint")
	flag.Parse()

	cfg.Debug = *debug
	cfg.Dev = *dev
	cfg.Host = *host
	cfg.Port = *port
	cfg.Secret = *secret
	cfg.DatabaseURL = *databaseURL
	cfg.MigrationSource = *migrationSource
	if *allowOrigins != "" {
		cfg.AllowOrigins = splitOrigins(*allowOrigins)
	}
	cfg.OtelCollectorUrl = *otelCollectorUrl

	return cfg
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
