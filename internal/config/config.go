package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Status   StatusConfig
	Watch    WatchConfig
	Alert    AlertConfig
}

type ServerConfig struct {
	Port     int
	Env      string // "development", "production"
	Timezone string
}

// Development reports whether the server runs with development relaxations
// (no HSTS, no strict security headers).
func (s ServerConfig) Development() bool {
	return s.Env == "development"
}

// Location resolves Timezone, falling back to the process local zone.
func (s ServerConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.Printf("WARNING: unknown APP_TIMEZONE %q, using local time", s.Timezone)
		return time.Local
	}
	return loc
}

type DatabaseConfig struct {
	Driver  string // "mysql" or "sqlite"
	Host    string
	Port    string
	Name    string
	User    string
	Pass    string
	Charset string
	Path    string // sqlite file
}

type RedisConfig struct {
	Addr      string
	Pass      string
	DB        int
	DedupeTTL time.Duration
}

// StatusConfig controls the client database freshness probe.
type StatusConfig struct {
	Timeout     time.Duration
	Concurrency int
}

// WatchConfig controls the background watcher over today's schedules.
type WatchConfig struct {
	Spec    string
	Enabled bool
}

type AlertConfig struct {
	SlackToken     string
	SlackChannel   string
	WebhookURL     string
	TelegramToken  string
	TelegramChatID string
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DB_DRIVER", "mysql")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("DB_PATH", "data/control.db")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SUBMIT_DEDUP_TTL", "2m")
	viper.SetDefault("STATUS_PROBE_TIMEOUT", "5s")
	viper.SetDefault("STATUS_PROBE_CONCURRENCY", 8)
	viper.SetDefault("WATCH_CRON", "0 */15 * * * *")
	viper.SetDefault("WATCH_ENABLED", true)

	cfg := &Config{
		Server: ServerConfig{
			Port:     viper.GetInt("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: databaseFromEnv(),
		Redis: RedisConfig{
			Addr:      viper.GetString("REDIS_ADDR"),
			Pass:      viper.GetString("REDIS_PASS"),
			DB:        viper.GetInt("REDIS_DB"),
			DedupeTTL: durationOr("SUBMIT_DEDUP_TTL", 2*time.Minute),
		},
		Status: StatusConfig{
			Timeout:     durationOr("STATUS_PROBE_TIMEOUT", 5*time.Second),
			Concurrency: viper.GetInt("STATUS_PROBE_CONCURRENCY"),
		},
		Watch: WatchConfig{
			Spec:    viper.GetString("WATCH_CRON"),
			Enabled: viper.GetBool("WATCH_ENABLED"),
		},
		Alert: AlertConfig{
			SlackToken:     viper.GetString("SLACK_TOKEN"),
			SlackChannel:   viper.GetString("SLACK_CHANNEL"),
			WebhookURL:     viper.GetString("ALERT_WEBHOOK_URL"),
			TelegramToken:  viper.GetString("TELEGRAM_TOKEN"),
			TelegramChatID: viper.GetString("TELEGRAM_CHAT_ID"),
		},
	}

	if cfg.Status.Concurrency <= 0 {
		cfg.Status.Concurrency = 1
	}
	if cfg.Database.Driver == "mysql" && cfg.Database.Name == "" {
		log.Println("WARNING: DB_NAME is not set")
	}

	return cfg, nil
}

// LoadDatabaseOnly reads just the control database settings, for the
// bootstrap command which must run before the rest of the config is valid.
func LoadDatabaseOnly() (*DatabaseConfig, error) {
	_ = godotenv.Load()
	viper.AutomaticEnv()
	viper.SetDefault("DB_DRIVER", "mysql")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("DB_PATH", "data/control.db")

	cfg := databaseFromEnv()
	return &cfg, nil
}

func databaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		Driver:  viper.GetString("DB_DRIVER"),
		Host:    viper.GetString("DB_HOST"),
		Port:    viper.GetString("DB_PORT"),
		Name:    viper.GetString("DB_NAME"),
		User:    viper.GetString("DB_USER"),
		Pass:    viper.GetString("DB_PASS"),
		Charset: viper.GetString("DB_CHARSET"),
		Path:    viper.GetString("DB_PATH"),
	}
}

func durationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// DSN returns the MySQL DSN string for GORM.
func (d *DatabaseConfig) DSN() string {
	return MySQLDSN(d.User, d.Pass, d.Host+":"+d.Port, d.Name, d.Charset)
}

// MySQLDSN builds a go-sql-driver DSN. addr is host:port.
func MySQLDSN(user, pass, addr, name, charset string) string {
	if charset == "" {
		charset = "utf8mb4"
	}
	return user + ":" + pass + "@tcp(" + addr + ")/" + name + "?charset=" + charset + "&parseTime=True&loc=Local"
}
