package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers for the favorites slot.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env               string        `mapstructure:"env"`                 // current application environment (local, dev, production etc)
	LogLevel          string        `mapstructure:"log_level"`           // overrides the environment's default log level when set
	TelegramAPIToken  string        `mapstructure:"-"`                   // Telegram API token loaded from environment
	QuestionsPath     string        `mapstructure:"questions_path"`      // path to the quiz questions (.json or .xlsx)
	LessonsPath       string        `mapstructure:"lessons_path"`        // path to JSON file with lessons
	HTTPClientTimeout time.Duration `mapstructure:"http_client_timeout"` // timeout for outbound API calls
	Storage           Storage       `mapstructure:"storage"`             // favorites slot configuration
	DB                DB            `mapstructure:"database"`            // database configuration section
	Redis             Redis         `mapstructure:"redis"`               // redis configuration section
	Gemini            Gemini        `mapstructure:"gemini"`              // chatbot backend
	Translator        Translator    `mapstructure:"translator"`          // translation backend
	Dictionary        Dictionary    `mapstructure:"dictionary"`          // random word and dictionary backends
	Lookup            Lookup        `mapstructure:"lookup"`              // retry policy for word lookups
	Chat              Chat          `mapstructure:"chat"`                // chatbot session settings
	Tips              Tips          `mapstructure:"tips"`                // daily tip broadcast
	Housekeeping      Housekeeping  `mapstructure:"housekeeping"`        // pruning of idle in-memory state
}

// Storage selects the durable backend of the favorites slot.
type Storage struct {
	Driver     string `mapstructure:"driver"`      // memory, file, postgres, redis or sqlite
	Dir        string `mapstructure:"dir"`         // directory for the file driver
	SQLitePath string `mapstructure:"sqlite_path"` // database file for the sqlite driver
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"-"`
	DB       int    `mapstructure:"db"`
}

type Gemini struct {
	APIKey  string `mapstructure:"-"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type Translator struct {
	BaseURL string `mapstructure:"base_url"`
	Source  string `mapstructure:"source"`
	Target  string `mapstructure:"target"`
}

type Dictionary struct {
	RandomWordURL string `mapstructure:"random_word_url"`
	BaseURL       string `mapstructure:"base_url"`
}

// Lookup configures the bounded retry of the random word lookup.
type Lookup struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
}

type Chat struct {
	HistoryLimit int `mapstructure:"history_limit"`
}

type Tips struct {
	DailyAt string `mapstructure:"daily_at"` // HH:MM in UTC
}

// Housekeeping configures how often idle sessions are pruned and after
// how long a session counts as idle.
type Housekeeping struct {
	Interval time.Duration `mapstructure:"interval"`
	IdleTTL  time.Duration `mapstructure:"idle_ttl"`
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Local runs keep secrets in .env; absence is not an error.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.Password = v.GetString("redis_password")
	cfg.Gemini.APIKey = v.GetString("gemini_api_key")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("questions_path", "assets/data/quiz.json")
	v.SetDefault("lessons_path", "assets/data/lessons.json")
	v.SetDefault("http_client_timeout", "10s")

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.dir", "data/favorites")
	v.SetDefault("storage.sqlite_path", "data/lingvo.db")

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.model", "gemini-2.0-flash")

	v.SetDefault("translator.base_url", "https://lingva.ml")
	v.SetDefault("translator.source", "en")
	v.SetDefault("translator.target", "hi")

	v.SetDefault("dictionary.random_word_url", "https://random-word-api.herokuapp.com/word")
	v.SetDefault("dictionary.base_url", "https://api.dictionaryapi.dev")

	v.SetDefault("lookup.max_attempts", 4)
	v.SetDefault("lookup.initial_backoff", "500ms")
	v.SetDefault("lookup.max_backoff", "5s")

	v.SetDefault("chat.history_limit", 20)
	v.SetDefault("tips.daily_at", "09:00")

	v.SetDefault("housekeeping.interval", "10m")
	v.SetDefault("housekeeping.idle_ttl", "24h")
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverFile, DriverRedis, DriverSQLite:
	case DriverPostgres:
		if _, err := c.DB.DSN(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}

	if c.Housekeeping.Interval < time.Minute {
		c.Housekeeping.Interval = time.Minute
	}

	if c.Lookup.MaxAttempts < 1 {
		c.Lookup.MaxAttempts = 1
	}

	return nil
}
