package config

import (
	"time"
)

// Config aggregates all service configuration blocks.
type Config struct {
	Server     ServerConfig     `json:"server"`
	HTTP       HTTPConfig       `json:"http"`
	Retry      RetryConfig      `json:"retry"`
	Database   DatabaseConfig   `json:"database"`
	Archive    ArchiveConfig    `json:"archive"`
	Extractor  ExtractorConfig  `json:"extractor"`
	LLM        LLMConfig        `json:"llm"`
	Pipeline   PipelineConfig   `json:"pipeline"`
	Schedule   ScheduleConfig   `json:"schedule"`
	Commitfest CommitfestConfig `json:"commitfest"`
	Delivery   DeliveryConfig   `json:"delivery"`
	Redis      RedisConfig      `json:"redis"`
	Metrics    MetricsConfig    `json:"metrics"`
	Cache      CacheConfig      `json:"cache"`
}

type ServerConfig struct {
	Port            int           `json:"port" env:"SERVER_PORT" default:"9200"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	ReadTimeout     time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"300s"`
}

type HTTPConfig struct {
	Timeout             time.Duration `json:"timeout" env:"HTTP_TIMEOUT" default:"30s"`
	MaxIdleConns        int           `json:"max_idle_conns" env:"HTTP_MAX_IDLE_CONNS" default:"10"`
	MaxIdleConnsPerHost int           `json:"max_idle_conns_per_host" env:"HTTP_MAX_IDLE_CONNS_PER_HOST" default:"2"`
	IdleConnTimeout     time.Duration `json:"idle_conn_timeout" env:"HTTP_IDLE_CONN_TIMEOUT" default:"90s"`
	TLSHandshakeTimeout time.Duration `json:"tls_handshake_timeout" env:"HTTP_TLS_HANDSHAKE_TIMEOUT" default:"10s"`
	UserAgent           string        `json:"user_agent" env:"HTTP_USER_AGENT" default:"pgsql-hackers-digest/1.0 (+https://github.com/haritabh1992/postgres-mailing-list-summary-sender)"`
	RespectRobots       bool          `json:"respect_robots" env:"HTTP_RESPECT_ROBOTS" default:"true"`
}

type RetryConfig struct {
	MaxAttempts   int           `json:"max_attempts" env:"RETRY_MAX_ATTEMPTS" default:"3"`
	BaseDelay     time.Duration `json:"base_delay" env:"RETRY_BASE_DELAY" default:"1s"`
	MaxDelay      time.Duration `json:"max_delay" env:"RETRY_MAX_DELAY" default:"30s"`
	BackoffFactor float64       `json:"backoff_factor" env:"RETRY_BACKOFF_FACTOR" default:"2.0"`
	JitterFactor  float64       `json:"jitter_factor" env:"RETRY_JITTER_FACTOR" default:"0.1"`
}

type DatabaseSSLConfig struct {
	Mode     string `json:"mode" env:"DB_SSL_MODE" default:"prefer"`
	RootCert string `json:"root_cert" env:"DB_SSL_ROOT_CERT"`
	Cert     string `json:"cert" env:"DB_SSL_CERT"`
	Key      string `json:"key" env:"DB_SSL_KEY"`
}

type DatabaseConfig struct {
	Host            string            `json:"host" env:"DB_HOST" default:"localhost"`
	Port            string            `json:"port" env:"DB_PORT" default:"5432"`
	User            string            `json:"user" env:"DB_USER" default:"devuser"`
	Password        string            `json:"-" env:"DB_PASSWORD" default:"devpassword"`
	DBName          string            `json:"db_name" env:"DB_NAME" default:"digest"`
	SSL             DatabaseSSLConfig `json:"ssl"`
	MaxConns        int               `json:"max_conns" env:"DB_MAX_CONNS" default:"20"`
	MinConns        int               `json:"min_conns" env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration     `json:"max_conn_lifetime" env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration     `json:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// ArchiveConfig points at the mailing-list mirror that is scraped.
type ArchiveConfig struct {
	BaseURL    string        `json:"base_url" env:"ARCHIVE_BASE_URL" default:"https://www.postgrespro.com"`
	ListName   string        `json:"list_name" env:"ARCHIVE_LIST_NAME" default:"pgsql-hackers"`
	FetchDelay time.Duration `json:"fetch_delay" env:"ARCHIVE_FETCH_DELAY" default:"1s"`
	WindowDays int           `json:"window_days" env:"ARCHIVE_WINDOW_DAYS" default:"7"`
}

type ExtractorConfig struct {
	DefaultBatchSize int           `json:"default_batch_size" env:"EXTRACTOR_DEFAULT_BATCH_SIZE" default:"100"`
	MinBatchSize     int           `json:"min_batch_size" env:"EXTRACTOR_MIN_BATCH_SIZE" default:"10"`
	MaxBatchSize     int           `json:"max_batch_size" env:"EXTRACTOR_MAX_BATCH_SIZE" default:"500"`
	Delay            time.Duration `json:"delay" env:"EXTRACTOR_DELAY" default:"1s"`
}

// LLMConfig configures the OpenAI-compatible summarizer. APIKey is checked lazily.
type LLMConfig struct {
	APIKey       string        `json:"-" env:"OPENAI_API_KEY"`
	BaseURL      string        `json:"base_url" env:"OPENAI_BASE_URL"`
	Model        string        `json:"model" env:"OPENAI_MODEL" default:"gpt-4o-mini"`
	Encoding     string        `json:"encoding" env:"LLM_TOKEN_ENCODING" default:"o200k_base"`
	TokenCeiling int           `json:"token_ceiling" env:"LLM_TOKEN_CEILING" default:"12000"`
	MaxTokens    int           `json:"max_tokens" env:"LLM_MAX_TOKENS" default:"2000"`
	Temperature  float64       `json:"temperature" env:"LLM_TEMPERATURE" default:"0.7"`
	Timeout      time.Duration `json:"timeout" env:"LLM_TIMEOUT" default:"120s"`
}

type PipelineConfig struct {
	ContentBatchSize int           `json:"content_batch_size" env:"PIPELINE_CONTENT_BATCH_SIZE" default:"200"`
	MaxAttempts      int           `json:"max_attempts" env:"PIPELINE_MAX_ATTEMPTS" default:"3"`
	AttemptDelay     time.Duration `json:"attempt_delay" env:"PIPELINE_ATTEMPT_DELAY" default:"500ms"`
	SummaryDays      int           `json:"summary_days" env:"PIPELINE_SUMMARY_DAYS" default:"7"`
	Secret           string        `json:"-" env:"PIPELINE_SECRET"`
}

type ScheduleConfig struct {
	HourlyEnabled  bool          `json:"hourly_enabled" env:"SCHEDULE_HOURLY_ENABLED" default:"true"`
	HourlyInterval time.Duration `json:"hourly_interval" env:"SCHEDULE_HOURLY_INTERVAL" default:"1h"`
	WeeklyEnabled  bool          `json:"weekly_enabled" env:"SCHEDULE_WEEKLY_ENABLED" default:"true"`
	WeeklyWeekday  time.Weekday  `json:"weekly_weekday" env:"SCHEDULE_WEEKLY_WEEKDAY" default:"5"`
	WeeklyHour     int           `json:"weekly_hour" env:"SCHEDULE_WEEKLY_HOUR" default:"9"`
	MaxBackoff     time.Duration `json:"max_backoff" env:"SCHEDULE_MAX_BACKOFF" default:"6h"`
}

type CommitfestConfig struct {
	FixtureURL string        `json:"fixture_url" env:"COMMITFEST_FIXTURE_URL" default:"https://raw.githubusercontent.com/postgres/pgcommitfest/c7088f9f859fdbac5d026199306be192293b1a8a/pgcommitfest/commitfest/fixtures/commitfest_data.json"`
	BaseURL    string        `json:"base_url" env:"COMMITFEST_BASE_URL" default:"https://commitfest.postgresql.org"`
	MaxPatches int           `json:"max_patches" env:"COMMITFEST_MAX_PATCHES" default:"500"`
	Delay      time.Duration `json:"delay" env:"COMMITFEST_DELAY" default:"500ms"`
}

type DeliveryConfig struct {
	ResendAPIKey  string `json:"-" env:"RESEND_API_KEY"`
	ResendBaseURL string `json:"resend_base_url" env:"RESEND_BASE_URL" default:"https://api.resend.com"`
	From          string `json:"from" env:"DELIVERY_FROM" default:"PostgreSQL Hackers Digest <digest@example.org>"`
	PublicBaseURL string `json:"public_base_url" env:"PUBLIC_BASE_URL" default:"http://localhost:9200"`
}

// RedisConfig drives the optional stream consumer that triggers pipeline runs.
type RedisConfig struct {
	Enabled      bool          `json:"enabled" env:"REDIS_TRIGGER_ENABLED" default:"false"`
	URL          string        `json:"url" env:"REDIS_URL" default:"redis://localhost:6379/0"`
	StreamKey    string        `json:"stream_key" env:"REDIS_STREAM_KEY" default:"digest:pipeline:triggers"`
	GroupName    string        `json:"group_name" env:"REDIS_GROUP_NAME" default:"digest-pipeline"`
	ConsumerName string        `json:"consumer_name" env:"REDIS_CONSUMER_NAME" default:"digest-1"`
	BatchSize    int64         `json:"batch_size" env:"REDIS_BATCH_SIZE" default:"10"`
	BlockTimeout time.Duration `json:"block_timeout" env:"REDIS_BLOCK_TIMEOUT" default:"5s"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" env:"METRICS_ENABLED" default:"true"`
	Path    string `json:"path" env:"METRICS_PATH" default:"/metrics"`
}

type CacheConfig struct {
	TagCacheSize      int `json:"tag_cache_size" env:"CACHE_TAG_SIZE" default:"1024"`
	RedirectCacheSize int `json:"redirect_cache_size" env:"CACHE_REDIRECT_SIZE" default:"4096"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            9200,
			ShutdownTimeout: 30 * time.Second,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    300 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:             30 * time.Second,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			UserAgent:           "pgsql-hackers-digest/1.0 (+https://github.com/haritabh1992/postgres-mailing-list-summary-sender)",
			RespectRobots:       true,
		},
		Retry: RetryConfig{
			MaxAttempts:   3,
			BaseDelay:     1 * time.Second,
			MaxDelay:      30 * time.Second,
			BackoffFactor: 2.0,
			JitterFactor:  0.1,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "devuser",
			Password:        "devpassword",
			DBName:          "digest",
			SSL:             DatabaseSSLConfig{Mode: "prefer"},
			MaxConns:        20,
			MinConns:        2,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 30 * time.Minute,
		},
		Archive: ArchiveConfig{
			BaseURL:    "https://www.postgrespro.com",
			ListName:   "pgsql-hackers",
			FetchDelay: 1 * time.Second,
			WindowDays: 7,
		},
		Extractor: ExtractorConfig{
			DefaultBatchSize: 100,
			MinBatchSize:     10,
			MaxBatchSize:     500,
			Delay:            1 * time.Second,
		},
		LLM: LLMConfig{
			Model:        "gpt-4o-mini",
			Encoding:     "o200k_base",
			TokenCeiling: 12000,
			MaxTokens:    2000,
			Temperature:  0.7,
			Timeout:      120 * time.Second,
		},
		Pipeline: PipelineConfig{
			ContentBatchSize: 200,
			MaxAttempts:      3,
			AttemptDelay:     500 * time.Millisecond,
			SummaryDays:      7,
		},
		Schedule: ScheduleConfig{
			HourlyEnabled:  true,
			HourlyInterval: time.Hour,
			WeeklyEnabled:  true,
			WeeklyWeekday:  time.Friday,
			WeeklyHour:     9,
			MaxBackoff:     6 * time.Hour,
		},
		Commitfest: CommitfestConfig{
			FixtureURL: "https://raw.githubusercontent.com/postgres/pgcommitfest/c7088f9f859fdbac5d026199306be192293b1a8a/pgcommitfest/commitfest/fixtures/commitfest_data.json",
			BaseURL:    "https://commitfest.postgresql.org",
			MaxPatches: 500,
			Delay:      500 * time.Millisecond,
		},
		Delivery: DeliveryConfig{
			ResendBaseURL: "https://api.resend.com",
			From:          "PostgreSQL Hackers Digest <digest@example.org>",
			PublicBaseURL: "http://localhost:9200",
		},
		Redis: RedisConfig{
			Enabled:      false,
			URL:          "redis://localhost:6379/0",
			StreamKey:    "digest:pipeline:triggers",
			GroupName:    "digest-pipeline",
			ConsumerName: "digest-1",
			BatchSize:    10,
			BlockTimeout: 5 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Cache: CacheConfig{
			TagCacheSize:      1024,
			RedirectCacheSize: 4096,
		},
	}
}
