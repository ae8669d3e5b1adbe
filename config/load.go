package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read before the environment when present.
const DefaultEnvFile = ".env"

// LoadConfig builds the configuration from defaults, an optional .env file and
// overrides provided via environment variables. Variables already set in the
// process environment win over the .env file.
func LoadConfig() (*Config, error) {
	config := defaultConfig()

	if err := loadDotEnv(envFilePath()); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func envFilePath() string {
	if path := os.Getenv("CONFIG_ENV_FILE"); path != "" {
		return path
	}
	return DefaultEnvFile
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func loadFromEnv(config *Config) error {
	loaders := []struct {
		name string
		load func() error
	}{
		{"server", func() error { return loadServerConfig(&config.Server) }},
		{"HTTP", func() error { return loadHTTPConfig(&config.HTTP) }},
		{"retry", func() error { return loadRetryConfig(&config.Retry) }},
		{"database", func() error { return loadDatabaseConfig(&config.Database) }},
		{"archive", func() error { return loadArchiveConfig(&config.Archive) }},
		{"extractor", func() error { return loadExtractorConfig(&config.Extractor) }},
		{"LLM", func() error { return loadLLMConfig(&config.LLM) }},
		{"pipeline", func() error { return loadPipelineConfig(&config.Pipeline) }},
		{"schedule", func() error { return loadScheduleConfig(&config.Schedule) }},
		{"commitfest", func() error { return loadCommitfestConfig(&config.Commitfest) }},
		{"delivery", func() error { return loadDeliveryConfig(&config.Delivery) }},
		{"redis", func() error { return loadRedisConfig(&config.Redis) }},
		{"metrics", func() error { return loadMetricsConfig(&config.Metrics) }},
		{"cache", func() error { return loadCacheConfig(&config.Cache) }},
	}

	for _, l := range loaders {
		if err := l.load(); err != nil {
			return fmt.Errorf("failed to load %s config: %w", l.name, err)
		}
	}

	return nil
}

// loadServerConfig loads server configuration from environment variables
func loadServerConfig(cfg *ServerConfig) error {
	var err error

	if cfg.Port, err = parseIntEnv("SERVER_PORT", cfg.Port); err != nil {
		return err
	}

	if cfg.ShutdownTimeout, err = parseDurationEnv("SERVER_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return err
	}

	if cfg.ReadTimeout, err = parseDurationEnv("SERVER_READ_TIMEOUT", cfg.ReadTimeout); err != nil {
		return err
	}

	if cfg.WriteTimeout, err = parseDurationEnv("SERVER_WRITE_TIMEOUT", cfg.WriteTimeout); err != nil {
		return err
	}

	return nil
}

// loadHTTPConfig loads outbound HTTP client configuration from environment variables
func loadHTTPConfig(cfg *HTTPConfig) error {
	var err error

	if cfg.Timeout, err = parseDurationEnv("HTTP_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	if cfg.MaxIdleConns, err = parseIntEnv("HTTP_MAX_IDLE_CONNS", cfg.MaxIdleConns); err != nil {
		return err
	}

	if cfg.MaxIdleConnsPerHost, err = parseIntEnv("HTTP_MAX_IDLE_CONNS_PER_HOST", cfg.MaxIdleConnsPerHost); err != nil {
		return err
	}

	if cfg.IdleConnTimeout, err = parseDurationEnv("HTTP_IDLE_CONN_TIMEOUT", cfg.IdleConnTimeout); err != nil {
		return err
	}

	if cfg.TLSHandshakeTimeout, err = parseDurationEnv("HTTP_TLS_HANDSHAKE_TIMEOUT", cfg.TLSHandshakeTimeout); err != nil {
		return err
	}

	cfg.UserAgent = stringEnv("HTTP_USER_AGENT", cfg.UserAgent)

	if cfg.RespectRobots, err = parseBoolEnv("HTTP_RESPECT_ROBOTS", cfg.RespectRobots); err != nil {
		return err
	}

	return nil
}

// loadRetryConfig loads retry configuration from environment variables
func loadRetryConfig(cfg *RetryConfig) error {
	var err error

	if cfg.MaxAttempts, err = parseIntEnv("RETRY_MAX_ATTEMPTS", cfg.MaxAttempts); err != nil {
		return err
	}

	if cfg.BaseDelay, err = parseDurationEnv("RETRY_BASE_DELAY", cfg.BaseDelay); err != nil {
		return err
	}

	if cfg.MaxDelay, err = parseDurationEnv("RETRY_MAX_DELAY", cfg.MaxDelay); err != nil {
		return err
	}

	if cfg.BackoffFactor, err = parseFloatEnv("RETRY_BACKOFF_FACTOR", cfg.BackoffFactor); err != nil {
		return err
	}

	if cfg.JitterFactor, err = parseFloatEnv("RETRY_JITTER_FACTOR", cfg.JitterFactor); err != nil {
		return err
	}

	return nil
}

func loadDatabaseConfig(cfg *DatabaseConfig) error {
	var err error

	cfg.Host = stringEnv("DB_HOST", cfg.Host)
	cfg.Port = stringEnv("DB_PORT", cfg.Port)
	cfg.User = stringEnv("DB_USER", cfg.User)
	cfg.Password = stringEnv("DB_PASSWORD", cfg.Password)
	cfg.DBName = stringEnv("DB_NAME", cfg.DBName)
	cfg.SSL.Mode = stringEnv("DB_SSL_MODE", cfg.SSL.Mode)
	cfg.SSL.RootCert = stringEnv("DB_SSL_ROOT_CERT", cfg.SSL.RootCert)
	cfg.SSL.Cert = stringEnv("DB_SSL_CERT", cfg.SSL.Cert)
	cfg.SSL.Key = stringEnv("DB_SSL_KEY", cfg.SSL.Key)

	if cfg.MaxConns, err = parseIntEnv("DB_MAX_CONNS", cfg.MaxConns); err != nil {
		return err
	}

	if cfg.MinConns, err = parseIntEnv("DB_MIN_CONNS", cfg.MinConns); err != nil {
		return err
	}

	if cfg.MaxConnLifetime, err = parseDurationEnv("DB_MAX_CONN_LIFETIME", cfg.MaxConnLifetime); err != nil {
		return err
	}

	if cfg.MaxConnIdleTime, err = parseDurationEnv("DB_MAX_CONN_IDLE_TIME", cfg.MaxConnIdleTime); err != nil {
		return err
	}

	return nil
}

func loadArchiveConfig(cfg *ArchiveConfig) error {
	var err error

	cfg.BaseURL = strings.TrimRight(stringEnv("ARCHIVE_BASE_URL", cfg.BaseURL), "/")
	cfg.ListName = stringEnv("ARCHIVE_LIST_NAME", cfg.ListName)

	if cfg.FetchDelay, err = parseDurationEnv("ARCHIVE_FETCH_DELAY", cfg.FetchDelay); err != nil {
		return err
	}

	if cfg.WindowDays, err = parseIntEnv("ARCHIVE_WINDOW_DAYS", cfg.WindowDays); err != nil {
		return err
	}

	return nil
}

func loadExtractorConfig(cfg *ExtractorConfig) error {
	var err error

	if cfg.DefaultBatchSize, err = parseIntEnv("EXTRACTOR_DEFAULT_BATCH_SIZE", cfg.DefaultBatchSize); err != nil {
		return err
	}

	if cfg.MinBatchSize, err = parseIntEnv("EXTRACTOR_MIN_BATCH_SIZE", cfg.MinBatchSize); err != nil {
		return err
	}

	if cfg.MaxBatchSize, err = parseIntEnv("EXTRACTOR_MAX_BATCH_SIZE", cfg.MaxBatchSize); err != nil {
		return err
	}

	if cfg.Delay, err = parseDurationEnv("EXTRACTOR_DELAY", cfg.Delay); err != nil {
		return err
	}

	return nil
}

// loadLLMConfig loads summarizer configuration. A missing API key is not an error here.
func loadLLMConfig(cfg *LLMConfig) error {
	var err error

	cfg.APIKey = stringEnv("OPENAI_API_KEY", cfg.APIKey)
	cfg.BaseURL = stringEnv("OPENAI_BASE_URL", cfg.BaseURL)
	cfg.Model = stringEnv("OPENAI_MODEL", cfg.Model)
	cfg.Encoding = stringEnv("LLM_TOKEN_ENCODING", cfg.Encoding)

	if cfg.TokenCeiling, err = parseIntEnv("LLM_TOKEN_CEILING", cfg.TokenCeiling); err != nil {
		return err
	}

	if cfg.MaxTokens, err = parseIntEnv("LLM_MAX_TOKENS", cfg.MaxTokens); err != nil {
		return err
	}

	if cfg.Temperature, err = parseFloatEnv("LLM_TEMPERATURE", cfg.Temperature); err != nil {
		return err
	}

	if cfg.Timeout, err = parseDurationEnv("LLM_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	return nil
}

func loadPipelineConfig(cfg *PipelineConfig) error {
	var err error

	if cfg.ContentBatchSize, err = parseIntEnv("PIPELINE_CONTENT_BATCH_SIZE", cfg.ContentBatchSize); err != nil {
		return err
	}

	if cfg.MaxAttempts, err = parseIntEnv("PIPELINE_MAX_ATTEMPTS", cfg.MaxAttempts); err != nil {
		return err
	}

	if cfg.AttemptDelay, err = parseDurationEnv("PIPELINE_ATTEMPT_DELAY", cfg.AttemptDelay); err != nil {
		return err
	}

	if cfg.SummaryDays, err = parseIntEnv("PIPELINE_SUMMARY_DAYS", cfg.SummaryDays); err != nil {
		return err
	}

	cfg.Secret = stringEnv("PIPELINE_SECRET", cfg.Secret)

	return nil
}

func loadScheduleConfig(cfg *ScheduleConfig) error {
	var err error

	if cfg.HourlyEnabled, err = parseBoolEnv("SCHEDULE_HOURLY_ENABLED", cfg.HourlyEnabled); err != nil {
		return err
	}

	if cfg.HourlyInterval, err = parseDurationEnv("SCHEDULE_HOURLY_INTERVAL", cfg.HourlyInterval); err != nil {
		return err
	}

	if cfg.WeeklyEnabled, err = parseBoolEnv("SCHEDULE_WEEKLY_ENABLED", cfg.WeeklyEnabled); err != nil {
		return err
	}

	weekday, err := parseIntEnv("SCHEDULE_WEEKLY_WEEKDAY", int(cfg.WeeklyWeekday))
	if err != nil {
		return err
	}
	cfg.WeeklyWeekday = time.Weekday(weekday)

	if cfg.WeeklyHour, err = parseIntEnv("SCHEDULE_WEEKLY_HOUR", cfg.WeeklyHour); err != nil {
		return err
	}

	if cfg.MaxBackoff, err = parseDurationEnv("SCHEDULE_MAX_BACKOFF", cfg.MaxBackoff); err != nil {
		return err
	}

	return nil
}

func loadCommitfestConfig(cfg *CommitfestConfig) error {
	var err error

	cfg.FixtureURL = stringEnv("COMMITFEST_FIXTURE_URL", cfg.FixtureURL)
	cfg.BaseURL = strings.TrimRight(stringEnv("COMMITFEST_BASE_URL", cfg.BaseURL), "/")

	if cfg.MaxPatches, err = parseIntEnv("COMMITFEST_MAX_PATCHES", cfg.MaxPatches); err != nil {
		return err
	}

	if cfg.Delay, err = parseDurationEnv("COMMITFEST_DELAY", cfg.Delay); err != nil {
		return err
	}

	return nil
}

func loadDeliveryConfig(cfg *DeliveryConfig) error {
	cfg.ResendAPIKey = stringEnv("RESEND_API_KEY", cfg.ResendAPIKey)
	cfg.ResendBaseURL = strings.TrimRight(stringEnv("RESEND_BASE_URL", cfg.ResendBaseURL), "/")
	cfg.From = stringEnv("DELIVERY_FROM", cfg.From)
	cfg.PublicBaseURL = strings.TrimRight(stringEnv("PUBLIC_BASE_URL", cfg.PublicBaseURL), "/")
	return nil
}

func loadRedisConfig(cfg *RedisConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("REDIS_TRIGGER_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	cfg.URL = stringEnv("REDIS_URL", cfg.URL)
	cfg.StreamKey = stringEnv("REDIS_STREAM_KEY", cfg.StreamKey)
	cfg.GroupName = stringEnv("REDIS_GROUP_NAME", cfg.GroupName)
	cfg.ConsumerName = stringEnv("REDIS_CONSUMER_NAME", cfg.ConsumerName)

	batch, err := parseIntEnv("REDIS_BATCH_SIZE", int(cfg.BatchSize))
	if err != nil {
		return err
	}
	cfg.BatchSize = int64(batch)

	if cfg.BlockTimeout, err = parseDurationEnv("REDIS_BLOCK_TIMEOUT", cfg.BlockTimeout); err != nil {
		return err
	}

	return nil
}

// loadMetricsConfig loads metrics configuration from environment variables
func loadMetricsConfig(cfg *MetricsConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("METRICS_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	cfg.Path = stringEnv("METRICS_PATH", cfg.Path)

	return nil
}

func loadCacheConfig(cfg *CacheConfig) error {
	var err error

	if cfg.TagCacheSize, err = parseIntEnv("CACHE_TAG_SIZE", cfg.TagCacheSize); err != nil {
		return err
	}

	if cfg.RedirectCacheSize, err = parseIntEnv("CACHE_REDIRECT_SIZE", cfg.RedirectCacheSize); err != nil {
		return err
	}

	return nil
}

func stringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return d, nil
	}
	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return i, nil
	}
	return defaultValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return b, nil
	}
	return defaultValue, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return f, nil
	}
	return defaultValue, nil
}
