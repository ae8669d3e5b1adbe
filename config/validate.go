package config

import (
	"fmt"
	"net/url"
)

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.HTTP.Timeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive: %v", config.HTTP.Timeout)
	}

	if config.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry max attempts must be positive: %d", config.Retry.MaxAttempts)
	}

	if config.Retry.BackoffFactor <= 1.0 {
		return fmt.Errorf("backoff factor must be greater than 1.0: %f", config.Retry.BackoffFactor)
	}

	if config.Retry.JitterFactor < 0 || config.Retry.JitterFactor > 1 {
		return fmt.Errorf("jitter factor must be between 0 and 1: %f", config.Retry.JitterFactor)
	}

	if config.Database.MinConns < 0 || config.Database.MaxConns < config.Database.MinConns {
		return fmt.Errorf("invalid database pool bounds: min=%d max=%d", config.Database.MinConns, config.Database.MaxConns)
	}

	if err := validateAbsoluteURL("archive base URL", config.Archive.BaseURL); err != nil {
		return err
	}

	if config.Archive.ListName == "" {
		return fmt.Errorf("archive list name cannot be empty")
	}

	if config.Archive.FetchDelay < 0 || config.Extractor.Delay < 0 {
		return fmt.Errorf("fetch delays must be non-negative")
	}

	if config.Extractor.MinBatchSize <= 0 || config.Extractor.MaxBatchSize < config.Extractor.MinBatchSize {
		return fmt.Errorf("invalid extractor batch bounds: min=%d max=%d", config.Extractor.MinBatchSize, config.Extractor.MaxBatchSize)
	}

	if config.LLM.TokenCeiling <= 0 {
		return fmt.Errorf("token ceiling must be positive: %d", config.LLM.TokenCeiling)
	}

	if config.LLM.Model == "" {
		return fmt.Errorf("LLM model cannot be empty")
	}

	if config.Pipeline.MaxAttempts <= 0 {
		return fmt.Errorf("pipeline max attempts must be positive: %d", config.Pipeline.MaxAttempts)
	}

	if config.Pipeline.ContentBatchSize <= 0 {
		return fmt.Errorf("pipeline content batch size must be positive: %d", config.Pipeline.ContentBatchSize)
	}

	if config.Schedule.WeeklyWeekday < 0 || config.Schedule.WeeklyWeekday > 6 {
		return fmt.Errorf("weekly weekday must be between 0 and 6: %d", config.Schedule.WeeklyWeekday)
	}

	if config.Schedule.WeeklyHour < 0 || config.Schedule.WeeklyHour > 23 {
		return fmt.Errorf("weekly hour must be between 0 and 23: %d", config.Schedule.WeeklyHour)
	}

	if config.Schedule.HourlyEnabled && config.Schedule.HourlyInterval <= 0 {
		return fmt.Errorf("hourly interval must be positive: %v", config.Schedule.HourlyInterval)
	}

	if config.Redis.Enabled && config.Redis.StreamKey == "" {
		return fmt.Errorf("redis stream key cannot be empty when the trigger consumer is enabled")
	}

	if config.Cache.TagCacheSize <= 0 || config.Cache.RedirectCacheSize <= 0 {
		return fmt.Errorf("cache sizes must be positive")
	}

	return nil
}

func validateAbsoluteURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s: %q", name, raw)
	}
	return nil
}
