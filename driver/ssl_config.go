package driver

import (
	"fmt"
	"log/slog"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
)

// BuildConnectionString renders cfg as a libpq keyword/value DSN that pgxpool understands.
func BuildConnectionString(cfg config.DatabaseConfig) string {
	baseConn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSL.Mode,
	)

	if cfg.SSL.RootCert != "" {
		baseConn += fmt.Sprintf(" sslrootcert=%s", cfg.SSL.RootCert)
	}
	if cfg.SSL.Cert != "" {
		baseConn += fmt.Sprintf(" sslcert=%s", cfg.SSL.Cert)
	}
	if cfg.SSL.Key != "" {
		baseConn += fmt.Sprintf(" sslkey=%s", cfg.SSL.Key)
	}

	poolSettings := fmt.Sprintf(
		" pool_max_conns=%d pool_min_conns=%d pool_max_conn_lifetime=%s pool_max_conn_idle_time=%s",
		cfg.MaxConns, cfg.MinConns, cfg.MaxConnLifetime, cfg.MaxConnIdleTime,
	)

	return baseConn + poolSettings
}

func ValidateSSLConfig(ssl config.DatabaseSSLConfig) error {
	switch ssl.Mode {
	case "disable":
		slog.Warn("SSL is disabled - this is not recommended for production")
	case "allow", "prefer":
		slog.Debug("SSL mode allows fallback to non-encrypted connections")
	case "require":
		slog.Debug("SSL required but certificate validation disabled")
	case "verify-ca", "verify-full":
		if ssl.RootCert == "" {
			return fmt.Errorf("SSL root certificate required for mode %s", ssl.Mode)
		}
	default:
		return fmt.Errorf("invalid SSL mode: %s", ssl.Mode)
	}
	return nil
}
