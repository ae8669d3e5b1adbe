package repository

import (
	"context"
	"log/slog"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
)

type subscriberRepository struct {
	db     driver.PgxIface
	logger *slog.Logger
}

func NewSubscriberRepository(db driver.PgxIface, logger *slog.Logger) SubscriberRepository {
	return &subscriberRepository{db: db, logger: logger}
}

func (r *subscriberRepository) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	subscribers, err := driver.ListActiveSubscribers(ctx, r.db)
	if err != nil {
		return nil, domain.Wrap(domain.ErrPersistence, "send-summary", "list subscribers", "", err)
	}
	r.logger.InfoContext(ctx, "active subscribers loaded", "count", len(subscribers))
	return subscribers, nil
}
