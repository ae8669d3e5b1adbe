package driver

import (
	"context"
	"fmt"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

// ListActiveSubscribers returns confirmed, active recipients. The table is owned
// by the subscription workflow and only read here.
func ListActiveSubscribers(ctx context.Context, db PgxIface) ([]domain.Subscriber, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, email
		FROM   subscribers
		WHERE  is_active = TRUE AND confirmation_status = 'confirmed'
		ORDER  BY subscribed_at ASC
	`

	var subscribers []domain.Subscriber
	err := retryDBOperation(ctx, func() error {
		rows, err := db.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		subscribers = nil
		for rows.Next() {
			var s domain.Subscriber
			if err := rows.Scan(&s.ID, &s.Email); err != nil {
				return err
			}
			subscribers = append(subscribers, s)
		}
		return rows.Err()
	}, "ListActiveSubscribers")
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	return subscribers, nil
}
