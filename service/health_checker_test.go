package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/test/mocks"
)

func TestHealthCheckerService_CheckDependencies(t *testing.T) {
	t.Run("should report each dependency", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		llm := mocks.NewMockSummarizerAPIRepository(ctrl)
		mailer := mocks.NewMockMailerRepository(ctrl)
		llm.EXPECT().CheckConfigured().Return(nil)
		mailer.EXPECT().CheckConfigured().Return(domain.ErrConfiguration)

		svc := NewHealthCheckerService(func(context.Context) error { return nil }, llm, mailer, testLogger())
		status := svc.CheckDependencies(context.Background())

		assert.Equal(t, map[string]string{"database": "ok", "llm": "ok", "mailer": "unconfigured"}, status)
	})

	t.Run("should report an unreachable database", func(t *testing.T) {
		svc := NewHealthCheckerService(func(context.Context) error { return errors.New("refused") }, nil, nil, testLogger())

		assert.Error(t, svc.CheckDatabase(context.Background()))
		assert.Equal(t, "unavailable", svc.CheckDependencies(context.Background())["database"])
	})
}

func TestHealthCheckerService_WaitForDatabase(t *testing.T) {
	t.Run("should return once the database answers", func(t *testing.T) {
		calls := 0
		svc := NewHealthCheckerService(func(context.Context) error {
			calls++
			if calls < 2 {
				return errors.New("starting")
			}
			return nil
		}, nil, nil, testLogger())
		svc.(*healthCheckerService).pollInterval = time.Millisecond

		assert.NoError(t, svc.WaitForDatabase(context.Background()))
		assert.Equal(t, 2, calls)
	})

	t.Run("should stop when the context ends", func(t *testing.T) {
		svc := NewHealthCheckerService(func(context.Context) error { return errors.New("down") }, nil, nil, testLogger())
		svc.(*healthCheckerService).pollInterval = time.Millisecond
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		assert.ErrorIs(t, svc.WaitForDatabase(ctx), context.DeadlineExceeded)
	})
}
