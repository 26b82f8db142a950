package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRefresher struct {
	mock.Mock
}

func (m *mockRefresher) Refresh(ctx context.Context) (model.Statistics, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Statistics), args.Error(1)
}

func TestNewScheduler_InvalidInterval(t *testing.T) {
	_, err := NewScheduler(&mockRefresher{}, 0)
	require.Error(t, err)
}

func TestScheduler_RunsImmediately(t *testing.T) {
	m := &mockRefresher{}
	done := make(chan struct{}, 1)
	m.On("Refresh", mock.Anything).
		Return(model.Statistics{TotalOrders: 3}, nil).
		Run(func(mock.Arguments) {
			select {
			case done <- struct{}{}:
			default:
			}
		})

	s, err := NewScheduler(m, time.Hour)
	require.NoError(t, err)
	s.Start()
	defer func() { _ = s.Stop() }()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("statistics job did not run")
	}
}

func TestRefreshStatistics_ErrorIsSwallowed(t *testing.T) {
	m := &mockRefresher{}
	m.On("Refresh", mock.Anything).Return(model.Statistics{}, errors.New("db down")).Once()

	js := &Scheduler{stats: m, timeout: time.Second}
	assert.NotPanics(t, js.refreshStatistics)
	m.AssertExpectations(t)
}
