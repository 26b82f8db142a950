package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuditLogList_PassesFilter(t *testing.T) {
	logs := new(AuditRepoMock)
	uc := usecase.NewAuditLogUsecase(logs)

	actor := int64(1)
	action := model.AuditActionRejectOrder
	f := repo.AuditLogFilter{ActorCustomerID: &actor, Action: &action, Limit: 20}
	logs.On("List", mock.Anything, f).
		Return([]model.AuditLog{{ID: 3, ActorCustomerID: 1, Action: action}}, nil)

	out, err := uc.List(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ID)
	logs.AssertExpectations(t)
}

func TestAuditLogList_Validation(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name string
		f    repo.AuditLogFilter
		msg  string
	}{
		{"zero limit", repo.AuditLogFilter{Limit: 0}, "limit"},
		{"limit too large", repo.AuditLogFilter{Limit: 201}, "limit"},
		{"negative offset", repo.AuditLogFilter{Limit: 10, Offset: -1}, "offset"},
		{"reversed range", repo.AuditLogFilter{Limit: 10, CreatedFrom: &now, CreatedTo: &earlier}, "from must be before to"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := new(AuditRepoMock)
			_, err := usecase.NewAuditLogUsecase(logs).List(context.Background(), tt.f)
			assertHTTPError(t, err, http.StatusBadRequest, tt.msg)
			logs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestAuditLogList_RepoErrorIsInternal(t *testing.T) {
	logs := new(AuditRepoMock)
	logs.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("conn reset"))

	_, err := usecase.NewAuditLogUsecase(logs).List(context.Background(), repo.AuditLogFilter{Limit: 10})
	assertHTTPError(t, err, http.StatusInternalServerError, "")
}
