package report

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"storefront/internal/domain/model"
)

type StatisticsRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo *StatisticsRepository
	ctx  context.Context
}

func (s *StatisticsRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(s.T(), err)
	mock.MatchExpectationsInOrder(false)

	s.mock = mock
	s.repo = NewStatisticsRepository(mock)
	s.ctx = context.Background()
}

func (s *StatisticsRepoTestSuite) TearDownTest() {
	s.mock.Close()
}

func TestStatisticsRepoTestSuite(t *testing.T) {
	suite.Run(t, new(StatisticsRepoTestSuite))
}

func countRows(n int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"count"}).AddRow(n)
}

func (s *StatisticsRepoTestSuite) TestStatistics_Success() {
	s.mock.ExpectQuery(CountOrdersSQL).WillReturnRows(countRows(12))
	s.mock.ExpectQuery(CountCustomersSQL).WillReturnRows(countRows(5))
	s.mock.ExpectQuery(CountProductsSQL).WillReturnRows(countRows(30))
	s.mock.ExpectQuery(TotalRevenueSQL).
		WithArgs(string(model.OrderStatusCompleted)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

	got, err := s.repo.Statistics(s.ctx)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), model.Statistics{
		TotalOrders:    12,
		TotalCustomers: 5,
		TotalProducts:  30,
		TotalRevenue:   0,
	}, got)
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *StatisticsRepoTestSuite) TestStatistics_QueryError() {
	s.mock.ExpectQuery(CountOrdersSQL).WillReturnRows(countRows(1))
	s.mock.ExpectQuery(CountCustomersSQL).WillReturnError(errors.New("connection reset"))
	s.mock.ExpectQuery(CountProductsSQL).WillReturnRows(countRows(1))
	s.mock.ExpectQuery(TotalRevenueSQL).
		WithArgs(string(model.OrderStatusCompleted)).
		WillReturnRows(countRows(1))

	_, err := s.repo.Statistics(s.ctx)
	require.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "statistics customers")
	assert.Contains(s.T(), err.Error(), "connection reset")
}
