package report

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"storefront/internal/domain/model"
)

// *pgxpool.Pool と pgxmock.PgxPoolIface の共通部分
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	CountOrdersSQL    = `SELECT COUNT(*) FROM orders`
	CountCustomersSQL = `SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL`
	CountProductsSQL  = `SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`
	// 書き込まれない状態だが集計条件はそのまま残す
	TotalRevenueSQL = `SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = $1`
)

type StatisticsRepository struct {
	db Querier
}

func NewStatisticsRepository(db Querier) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// 4つの集計を並行に流す。1つでも失敗すれば全体がエラー
func (r *StatisticsRepository) Statistics(ctx context.Context) (model.Statistics, error) {
	var s model.Statistics
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.scalar(gctx, "orders", &s.TotalOrders, CountOrdersSQL)
	})
	g.Go(func() error {
		return r.scalar(gctx, "customers", &s.TotalCustomers, CountCustomersSQL)
	})
	g.Go(func() error {
		return r.scalar(gctx, "products", &s.TotalProducts, CountProductsSQL)
	})
	g.Go(func() error {
		return r.scalar(gctx, "revenue", &s.TotalRevenue, TotalRevenueSQL, string(model.OrderStatusCompleted))
	})

	if err := g.Wait(); err != nil {
		return model.Statistics{}, err
	}
	return s, nil
}

func (r *StatisticsRepository) scalar(ctx context.Context, name string, dst *int64, sql string, args ...any) error {
	if err := r.db.QueryRow(ctx, sql, args...).Scan(dst); err != nil {
		return errors.Wrapf(err, "statistics %s", name)
	}
	return nil
}
