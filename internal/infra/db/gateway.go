package db

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Gatewayはプロセスで1つだけ作るDB接続
// pgxのプールとその上のgormを同じ接続で共有する
type Gateway struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB
	gorm  *gorm.DB
}

type Options struct {
	MaxConns int32
	Debug    bool
}

// Connectはプールを作って疎通確認まで行う
func Connect(ctx context.Context, dsn string, opts Options) (*Gateway, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse database url")
	}
	if opts.MaxConns > 0 {
		pcfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, errors.Wrap(err, "create pgx pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		_ = sqlDB.Close()
		pool.Close()
		return nil, errors.Wrap(err, "open gorm")
	}

	log.WithFields(log.Fields{
		"max_conns": pcfg.MaxConns,
		"database":  pcfg.ConnConfig.Database,
	}).Info("database connected")

	return &Gateway{pool: pool, sqlDB: sqlDB, gorm: gdb}, nil
}

func (g *Gateway) Pool() *pgxpool.Pool { return g.pool }

func (g *Gateway) Gorm() *gorm.DB { return g.gorm }

func (g *Gateway) Ping(ctx context.Context) error {
	return g.pool.Ping(ctx)
}

// Closeは2回呼んでも安全
func (g *Gateway) Close() {
	if g == nil || g.pool == nil {
		return
	}
	_ = g.sqlDB.Close()
	g.pool.Close()
	g.pool = nil
	log.Info("database pool closed")
}
