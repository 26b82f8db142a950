package main

import (
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	"storefront/internal/infra/report"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/jobs"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "storefront",
		Usage: "storefront backend API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "path to a .env file (optional)",
				Value:   ".env",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back schema migrations",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "apply all pending migrations",
						Action: migrateUp,
					},
					{
						Name:   "down",
						Usage:  "roll back the last migration",
						Action: migrateDown,
					},
				},
			},
			{
				Name:  "create-admin",
				Usage: "create an admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "name", Value: "Administrator"},
				},
				Action: createAdmin,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

// 設定を読んでロガーを整える
func setup(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return config.Config{}, errors.Wrap(err, "load config")
	}

	if cfg.IsProd() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	return cfg, nil
}

func migrateUp(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	return db.MigrateUp(cfg.DatabaseURL)
}

func migrateDown(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	return db.MigrateDown(cfg.DatabaseURL)
}

func createAdmin(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}

	gw, err := db.Connect(c.Context, cfg.DatabaseURL, db.Options{MaxConns: 2})
	if err != nil {
		return err
	}
	defer gw.Close()

	customers := infraRepo.NewCustomerGormRepository(gw.Gorm())
	registerUC := auth.NewRegisterUserUsecase(customers, auth.NewBcryptPasswordHasher(cfg.BcryptCost), auth.SystemClock())

	admin, err := registerUC.ExecuteAdmin(c.Context, auth.RegisterUserInput{
		FullName: c.String("name"),
		Email:    c.String("email"),
		Password: c.String("password"),
	})
	if err != nil {
		return errors.Wrap(err, "create admin")
	}

	log.WithFields(log.Fields{"customer_id": admin.ID, "email": admin.Email}).Info("admin created")
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}

	policy, err := model.ParseTransitionPolicy(cfg.OrderTransitionPolicy)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続（gormとpgxで同じプールを使う）
	gw, err := db.Connect(ctx, cfg.DatabaseURL, db.Options{
		MaxConns: cfg.DBMaxConns,
		Debug:    !cfg.IsProd(),
	})
	if err != nil {
		return err
	}
	defer gw.Close()

	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()
	redisCache := cache.NewRedisCache(redisClient, cfg.CacheTTL)
	_ = redisCache.Ping(ctx)

	//Repository（GORM実装）生成
	gdb := gw.Gorm()
	txManager := infraRepo.NewTxManagerGorm(gdb)
	orderRepo := infraRepo.NewOrderGormRepository(gdb)
	commentRepo := infraRepo.NewCommentGormRepository(gdb)
	customerRepo := infraRepo.NewCustomerGormRepository(gdb)
	productRepo := infraRepo.NewProductGormRepository(gdb)
	auditRepo := infraRepo.NewAuditLogGormRepository(gdb)
	statsRepo := report.NewStatisticsRepository(gw.Pool())

	//Usecase生成
	clock := auth.SystemClock()
	registerUC := auth.NewRegisterUserUsecase(customerRepo, auth.NewBcryptPasswordHasher(cfg.BcryptCost), clock)
	loginUC := auth.NewLoginUsecase(customerRepo, auth.NewBcryptPasswordVerifier(), auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL), clock)
	meUC := auth.NewMeUsecase(customerRepo)

	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, policy)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, orderRepo, policy)
	commentUC := usecase.NewCommentUsecase(txManager, commentRepo)
	productUC := usecase.NewProductUsecase(productRepo, redisCache)
	adminCustomerUC := usecase.NewAdminCustomerUsecase(txManager, customerRepo)
	reportUC := usecase.NewReportUsecase(statsRepo, redisCache)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//Handler生成
	srv := server.New(cfg, server.Handlers{
		Health:        handler.NewHealthHandler(gw),
		Auth:          handler.NewAuthHandler(registerUC, loginUC, meUC),
		Product:       handler.NewProductHandler(productUC),
		Comment:       handler.NewCommentHandler(commentUC),
		Order:         handler.NewOrderHandler(orderUC),
		AdminOrder:    handler.NewAdminOrderHandler(adminOrderUC),
		AdminProduct:  handler.NewAdminProductHandler(productUC),
		AdminCustomer: handler.NewAdminCustomerHandler(adminCustomerUC),
		AdminReport:   handler.NewAdminReportHandler(reportUC, auditUC),
	}, server.GuardDeps{Customers: customerRepo})

	scheduler, err := jobs.NewScheduler(reportUC, cfg.StatsRefreshInterval)
	if err != nil {
		return err
	}
	scheduler.Start()

	log.WithField("order_transition_policy", policy.String()).Info("order workflow configured")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		_ = scheduler.Stop()
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	if err := scheduler.Stop(); err != nil {
		log.WithError(err).Warn("scheduler shutdown failed")
	}
	if err := srv.Shutdown(cfg.ShutdownTimeout); err != nil {
		return errors.Wrap(err, "server shutdown")
	}
	log.Info("server stopped")
	return nil
}
