package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecshop/internal/config"
	"ecshop/internal/handler"
	"ecshop/internal/health"
	"ecshop/internal/infra/db"
	"ecshop/internal/infra/password"
	infraRepo "ecshop/internal/infra/repository"
	"ecshop/internal/infra/token"
	"ecshop/internal/server"
	"ecshop/internal/usecase"
	"ecshop/internal/validator"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// loggerより前なのでstderrへ
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(2)
	}

	lg, err := newLogger(cfg)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, lg, cfg); err != nil {
		lg.Error("Run failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDev() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, lg *zap.Logger, cfg *config.Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))

	//DB接続
	gormDB, err := db.Connect(cfg.DB, lg)
	if err != nil {
		return errors.Wrap(err, "connect db")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return errors.Wrap(err, "sql db")
	}
	defer func() { _ = sqlDB.Close() }()

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(gormDB); err != nil {
			return err
		}
	}

	hc := health.New()
	hc.AddReadinessCheck("postgres", 5*time.Second, sqlDB.PingContext)
	hc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	hc.Start(ctx, 10*time.Second)

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	brandRepo := infraRepo.NewBrandGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	ratingRepo := infraRepo.NewRatingGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	tokens := token.NewManager(cfg.JWT)
	hasher := password.NewBcryptHasher(password.DefaultCost)

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, cfg.ShippingFee())
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, orderRepo)
	authUC := usecase.NewAuthUsecase(userRepo, hasher, tokens, validator.NewAuthValidator(userRepo))
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, brandRepo, paymentRepo, orderUC)
	ratingUC := usecase.NewRatingUsecase(ratingRepo, productRepo, userRepo, orderUC)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	userUC := usecase.NewUserUsecase(userRepo)
	adminProductUC := usecase.NewAdminProductUsecase(txm, categoryRepo, brandRepo)
	adminAuditUC := usecase.NewAdminAuditUsecase(auditRepo)

	//Handler生成
	h := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Catalog:      handler.NewCatalogHandler(productUC),
		Product:      handler.NewProductHandler(productUC),
		Rating:       handler.NewRatingHandler(ratingUC),
		Order:        handler.NewOrderHandler(orderUC),
		Cart:         handler.NewCartHandler(cartUC),
		User:         handler.NewUserHandler(userUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminProduct: handler.NewAdminProductHandler(adminProductUC),
		AdminAudit:   handler.NewAdminAuditHandler(adminAuditUC),
	}

	e := server.New(*cfg, lg, tokens, h, hc)
	return server.Run(ctx, e, *cfg, lg, hc)
}
