package main

import (
	"context"
	"os"
	"os/signal"

	"ecshop/internal/config"
	"ecshop/internal/domain/model"
	"ecshop/internal/infra/db"
	"ecshop/internal/infra/password"

	"github.com/cristalhq/aconfig"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 初期データ投入用の設定（SHOP_SEED_*）
type seedConfig struct {
	DB    config.DBConfig
	Admin struct {
		Username string `default:"admin" usage:"Admin username"`
		Password string `usage:"Admin password (required)"`
		Email    string `usage:"Admin email"`
	}
}

var defaultPayments = []model.Payment{
	{Code: "COD", Name: "Cash on delivery"},
	{Code: "BANK", Name: "Bank transfer"},
	{Code: "CARD", Name: "Credit card"},
}

func main() {
	lg, _ := zap.NewDevelopment()
	defer func() { _ = lg.Sync() }()

	cfg, err := loadSeedConfig()
	if err != nil {
		lg.Fatal("Load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, lg, cfg); err != nil {
		lg.Fatal("Seed failed", zap.Error(err))
	}
	lg.Info("Seed completed")
}

func loadSeedConfig() (seedConfig, error) {
	_ = godotenv.Load()

	var cfg seedConfig
	err := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix:  "SHOP_SEED",
		SkipFiles:  true,
	}).Load()
	if err != nil {
		return cfg, errors.Wrap(err, "load seed config")
	}
	if cfg.DB.URL == "" {
		cfg.DB.URL = os.Getenv("DATABASE_URL")
	}
	if cfg.Admin.Password == "" {
		return cfg, errors.New("admin password is required: set SHOP_SEED_ADMIN_PASSWORD")
	}
	return cfg, nil
}

func run(ctx context.Context, lg *zap.Logger, cfg seedConfig) error {
	gormDB, err := db.Connect(cfg.DB, lg)
	if err != nil {
		return errors.Wrap(err, "connect db")
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedPayments(tx); err != nil {
			return errors.Wrap(err, "seed payments")
		}
		if err := seedAdmin(tx, cfg); err != nil {
			return errors.Wrap(err, "seed admin")
		}
		lg.Info("Seeded", zap.Int("payments", len(defaultPayments)), zap.String("admin", cfg.Admin.Username))
		return nil
	})
}

// 何度流しても同じ結果になるようにcodeで衝突したら何もしない
func seedPayments(tx *gorm.DB) error {
	for _, p := range defaultPayments {
		p := p
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin(tx *gorm.DB, cfg seedConfig) error {
	hash, err := password.NewBcryptHasher(password.DefaultCost).Hash(cfg.Admin.Password)
	if err != nil {
		return err
	}
	admin := model.User{
		Username:     cfg.Admin.Username,
		PasswordHash: hash,
		Email:        cfg.Admin.Email,
		Role:         model.RoleAdmin,
		Name:         "Administrator",
		IsActive:     true,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role", "is_active"}),
	}).Create(&admin).Error
}
