package db

import (
	"ecshop/internal/config"
	"ecshop/internal/domain/model"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.DBConfig, lg *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: NewZapLogger(lg.Named("gorm"), cfg.SlowThreshold),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, errors.Wrap(err, "sql db")
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	}
	return gdb, nil
}

// 全テーブル
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Brand{},
		&model.Product{},
		&model.Image{},
		&model.Rating{},
		&model.RatingResponse{},
		&model.Cart{},
		&model.Payment{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	}
}

func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
