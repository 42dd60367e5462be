package repository

import (
	"context"

	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

// 同じtxを共有するrepo一式
type txScope struct {
	tx *gorm.DB
}

func (s txScope) Orders() repo.OrderRepository         { return NewOrderGormRepository(s.tx) }
func (s txScope) OrderItems() repo.OrderItemRepository { return NewOrderItemGormRepository(s.tx) }
func (s txScope) Products() repo.ProductRepository     { return NewProductGormRepository(s.tx) }
func (s txScope) Payments() repo.PaymentRepository     { return NewPaymentGormRepository(s.tx) }
func (s txScope) AuditLogs() repo.AuditLogRepository   { return NewAuditLogGormRepository(s.tx) }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返したらrollback。fnのerrorはそのまま返す（sentinel判定を壊さない）
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	var fnErr error
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(txScope{tx: tx})
		return fnErr
	})
	switch {
	case fnErr != nil:
		return fnErr
	case err != nil:
		return errors.Wrap(err, "commit tx")
	}
	return nil
}
