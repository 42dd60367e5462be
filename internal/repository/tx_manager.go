package repository

import "context"

// 1つのtxに束ねたrepo。WithinTxのcallback内でだけ有効
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Products() ProductRepository
	Payments() PaymentRepository
	AuditLogs() AuditLogRepository
}

// fnがnilを返せばcommit、errorならrollbackしてそのerrorを返す
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
