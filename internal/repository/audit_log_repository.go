package repository

import (
	"context"
	"time"

	"ecshop/internal/domain/model"
)

// 管理画面の監査ログ検索条件。nilは絞り込まない
type AuditLogFilter struct {
	ActorUserID  *int64
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	From         *time.Time
	To           *time.Time
	Page         int
	Limit        int
}

// 管理者操作の記録。書き込みは商品・注文の更新と同じtxで行う
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error

	// 新しい順。総件数も返す
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, int64, error)
}
