package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
)

type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	now    func() time.Time
}

func NewAdminOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, now: time.Now}
}

type AdminUpdateOrderStatusInput struct {
	Status string `json:"status"`
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (Page[OrderView], error) {
	page, limit, err := normalizePage(f.Page, f.Limit)
	if err != nil {
		return Page[OrderView]{}, err
	}
	f.Page, f.Limit = page, limit

	if f.Status != "" {
		if _, ok := model.ParseOrderStatus(f.Status); !ok {
			return Page[OrderView]{}, validationError("invalid status")
		}
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return Page[OrderView]{}, internal(err)
	}
	return Page[OrderView]{Items: toOrderViews(orders), Total: total, Page: page, Limit: limit}, nil
}

// ステータス更新（WAITING_CONFIRM → SUCCESS / CANCEL のみ）
// 監査ログも同じtxで書く
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdateOrderStatusInput) (OrderView, error) {
	if actorAdminUserID <= 0 {
		return OrderView{}, authFailed("unauthorized")
	}
	if orderID <= 0 {
		return OrderView{}, validationError("invalid id")
	}
	next, ok := model.ParseOrderStatus(strings.TrimSpace(in.Status))
	if !ok {
		return OrderView{}, validationError("invalid status")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文取得
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("order not found")
		}
		if err != nil {
			return internal(err)
		}

		// 終端ガード
		if !o.Status.CanTransitionTo(next) {
			return clientError("order status cannot be changed from " + string(o.Status) + " to " + string(next))
		}

		// 読んだ後に変わっていたら0件
		changed, err := r.Orders().UpdateStatusIf(ctx, orderID, o.Status, next)
		if err != nil {
			return internal(err)
		}
		if !changed {
			return clientError("order has already been processed")
		}

		// 監査ログ
		before, _ := json.Marshal(map[string]string{"status": string(o.Status)})
		after, _ := json.Marshal(map[string]string{"status": string(next)})
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(before),
			AfterJSON:    string(after),
			CreatedAt:    u.now(),
		}); err != nil {
			return internal(err)
		}

		o.Status = next
		out = o
		return nil
	})
	if err != nil {
		return OrderView{}, err
	}
	return toOrderView(out), nil
}
