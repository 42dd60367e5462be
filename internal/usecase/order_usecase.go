package usecase

import (
	"context"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

const msgOrderCannotCancel = "Order has been processed and cannot be cancelled. Please contact admin."

type OrderUsecase struct {
	tx          repo.TransactionManager
	orders      repo.OrderRepository
	shippingFee decimal.Decimal
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, shippingFee decimal.Decimal) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, shippingFee: shippingFee}
}

// 価格は受け取らない（注文時点のsale_priceを使う）
type CreateOrderItemInput struct {
	ProductID int64 `json:"product"`
	Count     int64 `json:"count"`
}

type CreateOrderInput struct {
	PaymentID int64                  `json:"payment"`
	Note      string                 `json:"note"`
	Items     []CreateOrderItemInput `json:"items"`
}

// 注文作成
// 合計はサーバー側で計算し、ヘッダと明細を1つのtxで保存する
func (u *OrderUsecase) Create(ctx context.Context, userID int64, in CreateOrderInput) (OrderView, error) {
	if userID <= 0 {
		return OrderView{}, authFailed("unauthorized")
	}
	if in.PaymentID <= 0 {
		return OrderView{}, validationError("invalid payment")
	}
	if len(in.Items) == 0 {
		return OrderView{}, validationError("items required")
	}
	ids := make([]int64, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return OrderView{}, validationError("invalid product")
		}
		if it.Count <= 0 {
			return OrderView{}, validationError("count must be greater than 0")
		}
		ids = append(ids, it.ProductID)
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Payments().FindByID(ctx, in.PaymentID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("payment not found")
			}
			return internal(err)
		}

		//現在の価格を読む
		products, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return internal(err)
		}
		byID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		sum := decimal.Zero
		items := make([]model.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			p, ok := byID[it.ProductID]
			if !ok {
				return notFound("product not found")
			}
			line := model.OrderItem{
				ProductID:  p.ID,
				Count:      it.Count,
				OrderPrice: p.SalePrice,
			}
			sum = sum.Add(line.Subtotal())
			items = append(items, line)
		}

		order := model.Order{
			UserID:      userID,
			PaymentID:   in.PaymentID,
			SumPrice:    sum,
			ShippingFee: u.shippingFee,
			TotalCost:   sum.Add(u.shippingFee),
			Status:      model.OrderStatusWaitingConfirm,
			Note:        in.Note,
		}
		if err := r.Orders().Create(ctx, &order); err != nil {
			return internal(err)
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return internal(err)
		}

		// 関連込みで読み直す
		saved, err := r.Orders().FindByID(ctx, order.ID)
		if err != nil {
			return internal(err)
		}
		out = saved
		return nil
	})
	if err != nil {
		return OrderView{}, err
	}

	return toOrderView(out), nil
}

// 注文キャンセル
// WAITING_CONFIRMのときだけ条件付き更新で CANCEL にする
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) (OrderView, error) {
	if userID <= 0 {
		return OrderView{}, authFailed("unauthorized")
	}
	if orderID <= 0 {
		return OrderView{}, validationError("invalid id")
	}

	// 他人の注文は存在しない扱い
	if _, err := u.findOwned(ctx, userID, orderID); err != nil {
		return OrderView{}, err
	}

	ok, err := u.orders.UpdateStatusIf(ctx, orderID, model.OrderStatusWaitingConfirm, model.OrderStatusCancel)
	if err != nil {
		return OrderView{}, internal(err)
	}
	if !ok {
		return OrderView{}, clientError(msgOrderCannotCancel)
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderView{}, internal(err)
	}
	return toOrderView(o), nil
}

// 自分の注文一覧（新しい順）
func (u *OrderUsecase) ListMine(ctx context.Context, userID int64, page int, limit int) (Page[OrderView], error) {
	if userID <= 0 {
		return Page[OrderView]{}, authFailed("unauthorized")
	}
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return Page[OrderView]{}, err
	}

	orders, total, err := u.orders.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return Page[OrderView]{}, internal(err)
	}
	return Page[OrderView]{Items: toOrderViews(orders), Total: total, Page: page, Limit: limit}, nil
}

// 自分の注文詳細
func (u *OrderUsecase) GetMine(ctx context.Context, userID int64, orderID int64) (OrderView, error) {
	if userID <= 0 {
		return OrderView{}, authFailed("unauthorized")
	}
	o, err := u.findOwned(ctx, userID, orderID)
	if err != nil {
		return OrderView{}, err
	}
	return toOrderView(o), nil
}

// SUCCESSの注文でその商品を買ったか
func (u *OrderUsecase) HasUserBought(ctx context.Context, userID int64, productID int64) (bool, error) {
	if userID <= 0 || productID <= 0 {
		return false, nil
	}
	ok, err := u.orders.HasUserBought(ctx, userID, productID)
	if err != nil {
		return false, internal(err)
	}
	return ok, nil
}

func (u *OrderUsecase) findOwned(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, notFound("order not found")
	}
	if err != nil {
		return model.Order{}, internal(err)
	}
	if o.UserID != userID {
		return model.Order{}, notFound("order not found")
	}
	return o, nil
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// page/limitの最低限チェック
func normalizePage(page int, limit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	if page < 1 {
		return 0, 0, validationError("invalid page")
	}
	if limit < 1 || limit > maxPageLimit {
		return 0, 0, validationError("invalid limit")
	}
	return page, limit, nil
}
