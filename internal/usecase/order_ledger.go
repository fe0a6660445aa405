package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"readnwin/internal/domain/model"
	repo "readnwin/internal/repository"

	"github.com/google/uuid"
)

// OrderLedger は注文ヘッダ＋明細スナップショット＋在庫減算を
// 1つの作業単位として書き込む。commit/rollbackは呼び出し側のTxが握る。
// カートはここでは消さない（決済開始が成功するまで残す）。
type OrderLedger struct{}

func NewOrderLedger() *OrderLedger {
	return &OrderLedger{}
}

type CreateOrderInput struct {
	//ゲスト注文はnil
	UserID          *int64
	Lines           []QuoteLine
	Books           map[int64]model.Book
	Quote           Quote
	ShippingAddress model.OrderAddress
	BillingAddress  model.OrderAddress
	PaymentMethod   model.PaymentMethod
	Notes           string
}

// CreateOrder は注文を確定前提で書き込む。
// 在庫不足はエラーで返り、Txごとロールバックされる（部分的な注文は残らない）。
func (l *OrderLedger) CreateOrder(ctx context.Context, r repo.TxRepos, in CreateOrderInput) (model.Order, []model.OrderItem, error) {
	shipping := in.ShippingAddress
	billing := in.BillingAddress

	//電子書籍のみの注文は実住所の代わりにプレースホルダを入れる
	if in.Quote.PhysicalCount == 0 {
		shipping = model.OrderAddress{Line1: model.DigitalDeliveryAddressLine}
		if billing == (model.OrderAddress{}) {
			billing = shipping
		}
	}

	now := time.Now()
	order := model.Order{
		UserID:          in.UserID,
		OrderNumber:     newOrderNumber(now),
		Status:          model.OrderStatusPending,
		Subtotal:        in.Quote.Subtotal,
		ShippingCost:    in.Quote.ShippingCost,
		Tax:             in.Quote.Tax,
		TotalAmount:     in.Quote.Total,
		PaymentMethod:   string(in.PaymentMethod),
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]model.OrderItem, 0, len(in.Lines))

	for _, line := range in.Lines {
		b, ok := in.Books[line.BookID]
		if !ok {
			return model.Order{}, nil, NewValidationError(fmt.Sprintf("book %d is not available", line.BookID))
		}

		//物理本で在庫管理が有効なものだけ減算する
		if b.Format.IsPhysical() && b.InventoryEnabled {
			enough, err := r.Inventory().DecreaseStockIfEnough(ctx, b.ID, line.Quantity)
			if err != nil {
				return model.Order{}, nil, NewHTTPError(500, "db error")
			}
			if !enough {
				return model.Order{}, nil, NewConflictError(fmt.Sprintf(
					"Insufficient stock for '%s'. Available: %d, Requested: %d",
					b.Title, b.StockQuantity, line.Quantity,
				))
			}
		}

		//スナップショット
		items = append(items, model.OrderItem{
			BookID:         b.ID,
			Quantity:       line.Quantity,
			PriceSnapshot:  b.Price,
			TitleSnapshot:  b.Title,
			FormatSnapshot: b.Format,
			CreatedAt:      now,
		})
	}

	orderID, err := r.Orders().Create(ctx, order)
	if err != nil {
		//order_numberのunique制約衝突もここで落ちる（握りつぶさない）
		return model.Order{}, nil, NewHTTPError(500, "db error")
	}
	order.ID = orderID

	if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
		return model.Order{}, nil, NewHTTPError(500, "db error")
	}

	return order, items, nil
}

// 日付プレフィックス＋ランダムサフィックス。
// 衝突はほぼ起きないが、起きたらDBのunique制約が音を立てて落とす。
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("RW-%s-%s", now.Format("20060102"), suffix)
}
