package usecase

import (
	"context"
	"net/http"
	"time"

	"readnwin/internal/domain/model"
	repo "readnwin/internal/repository"
)

// OrderUsecase は自分の注文の読み取り。
// 作成はCheckoutUsecaseの仕事で、ここにはない。
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemOutput struct {
	BookID   int64  `json:"book_id"`
	Title    string `json:"title"`
	Format   string `json:"format"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type OrderPaymentOutput struct {
	ID             int64      `json:"id"`
	Method         string     `json:"method"`
	Status         string     `json:"status"`
	TransactionRef string     `json:"transaction_ref"`
	Amount         int64      `json:"amount"`
	Currency       string     `json:"currency"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

type OrderOutput struct {
	ID             int64             `json:"id"`
	OrderNumber    string            `json:"order_number"`
	Status         string            `json:"status"`
	Subtotal       int64             `json:"subtotal"`
	ShippingCost   int64             `json:"shipping_cost"`
	Tax            int64             `json:"tax"`
	TotalAmount    int64             `json:"total_amount"`
	PaymentMethod  string            `json:"payment_method"`
	TrackingNumber string            `json:"tracking_number"`
	CreatedAt      time.Time         `json:"created_at"`
	Items          []OrderItemOutput `json:"items"`

	//詳細取得のときだけ入る。一覧では省略。
	Payment *OrderPaymentOutput `json:"payment,omitempty"`
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまずは固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewValidationError("invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewNotFoundError("not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID == nil || *o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewNotFoundError("not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)

		//有効な決済は注文ごとに1件の想定。複数あれば最新を出す。
		ps, err := r.Payments().FindByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(ps) > 0 {
			p := ps[len(ps)-1]
			out.Payment = &OrderPaymentOutput{
				ID:             p.ID,
				Method:         string(p.Method),
				Status:         string(p.Status),
				TransactionRef: p.TransactionRef,
				Amount:         p.Amount,
				Currency:       p.Currency,
				ExpiresAt:      p.ExpiresAt,
			}
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			BookID:   it.BookID,
			Title:    it.TitleSnapshot,
			Format:   string(it.FormatSnapshot),
			Price:    it.PriceSnapshot,
			Quantity: it.Quantity,
		})
	}

	return OrderOutput{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Status:         string(o.Status),
		Subtotal:       o.Subtotal,
		ShippingCost:   o.ShippingCost,
		Tax:            o.Tax,
		TotalAmount:    o.TotalAmount,
		PaymentMethod:  o.PaymentMethod,
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt,
		Items:          outItems,
	}
}
