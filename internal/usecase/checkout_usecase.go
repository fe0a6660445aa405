package usecase

import (
	"context"
	"errors"
	"net/http"

	"readnwin/internal/domain/model"
	"readnwin/internal/notification"
	"readnwin/internal/payment"
	repo "readnwin/internal/repository"

	"github.com/rs/zerolog"
)

// 確認メールの投入口。Enqueueはブロックしない約束。
type OrderNotifier interface {
	Enqueue(m notification.OrderConfirmation)
}

// CheckoutUsecase がトランザクション境界。
// カート検証→見積り→注文台帳→決済開始を1つのTxで回し、
// どこで失敗しても注文・明細・決済・在庫減算が丸ごと巻き戻る。
// カート削除と確認メールはcommit後のベストエフォート。
type CheckoutUsecase struct {
	tx           repo.TransactionManager
	cartRepo     repo.CartRepository
	userRepo     repo.UserRepository
	shippingRepo repo.ShippingMethodRepository
	ledger       *OrderLedger
	initiator    payment.Initiator
	notifier     OrderNotifier
	log          zerolog.Logger
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	userRepo repo.UserRepository,
	shippingRepo repo.ShippingMethodRepository,
	ledger *OrderLedger,
	initiator payment.Initiator,
	notifier OrderNotifier,
	log zerolog.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:           tx,
		cartRepo:     cartRepo,
		userRepo:     userRepo,
		shippingRepo: shippingRepo,
		ledger:       ledger,
		initiator:    initiator,
		notifier:     notifier,
		log:          log,
	}
}

type AddressInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

func (a AddressInput) toModel() model.OrderAddress {
	return model.OrderAddress{
		Name:    a.Name,
		Phone:   a.Phone,
		Line1:   a.Line1,
		Line2:   a.Line2,
		City:    a.City,
		State:   a.State,
		Country: a.Country,
	}
}

// 物理本の配送に足りる住所か
func (a AddressInput) complete() bool {
	return a.Name != "" && a.Line1 != "" && a.City != ""
}

type CheckoutInput struct {
	ShippingAddress  AddressInput
	BillingAddress   AddressInput
	PaymentMethod    string
	ShippingMethodID *int64
	Notes            string
}

type CheckoutOrderOutput struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"order_number"`
	TotalAmount int64  `json:"total_amount"`
}

type CheckoutPaymentOutput struct {
	ID             int64  `json:"id"`
	Status         string `json:"status"`
	TransactionRef string `json:"transaction_ref"`

	AuthorizationURL string                       `json:"authorization_url,omitempty"`
	BankTransfer     *payment.BankTransferDetails `json:"bank_transfer,omitempty"`
}

type CheckoutOutput struct {
	Success       bool                  `json:"success"`
	Order         CheckoutOrderOutput   `json:"order"`
	PaymentMethod string                `json:"payment_method"`
	Payment       CheckoutPaymentOutput `json:"payment"`
}

type ShippingMethodOutput struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	BaseCost              int64  `json:"base_cost"`
	CostPerItem           int64  `json:"cost_per_item"`
	FreeShippingThreshold int64  `json:"free_shipping_threshold"`
	EstimatedDays         int    `json:"estimated_days"`
}

// チェックアウト画面で選べる配送方法の一覧
func (u *CheckoutUsecase) ListShippingMethods(ctx context.Context) ([]ShippingMethodOutput, error) {
	methods, err := u.shippingRepo.ListActive(ctx)
	if err != nil {
		return []ShippingMethodOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ShippingMethodOutput, 0, len(methods))
	for _, m := range methods {
		outs = append(outs, ShippingMethodOutput{
			ID:                    m.ID,
			Name:                  m.Name,
			BaseCost:              m.BaseCost,
			CostPerItem:           m.CostPerItem,
			FreeShippingThreshold: m.FreeShippingThreshold,
			EstimatedDays:         m.EstimatedDays,
		})
	}
	return outs, nil
}

// PlaceOrder はチェックアウト1回分。
// commit前に失敗したら注文は存在せずカートも無傷なので、リトライは常に安全。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID int64, in CheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//支払い方法はこの2択で全部。それ以外は黙ってデフォルトにせず400。
	switch model.PaymentMethod(in.PaymentMethod) {
	case model.PaymentMethodFlutterwave, model.PaymentMethodBankTransfer:
		// OK
	default:
		return CheckoutOutput{}, NewValidationError("invalid payment method")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//配送方法の指定があれば先に引いておく（Txの外で読むだけ）
	var shipping *model.ShippingMethod
	if in.ShippingMethodID != nil {
		m, err := u.shippingRepo.FindByID(ctx, *in.ShippingMethodID)
		if errors.Is(err, repo.ErrNotFound) {
			return CheckoutOutput{}, NewValidationError("invalid shipping method")
		}
		if err != nil {
			return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		shipping = &m
	}

	var (
		order      model.Order
		items      []model.OrderItem
		payResult  payment.Result
	)

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//Validating: カートはストアから読み直す。
		//クライアントが送ってきたcart_itemsは表示用でしかない（価格改ざん対策）。
		cartItems, err := r.Carts().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewValidationError("cart is empty")
		}

		ids := make([]int64, 0, len(cartItems))
		lines := make([]QuoteLine, 0, len(cartItems))
		for _, ci := range cartItems {
			ids = append(ids, ci.BookID)
			lines = append(lines, QuoteLine{BookID: ci.BookID, Quantity: ci.Quantity})
		}

		//非公開・削除済みの本はmapに入らず、見積りが弾く
		books, err := r.Books().FindPublishedByIDs(ctx, ids)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//Pricing
		quote, err := ComputeQuote(lines, books, shipping)
		if err != nil {
			return err
		}

		if quote.PhysicalCount > 0 && !in.ShippingAddress.complete() {
			return NewValidationError("shipping address is incomplete")
		}

		//OrderCreated: ヘッダ＋明細スナップショット＋在庫減算
		order, items, err = u.ledger.CreateOrder(ctx, r, CreateOrderInput{
			UserID:          &userID,
			Lines:           lines,
			Books:           books,
			Quote:           quote,
			ShippingAddress: in.ShippingAddress.toModel(),
			BillingAddress:  in.BillingAddress.toModel(),
			PaymentMethod:   model.PaymentMethod(in.PaymentMethod),
			Notes:           in.Notes,
		})
		if err != nil {
			return err
		}

		//PaymentInitiated: ここで失敗したら注文ごと巻き戻す。
		//決済を始められなかった注文は存在してはいけない。
		payResult, err = u.initiator.Initiate(ctx, r, payment.InitiateInput{
			Order:         order,
			CustomerEmail: user.Email,
			CustomerName:  user.FullName(),
		})
		if err != nil {
			return u.paymentError(err, order.OrderNumber)
		}

		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	//Committed: ここから先は何が失敗しても注文は戻さない。

	//カート削除はベストエフォート（失敗はログのみ）
	if err := u.cartRepo.ClearByUserID(ctx, userID); err != nil {
		u.log.Error().
			Err(err).
			Int64("user_id", userID).
			Str("order_number", order.OrderNumber).
			Msg("cart clear after checkout failed")
	}

	//確認メールは完全にファイアアンドフォーゲット
	u.notifier.Enqueue(buildConfirmation(user, order, items, payResult.Payment.Currency))

	out := CheckoutOutput{
		Success: true,
		Order: CheckoutOrderOutput{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			TotalAmount: order.TotalAmount,
		},
		PaymentMethod: in.PaymentMethod,
		Payment: CheckoutPaymentOutput{
			ID:               payResult.Payment.ID,
			Status:           string(payResult.Payment.Status),
			TransactionRef:   payResult.Payment.TransactionRef,
			AuthorizationURL: payResult.AuthorizationURL,
			BankTransfer:     payResult.BankTransfer,
		},
	}
	return out, nil
}

// 決済開始の失敗種別をHTTPエラーに写す。
// 詳細はログへ、利用者には一般的な文言だけ返す。
func (u *CheckoutUsecase) paymentError(err error, orderNumber string) error {
	switch {
	case errors.Is(err, payment.ErrUnsupportedMethod):
		return NewValidationError("invalid payment method")
	case errors.Is(err, payment.ErrConfig):
		u.log.Error().Err(err).Str("order_number", orderNumber).Msg("payment gateway misconfigured")
		return NewConfigError("payment is temporarily unavailable")
	case errors.Is(err, payment.ErrGateway):
		u.log.Error().Err(err).Str("order_number", orderNumber).Msg("payment initiation failed")
		return NewGatewayError("payment could not be initiated")
	default:
		u.log.Error().Err(err).Str("order_number", orderNumber).Msg("payment initiation failed")
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func buildConfirmation(user model.User, order model.Order, items []model.OrderItem, currency string) notification.OrderConfirmation {
	lines := make([]notification.ConfirmationLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, notification.ConfirmationLine{
			Title:    it.TitleSnapshot,
			Quantity: it.Quantity,
			Price:    it.PriceSnapshot,
		})
	}

	return notification.OrderConfirmation{
		To:          user.Email,
		Name:        user.FullName(),
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Currency:    currency,
		Lines:       lines,
	}
}
