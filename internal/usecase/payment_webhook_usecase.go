package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"readnwin/internal/domain/model"
	repo "readnwin/internal/repository"
)

// PaymentWebhookUsecase はゲートウェイからの非同期通知を処理する。
// チェックアウト本体は決済ステータスを進めない。進めるのはここと管理者承認だけ。
type PaymentWebhookUsecase struct {
	tx  repo.TransactionManager
	log zerolog.Logger
}

func NewPaymentWebhookUsecase(tx repo.TransactionManager, log zerolog.Logger) *PaymentWebhookUsecase {
	return &PaymentWebhookUsecase{tx: tx, log: log}
}

type GatewayEventInput struct {
	TransactionRef string
	Status         string
}

func (u *PaymentWebhookUsecase) HandleGatewayEvent(ctx context.Context, in GatewayEventInput) error {
	if in.TransactionRef == "" {
		return NewValidationError("transaction reference is required")
	}

	var next model.PaymentStatus
	switch in.Status {
	case "successful":
		next = model.PaymentStatusCompleted
	case "failed":
		next = model.PaymentStatusFailed
	default:
		return NewValidationError("unknown event status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByTransactionRef(ctx, in.TransactionRef)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("payment not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if p.Method != model.PaymentMethodFlutterwave {
			return NewValidationError("not a gateway payment")
		}

		//ゲートウェイは同じイベントを再送してくるので冪等に流す
		if p.Status == next {
			return nil
		}
		if p.Status != model.PaymentStatusPending {
			return NewHTTPError(http.StatusConflict, "payment already finalized")
		}

		if err := r.Payments().UpdateStatus(ctx, p.ID, next, ""); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if next == model.PaymentStatusCompleted {
			if err := r.Orders().UpdateStatus(ctx, p.OrderID, model.OrderStatusConfirmed); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		u.log.Info().
			Int64("payment_id", p.ID).
			Int64("order_id", p.OrderID).
			Str("status", string(next)).
			Msg("gateway webhook processed")
		return nil
	})
}
