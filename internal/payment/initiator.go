package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"readnwin/internal/domain/model"
	repo "readnwin/internal/repository"
)

// 決済開始の失敗種別。HTTPステータスへの変換は呼び出し側（usecase）の仕事。
var (
	//ゲートウェイの応答異常・疎通失敗
	ErrGateway = errors.New("payment gateway error")
	//シークレット未設定・形式不正などサーバー側の設定不備
	ErrConfig = errors.New("payment gateway is not configured")
	//{flutterwave, bank_transfer} 以外が来た
	ErrUnsupportedMethod = errors.New("unsupported payment method")
)

type InitiateInput struct {
	Order         model.Order
	CustomerEmail string
	CustomerName  string
}

// 銀行振込の案内。お客様はReferenceを振込名義に書く。
type BankTransferDetails struct {
	BankName      string    `json:"bank_name"`
	AccountName   string    `json:"account_name"`
	AccountNumber string    `json:"account_number"`
	Reference     string    `json:"reference"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	//期限は案内のみ。過ぎても自動キャンセルはしない。
	ExpiresAt time.Time `json:"expires_at"`
}

// 決済開始の結果。戦略ごとにどちらか片方だけ埋まる。
type Result struct {
	Payment model.Payment `json:"payment"`

	//ゲートウェイ決済：お客様を飛ばすホスト型決済ページ
	AuthorizationURL string `json:"authorization_url,omitempty"`

	//銀行振込：振込先の案内
	BankTransfer *BankTransferDetails `json:"bank_transfer,omitempty"`
}

// Initiator は1回のチェックアウトにつき必ず1行のPaymentを作り、
// 次のステップ（リダイレクト先 or 振込案内）を返す。
// Txの中で呼ばれるので、エラーを返せばPayment行ごと巻き戻る。
type Initiator interface {
	Initiate(ctx context.Context, r repo.TxRepos, in InitiateInput) (Result, error)
}

// 支払い方法で戦略を出し分ける。選択肢はこの2つで全部。
type MethodDispatcher struct {
	flutterwave  Initiator
	bankTransfer Initiator
}

func NewMethodDispatcher(flutterwave Initiator, bankTransfer Initiator) *MethodDispatcher {
	return &MethodDispatcher{flutterwave: flutterwave, bankTransfer: bankTransfer}
}

func (d *MethodDispatcher) Initiate(ctx context.Context, r repo.TxRepos, in InitiateInput) (Result, error) {
	switch model.PaymentMethod(in.Order.PaymentMethod) {
	case model.PaymentMethodFlutterwave:
		return d.flutterwave.Initiate(ctx, r, in)
	case model.PaymentMethodBankTransfer:
		return d.bankTransfer.Initiate(ctx, r, in)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedMethod, in.Order.PaymentMethod)
	}
}
