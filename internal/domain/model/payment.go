package model

import "time"

type PaymentMethod string

const (
	//ホスト型決済ページへリダイレクトするゲートウェイ決済
	PaymentMethodFlutterwave PaymentMethod = "flutterwave"
	//銀行振込（管理者が手動で承認する）
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed PaymentStatus = "failed"
	//自動検証は走らない。管理者の手動確認待ち。
	PaymentStatusAwaitingApproval PaymentStatus = "awaiting_approval"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// 決済レコード。チェックアウト1回につき必ず1行だけ作られる。
// statusの遷移はwebhook/管理者操作が進める（チェックアウト本体は進めない）。
type Payment struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64  `gorm:"not null;index" json:"order_id"`
	UserID  *int64 `gorm:"index" json:"user_id"`

	Amount   int64  `gorm:"not null" json:"amount"`
	Currency string `gorm:"type:varchar(8);not null" json:"currency"`

	Method PaymentMethod `gorm:"type:varchar(30);not null" json:"method"`
	Status PaymentStatus `gorm:"type:varchar(30);not null;index" json:"status"`

	TransactionRef string `gorm:"type:varchar(100);not null;uniqueIndex" json:"transaction_ref"`

	//銀行振込のみ
	ProofOfPaymentURL string     `gorm:"type:text" json:"proof_of_payment_url"`
	ExpiresAt         *time.Time `json:"expires_at"`

	AdminNotes string `gorm:"type:text" json:"admin_notes"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
