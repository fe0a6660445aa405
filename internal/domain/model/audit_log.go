package model

import "time"

// 在庫更新、注文ステータス更新など。
type AuditAction string

const (
	//在庫を更新した操作。
	AuditActionUpdateStock AuditAction = "UPDATE_STOCK"
	//書籍を登録した操作。
	AuditActionCreateBook AuditAction = "CREATE_BOOK"
	//書籍情報を更新した操作。
	AuditActionUpdateBook AuditAction = "UPDATE_BOOK"
	//書籍を公開停止して削除した操作。
	AuditActionDeleteBook AuditAction = "DELETE_BOOK"
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//追跡番号を更新した操作。
	AuditActionUpdateTracking AuditAction = "UPDATE_TRACKING"
	//注文を関連レコードごと削除した操作。
	AuditActionDeleteOrder AuditAction = "DELETE_ORDER"
	//銀行振込を手動承認した操作。
	AuditActionApprovePayment AuditAction = "APPROVE_PAYMENT"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceBook    AuditResourceType = "book"
	AuditResourceOrder   AuditResourceType = "order"
	AuditResourcePayment AuditResourceType = "payment"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザー（主に管理者）のID。
	ActorUserID int64 `gorm:"not null;index" json:"actor_user_id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
