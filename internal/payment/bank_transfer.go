package payment

import (
	"context"
	"time"

	"readnwin/internal/domain/model"
	repo "readnwin/internal/repository"
)

// 振込先がこの時間を過ぎたら案内上は失効（自動キャンセルはしない）
const bankTransferExpiry = 24 * time.Hour

type BankAccount struct {
	BankName      string
	AccountName   string
	AccountNumber string
}

// BankTransferInitiator は自動検証なしの手動フロー。
// Paymentはpendingではなくawaiting_approval（管理者の手動確認待ち）で作る。
type BankTransferInitiator struct {
	account  BankAccount
	currency string
}

func NewBankTransferInitiator(account BankAccount, currency string) *BankTransferInitiator {
	return &BankTransferInitiator{account: account, currency: currency}
}

func (i *BankTransferInitiator) Initiate(ctx context.Context, r repo.TxRepos, in InitiateInput) (Result, error) {
	now := time.Now()
	expiresAt := now.Add(bankTransferExpiry)

	p := model.Payment{
		OrderID:        in.Order.ID,
		UserID:         in.Order.UserID,
		Amount:         in.Order.TotalAmount,
		Currency:       i.currency,
		Method:         model.PaymentMethodBankTransfer,
		Status:         model.PaymentStatusAwaitingApproval,
		TransactionRef: newTransactionRef("BT", now),
		ExpiresAt:      &expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	paymentID, err := r.Payments().Create(ctx, p)
	if err != nil {
		return Result{}, err
	}
	p.ID = paymentID

	return Result{
		Payment: p,
		BankTransfer: &BankTransferDetails{
			BankName:      i.account.BankName,
			AccountName:   i.account.AccountName,
			AccountNumber: i.account.AccountNumber,
			Reference:     p.TransactionRef,
			Amount:        p.Amount,
			Currency:      p.Currency,
			ExpiresAt:     expiresAt,
		},
	}, nil
}
