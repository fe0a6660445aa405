package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"readnwin/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBankTransferInitiator_AwaitingApprovalWithDetails(t *testing.T) {
	payRepo := &PaymentRepoMock{}
	var captured model.Payment
	payRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(model.Payment)
	}).Return(int64(11), nil)

	account := BankAccount{BankName: "Zenith Bank", AccountName: "ReadnWin Ltd", AccountNumber: "1012345678"}
	initiator := NewBankTransferInitiator(account, "NGN")

	userID := int64(7)
	before := time.Now()
	res, err := initiator.Initiate(context.Background(), &paymentTxRepos{payments: payRepo}, InitiateInput{
		Order: model.Order{
			ID: 99, UserID: &userID, TotalAmount: 107500,
			PaymentMethod: string(model.PaymentMethodBankTransfer),
		},
	})

	assert.NoError(t, err)
	assert.Empty(t, res.AuthorizationURL)

	//ゲートウェイと違ってpendingではなく手動承認待ち
	assert.Equal(t, model.PaymentStatusAwaitingApproval, captured.Status)
	assert.Equal(t, model.PaymentMethodBankTransfer, captured.Method)
	assert.True(t, strings.HasPrefix(captured.TransactionRef, "BT-"))
	if assert.NotNil(t, captured.ExpiresAt) {
		assert.WithinDuration(t, before.Add(24*time.Hour), *captured.ExpiresAt, time.Minute)
	}

	if assert.NotNil(t, res.BankTransfer) {
		assert.Equal(t, "Zenith Bank", res.BankTransfer.BankName)
		assert.Equal(t, "ReadnWin Ltd", res.BankTransfer.AccountName)
		assert.Equal(t, "1012345678", res.BankTransfer.AccountNumber)
		assert.Equal(t, captured.TransactionRef, res.BankTransfer.Reference)
		assert.Equal(t, int64(107500), res.BankTransfer.Amount)
		assert.Equal(t, "NGN", res.BankTransfer.Currency)
	}
}

func TestBankTransferInitiator_CreateFailurePropagates(t *testing.T) {
	payRepo := &PaymentRepoMock{}
	payRepo.On("Create", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	initiator := NewBankTransferInitiator(BankAccount{}, "NGN")
	_, err := initiator.Initiate(context.Background(), &paymentTxRepos{payments: payRepo}, InitiateInput{
		Order: model.Order{ID: 99},
	})
	assert.Error(t, err)
}
