package usecase

import (
	"context"
	"testing"

	"readnwin/internal/domain/model"
	repo "readnwin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderReadFixture() (*TxManagerMock, *AdminOrderRepoMock, *AdminOrderItemRepoMock, *AdminPaymentRepoMock) {
	tm := &TxManagerMock{}
	orderRepo := &AdminOrderRepoMock{}
	itemRepo := &AdminOrderItemRepoMock{}
	payRepo := &AdminPaymentRepoMock{}
	tm.Repos = &TxReposStub{orders: orderRepo, orderItems: itemRepo, payments: payRepo}
	return tm, orderRepo, itemRepo, payRepo
}

func TestGetMyOrderDetail_ReturnsSnapshotLines(t *testing.T) {
	tm, orderRepo, itemRepo, payRepo := newOrderReadFixture()
	userID := int64(7)

	tm.On("WithinTx", mock.Anything).Return()
	orderRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{
		ID: 99, UserID: &userID, OrderNumber: "RW-20250101-ABCD1234",
		Status: model.OrderStatusPending, Subtotal: 1000, Tax: 75, TotalAmount: 1075,
	}, nil)
	itemRepo.On("ListByOrderID", mock.Anything, int64(99)).Return([]model.OrderItem{
		{BookID: 10, TitleSnapshot: "Go入門", FormatSnapshot: model.BookFormatEbook, PriceSnapshot: 1000, Quantity: 1},
	}, nil)
	payRepo.On("FindByOrderID", mock.Anything, int64(99)).Return([]model.Payment{
		{ID: 5, Method: model.PaymentMethodBankTransfer, Status: model.PaymentStatusAwaitingApproval,
			TransactionRef: "BT-1700000000000000000", Amount: 1075, Currency: "NGN"},
	}, nil)

	out, err := NewOrderUsecase(tm).GetMyOrderDetail(context.Background(), userID, 99)
	assert.NoError(t, err)
	assert.Equal(t, "RW-20250101-ABCD1234", out.OrderNumber)
	assert.Equal(t, int64(1075), out.TotalAmount)
	if assert.Len(t, out.Items, 1) {
		assert.Equal(t, "Go入門", out.Items[0].Title)
		assert.Equal(t, int64(1000), out.Items[0].Price)
	}
	if assert.NotNil(t, out.Payment) {
		assert.Equal(t, "bank_transfer", out.Payment.Method)
		assert.Equal(t, "awaiting_approval", out.Payment.Status)
		assert.Equal(t, "BT-1700000000000000000", out.Payment.TransactionRef)
	}
}

// 他人の注文は404（403ではなく存在しない扱い）
func TestGetMyOrderDetail_OtherUsersOrderIsNotFound(t *testing.T) {
	tm, orderRepo, _, _ := newOrderReadFixture()
	owner := int64(8)

	tm.On("WithinTx", mock.Anything).Return()
	orderRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{
		ID: 99, UserID: &owner,
	}, nil)

	_, err := NewOrderUsecase(tm).GetMyOrderDetail(context.Background(), 7, 99)
	assertErrContains(t, err, 404, "not found")
}

func TestGetMyOrderDetail_MissingOrder(t *testing.T) {
	tm, orderRepo, _, _ := newOrderReadFixture()

	tm.On("WithinTx", mock.Anything).Return()
	orderRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := NewOrderUsecase(tm).GetMyOrderDetail(context.Background(), 7, 99)
	assertErrContains(t, err, 404, "not found")
}

func TestListMyOrders_Unauthorized(t *testing.T) {
	tm, _, _, _ := newOrderReadFixture()

	_, err := NewOrderUsecase(tm).ListMyOrders(context.Background(), 0)
	assertErrContains(t, err, 401, "unauthorized")
	tm.AssertNotCalled(t, "WithinTx", mock.Anything)
}
