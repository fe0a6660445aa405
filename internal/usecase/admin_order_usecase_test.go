package usecase

import (
	"context"
	"testing"

	"readnwin/internal/domain/model"
	repo "readnwin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks (Admin向け：衝突回避)
// =====================

type AdminOrderRepoMock struct{ mock.Mock }

func (m *AdminOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *AdminOrderRepoMock) FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	args := m.Called(ctx, orderNumber)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *AdminOrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminOrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminOrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *AdminOrderRepoMock) UpdateTracking(ctx context.Context, orderID int64, trackingNumber string) error {
	args := m.Called(ctx, orderID, trackingNumber)
	return args.Error(0)
}

func (m *AdminOrderRepoMock) DeleteByID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *AdminOrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type AdminOrderItemRepoMock struct{ mock.Mock }

func (m *AdminOrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminOrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *AdminOrderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type AdminInventoryRepoMock struct{ mock.Mock }

func (m *AdminInventoryRepoMock) SetStock(ctx context.Context, bookID int64, newStock int64) error {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminInventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, bookID int64, qty int64) (bool, error) {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminInventoryRepoMock) IncreaseStock(ctx context.Context, bookID int64, qty int64) error {
	args := m.Called(ctx, bookID, qty)
	return args.Error(0)
}

func (m *AdminInventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	panic("not used in AdminOrderUsecase tests")
}

type AdminPaymentRepoMock struct{ mock.Mock }

func (m *AdminPaymentRepoMock) Create(ctx context.Context, p model.Payment) (int64, error) {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminPaymentRepoMock) FindByID(ctx context.Context, paymentID int64) (model.Payment, error) {
	args := m.Called(ctx, paymentID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *AdminPaymentRepoMock) FindByOrderID(ctx context.Context, orderID int64) ([]model.Payment, error) {
	args := m.Called(ctx, orderID)
	ps, _ := args.Get(0).([]model.Payment)
	return ps, args.Error(1)
}

func (m *AdminPaymentRepoMock) FindByTransactionRef(ctx context.Context, ref string) (model.Payment, error) {
	args := m.Called(ctx, ref)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *AdminPaymentRepoMock) UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus, adminNotes string) error {
	args := m.Called(ctx, paymentID, status, adminNotes)
	return args.Error(0)
}

func (m *AdminPaymentRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type AdminAuditRepoMock struct{ mock.Mock }

func (m *AdminAuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AdminAuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	panic("not used in AdminOrderUsecase tests")
}

type adminFixture struct {
	tm        *TxManagerMock
	orderRepo *AdminOrderRepoMock
	itemRepo  *AdminOrderItemRepoMock
	invRepo   *AdminInventoryRepoMock
	payRepo   *AdminPaymentRepoMock
	auditRepo *AdminAuditRepoMock
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		tm:        &TxManagerMock{},
		orderRepo: &AdminOrderRepoMock{},
		itemRepo:  &AdminOrderItemRepoMock{},
		invRepo:   &AdminInventoryRepoMock{},
		payRepo:   &AdminPaymentRepoMock{},
		auditRepo: &AdminAuditRepoMock{},
	}
	f.tm.Repos = &TxReposStub{
		orders:     f.orderRepo,
		orderItems: f.itemRepo,
		payments:   f.payRepo,
		inventory:  f.invRepo,
	}
	return f
}

func (f *adminFixture) usecase() *AdminOrderUsecase {
	return NewAdminOrderUsecase(f.tm, f.auditRepo)
}

// =====================
// tests
// =====================

func TestAdminList_InvalidStatus(t *testing.T) {
	f := newAdminFixture()

	_, err := f.usecase().List(context.Background(), repo.AdminOrderListFilter{
		Page: 1, Limit: 50, Status: "unknown",
	})
	assertErrContains(t, err, 400, "invalid status")
}

func TestAdminList_InvalidPaging(t *testing.T) {
	f := newAdminFixture()

	_, err := f.usecase().List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 50})
	assertErrContains(t, err, 400, "invalid page")

	_, err = f.usecase().List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 500})
	assertErrContains(t, err, 400, "invalid limit")
}

func TestAdminFindByOrderNumber_ReturnsOrder(t *testing.T) {
	f := newAdminFixture()

	f.tm.On("WithinTx", mock.Anything).Return()
	f.orderRepo.On("FindByOrderNumber", mock.Anything, "RW-20260901-ABCD1234").Return(model.Order{
		ID: 42, OrderNumber: "RW-20260901-ABCD1234", Status: model.OrderStatusPending,
	}, nil)
	f.itemRepo.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{}, nil)

	out, err := f.usecase().FindByOrderNumber(context.Background(), "RW-20260901-ABCD1234")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, "RW-20260901-ABCD1234", out.OrderNumber)
}

func TestAdminFindByOrderNumber_NotFound(t *testing.T) {
	f := newAdminFixture()

	f.tm.On("WithinTx", mock.Anything).Return()
	f.orderRepo.On("FindByOrderNumber", mock.Anything, "RW-20260901-ZZZZZZZZ").Return(model.Order{}, repo.ErrNotFound)

	_, err := f.usecase().FindByOrderNumber(context.Background(), "RW-20260901-ZZZZZZZZ")
	assertErrContains(t, err, 404, "order not found")
}

func TestAdminFindByOrderNumber_RequiresNumber(t *testing.T) {
	f := newAdminFixture()

	_, err := f.usecase().FindByOrderNumber(context.Background(), "")
	assertErrContains(t, err, 400, "required")
	f.tm.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestAdminUpdateStatus_RejectsUnknownValue(t *testing.T) {
	f := newAdminFixture()

	err := f.usecase().UpdateStatus(context.Background(), 1, 99, AdminUpdateOrderStatusInput{Status: "in_flight"})
	assertErrContains(t, err, 400, "invalid status")
	f.tm.AssertNotCalled(t, "WithinTx", mock.Anything)
}

// 同じステータスへの更新は何もせず成功で返す
func TestAdminUpdateStatus_NoopWhenUnchanged(t *testing.T) {
	f := newAdminFixture()

	f.tm.On("WithinTx", mock.Anything).Return()
	f.orderRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{
		ID: 99, Status: model.OrderStatusShipped,
	}, nil)

	err := f.usecase().UpdateStatus(context.Background(), 1, 99, AdminUpdateOrderStatusInput{Status: "shipped"})
	assert.NoError(t, err)
	f.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_TerminalGuard(t *testing.T) {
	f := newAdminFixture()

	f.tm.On("WithinTx", mock.Anything).Return()
	f.orderRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{
		ID: 99, Status: model.OrderStatusCancelled,
	}, nil)

	err := f.usecase().UpdateStatus(context.Background(), 1, 99, AdminUpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, 400, "cancelled")
}

// cancelledへ動かしたら物理本の在庫だけ戻る。
// カタログから消えた本（ErrNotFound）は黙って飛ばす。
func TestAdminUpdateStatus_CancelRestoresStock(t *testing.T) {
	f := newAdminFixture()

	f.tm.On("WithinTx", mock.Anything).Return()
	f.orderRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{
		ID: 99, Status: model.OrderStatusPending,
	}, nil)
	f.itemRepo.On("ListByOrderID", mock.Anything, int64(99)).Return([]model.OrderItem{
		{BookID: 10, Quantity: 2, FormatSnapshot: model.BookFormatPhysical},
		{BookID: 11, Quantity: 1, FormatSnapshot: model.BookFormatEbook},
		{BookID: 12, Quantity: 3, FormatSnapshot: model.BookFormatBoth},
	}, nil)
	f.invRepo.On("IncreaseStock", mock.Anything, int64(10), int64(2)).Return(nil)
	f.invRepo.On("IncreaseStock", mock.Anything, int64(12), int64(3)).Return(repo.ErrNotFound)
	f.orderRepo.On("UpdateStatus", mock.Anything, int64(99), model.OrderStatusCancelled).Return(nil)
	f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.usecase().UpdateStatus(context.Background(), 1, 99, AdminUpdateOrderStatusInput{Status: "cancelled"})
	assert.NoError(t, err)

	f.invRepo.AssertCalled(t, "IncreaseStock", mock.Anything, int64(10), int64(2))
	//電子書籍は在庫を持たないので戻さない
	f.invRepo.AssertNotCalled(t, "IncreaseStock", mock.Anything, int64(11), mock.Anything)
	f.auditRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus && l.ResourceID == 99
	}))
}

func TestAdminUpdateTracking_Validation(t *testing.T) {
	f := newAdminFixture()

	err := f.usecase().UpdateTracking(context.Background(), 1, 99, AdminUpdateTrackingInput{TrackingNumber: "   "})
	assertErrContains(t, err, 400, "invalid tracking number")

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'X'
	}
	err = f.usecase().UpdateTracking(context.Background(), 1, 99, AdminUpdateTrackingInput{TrackingNumber: string(long)})
	assertErrContains(t, err, 400, "invalid tracking number")
}

func TestAdminDeleteOrder_CascadesChildrenFirst(t *testing.T) {
	f := newAdminFixture()

	f.tm.On("WithinTx", mock.Anything).Return()
	f.orderRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{
		ID: 99, OrderNumber: "RW-20250101-ABCD1234",
	}, nil)
	f.payRepo.On("DeleteByOrderID", mock.Anything, int64(99)).Return(nil)
	f.itemRepo.On("DeleteByOrderID", mock.Anything, int64(99)).Return(nil)
	f.orderRepo.On("DeleteByID", mock.Anything, int64(99)).Return(nil)
	f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.usecase().DeleteOrder(context.Background(), 1, 99)
	assert.NoError(t, err)

	f.payRepo.AssertCalled(t, "DeleteByOrderID", mock.Anything, int64(99))
	f.itemRepo.AssertCalled(t, "DeleteByOrderID", mock.Anything, int64(99))
	f.orderRepo.AssertCalled(t, "DeleteByID", mock.Anything, int64(99))
}

func TestAdminApprovePayment_OnlyBankTransfer(t *testing.T) {
	f := newAdminFixture()

	f.tm.On("WithinTx", mock.Anything).Return()
	f.payRepo.On("FindByID", mock.Anything, int64(11)).Return(model.Payment{
		ID: 11, OrderID: 99, Method: model.PaymentMethodFlutterwave, Status: model.PaymentStatusPending,
	}, nil)

	err := f.usecase().ApprovePayment(context.Background(), 1, 11, AdminApprovePaymentInput{})
	assertErrContains(t, err, 400, "bank transfers")
}

func TestAdminApprovePayment_RequiresAwaitingApproval(t *testing.T) {
	f := newAdminFixture()

	f.tm.On("WithinTx", mock.Anything).Return()
	f.payRepo.On("FindByID", mock.Anything, int64(11)).Return(model.Payment{
		ID: 11, OrderID: 99, Method: model.PaymentMethodBankTransfer, Status: model.PaymentStatusCompleted,
	}, nil)

	err := f.usecase().ApprovePayment(context.Background(), 1, 11, AdminApprovePaymentInput{})
	assertErrContains(t, err, 400, "not awaiting approval")
}

func TestAdminApprovePayment_Success(t *testing.T) {
	f := newAdminFixture()

	f.tm.On("WithinTx", mock.Anything).Return()
	f.payRepo.On("FindByID", mock.Anything, int64(11)).Return(model.Payment{
		ID: 11, OrderID: 99, Method: model.PaymentMethodBankTransfer, Status: model.PaymentStatusAwaitingApproval,
	}, nil)
	f.payRepo.On("UpdateStatus", mock.Anything, int64(11), model.PaymentStatusCompleted, "confirmed via teller slip").Return(nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, int64(99), model.OrderStatusConfirmed).Return(nil)
	f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.usecase().ApprovePayment(context.Background(), 1, 11, AdminApprovePaymentInput{
		AdminNotes: "confirmed via teller slip",
	})
	assert.NoError(t, err)

	f.auditRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionApprovePayment && l.ResourceType == model.AuditResourcePayment
	}))
}
