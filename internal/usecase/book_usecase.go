package usecase

import (
	"context"
	"net/http"
	"strconv"

	"readnwin/internal/domain/model"
	repo "readnwin/internal/repository"
)

// BookUsecase は公開カタログの読み取り。
type BookUsecase struct {
	bookRepo repo.BookRepository
}

func NewBookUsecase(bookRepo repo.BookRepository) *BookUsecase {
	return &BookUsecase{bookRepo: bookRepo}
}

type BookOutput struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Format      string `json:"format"`
	InStock     bool   `json:"in_stock"`
}

type BookListOutput struct {
	Items []BookOutput `json:"items"`
	Total int64        `json:"total"`
}

func (u *BookUsecase) List(ctx context.Context, q repo.BookListQuery) (BookListOutput, error) {
	books, total, err := u.bookRepo.ListPublished(ctx, q)
	if err != nil {
		return BookListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]BookOutput, 0, len(books))
	for _, b := range books {
		items = append(items, toBookOutput(b))
	}
	return BookListOutput{Items: items, Total: total}, nil
}

func (u *BookUsecase) Detail(ctx context.Context, id int64) (BookOutput, error) {
	if id <= 0 {
		return BookOutput{}, NewValidationError("invalid id")
	}

	b, err := u.bookRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return BookOutput{}, NewNotFoundError("not found")
	}
	if err != nil {
		return BookOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !b.IsPublished {
		return BookOutput{}, NewNotFoundError("not found")
	}

	return toBookOutput(b), nil
}

func toBookOutput(b model.Book) BookOutput {
	inStock := true
	if b.Format.IsPhysical() && b.InventoryEnabled {
		inStock = b.StockQuantity > 0
	}

	return BookOutput{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Price:       b.Price,
		Format:      string(b.Format),
		InStock:     inStock,
	}
}

// AdminBookUsecase は在庫の手動調整。調整履歴と監査ログを残す。
type AdminBookUsecase struct {
	bookRepo  repo.BookRepository
	invRepo   repo.InventoryRepository
	auditRepo repo.AuditLogRepository
}

func NewAdminBookUsecase(bookRepo repo.BookRepository, invRepo repo.InventoryRepository, auditRepo repo.AuditLogRepository) *AdminBookUsecase {
	return &AdminBookUsecase{bookRepo: bookRepo, invRepo: invRepo, auditRepo: auditRepo}
}

type AdminBookInput struct {
	Title            string
	Author           string
	Description      string
	Price            int64
	Format           string
	InventoryEnabled bool
	IsPublished      bool
}

func (in AdminBookInput) validate() error {
	if in.Title == "" {
		return NewValidationError("title is required")
	}
	if in.Author == "" {
		return NewValidationError("author is required")
	}
	if in.Price < 0 {
		return NewValidationError("invalid price")
	}
	switch model.BookFormat(in.Format) {
	case model.BookFormatPhysical, model.BookFormatEbook, model.BookFormatBoth:
	default:
		return NewValidationError("invalid format")
	}
	return nil
}

func (u *AdminBookUsecase) CreateBook(ctx context.Context, actorAdminUserID int64, in AdminBookInput) (BookOutput, error) {
	if actorAdminUserID <= 0 {
		return BookOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return BookOutput{}, err
	}

	created, err := u.bookRepo.Create(ctx, model.Book{
		Title:            in.Title,
		Author:           in.Author,
		Description:      in.Description,
		Price:            in.Price,
		Format:           model.BookFormat(in.Format),
		InventoryEnabled: in.InventoryEnabled,
		IsPublished:      in.IsPublished,
	})
	if err != nil {
		return BookOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionCreateBook,
		ResourceType: model.AuditResourceBook,
		ResourceID:   created.ID,
		AfterJSON:    `{"title":` + strconv.Quote(created.Title) + `}`,
	}); err != nil {
		return BookOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toBookOutput(created), nil
}

func (u *AdminBookUsecase) UpdateBook(ctx context.Context, actorAdminUserID int64, bookID int64, in AdminBookInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if bookID <= 0 {
		return NewValidationError("invalid id")
	}
	if err := in.validate(); err != nil {
		return err
	}

	before, err := u.bookRepo.FindByID(ctx, bookID)
	if err == repo.ErrNotFound {
		return NewNotFoundError("not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.bookRepo.Update(ctx, model.Book{
		ID:               bookID,
		Title:            in.Title,
		Author:           in.Author,
		Description:      in.Description,
		Price:            in.Price,
		Format:           model.BookFormat(in.Format),
		InventoryEnabled: in.InventoryEnabled,
		IsPublished:      in.IsPublished,
	}); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError("not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpdateBook,
		ResourceType: model.AuditResourceBook,
		ResourceID:   bookID,
		BeforeJSON:   `{"title":` + strconv.Quote(before.Title) + `,"price":` + itoa(before.Price) + `}`,
		AfterJSON:    `{"title":` + strconv.Quote(in.Title) + `,"price":` + itoa(in.Price) + `}`,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func (u *AdminBookUsecase) DeleteBook(ctx context.Context, actorAdminUserID int64, bookID int64) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if bookID <= 0 {
		return NewValidationError("invalid id")
	}

	before, err := u.bookRepo.FindByID(ctx, bookID)
	if err == repo.ErrNotFound {
		return NewNotFoundError("not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//物理削除はしない。注文明細がスナップショットで参照し続けるため。
	if err := u.bookRepo.SoftDelete(ctx, bookID); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError("not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionDeleteBook,
		ResourceType: model.AuditResourceBook,
		ResourceID:   bookID,
		BeforeJSON:   `{"title":` + strconv.Quote(before.Title) + `}`,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

type AdminSetStockInput struct {
	NewStock int64
	Reason   string
}

func (u *AdminBookUsecase) SetStock(ctx context.Context, actorAdminUserID int64, bookID int64, in AdminSetStockInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if bookID <= 0 {
		return NewValidationError("invalid id")
	}
	if in.NewStock < 0 {
		return NewValidationError("invalid stock")
	}
	if in.Reason == "" {
		return NewValidationError("reason is required")
	}

	b, err := u.bookRepo.FindByID(ctx, bookID)
	if err == repo.ErrNotFound {
		return NewNotFoundError("not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.invRepo.SetStock(ctx, bookID, in.NewStock); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError("not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.invRepo.CreateAdjustment(ctx, model.InventoryAdjustment{
		BookID:      bookID,
		AdminUserID: actorAdminUserID,
		Delta:       in.NewStock - b.StockQuantity,
		Reason:      in.Reason,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeJSON := `{"stock":` + itoa(b.StockQuantity) + `}`
	afterJSON := `{"stock":` + itoa(in.NewStock) + `}`
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceBook,
		ResourceID:   bookID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
