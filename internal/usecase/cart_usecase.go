package usecase

import (
	"context"
	"net/http"

	repo "readnwin/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// カートは注文と違ってスナップショットを持たない。価格は常にカタログの現在値。
type CartUsecase struct {
	cartRepo repo.CartRepository
	bookRepo repo.BookRepository
}

func NewCartUsecase(cartRepo repo.CartRepository, bookRepo repo.BookRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

type CartItemResponse struct {
	ID       int64  `json:"id"`
	BookID   int64  `json:"book_id"`
	Title    string `json:"title"`
	Format   string `json:"format"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}

type AddCartInput struct {
	BookID   int64
	Quantity int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（空なら空のまま返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return u.buildCartResponse(ctx, userID)
}

// AddToCart はカートに追加（同一の本は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.BookID <= 0 {
		return CartResponse{}, NewValidationError("invalid book_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewValidationError("invalid quantity")
	}

	// 本のチェック（公開のみ）
	b, err := u.bookRepo.FindByID(ctx, in.BookID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewValidationError("invalid book")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !b.IsPublished {
		return CartResponse{}, NewValidationError("invalid book")
	}

	// 既存数量を調べて在庫超過を先に弾く
	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var existingQty int64 = 0
	for _, it := range items {
		if it.BookID == in.BookID {
			existingQty = it.Quantity
			break
		}
	}

	newQty := existingQty + in.Quantity
	if b.Format.IsPhysical() && b.InventoryEnabled && newQty > b.StockQuantity {
		return CartResponse{}, NewValidationError("stock exceeded")
	}

	// Upsert（同一の本は加算）
	if err := u.cartRepo.UpsertByUserAndBook(ctx, userID, in.BookID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// 数量変更（所有チェック＋在庫チェック）。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewValidationError("invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewValidationError("invalid quantity")
	}

	owned, err := u.cartRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewNotFoundError("not found")
	}

	item, err := u.cartRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewNotFoundError("not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//本の在庫チェック
	b, err := u.bookRepo.FindByID(ctx, item.BookID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewValidationError("invalid book")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !b.IsPublished {
		return CartResponse{}, NewValidationError("invalid book")
	}
	if b.Format.IsPhysical() && b.InventoryEnabled && in.Quantity > b.StockQuantity {
		return CartResponse{}, NewValidationError("stock exceeded")
	}

	if err := u.cartRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewNotFoundError("not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewValidationError("invalid id")
	}

	owned, err := u.cartRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewNotFoundError("not found")
	}

	if err := u.cartRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewNotFoundError("not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// ユーザーの明細をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		b, err := u.bookRepo.FindByID(ctx, it.BookID)
		if err != nil {
			continue
		}
		if !b.IsPublished {
			continue
		}

		respItems = append(respItems, CartItemResponse{
			ID:       it.ID,
			BookID:   it.BookID,
			Title:    b.Title,
			Format:   string(b.Format),
			Price:    b.Price,
			Quantity: it.Quantity,
		})

		total += b.Price * it.Quantity
	}

	return CartResponse{Items: respItems, Total: total}, nil
}
