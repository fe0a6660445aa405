package handler

import (
	"net/http"
	"strconv"

	"readnwin/internal/config"
	"readnwin/internal/middleware"
	"readnwin/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminBookHandler struct {
	uc *usecase.AdminBookUsecase
}

func NewAdminBookHandler(uc *usecase.AdminBookUsecase) *AdminBookHandler {
	return &AdminBookHandler{uc: uc}
}

type StockUpdateRequest struct {
	NewStock int64  `json:"new_stock"`
	Reason   string `json:"reason"`
}

type BookUpsertRequest struct {
	Title            string `json:"title" validate:"required"`
	Author           string `json:"author" validate:"required"`
	Description      string `json:"description"`
	Price            int64  `json:"price"`
	Format           string `json:"format" validate:"required"`
	InventoryEnabled bool   `json:"inventory_enabled"`
	IsPublished      bool   `json:"is_published"`
}

func (h *AdminBookHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/books", h.createBook)
	admin.PUT("/books/:id", h.updateBook)
	admin.DELETE("/books/:id", h.deleteBook)
	admin.PUT("/books/:id/stock", h.updateStock)
}

func (h *AdminBookHandler) createBook(c echo.Context) error {
	var req BookUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.CreateBook(c.Request().Context(), adminID, toAdminBookInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminBookHandler) updateBook(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req BookUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.UpdateBook(c.Request().Context(), adminID, bookID, toAdminBookInput(req)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminBookHandler) deleteBook(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DeleteBook(c.Request().Context(), adminID, bookID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func toAdminBookInput(req BookUpsertRequest) usecase.AdminBookInput {
	return usecase.AdminBookInput{
		Title:            req.Title,
		Author:           req.Author,
		Description:      req.Description,
		Price:            req.Price,
		Format:           req.Format,
		InventoryEnabled: req.InventoryEnabled,
		IsPublished:      req.IsPublished,
	}
}

func (h *AdminBookHandler) updateStock(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req StockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.SetStock(
		c.Request().Context(),
		adminID,
		bookID,
		usecase.AdminSetStockInput{NewStock: req.NewStock, Reason: req.Reason},
	); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
