package handler

import (
	"net/http"

	"readnwin/internal/config"
	"readnwin/internal/middleware"
	"readnwin/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
}

func NewCheckoutHandler(checkoutUC *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: checkoutUC}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/checkout", h.Checkout, middleware.AuthJWT(cfg))
	//配送方法の選択肢は未ログインでも見られる
	e.GET("/shipping-methods", h.ListShippingMethods)
}

func (h *CheckoutHandler) ListShippingMethods(c echo.Context) error {
	out, err := h.checkoutUC.ListShippingMethods(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type checkoutAddressRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type checkoutPaymentRequest struct {
	Method string `json:"method" validate:"required"`
}

type checkoutCartItemRequest struct {
	BookID   int64 `json:"book_id"`
	Quantity int64 `json:"quantity"`
}

type CheckoutRequest struct {
	ShippingAddress  checkoutAddressRequest `json:"shipping_address"`
	BillingAddress   checkoutAddressRequest `json:"billing_address"`
	Payment          checkoutPaymentRequest `json:"payment" validate:"required"`
	ShippingMethodID *int64                 `json:"shipping_method_id"`

	// 表示用。サーバ側はカートストアを読み直すのでここは信用しない。
	CartItems []checkoutCartItemRequest `json:"cart_items"`

	Notes string `json:"notes"`
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.checkoutUC.PlaceOrder(c.Request().Context(), userID, usecase.CheckoutInput{
		ShippingAddress:  toAddressInput(req.ShippingAddress),
		BillingAddress:   toAddressInput(req.BillingAddress),
		PaymentMethod:    req.Payment.Method,
		ShippingMethodID: req.ShippingMethodID,
		Notes:            req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func toAddressInput(a checkoutAddressRequest) usecase.AddressInput {
	return usecase.AddressInput{
		Name:    a.Name,
		Phone:   a.Phone,
		Line1:   a.Line1,
		Line2:   a.Line2,
		City:    a.City,
		State:   a.State,
		Country: a.Country,
	}
}
