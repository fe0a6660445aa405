package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"readnwin/internal/config"
	"readnwin/internal/usecase"
)

// PaymentWebhookHandler はゲートウェイからの非同期通知の受け口。
type PaymentWebhookHandler struct {
	uc          *usecase.PaymentWebhookUsecase
	webhookHash string
}

func NewPaymentWebhookHandler(uc *usecase.PaymentWebhookUsecase, cfg config.Config) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{uc: uc, webhookHash: cfg.FlutterwaveWebhookHash}
}

func (h *PaymentWebhookHandler) RegisterRoutes(e *echo.Echo) {
	//認証はverif-hashヘッダで行うのでJWTは通さない
	e.POST("/payments/webhook/flutterwave", h.handleFlutterwave)
}

type flutterwaveWebhookRequest struct {
	Event string `json:"event"`
	Data  struct {
		TxRef  string `json:"tx_ref"`
		Status string `json:"status"`
	} `json:"data"`
}

func (h *PaymentWebhookHandler) handleFlutterwave(c echo.Context) error {
	if h.webhookHash != "" {
		got := c.Request().Header.Get("verif-hash")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookHash)) != 1 {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "bad signature"})
		}
	}

	var req flutterwaveWebhookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.uc.HandleGatewayEvent(c.Request().Context(), usecase.GatewayEventInput{
		TransactionRef: req.Data.TxRef,
		Status:         req.Data.Status,
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
