package server

import (
	"readnwin/internal/config"
	"readnwin/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Book       *handler.BookHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	AdminBook  *handler.AdminBookHandler
	Webhook    *handler.PaymentWebhookHandler
}

// ルーティングまで組み立て済みのechoを返す
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	e.Use(echomw.Recover())

	registerRoutes(e, cfg, h)
	return e
}

func Start(e *echo.Echo, port string) error {
	return e.Start(":" + port)
}
