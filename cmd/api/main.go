package main

import (
	"os"

	"readnwin/internal/config"
	"readnwin/internal/domain/model"
	"readnwin/internal/handler"
	"readnwin/internal/infra/db"
	infraRepo "readnwin/internal/infra/repository"
	"readnwin/internal/notification"
	"readnwin/internal/payment"
	"readnwin/internal/server"
	"readnwin/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	//.envが無ければ環境変数だけで動く
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Book{},
		&model.CartItem{},
		&model.ShippingMethod{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	//Repository（GORM実装）生成
	bookRepo := infraRepo.NewBookGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	shippingRepo := infraRepo.NewShippingMethodGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	invRepo := infraRepo.NewInventoryGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//決済
	flwClient := payment.NewFlutterwaveClient(
		cfg.FlutterwaveSecretKey,
		cfg.FlutterwaveBaseURL,
		cfg.PaymentCallbackURL,
		log,
	)
	initiator := payment.NewMethodDispatcher(
		payment.NewFlutterwaveInitiator(flwClient, cfg.Currency),
		payment.NewBankTransferInitiator(payment.BankAccount{
			BankName:      cfg.BankName,
			AccountName:   cfg.BankAccountName,
			AccountNumber: cfg.BankAccountNumber,
		}, cfg.Currency),
	)

	//注文確認メール（非同期・ベストエフォート）
	mailer := notification.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	dispatcher := notification.NewDispatcher(mailer, log, 64)
	defer dispatcher.Close()

	//Usecase生成
	ledger := usecase.NewOrderLedger()
	bookUC := usecase.NewBookUsecase(bookRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, bookRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, cartRepo, userRepo, shippingRepo, ledger, initiator, dispatcher, log)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	adminBookUC := usecase.NewAdminBookUsecase(bookRepo, invRepo, auditRepo)
	webhookUC := usecase.NewPaymentWebhookUsecase(txManager, log)

	//Handler生成
	e := server.New(cfg, server.Handlers{
		Book:       handler.NewBookHandler(bookUC),
		Cart:       handler.NewCartHandler(cartUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		AdminBook:  handler.NewAdminBookHandler(adminBookUC),
		Webhook:    handler.NewPaymentWebhookHandler(webhookUC, cfg),
	})

	log.Info().Str("port", cfg.Port).Str("env", cfg.GoEnv).Msg("starting api server")
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
