package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"readnwin/internal/domain/model"
	repo "readnwin/internal/repository"

	"github.com/rs/zerolog"
)

const (
	//シークレットはこのプレフィックスで始まっていないと不正とみなす
	flwSecretKeyPrefix = "FLWSECK"

	//ハングしたゲートウェイにチェックアウトを道連れにさせない
	gatewayTimeout = 30 * time.Second
)

// FlutterwaveClient はホスト型決済ページの初期化APIを叩く薄いクライアント。
type FlutterwaveClient struct {
	secretKey   string
	baseURL     string
	redirectURL string
	httpClient  *http.Client
	log         zerolog.Logger
}

func NewFlutterwaveClient(secretKey, baseURL, redirectURL string, log zerolog.Logger) *FlutterwaveClient {
	return &FlutterwaveClient{
		secretKey:   secretKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		redirectURL: redirectURL,
		httpClient:  &http.Client{Timeout: gatewayTimeout},
		log:         log,
	}
}

type flwCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type flwPaymentRequest struct {
	TxRef       string         `json:"tx_ref"`
	Amount      string         `json:"amount"`
	Currency    string         `json:"currency"`
	RedirectURL string         `json:"redirect_url"`
	Customer    flwCustomer    `json:"customer"`
	//非同期コールバックが注文へ辿り着くための相関ID
	Meta map[string]int64 `json:"meta"`
}

type flwPaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

type InitializePaymentInput struct {
	TxRef         string
	Amount        int64
	Currency      string
	CustomerEmail string
	CustomerName  string
	OrderID       int64
	UserID        int64
	PaymentID     int64
}

// InitializePayment は決済を初期化してホスト型決済ページのURLを返す。
// 200以外・success以外・疎通失敗はすべてErrGateway（ベストエフォートではない）。
func (c *FlutterwaveClient) InitializePayment(ctx context.Context, in InitializePaymentInput) (string, error) {
	if c.secretKey == "" {
		return "", fmt.Errorf("%w: secret key is empty", ErrConfig)
	}
	if !strings.HasPrefix(c.secretKey, flwSecretKeyPrefix) {
		return "", fmt.Errorf("%w: secret key has unexpected prefix", ErrConfig)
	}

	reqBody := flwPaymentRequest{
		TxRef:       in.TxRef,
		Amount:      formatAmount(in.Amount),
		Currency:    in.Currency,
		RedirectURL: c.redirectURL,
		Customer: flwCustomer{
			Email: in.CustomerEmail,
			Name:  in.CustomerName,
		},
		Meta: map[string]int64{
			"order_id":   in.OrderID,
			"user_id":    in.UserID,
			"payment_id": in.PaymentID,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("tx_ref", in.TxRef).Msg("flutterwave request failed")
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error().Err(err).Str("tx_ref", in.TxRef).Msg("flutterwave response read failed")
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Error().
			Int("status_code", resp.StatusCode).
			Str("tx_ref", in.TxRef).
			Str("body", string(body)).
			Msg("flutterwave returned non-200")
		return "", fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}

	var out flwPaymentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		c.log.Error().Err(err).Str("tx_ref", in.TxRef).Msg("flutterwave response decode failed")
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	//200でも中身がfailureなら失敗扱い
	if out.Status != "success" || out.Data.Link == "" {
		c.log.Error().
			Str("gateway_status", out.Status).
			Str("gateway_message", out.Message).
			Str("tx_ref", in.TxRef).
			Msg("flutterwave initialization rejected")
		return "", fmt.Errorf("%w: %s", ErrGateway, out.Message)
	}

	return out.Data.Link, nil
}

// 最小通貨単位→主要通貨単位の文字列（kobo→naira）
func formatAmount(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

// FlutterwaveInitiator はpending状態のPaymentを1行作ってから初期化を呼ぶ。
// 初期化に失敗したらエラーで返り、Payment行ごとロールバックされる。
type FlutterwaveInitiator struct {
	client   *FlutterwaveClient
	currency string
}

func NewFlutterwaveInitiator(client *FlutterwaveClient, currency string) *FlutterwaveInitiator {
	return &FlutterwaveInitiator{client: client, currency: currency}
}

func (i *FlutterwaveInitiator) Initiate(ctx context.Context, r repo.TxRepos, in InitiateInput) (Result, error) {
	now := time.Now()
	p := model.Payment{
		OrderID:        in.Order.ID,
		UserID:         in.Order.UserID,
		Amount:         in.Order.TotalAmount,
		Currency:       i.currency,
		Method:         model.PaymentMethodFlutterwave,
		Status:         model.PaymentStatusPending,
		TransactionRef: newTransactionRef("RW", now),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	paymentID, err := r.Payments().Create(ctx, p)
	if err != nil {
		return Result{}, err
	}
	p.ID = paymentID

	var userID int64
	if in.Order.UserID != nil {
		userID = *in.Order.UserID
	}

	link, err := i.client.InitializePayment(ctx, InitializePaymentInput{
		TxRef:         p.TransactionRef,
		Amount:        p.Amount,
		Currency:      p.Currency,
		CustomerEmail: in.CustomerEmail,
		CustomerName:  in.CustomerName,
		OrderID:       in.Order.ID,
		UserID:        userID,
		PaymentID:     paymentID,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Payment: p, AuthorizationURL: link}, nil
}

// プレフィックス＋ナノ秒タイムスタンプで一意にする
func newTransactionRef(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, now.UnixNano())
}
