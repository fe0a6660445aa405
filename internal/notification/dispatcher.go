package notification

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const sendTimeout = 15 * time.Second

// Dispatcher は注文確認メールをチェックアウトのトランザクションから切り離す。
// Enqueueは絶対にブロックしないし、送信失敗はログに残すだけ。
// 壊れたメール連携が支払い済みの注文を止めることは構造的にできない。
type Dispatcher struct {
	mailer Mailer
	log    zerolog.Logger

	queue chan OrderConfirmation

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(mailer Mailer, log zerolog.Logger, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}

	d := &Dispatcher{
		mailer: mailer,
		log:    log,
		queue:  make(chan OrderConfirmation, buffer),
		done:   make(chan struct{}),
	}

	go d.run()
	return d
}

// Enqueue は確認メールを送信キューへ積む。
// キューが詰まっていたら落としてログに残す（チェックアウトは待たせない）。
func (d *Dispatcher) Enqueue(m OrderConfirmation) {
	select {
	case d.queue <- m:
	default:
		d.log.Warn().
			Str("order_number", m.OrderNumber).
			Msg("notification queue full, confirmation email dropped")
	}
}

// Close はキューを閉じて、積まれている分を送り切ってから戻る。
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for m := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.mailer.SendOrderConfirmation(ctx, m)
		cancel()

		if err != nil {
			//失敗はログのみ。リトライもロールバックもしない。
			d.log.Error().
				Err(err).
				Str("order_number", m.OrderNumber).
				Str("to", m.To).
				Msg("order confirmation email failed")
			continue
		}

		d.log.Info().
			Str("order_number", m.OrderNumber).
			Msg("order confirmation email sent")
	}
}
