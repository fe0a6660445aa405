package notification

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type mailerStub struct {
	mu   sync.Mutex
	sent []OrderConfirmation
	err  error
}

func (m *mailerStub) SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func TestDispatcher_DeliversQueuedMail(t *testing.T) {
	mailer := &mailerStub{}
	d := NewDispatcher(mailer, testLogger(), 8)

	d.Enqueue(OrderConfirmation{To: "ada@example.com", OrderNumber: "RW-20250101-ABCD1234"})
	d.Enqueue(OrderConfirmation{To: "ada@example.com", OrderNumber: "RW-20250101-EFGH5678"})
	d.Close()

	assert.Len(t, mailer.sent, 2)
	assert.Equal(t, "RW-20250101-ABCD1234", mailer.sent[0].OrderNumber)
}

// 送信失敗してもEnqueue側には何も返らない（ログに残るだけ）
func TestDispatcher_SwallowsSendFailures(t *testing.T) {
	mailer := &mailerStub{err: errors.New("smtp down")}
	d := NewDispatcher(mailer, testLogger(), 8)

	d.Enqueue(OrderConfirmation{To: "ada@example.com", OrderNumber: "RW-20250101-ABCD1234"})
	d.Close()

	assert.Len(t, mailer.sent, 1)
}

// キューが満杯ならブロックせずに捨てる
func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	mailer := &blockingMailer{started: make(chan struct{}), release: block}
	d := NewDispatcher(mailer, testLogger(), 1)

	//1通目がワーカーを塞ぎ、2通目がバッファを埋める
	d.Enqueue(OrderConfirmation{OrderNumber: "A"})
	<-mailer.started
	d.Enqueue(OrderConfirmation{OrderNumber: "B"})

	//ここでブロックしたらテストはタイムアウトで落ちる
	d.Enqueue(OrderConfirmation{OrderNumber: "C"})

	close(block)
	d.Close()
}

type blockingMailer struct {
	startOnce sync.Once
	started   chan struct{}
	release   chan struct{}
}

func (m *blockingMailer) SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error {
	m.startOnce.Do(func() { close(m.started) })
	<-m.release
	return nil
}
