package test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"campus-notifier/internal/global/mail"
	"campus-notifier/internal/notify"
)

// Mailbox 记录所有发出的邮件，Fail 中的收件人发送失败
type Mailbox struct {
	mu   sync.Mutex
	sent []mail.Message
	Fail map[string]error
}

func (m *Mailbox) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.Fail[msg.To]
}

func (m *Mailbox) Sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.sent...)
}

// Recipients 按发送顺序返回收件人
func (m *Mailbox) Recipients() []string {
	var to []string
	for _, msg := range m.Sent() {
		to = append(to, msg.To)
	}
	return to
}

// Notifier 构造写入 Mailbox 的通知器，日志丢弃
func Notifier(roster notify.Roster, box *Mailbox) *notify.Notifier {
	return notify.New(roster, box, notify.Options{
		Concurrency: 4,
		SendTimeout: time.Second,
		AppName:     "WSU Event Notifier",
		FrontendURL: "http://localhost:5173",
		Location:    time.UTC,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}
