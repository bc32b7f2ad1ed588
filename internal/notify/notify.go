// Package notify 把新发布的活动与机会以邮件形式分发给所有用户。
//
// 分发是尽力而为且不阻塞调用方的：内容在调用时渲染一次，随后在后台按
// 并发上限逐个收件人发送，每封邮件有独立超时，单个失败只记录日志。
package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"campus-notifier/internal/global/mail"
	"campus-notifier/internal/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 8
	DefaultSendTimeout = 30 * time.Second
)

// Roster 每次分发前重新拉取的收件人列表
type Roster interface {
	ListUserEmails(ctx context.Context) ([]string, error)
}

type Options struct {
	Concurrency int
	SendTimeout time.Duration
	AppName     string
	FrontendURL string
	Location    *time.Location
	Now         func() time.Time
	Logger      *slog.Logger
}

func (o *Options) defaults() {
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.SendTimeout <= 0 {
		o.SendTimeout = DefaultSendTimeout
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Notifier 进程级单例，启动时构造，关闭时 Shutdown
type Notifier struct {
	roster    Roster
	transport mail.Transport
	opts      Options
	tmpl      templates
	log       *slog.Logger
	tracer    trace.Tracer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

func New(roster Roster, transport mail.Transport, opts Options) *Notifier {
	opts.defaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Notifier{
		roster:    roster,
		transport: transport,
		opts:      opts,
		tmpl:      parseTemplates(),
		log:       opts.Logger,
		tracer:    otel.Tracer("campus-notifier/notify"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// NotifyAllUsers 在后台把 c 发给收件人列表中的每个地址，立即返回
func (n *Notifier) NotifyAllUsers(c Content) {
	n.dispatch(c, func(ctx context.Context) ([]string, error) {
		return n.roster.ListUserEmails(ctx)
	})
}

// NotifyEvent 新活动通知，渲染失败只记录日志
func (n *Notifier) NotifyEvent(e model.Event) {
	c, err := n.EventContent(e)
	if err != nil {
		n.log.Error("render event notification failed", "event_id", e.ID, "error", err)
		return
	}
	n.NotifyAllUsers(c)
}

func (n *Notifier) NotifyOpportunity(o model.Opportunity) {
	c, err := n.OpportunityContent(o)
	if err != nil {
		n.log.Error("render opportunity notification failed", "opportunity_id", o.ID, "error", err)
		return
	}
	n.NotifyAllUsers(c)
}

// SendWelcome 注册欢迎信，只发给新用户本人
func (n *Notifier) SendWelcome(u model.User) {
	c, err := n.WelcomeContent(u)
	if err != nil {
		n.log.Error("render welcome email failed", "user_id", u.ID, "error", err)
		return
	}
	n.dispatch(c, func(context.Context) ([]string, error) {
		return []string{u.Email}, nil
	})
}

func (n *Notifier) dispatch(c Content, recipients func(context.Context) ([]string, error)) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		n.log.Warn("notifier is shut down, dropping notification", "kind", c.Kind, "subject", c.Subject)
		return
	}
	n.wg.Add(1)
	n.mu.Unlock()
	go func() {
		defer n.wg.Done()
		n.broadcast(c, recipients)
	}()
}

func (n *Notifier) broadcast(c Content, recipients func(context.Context) ([]string, error)) {
	ctx, span := n.tracer.Start(n.ctx, "notify.broadcast",
		trace.WithAttributes(attribute.String("notify.kind", string(c.Kind))))
	defer span.End()

	to, err := recipients(ctx)
	if err != nil {
		n.log.Error("load notification recipients failed", "kind", c.Kind, "error", err)
		span.RecordError(err)
		return
	}
	if len(to) == 0 {
		n.log.Warn("no user emails found, skipping notification", "kind", c.Kind)
		return
	}
	span.SetAttributes(attribute.Int("notify.recipients", len(to)))

	var sent, failed, dropped atomic.Int64
	var g errgroup.Group
	g.SetLimit(n.opts.Concurrency)
	for _, addr := range to {
		addr := addr // per-iteration copy; module targets go 1.21 loop semantics
		g.Go(func() error {
			if ctx.Err() != nil {
				dropped.Add(1)
				return nil
			}
			sendCtx, cancel := context.WithTimeout(ctx, n.opts.SendTimeout)
			defer cancel()
			err := n.transport.Send(sendCtx, mail.Message{
				To:      addr,
				Subject: c.Subject,
				Text:    c.Text,
				HTML:    c.HTML,
			})
			if err != nil {
				failed.Add(1)
				n.log.Error("email send failed", "kind", c.Kind, "recipient", addr, "error", err)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	span.SetAttributes(
		attribute.Int64("notify.sent", sent.Load()),
		attribute.Int64("notify.failed", failed.Load()),
	)
	n.log.Info("notification dispatched",
		"kind", c.Kind,
		"recipients", len(to),
		"sent", sent.Load(),
		"failed", failed.Load(),
		"dropped", dropped.Load(),
	)
}

// Wait 阻塞到当前所有分发结束
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// Shutdown 停止接收新的分发并等待进行中的分发；ctx 到期后取消剩余发送
func (n *Notifier) Shutdown(ctx context.Context) error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		n.cancel()
		return nil
	case <-ctx.Done():
		n.cancel()
		return ctx.Err()
	}
}
