// Package mail 负责单封邮件的投递，批量分发见 notify 包
package mail

import (
	"context"
	"errors"
	"fmt"

	"campus-notifier/config"
)

// ErrMissingCredentials 未配置发信凭据，在每次发送时返回而不是启动时
var ErrMissingCredentials = errors.New("missing email credentials")

// Message 一封待发送的邮件，Text 与 HTML 为同一内容的两种形式
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Transport 发送单封邮件，失败原样返回给调用方
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// Sender 发件人
type Sender struct {
	Name    string
	Address string
}

// New 按配置的驱动构造 Transport
func New(cfg config.Mail) (Transport, error) {
	from := Sender{Name: cfg.FromName, Address: cfg.Username}
	switch cfg.Driver {
	case config.MailDriverSMTP, "":
		return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password, from), nil
	case config.MailDriverHTTP:
		return NewHTTP(cfg.APIURL, cfg.APIKey, from), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}
