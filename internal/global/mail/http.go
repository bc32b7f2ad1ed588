package mail

import (
	"context"
	"fmt"
	"time"

	"campus-notifier/internal/global/httpclient"

	"github.com/go-resty/resty/v2"
)

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// apiRequest 通用的事务邮件 API 请求体
type apiRequest struct {
	From    address   `json:"from"`
	To      []address `json:"to"`
	Subject string    `json:"subject"`
	Text    string    `json:"text"`
	HTML    string    `json:"html,omitempty"`
}

// HTTP 通过事务邮件服务的 HTTP API 发信
type HTTP struct {
	url    string
	apiKey string
	from   Sender
	client *resty.Client
}

func NewHTTP(url, apiKey string, from Sender) *HTTP {
	return &HTTP{
		url:    url,
		apiKey: apiKey,
		from:   from,
		client: httpclient.New(30 * time.Second),
	}
}

func (h *HTTP) Send(ctx context.Context, msg Message) error {
	if h.url == "" || h.apiKey == "" {
		return ErrMissingCredentials
	}
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.apiKey).
		SetBody(apiRequest{
			From:    address{Email: h.from.Address, Name: h.from.Name},
			To:      []address{{Email: msg.To}},
			Subject: msg.Subject,
			Text:    msg.Text,
			HTML:    msg.HTML,
		}).
		Post(h.url)
	if err != nil {
		return fmt.Errorf("mail api send to %s: %w", msg.To, err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail api send to %s: status %d: %s", msg.To, resp.StatusCode(), resp.String())
	}
	return nil
}
