package user

import (
	"encoding/json"
	"log/slog"
	"strings"

	"campus-notifier/internal/global/logger"
	"campus-notifier/internal/notify"
	"campus-notifier/internal/store"
)

var log *slog.Logger

type ModuleUser struct {
	Store    store.Users
	Notifier *notify.Notifier
	// AdminEmails 使用这些邮箱注册的账号直接获得管理员角色
	AdminEmails []string

	admins map[string]struct{}
}

func (u *ModuleUser) GetName() string {
	return "User"
}

func (u *ModuleUser) Init() {
	log = logger.New("User")
	u.admins = make(map[string]struct{}, len(u.AdminEmails))
	for _, email := range u.AdminEmails {
		u.admins[normalizeEmail(email)] = struct{}{}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Email 解码时即规范化，binding 的 email 规则校验的是去空白、转小写之后的值
type Email string

func (e *Email) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*e = Email(normalizeEmail(s))
	return nil
}
