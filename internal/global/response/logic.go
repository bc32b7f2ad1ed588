package response

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ErrorContextKey 是用于在 gin.Context 中存储错误对象的键
const ErrorContextKey = "error"

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Error 业务错误：Code 的前三位即 HTTP 状态码，保留原始错误链与堆栈供 Sentry 提取
type Error struct {
	Code    int32    `json:"code"`
	Message string   `json:"msg"`
	Origin  string   `json:"origin,omitempty"`
	Fields  []string `json:"fields,omitempty"`

	cause error
	stack pkgerrors.StackTrace
}

func newError(code int32, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Message)
}

// Status 对应的 HTTP 状态码
func (e *Error) Status() int {
	return int(e.Code / 100)
}

// GetCode 实现 sentry.CodedError
func (e *Error) GetCode() int32 {
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.cause
}

// StackTrace 实现 pkg/errors 的 stackTracer，Sentry 据此提取堆栈
func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Is 错误码相同即视为同一种错误
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func (e *Error) clone() *Error {
	c := *e
	c.Fields = append([]string(nil), e.Fields...)
	return &c
}

// WithOrigin 附加原始错误，仅 debug 模式下的 4xx 会把它返回给前端
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}
	if _, ok := err.(stackTracer); !ok {
		err = pkgerrors.WithStack(err)
	}
	c := e.clone()
	c.Origin = fmt.Sprintf("%+v", err)
	c.cause = err
	c.stack = err.(stackTracer).StackTrace()
	return c
}

// WithTips 在消息后追加对前端可见的提示
func (e *Error) WithTips(details ...string) *Error {
	c := e.clone()
	if len(details) > 0 {
		c.Message = e.Message + ": " + strings.Join(details, "; ")
	}
	return c
}

// WithFields 附加未通过校验的字段列表
func (e *Error) WithFields(fields ...string) *Error {
	c := e.clone()
	c.Fields = append(c.Fields, fields...)
	return c
}
