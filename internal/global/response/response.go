package response

import (
	"errors"
	"fmt"
	"net/http"

	"campus-notifier/config"
	"campus-notifier/internal/global/logger"
	"campus-notifier/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

const successCode int32 = 200

// ResponseBody 所有接口统一的响应体
type ResponseBody struct {
	Code   int32    `json:"code"`
	Msg    string   `json:"msg"`
	Data   any      `json:"data,omitempty"`
	Origin string   `json:"origin,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

func write(c *gin.Context, status int, data []any) {
	body := ResponseBody{Code: successCode, Msg: "success"}
	switch len(data) {
	case 0:
	case 1:
		body.Data = data[0]
	default:
		body.Data = data
	}
	c.JSON(status, body)
}

// Success 200 响应，data 可省略
func Success(c *gin.Context, data ...any) {
	write(c, http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data ...any) {
	write(c, http.StatusCreated, data)
}

// Fail 输出错误响应并终止后续处理；非 *Error 按服务器内部错误处理，5xx 不返回任何内部细节
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}
	status := e.Status()
	body := ResponseBody{Code: e.Code, Msg: e.Message, Fields: e.Fields}

	if status >= http.StatusInternalServerError {
		logger.New("Response").Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", e.Code,
			"error", e.Origin,
		)
		sentry.CaptureException(c, e)
	} else if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}

	c.Set(ErrorContextKey, e)
	c.AbortWithStatusJSON(status, body)
}

// Recovery 作为 defer 调用，把 panic 转为 50000 响应
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", r)
		}
		Fail(c, ErrServerInternal.WithOrigin(err))
	}
}
