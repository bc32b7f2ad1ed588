package test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campus-notifier/internal/global/jwt"
	"campus-notifier/internal/global/middleware"
	"campus-notifier/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type module interface {
	Init()
	InitRouter(r *gin.RouterGroup)
}

// Engine 挂载模块路由到 /api 下，与线上的前缀一致
func Engine(m module) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m.Init()
	r := gin.New()
	r.Use(middleware.Recovery())
	m.InitRouter(r.Group("/api"))
	return r
}

// Token 签发测试令牌
func Token(t *testing.T, id uint, role model.Role) string {
	t.Helper()
	tok, err := jwt.CreateToken(jwt.Payload{ID: id, Name: "Test", Surname: "User", Role: role})
	require.NoError(t, err)
	return tok
}

// Request 描述一次测试请求，Body 为 nil 时不带请求体
type Request struct {
	Method string
	Path   string
	Token  string
	Body   any
}

func (req Request) build(t *testing.T) *http.Request {
	t.Helper()
	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(req.Method, req.Path, body)
	if req.Body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}
	return r
}

// Do 执行请求并解码统一响应体
func Do(t *testing.T, h http.Handler, req Request) (*httptest.ResponseRecorder, ResponseBody) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req.build(t))
	return w, decode(t, w)
}

// Multipart 以 multipart/form-data 提交表单字段与可选文件
func Multipart(t *testing.T, h http.Handler, path, token string, fields map[string]string, fileField, filename string, content []byte) (*httptest.ResponseRecorder, ResponseBody) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, path, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w, decode(t, w)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) (body ResponseBody) {
	t.Helper()
	// 文件下载等非 JSON 响应由调用方自行检查
	if ct := w.Header().Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return
}
