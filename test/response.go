package test

import (
	"encoding/json"
	"testing"

	"campus-notifier/internal/global/response"

	"github.com/stretchr/testify/require"
)

// ResponseBody 与 response.ResponseBody 相同，Data 保留原始 JSON 以便按需解码
type ResponseBody struct {
	Code   int32           `json:"code"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
	Fields []string        `json:"fields"`
}

func ErrorEqual(t *testing.T, expected *response.Error, resp ResponseBody) {
	t.Helper()
	require.Equal(t, expected.Code, resp.Code, resp.Msg)
	require.Equal(t, expected.Message, resp.Msg)
}

func NoError(t *testing.T, resp ResponseBody) {
	t.Helper()
	require.Equal(t, int32(200), resp.Code, resp.Msg)
}

// Data 把响应中的 data 解码为 T
func Data[T any](t *testing.T, resp ResponseBody) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v))
	return v
}
