package paging

import (
	"strconv"

	"campus-notifier/internal/store"

	"github.com/gin-gonic/gin"
)

const MaxLimit = 100

// Result 分页列表的响应结构，Total 为过滤后的全量计数
type Result[T any] struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Data  []T   `json:"data"`
}

// Parse 读取 page 与 limit 查询参数，无法解析或非正数时回落到默认值
func Parse(c *gin.Context, defaultLimit int) store.Page {
	p := store.Page{
		Page:  positive(c.Query("page"), 1),
		Limit: positive(c.Query("limit"), defaultLimit),
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func positive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func NewResult[T any](p store.Page, total int64, data []T) Result[T] {
	if data == nil {
		data = []T{}
	}
	return Result[T]{Total: total, Page: p.Page, Limit: p.Limit, Data: data}
}
