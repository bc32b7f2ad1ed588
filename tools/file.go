package tools

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SendExcel 以附件形式返回工作簿
func SendExcel(c *gin.Context, f *excelize.File, displayName string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}
	escaped := url.QueryEscape(displayName)
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, escaped, escaped),
	)
	c.Data(http.StatusOK, ExcelContentType, buf.Bytes())
	return nil
}
