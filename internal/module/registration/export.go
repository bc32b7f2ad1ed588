package registration

import (
	"fmt"
	"time"

	"campus-notifier/internal/global/response"
	"campus-notifier/internal/model"
	"campus-notifier/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Registrations"

type exportRow struct {
	ID               uint      `excel:"Registration ID"`
	EventID          uint      `excel:"Event ID"`
	EventTitle       string    `excel:"Event"`
	Name             string    `excel:"Name"`
	Surname          string    `excel:"Surname"`
	Email            string    `excel:"Email"`
	RegistrationDate time.Time `excel:"Registered At"`
}

func toExportRows(list []model.EventRegistration) []exportRow {
	rows := make([]exportRow, 0, len(list))
	for _, r := range list {
		row := exportRow{
			ID:               r.ID,
			EventID:          r.EventID,
			Name:             r.UserDetails.Name,
			Surname:          r.UserDetails.Surname,
			RegistrationDate: r.RegistrationDate,
		}
		if r.Event != nil {
			row.EventTitle = r.Event.Title
		}
		if r.User != nil {
			row.Email = r.User.Email
		}
		rows = append(rows, row)
	}
	return rows
}

// Export 导出报名表，eventId 可选
func (m *ModuleRegistration) Export(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.FromBinding(err))
		return
	}
	eventID, err := req.eventID()
	if err != nil {
		response.Fail(c, response.ErrInvalidID.WithOrigin(err))
		return
	}

	list, err := m.Store.ListRegistrations(c.Request.Context(), eventID)
	if err != nil {
		log.Error("查询报名列表失败", "error", err, "event_id", eventID)
		response.Fail(c, response.FromStore(err))
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := tools.ExportToExcel(f, exportSheet, toExportRows(list)); err != nil {
		log.Error("生成报名表失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	// 默认的 Sheet1 为空，删除后只保留报名表
	_ = f.DeleteSheet("Sheet1")

	name := "registrations.xlsx"
	if eventID != 0 {
		name = fmt.Sprintf("registrations-event-%d.xlsx", eventID)
	}
	if err := tools.SendExcel(c, f, name); err != nil {
		log.Error("发送报名表失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
	}
}
