package event

import (
	"time"

	"campus-notifier/internal/global/paging"
	"campus-notifier/internal/global/response"
	"campus-notifier/internal/model"
	"campus-notifier/internal/store"

	"github.com/gin-gonic/gin"
)

const defaultLimit = 20

// CreateReq 支持 JSON 或 multipart 表单，表单时间使用 RFC3339
type CreateReq struct {
	Title       string    `json:"title" form:"title" binding:"required"`
	Description string    `json:"description" form:"description" binding:"required"`
	Location    string    `json:"location" form:"location" binding:"required"`
	OpeningDate time.Time `json:"openingDate" form:"openingDate" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	ClosingDate time.Time `json:"closingDate" form:"closingDate" time_format:"2006-01-02T15:04:05Z07:00" binding:"required,gtefield=OpeningDate"`
}

type UpdateReq struct {
	Title       *string    `json:"title" form:"title" binding:"omitempty,min=1"`
	Description *string    `json:"description" form:"description" binding:"omitempty,min=1"`
	Location    *string    `json:"location" form:"location" binding:"omitempty,min=1"`
	OpeningDate *time.Time `json:"openingDate" form:"openingDate" time_format:"2006-01-02T15:04:05Z07:00"`
	ClosingDate *time.Time `json:"closingDate" form:"closingDate" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Create 先持久化并响应，再在后台通知所有用户
func (m *ModuleEvent) Create(c *gin.Context) {
	var req CreateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, response.FromBinding(err))
		return
	}

	img, rerr := m.uploadImage(c)
	if rerr != nil {
		response.Fail(c, rerr)
		return
	}

	ctx := c.Request.Context()
	event := &model.Event{
		Title:       req.Title,
		Image:       img,
		Description: req.Description,
		Location:    req.Location,
		OpeningDate: req.OpeningDate,
		ClosingDate: req.ClosingDate,
	}
	if err := m.Store.CreateEvent(ctx, event); err != nil {
		log.Error("创建活动失败", "error", err)
		m.dropImage(ctx, img)
		response.Fail(c, response.FromStore(err))
		return
	}

	log.Info("活动已创建", "event_id", event.ID, "title", event.Title)
	response.Created(c, event)
	m.Notifier.NotifyEvent(*event)
}

// List 按开始时间升序分页
func (m *ModuleEvent) List(c *gin.Context) {
	p := paging.Parse(c, defaultLimit)
	events, total, err := m.Store.ListEvents(c.Request.Context(), p)
	if err != nil {
		log.Error("查询活动列表失败", "error", err)
		response.Fail(c, response.FromStore(err))
		return
	}
	response.Success(c, paging.NewResult(p, total, events))
}

func (m *ModuleEvent) Get(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID.WithOrigin(err))
		return
	}
	event, err := m.Store.GetEvent(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}
	response.Success(c, event)
}

// Update 部分更新，multipart 请求携带新图片时替换旧图片
func (m *ModuleEvent) Update(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID.WithOrigin(err))
		return
	}
	var req UpdateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, response.FromBinding(err))
		return
	}

	ctx := c.Request.Context()
	event, err := m.Store.GetEvent(ctx, id)
	if err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}

	img, rerr := m.uploadImage(c)
	if rerr != nil {
		response.Fail(c, rerr)
		return
	}
	old := event.Image
	if img != nil {
		event.Image = img
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.OpeningDate != nil {
		event.OpeningDate = *req.OpeningDate
	}
	if req.ClosingDate != nil {
		event.ClosingDate = *req.ClosingDate
	}

	if err := m.Store.UpdateEvent(ctx, event); err != nil {
		log.Error("更新活动失败", "error", err, "event_id", id)
		m.dropImage(ctx, img)
		response.Fail(c, response.FromStore(err))
		return
	}
	if img != nil {
		m.dropImage(ctx, old)
	}
	response.Success(c, event)
}

// Delete 删除记录后尽力删除封面图片
func (m *ModuleEvent) Delete(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID.WithOrigin(err))
		return
	}

	ctx := c.Request.Context()
	event, err := m.Store.GetEvent(ctx, id)
	if err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}
	if err := m.Store.DeleteEvent(ctx, id); err != nil {
		log.Error("删除活动失败", "error", err, "event_id", id)
		response.Fail(c, response.FromStore(err))
		return
	}
	m.dropImage(ctx, event.Image)

	log.Info("活动已删除", "event_id", id)
	response.Success(c)
}
