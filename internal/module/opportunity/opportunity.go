package opportunity

import (
	"campus-notifier/internal/global/paging"
	"campus-notifier/internal/global/response"
	"campus-notifier/internal/model"
	"campus-notifier/internal/store"

	"github.com/gin-gonic/gin"
)

const defaultLimit = 10

type CreateReq struct {
	Title        string             `json:"title" binding:"required"`
	Organization string             `json:"organization" binding:"required"`
	Category     model.Category     `json:"category" binding:"required,oneof=Bursary In-Service Jobs Heckathons"`
	Location     model.WorkLocation `json:"location" binding:"required,oneof=On-site Remote Hybrid N/A"`
	Commitment   string             `json:"commitment" binding:"required"`
	Duration     string             `json:"duration" binding:"required"`
	Description  string             `json:"description" binding:"required"`
	Skills       []string           `json:"skills"`
}

type UpdateReq struct {
	Title        *string             `json:"title" binding:"omitempty,min=1"`
	Organization *string             `json:"organization" binding:"omitempty,min=1"`
	Category     *model.Category     `json:"category" binding:"omitempty,oneof=Bursary In-Service Jobs Heckathons"`
	Location     *model.WorkLocation `json:"location" binding:"omitempty,oneof=On-site Remote Hybrid N/A"`
	Commitment   *string             `json:"commitment" binding:"omitempty,min=1"`
	Duration     *string             `json:"duration" binding:"omitempty,min=1"`
	Description  *string             `json:"description" binding:"omitempty,min=1"`
	Skills       *[]string           `json:"skills"`
}

// ListReq 分类与工作地点均为精确匹配，留空不过滤
type ListReq struct {
	Category model.Category     `form:"category" binding:"omitempty,oneof=Bursary In-Service Jobs Heckathons"`
	Location model.WorkLocation `form:"location" binding:"omitempty,oneof=On-site Remote Hybrid N/A"`
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID.WithOrigin(err))
		return 0, false
	}
	return id, true
}

// Create 先持久化并响应，再在后台通知所有用户
func (m *ModuleOpportunity) Create(c *gin.Context) {
	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.FromBinding(err))
		return
	}

	opp := &model.Opportunity{
		Title:        req.Title,
		Organization: req.Organization,
		Category:     req.Category,
		Location:     req.Location,
		Commitment:   req.Commitment,
		Duration:     req.Duration,
		Description:  req.Description,
		Skills:       req.Skills,
	}
	if err := m.Store.CreateOpportunity(c.Request.Context(), opp); err != nil {
		log.Error("创建机会失败", "error", err)
		response.Fail(c, response.FromStore(err))
		return
	}

	log.Info("机会已创建", "opportunity_id", opp.ID, "category", opp.Category)
	response.Created(c, opp)
	m.Notifier.NotifyOpportunity(*opp)
}

// List 按创建时间倒序分页，total 为过滤后的数量
func (m *ModuleOpportunity) List(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.FromBinding(err))
		return
	}
	p := paging.Parse(c, defaultLimit)
	filter := store.OpportunityFilter{Category: req.Category, Location: req.Location}

	list, total, err := m.Store.ListOpportunities(c.Request.Context(), filter, p)
	if err != nil {
		log.Error("查询机会列表失败", "error", err)
		response.Fail(c, response.FromStore(err))
		return
	}
	response.Success(c, paging.NewResult(p, total, list))
}

func (m *ModuleOpportunity) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	opp, err := m.Store.GetOpportunity(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}
	response.Success(c, opp)
}

func (m *ModuleOpportunity) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.FromBinding(err))
		return
	}

	ctx := c.Request.Context()
	opp, err := m.Store.GetOpportunity(ctx, id)
	if err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}
	if req.Title != nil {
		opp.Title = *req.Title
	}
	if req.Organization != nil {
		opp.Organization = *req.Organization
	}
	if req.Category != nil {
		opp.Category = *req.Category
	}
	if req.Location != nil {
		opp.Location = *req.Location
	}
	if req.Commitment != nil {
		opp.Commitment = *req.Commitment
	}
	if req.Duration != nil {
		opp.Duration = *req.Duration
	}
	if req.Description != nil {
		opp.Description = *req.Description
	}
	if req.Skills != nil {
		opp.Skills = *req.Skills
	}

	if err := m.Store.UpdateOpportunity(ctx, opp); err != nil {
		log.Error("更新机会失败", "error", err, "opportunity_id", id)
		response.Fail(c, response.FromStore(err))
		return
	}
	response.Success(c, opp)
}

func (m *ModuleOpportunity) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := m.Store.DeleteOpportunity(c.Request.Context(), id); err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}
	log.Info("机会已删除", "opportunity_id", id)
	response.Success(c)
}
