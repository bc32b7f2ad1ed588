package registration

import (
	"errors"
	"fmt"
	"time"

	"campus-notifier/internal/global/jwt"
	"campus-notifier/internal/global/logger"
	"campus-notifier/internal/global/response"
	"campus-notifier/internal/model"
	"campus-notifier/internal/store"

	"github.com/gin-gonic/gin"
)

const lockTTL = 5 * time.Second

// ListReq eventId 为空时返回全部报名
type ListReq struct {
	EventID string `form:"eventId"`
}

func (r ListReq) eventID() (uint, error) {
	if r.EventID == "" {
		return 0, nil
	}
	return store.ParseID(r.EventID)
}

func lockKey(eventID, userID uint) string {
	return fmt.Sprintf("registration:%d:%d", eventID, userID)
}

// Register 为当前用户报名活动，同一用户对同一活动只能报名一次
func (m *ModuleRegistration) Register(c *gin.Context) {
	eventID, err := store.ParseID(c.Param("eventId"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID.WithOrigin(err))
		return
	}
	claims, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrTokenInvalid)
		return
	}

	ctx := c.Request.Context()
	if _, err := m.Store.GetEvent(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("event"))
			return
		}
		response.Fail(c, response.FromStore(err))
		return
	}

	unlock, acquired, err := m.Locker.Lock(ctx, lockKey(eventID, claims.ID), lockTTL)
	switch {
	case err != nil:
		// 锁不可用时退回唯一索引兜底
		log.Warn("获取报名锁失败", "error", err, "event_id", eventID, "user_id", claims.ID)
	case !acquired:
		response.Fail(c, response.ErrRegistrationBusy)
		return
	}
	defer unlock()

	exists, err := m.Store.RegistrationExists(ctx, eventID, claims.ID)
	if err != nil {
		log.Error("查询报名记录失败", "error", err, "event_id", eventID, "user_id", claims.ID)
		response.Fail(c, response.FromStore(err))
		return
	}
	if exists {
		response.Fail(c, response.ErrAlreadyRegistered)
		return
	}

	reg := &model.EventRegistration{
		EventID:          eventID,
		UserID:           claims.ID,
		RegistrationDate: time.Now(),
		UserDetails: model.UserDetails{
			Name:    claims.Name,
			Surname: claims.Surname,
		},
	}
	if err := m.Store.CreateRegistration(ctx, reg); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			response.Fail(c, response.ErrAlreadyRegistered.WithOrigin(err))
		case errors.Is(err, store.ErrNotFound):
			// 令牌对应的用户已被删除
			response.Fail(c, response.ErrNotFound.WithTips("user").WithOrigin(err))
		default:
			log.Error("创建报名记录失败", "error", err, "event_id", eventID, "user_id", claims.ID)
			response.Fail(c, response.FromStore(err))
		}
		return
	}

	log.Info("报名成功", "registration_id", reg.ID, "event_id", eventID, "user_id", claims.ID)
	response.Created(c, reg)
}

func (m *ModuleRegistration) List(c *gin.Context) {
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
	if list == nil {
		list = []model.EventRegistration{}
	}
	response.Success(c, list)
}

func (m *ModuleRegistration) Get(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID.WithOrigin(err))
		return
	}
	reg, err := m.Store.GetRegistration(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}
	response.Success(c, reg)
}

// Delete 仅报名者本人或管理员可以取消报名
func (m *ModuleRegistration) Delete(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID.WithOrigin(err))
		return
	}
	claims, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrTokenInvalid)
		return
	}

	ctx := c.Request.Context()
	reg, err := m.Store.GetRegistration(ctx, id)
	if err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}
	if reg.UserID != claims.ID && !claims.IsAdmin() {
		logger.WithContext(log, c).Warn("越权取消报名", "registration_id", id, "user_id", claims.ID, "owner_id", reg.UserID)
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	if err := m.Store.DeleteRegistration(ctx, id); err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}
	log.Info("报名已取消", "registration_id", id, "operator", claims.ID)
	response.Success(c)
}
