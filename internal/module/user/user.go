package user

import (
	"errors"

	"campus-notifier/internal/global/jwt"
	"campus-notifier/internal/global/logger"
	"campus-notifier/internal/global/response"
	"campus-notifier/internal/model"
	"campus-notifier/internal/store"
	"campus-notifier/tools"

	"github.com/gin-gonic/gin"
)

// UpdateReq 只更新显式提供的字段
type UpdateReq struct {
	Name     *string     `json:"name" binding:"omitempty,min=1"`
	LastName *string     `json:"lastName" binding:"omitempty,min=1"`
	Email    *Email      `json:"email" binding:"omitempty,email"`
	Password *string     `json:"password" binding:"omitempty,min=8"`
	Role     *model.Role `json:"role" binding:"omitempty,oneof=user admin"`
}

// target 解析路径中的用户 ID，并要求请求者是本人或管理员
func target(c *gin.Context) (uint, *jwt.Claims, bool) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID.WithOrigin(err))
		return 0, nil, false
	}
	claims, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrTokenInvalid)
		return 0, nil, false
	}
	if claims.ID != id && !claims.IsAdmin() {
		logger.WithContext(log, c).Warn("越权访问用户", "user_id", claims.ID, "target_id", id)
		response.Fail(c, response.ErrUnauthorized)
		return 0, nil, false
	}
	return id, claims, true
}

func (u *ModuleUser) List(c *gin.Context) {
	users, err := u.Store.ListUsers(c.Request.Context())
	if err != nil {
		log.Error("查询用户列表失败", "error", err)
		response.Fail(c, response.FromStore(err))
		return
	}
	if users == nil {
		users = []model.User{}
	}
	response.Success(c, users)
}

func (u *ModuleUser) Get(c *gin.Context) {
	id, _, ok := target(c)
	if !ok {
		return
	}
	user, err := u.Store.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}
	response.Success(c, user)
}

func (u *ModuleUser) Update(c *gin.Context) {
	id, claims, ok := target(c)
	if !ok {
		return
	}
	var req UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.FromBinding(err))
		return
	}
	if req.Role != nil && !claims.IsAdmin() {
		response.Fail(c, response.ErrUnauthorized.WithTips("only admins can change roles"))
		return
	}

	ctx := c.Request.Context()
	user, err := u.Store.GetUser(ctx, id)
	if err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}

	if req.Email != nil {
		email := string(*req.Email)
		if email != user.Email {
			other, err := u.Store.GetUserByEmail(ctx, email)
			switch {
			case err == nil && other.ID != user.ID:
				response.Fail(c, response.ErrEmailInUse)
				return
			case err != nil && !errors.Is(err, store.ErrNotFound):
				log.Error("查询邮箱失败", "error", err, "email", email)
				response.Fail(c, response.ErrDatabase.WithOrigin(err))
				return
			}
		}
		user.Email = email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := tools.PasswordEncrypt(*req.Password)
		if err != nil {
			response.Fail(c, response.ErrServerInternal.WithOrigin(err))
			return
		}
		user.Password = hash
	}

	if err := u.Store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			response.Fail(c, response.ErrEmailInUse.WithOrigin(err))
			return
		}
		log.Error("更新用户失败", "error", err, "user_id", id)
		response.Fail(c, response.FromStore(err))
		return
	}

	log.Info("用户信息已更新", "user_id", id, "operator", claims.ID)
	response.Success(c, user)
}

func (u *ModuleUser) Delete(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID.WithOrigin(err))
		return
	}
	if err := u.Store.DeleteUser(c.Request.Context(), id); err != nil {
		response.Fail(c, response.FromStore(err))
		return
	}
	log.Info("用户已删除", "user_id", id)
	response.Success(c)
}
