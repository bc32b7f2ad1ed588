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

type SignupReq struct {
	Name     string `json:"name" binding:"required"`
	LastName string `json:"lastName" binding:"required"`
	Email    Email  `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginReq struct {
	Email    Email  `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Session 注册与登录成功后返回给前端的身份信息
type Session struct {
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	LastName string     `json:"lastName"`
	Role     model.Role `json:"role"`
	Token    string     `json:"token"`
}

func newSession(user *model.User) (*Session, error) {
	token, err := jwt.CreateToken(jwt.Payload{
		ID:      user.ID,
		Name:    user.Name,
		Surname: user.LastName,
		Role:    user.Role,
	})
	if err != nil {
		return nil, err
	}
	return &Session{
		Email:    user.Email,
		Name:     user.Name,
		LastName: user.LastName,
		Role:     user.Role,
		Token:    token,
	}, nil
}

// Signup 创建用户并签发令牌，欢迎邮件在后台发送
func (u *ModuleUser) Signup(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.FromBinding(err))
		return
	}

	hash, err := tools.PasswordEncrypt(req.Password)
	if err != nil {
		log.Error("密码加密失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	user := &model.User{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    string(req.Email),
		Password: hash,
		Role:     model.RoleUser,
	}
	if _, ok := u.admins[user.Email]; ok {
		user.Role = model.RoleAdmin
	}

	if err := u.Store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			response.Fail(c, response.ErrEmailInUse.WithOrigin(err))
			return
		}
		log.Error("创建用户失败", "error", err, "email", user.Email)
		response.Fail(c, response.FromStore(err))
		return
	}

	session, err := newSession(user)
	if err != nil {
		log.Error("签发令牌失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	log.Info("用户注册成功", "user_id", user.ID, "role", user.Role)
	response.Created(c, session)
	u.Notifier.SendWelcome(*user)
}

// Login 邮箱不存在与密码错误返回同一错误
func (u *ModuleUser) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.FromBinding(err))
		return
	}

	email := string(req.Email)
	user, err := u.Store.GetUserByEmail(c.Request.Context(), email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		logger.WithContext(log, c).Warn("用户不存在", "email", email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "email", email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.Password, user.Password) {
		logger.WithContext(log, c).Warn("密码错误", "email", email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	session, err := newSession(user)
	if err != nil {
		log.Error("签发令牌失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	log.Info("用户登录成功", "user_id", user.ID, "role", user.Role)
	response.Success(c, session)
}
