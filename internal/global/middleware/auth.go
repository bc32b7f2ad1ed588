package middleware

import (
	"strings"

	"campus-notifier/internal/global/jwt"
	"campus-notifier/internal/global/response"
	"campus-notifier/internal/model"

	"github.com/gin-gonic/gin"
)

// Auth 校验 Bearer 令牌，并要求角色不低于 minRole
func Auth(minRole model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || token == "" {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}

		payload, valid := jwt.ParseToken(token)
		if !valid {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}
		if payload.Role.Level() < minRole.Level() {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		c.Set(jwt.PayloadKey, payload)
		c.Next()
	}
}
