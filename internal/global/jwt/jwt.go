package jwt

import (
	"errors"
	"strconv"
	"time"

	"campus-notifier/config"
	"campus-notifier/internal/model"

	jwtlib "github.com/golang-jwt/jwt"
)

// TTL 令牌有效期固定为 3 天
const TTL = 72 * time.Hour

// Payload 令牌中携带的身份信息
type Payload struct {
	ID      uint       `json:"id"`
	Name    string     `json:"name"`
	Surname string     `json:"surname"`
	Role    model.Role `json:"role"`
}

type Claims struct {
	Payload
	jwtlib.StandardClaims
}

// IsAdmin 是否具备管理员权限
func (c *Claims) IsAdmin() bool {
	return c.Role.Level() >= model.RoleAdmin.Level()
}

func secret() []byte {
	return []byte(config.Get().JWT.AccessSecret)
}

// CreateToken 使用 HS256 签发令牌
func CreateToken(p Payload) (string, error) {
	now := time.Now()
	claims := Claims{
		Payload: p,
		StandardClaims: jwtlib.StandardClaims{
			Subject:   strconv.FormatUint(uint64(p.ID), 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(TTL).Unix(),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret())
}

// ParseToken 校验签名与过期时间
func ParseToken(token string) (*Claims, bool) {
	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret(), nil
	})
	if err != nil || !parsed.Valid || claims.ID == 0 {
		return nil, false
	}
	return claims, true
}
