package model

import (
	"strings"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var Roles = []string{string(RoleUser), string(RoleAdmin)}

// Level 权限等级，越大权限越高
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 1
	default:
		return 0
	}
}

type User struct {
	Model
	Name     string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	LastName string `gorm:"type:varchar(100);not null" json:"lastName" validate:"required"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-" validate:"required"`
	Role     Role   `gorm:"type:varchar(20);default:user;not null" json:"role" validate:"oneof=user admin"`
}

func (u *User) Validate() error {
	trimAll(&u.Name, &u.LastName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = RoleUser
	}
	return validateStruct(u)
}

func (u *User) BeforeSave(*gorm.DB) error {
	return u.Validate()
}
